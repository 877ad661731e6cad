package scene

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/burlang/tolibot/core/logger"
	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// DefaultPageSize is used when a Pager does not set its own.
const DefaultPageSize = 10

// ListItem is one selectable row of a paginated remote list.
type ListItem struct {
	ID    string
	Label string
}

// ListPage is one fetched page together with the total item count, so the
// pager can tell whether a next page exists.
type ListPage struct {
	Items []ListItem
	Total int
}

// Fetcher loads one page of a remote list. Pages are numbered from 1.
type Fetcher func(ctx context.Context, page, size int) (ListPage, error)

// Pager renders a remote list page by page with numbered select buttons and
// prev/back/next navigation. The current page is remembered in the session
// cursor keyed by Kind, so several pagers can coexist without clobbering each
// other's position.
type Pager struct {
	Kind     string
	Fetch    Fetcher
	PageSize int

	Title     string
	EmptyText string
	ErrorText string

	SelectKey string
	PrevKey   string
	NextKey   string
	BackKey   string
	BackText  string
}

func (p *Pager) size() int {
	if p.PageSize >= 1 {
		return p.PageSize
	}
	return DefaultPageSize
}

// Render shows the page stored in the session cursor (the first page for a
// fresh session). A failed fetch presents the error text and leaves the
// cursor untouched.
func (p *Pager) Render(c *Context) error {
	return p.renderPage(c, c.Session().Cursor(p.Kind))
}

// Prev moves one page back. On the first page the press is acknowledged
// without re-rendering.
func (p *Pager) Prev(c *Context) error {
	page := c.Session().Cursor(p.Kind)
	if page <= 1 {
		return c.Respond()
	}
	return p.renderPage(c, page-1)
}

// Next moves one page forward. Past the last page the press is answered with
// an alert and the list is not re-rendered.
func (p *Pager) Next(c *Context) error {
	ctx := helpers.BuildContext(c.Context)
	size := p.size()
	page := c.Session().Cursor(p.Kind)
	target := page + 1

	res, err := p.Fetch(ctx, target, size)
	if err != nil {
		return p.presentError(c, err)
	}
	if target > totalPages(res.Total, size) {
		return c.Respond(&tele.CallbackResponse{Text: "Это последняя страница"})
	}
	return p.present(c, target, res)
}

// Resolve re-fetches the given page and returns the item at the given
// zero-based index, as referenced by a select button payload.
func (p *Pager) Resolve(ctx context.Context, page, index int) (ListItem, error) {
	res, err := p.Fetch(ctx, page, p.size())
	if err != nil {
		return ListItem{}, err
	}
	if index < 0 || index >= len(res.Items) {
		return ListItem{}, fmt.Errorf("page %d has no item at index %d", page, index)
	}
	return res.Items[index], nil
}

// Selection encodes the (page, index) pair carried by a select button.
func Selection(page, index int) string {
	return strconv.Itoa(page) + ":" + strconv.Itoa(index)
}

// ParseSelection decodes a select button payload back into its page and
// zero-based index.
func ParseSelection(payload string) (page, index int, err error) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed selection payload %q", payload)
	}
	if page, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed selection page %q", parts[0])
	}
	if index, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed selection index %q", parts[1])
	}
	return page, index, nil
}

func (p *Pager) renderPage(c *Context, page int) error {
	ctx := helpers.BuildContext(c.Context)

	res, err := p.Fetch(ctx, page, p.size())
	if err != nil {
		return p.presentError(c, err)
	}
	return p.present(c, page, res)
}

func (p *Pager) present(c *Context, page int, res ListPage) error {
	if len(res.Items) == 0 {
		text := p.EmptyText
		if text == "" {
			text = "Список пуст."
		}
		c.Session().SetCursor(p.Kind, page)
		return helpers.Present(c, text, keyboard.Inline([]keyboard.Btn{p.backBtn()}))
	}

	size := p.size()
	first := (page-1)*size + 1
	last := first + len(res.Items) - 1

	var b strings.Builder
	if p.Title != "" {
		b.WriteString("<b>" + p.Title + "</b>\n\n")
	}
	for i, item := range res.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Label)
	}
	fmt.Fprintf(&b, "\nПоказано %d-%d из %d", first, last, res.Total)

	selects := make([]keyboard.Btn, 0, len(res.Items))
	for i := range res.Items {
		selects = append(selects, keyboard.Btn{
			Text:   strconv.Itoa(i + 1),
			Unique: p.SelectKey,
			Data:   Selection(page, i),
		})
	}

	rows := keyboard.Chunk(selects, 5)
	rows = append(rows, []keyboard.Btn{
		{Text: "⬅️", Unique: p.PrevKey},
		p.backBtn(),
		{Text: "➡️", Unique: p.NextKey},
	})

	c.Session().SetCursor(p.Kind, page)
	return helpers.Present(c, b.String(), keyboard.Inline(rows...))
}

func (p *Pager) presentError(c *Context, err error) error {
	logger.Warn(helpers.BuildContext(c.Context), "tg", "pager.fetch_failed",
		slog.String("kind", p.Kind),
		slog.String("err", logger.SanitizeLimit(err.Error(), 128)),
	)
	text := p.ErrorText
	if text == "" {
		text = "Не удалось загрузить список, попробуйте позже."
	}
	return helpers.Present(c, text, keyboard.Inline([]keyboard.Btn{p.backBtn()}))
}

func (p *Pager) backBtn() keyboard.Btn {
	text := p.BackText
	if text == "" {
		text = "Назад"
	}
	return keyboard.Btn{Text: text, Unique: p.BackKey}
}

func totalPages(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}
