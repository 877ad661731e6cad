package scene

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func wordsFetcher(total int, calls *[]int) Fetcher {
	return func(ctx context.Context, page, size int) (ListPage, error) {
		if calls != nil {
			*calls = append(*calls, page)
		}
		var items []ListItem
		for i := (page - 1) * size; i < total && i < page*size; i++ {
			items = append(items, ListItem{
				ID:    fmt.Sprintf("w%d", i),
				Label: fmt.Sprintf("слово %d", i),
			})
		}
		return ListPage{Items: items, Total: total}, nil
	}
}

func testPager(fetch Fetcher) *Pager {
	return &Pager{
		Kind:      "moderation",
		Fetch:     fetch,
		PageSize:  10,
		Title:     "Слова на модерации",
		SelectKey: "select_word",
		PrevKey:   "prev_page",
		NextKey:   "next_page",
		BackKey:   "back",
	}
}

func pagerContext(fc *fakeTeleContext) *Context {
	return &Context{Context: fc, sess: NewSession("home")}
}

func TestPagerRenderFirstPage(t *testing.T) {
	p := testPager(wordsFetcher(23, nil))
	fc := newFakeContext(42)
	c := pagerContext(fc)

	if err := p.Render(c); err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(fc.sent) != 1 {
		t.Fatalf("sent = %v, want one message", fc.sent)
	}
	text := fc.sent[0]
	if !strings.Contains(text, "Показано 1-10 из 23") {
		t.Fatalf("text missing range line: %q", text)
	}
	if !strings.Contains(text, "1. слово 0") || !strings.Contains(text, "10. слово 9") {
		t.Fatalf("text missing items: %q", text)
	}
	if got := c.Session().Cursor("moderation"); got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}

	markup := fc.lastMarkup()
	if markup == nil {
		t.Fatal("no markup attached")
	}
	// 10 select buttons chunked 5 per row, plus the navigation row
	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want 3", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 5 || len(markup.InlineKeyboard[1]) != 5 {
		t.Fatalf("select rows = %d/%d, want 5/5",
			len(markup.InlineKeyboard[0]), len(markup.InlineKeyboard[1]))
	}
	if len(markup.InlineKeyboard[2]) != 3 {
		t.Fatalf("nav row = %d buttons, want 3", len(markup.InlineKeyboard[2]))
	}
}

func TestPagerRenderLastShortPage(t *testing.T) {
	p := testPager(wordsFetcher(23, nil))
	fc := newFakeContext(42)
	c := pagerContext(fc)
	c.Session().SetCursor("moderation", 3)

	if err := p.Render(c); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(fc.sent[0], "Показано 21-23 из 23") {
		t.Fatalf("text = %q", fc.sent[0])
	}
}

func TestPagerNextAdvances(t *testing.T) {
	p := testPager(wordsFetcher(23, nil))
	fc := newFakeCallback(42, "\fnext_page")
	c := pagerContext(fc)
	c.Session().SetCursor("moderation", 1)

	if err := p.Next(c); err != nil {
		t.Fatalf("next: %v", err)
	}

	if got := c.Session().Cursor("moderation"); got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
	if len(fc.edited) != 1 || !strings.Contains(fc.edited[0], "Показано 11-20 из 23") {
		t.Fatalf("edited = %v", fc.edited)
	}
}

func TestPagerNextAtLastPageAlerts(t *testing.T) {
	var calls []int
	p := testPager(wordsFetcher(23, &calls))
	fc := newFakeCallback(42, "\fnext_page")
	c := pagerContext(fc)
	c.Session().SetCursor("moderation", 3)

	if err := p.Next(c); err != nil {
		t.Fatalf("next: %v", err)
	}

	if got := c.Session().Cursor("moderation"); got != 3 {
		t.Fatalf("cursor = %d, want 3 unchanged", got)
	}
	if len(fc.responses) != 1 || fc.responses[0].Text != "Это последняя страница" {
		t.Fatalf("responses = %+v", fc.responses)
	}
	if len(fc.edited) != 0 {
		t.Fatalf("list re-rendered past last page: %v", fc.edited)
	}
}

func TestPagerPrevOnFirstPageAcks(t *testing.T) {
	var calls []int
	p := testPager(wordsFetcher(23, &calls))
	fc := newFakeCallback(42, "\fprev_page")
	c := pagerContext(fc)

	if err := p.Prev(c); err != nil {
		t.Fatalf("prev: %v", err)
	}

	if fc.responded != 1 {
		t.Fatalf("responded = %d, want 1", fc.responded)
	}
	if len(calls) != 0 {
		t.Fatalf("fetch called on first-page prev: %v", calls)
	}
	if len(fc.edited) != 0 {
		t.Fatalf("list re-rendered: %v", fc.edited)
	}
}

func TestPagerPrevMovesBack(t *testing.T) {
	p := testPager(wordsFetcher(23, nil))
	fc := newFakeCallback(42, "\fprev_page")
	c := pagerContext(fc)
	c.Session().SetCursor("moderation", 2)

	if err := p.Prev(c); err != nil {
		t.Fatalf("prev: %v", err)
	}
	if got := c.Session().Cursor("moderation"); got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}
	if len(fc.edited) != 1 || !strings.Contains(fc.edited[0], "Показано 1-10 из 23") {
		t.Fatalf("edited = %v", fc.edited)
	}
}

func TestPagerRenderSurvivesEditRace(t *testing.T) {
	p := testPager(wordsFetcher(23, nil))
	fc := newFakeCallback(42, "\fnext_page")
	fc.editErr = tele.ErrSameMessageContent
	c := pagerContext(fc)
	c.Session().SetCursor("moderation", 2)

	if err := p.Render(c); err != nil {
		t.Fatalf("stale edit surfaced as error: %v", err)
	}
	if got := c.Session().Cursor("moderation"); got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
}

func TestPagerFetchErrorKeepsCursor(t *testing.T) {
	p := testPager(func(ctx context.Context, page, size int) (ListPage, error) {
		return ListPage{}, errors.New("api down")
	})
	fc := newFakeCallback(42, "\fnext_page")
	c := pagerContext(fc)
	c.Session().SetCursor("moderation", 2)

	if err := p.Render(c); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := c.Session().Cursor("moderation"); got != 2 {
		t.Fatalf("cursor = %d, want 2 unchanged", got)
	}
	if len(fc.edited) != 1 || !strings.Contains(fc.edited[0], "Не удалось загрузить список") {
		t.Fatalf("edited = %v", fc.edited)
	}
}

func TestPagerEmptyList(t *testing.T) {
	p := testPager(wordsFetcher(0, nil))
	p.EmptyText = "Нет слов на модерации."
	fc := newFakeContext(42)
	c := pagerContext(fc)

	if err := p.Render(c); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(fc.sent) != 1 || fc.sent[0] != "Нет слов на модерации." {
		t.Fatalf("sent = %v", fc.sent)
	}
}

func TestPagerResolve(t *testing.T) {
	p := testPager(wordsFetcher(23, nil))

	item, err := p.Resolve(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if item.ID != "w13" {
		t.Fatalf("item = %+v, want id w13", item)
	}

	if _, err := p.Resolve(context.Background(), 3, 5); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	payload := Selection(2, 3)
	if payload != "2:3" {
		t.Fatalf("payload = %q", payload)
	}
	page, index, err := ParseSelection(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if page != 2 || index != 3 {
		t.Fatalf("parsed = (%d,%d)", page, index)
	}

	for _, bad := range []string{"", "2", "x:1", "2:y"} {
		if _, _, err := ParseSelection(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
