package scenes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/keyboard"
	"github.com/burlang/tolibot/core/telegram/scene"
	"github.com/burlang/tolibot/core/vocabulary"

	tele "gopkg.in/telebot.v4"
)

const (
	noSelectionText   = "Слово не выбрано, вернитесь к списку."
	moderateFailText  = "Не удалось обработать слово, попробуйте позже."
	selectFailedText  = "Не удалось открыть слово, попробуйте ещё раз."
	translationPrompt = "Введите перевод для слова <b>%s</b>:"
)

const stepTranslation = 1

// listConfig parameterizes the two moderator queues, which share the whole
// browse/select flow and differ only in what happens to a selected word.
type listConfig struct {
	id        scene.ID
	kind      string
	title     string
	emptyText string
	fetch     func(ctx context.Context, page, size int) (vocabulary.WordList, error)
	onSelect  func(c *scene.Context, item scene.ListItem) error
}

func newListScene(deps Deps, cfg listConfig) (*scene.Scene, *scene.Pager) {
	pager := &scene.Pager{
		Kind:      cfg.kind,
		PageSize:  deps.pageSize(),
		Title:     cfg.title,
		EmptyText: cfg.emptyText,
		SelectKey: "select_word",
		PrevKey:   "prev_page",
		NextKey:   "next_page",
		BackKey:   "back",
		Fetch: func(ctx context.Context, page, size int) (scene.ListPage, error) {
			list, err := cfg.fetch(ctx, page, size)
			if err != nil {
				return scene.ListPage{}, err
			}
			items := make([]scene.ListItem, 0, len(list.Items))
			for _, w := range list.Items {
				items = append(items, scene.ListItem{ID: w.ID, Label: w.Text})
			}
			return scene.ListPage{Items: items, Total: list.Total}, nil
		},
	}

	s := scene.New(cfg.id).OnEnter(func(c *scene.Context) error {
		if !deps.isModerator(c.UserID()) {
			home := keyboard.Inline([]keyboard.Btn{{Text: "Главная", Unique: "home"}})
			return helpers.Present(c, moderatorsOnly, home)
		}
		return pager.Render(c)
	})

	s.OnActionPrefix("select_word", func(c *scene.Context, payload string) error {
		page, index, err := scene.ParseSelection(payload)
		if err != nil {
			// legacy payload: a bare index relative to the current page
			idx, convErr := strconv.Atoi(payload)
			if convErr != nil {
				return c.Respond()
			}
			page, index = c.Session().Cursor(cfg.kind), idx
		}

		item, err := pager.Resolve(helpers.BuildContext(c.Context), page, index)
		if err != nil {
			return helpers.Present(c, selectFailedText, backToListMenu())
		}

		c.SetFlow(flowSelectedWord, item.ID)
		c.SetFlow(flowSelectedText, item.Label)
		return cfg.onSelect(c, item)
	})

	s.OnAction("prev_page", func(c *scene.Context, payload string) error {
		return pager.Prev(c)
	})
	s.OnAction("next_page", func(c *scene.Context, payload string) error {
		return pager.Next(c)
	})
	s.OnAction("back_to_list", func(c *scene.Context, payload string) error {
		c.ClearFlow(flowSelectedWord)
		c.ClearFlow(flowSelectedText)
		if err := pager.Render(c); err != nil {
			return err
		}
		return c.LeaveStep()
	})
	s.OnAction("back", func(c *scene.Context, payload string) error {
		return c.SwitchScene(Dashboard)
	})

	return s, pager
}

func backToListMenu() *tele.ReplyMarkup {
	return keyboard.Inline([]keyboard.Btn{{Text: "К списку", Unique: "back_to_list"}})
}

func moderationScene(deps Deps) *scene.Scene {
	s, pager := newListScene(deps, listConfig{
		id:        Moderation,
		kind:      "moderation",
		title:     "Слова на модерации",
		emptyText: "Нет слов, ожидающих модерации.",
		fetch:     deps.Vocab.ListPendingApproval,
		onSelect: func(c *scene.Context, item scene.ListItem) error {
			kb := keyboard.Inline(
				[]keyboard.Btn{
					{Text: "Принять", Unique: "approve_word"},
					{Text: "Отклонить", Unique: "decline_word"},
				},
				[]keyboard.Btn{{Text: "К списку", Unique: "back_to_list"}},
			)
			text := fmt.Sprintf("Слово: <b>%s</b>\n\nПринять слово в словарь?", item.Label)
			return helpers.Present(c, text, kb)
		},
	})

	decide := func(do func(ctx context.Context, wordID string, moderatorID int64) error) scene.ActionHandlerFunc {
		return func(c *scene.Context, payload string) error {
			id, ok := c.Flow(flowSelectedWord)
			if !ok || id == "" {
				return helpers.Present(c, noSelectionText, backToListMenu())
			}
			if err := do(helpers.BuildContext(c.Context), id, c.UserID()); err != nil {
				return helpers.Present(c, moderateFailText, backToListMenu())
			}
			c.ClearFlow(flowSelectedWord)
			c.ClearFlow(flowSelectedText)
			return pager.Render(c)
		}
	}
	s.OnAction("approve_word", decide(deps.Vocab.AcceptWord))
	s.OnAction("decline_word", decide(deps.Vocab.DeclineWord))

	return s
}

func translationScene(deps Deps) *scene.Scene {
	s, pager := newListScene(deps, listConfig{
		id:        Translation,
		kind:      "translation",
		title:     "Слова для перевода",
		emptyText: "Нет слов, ожидающих перевода.",
		fetch:     deps.Vocab.ListNeedingTranslation,
		onSelect: func(c *scene.Context, item scene.ListItem) error {
			text := fmt.Sprintf(translationPrompt, item.Label)
			if err := helpers.Present(c, text, backToListMenu()); err != nil {
				return err
			}
			return c.SelectStep(stepTranslation)
		},
	})

	s.OnStep(stepTranslation, func(c *scene.Context) error {
		text := strings.TrimSpace(c.Text())
		if text == "" {
			return helpers.Present(c, promptEnterText, nil)
		}
		id, ok := c.Flow(flowSelectedWord)
		if !ok || id == "" {
			return helpers.Present(c, noSelectionText, backToListMenu())
		}

		err := deps.Vocab.SuggestTranslation(helpers.BuildContext(c.Context), vocabulary.SuggestTranslationRequest{
			WordID: id,
			Text:   text,
			UserID: c.UserID(),
		})
		if err != nil {
			return helpers.Present(c, submitFailedText, backToListMenu())
		}

		c.ClearFlow(flowSelectedWord)
		c.ClearFlow(flowSelectedText)
		if err := helpers.Present(c, fmt.Sprintf("Перевод отправлен: %s", text), nil); err != nil {
			return err
		}
		if err := pager.Render(c); err != nil {
			return err
		}
		return c.LeaveStep()
	})

	return s
}
