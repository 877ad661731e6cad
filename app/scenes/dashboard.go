package scenes

import (
	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/keyboard"
	"github.com/burlang/tolibot/core/telegram/scene"

	tele "gopkg.in/telebot.v4"
)

const (
	dashboardText  = "<b>Личный кабинет</b>"
	feedbackURL    = "https://t.me/frntdev"
	aboutText      = "Бот пополняет словарь бурятского языка силами сообщества."
	wipText        = "Раздел в разработке"
	moderatorsOnly = "Доступно только модераторам"
)

func dashboardScene(deps Deps) *scene.Scene {
	s := scene.New(Dashboard).OnEnter(func(c *scene.Context) error {
		return helpers.Present(c, dashboardText, dashboardMenu(deps, c.UserID()))
	})

	s.OnAction("about", func(c *scene.Context, payload string) error {
		return c.Respond(&tele.CallbackResponse{Text: aboutText})
	})
	s.OnAction("reference", func(c *scene.Context, payload string) error {
		return c.Respond(&tele.CallbackResponse{Text: wipText})
	})
	s.OnAction("earn", func(c *scene.Context, payload string) error {
		return c.Respond(&tele.CallbackResponse{Text: wipText})
	})

	moderated := func(target scene.ID) scene.ActionHandlerFunc {
		return func(c *scene.Context, payload string) error {
			if !deps.isModerator(c.UserID()) {
				return c.Respond(&tele.CallbackResponse{Text: moderatorsOnly, ShowAlert: true})
			}
			return c.SwitchScene(target)
		}
	}
	s.OnAction("moderation_words", moderated(Moderation))
	s.OnAction("translation_words", moderated(Translation))

	return s
}

func dashboardMenu(deps Deps, userID int64) *tele.ReplyMarkup {
	rows := [][]keyboard.Btn{
		{{Text: "Информация о проекте", Unique: "about"}},
		{{Text: "Справочные материалы", Unique: "reference"}},
		{{Text: "💰 Зарабатывайте с нами", Unique: "earn"}},
	}
	if deps.isModerator(userID) {
		rows = append(rows,
			[]keyboard.Btn{{Text: "Слова на модерации", Unique: "moderation_words"}},
			[]keyboard.Btn{{Text: "Слова для перевода", Unique: "translation_words"}},
		)
	}
	rows = append(rows, []keyboard.Btn{
		{Text: "Главная", Unique: "home"},
		{Text: "Обратная связь", URL: feedbackURL},
	})
	return keyboard.Inline(rows...)
}
