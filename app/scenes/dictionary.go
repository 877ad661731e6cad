package scenes

import (
	"fmt"
	"strings"

	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/keyboard"
	"github.com/burlang/tolibot/core/telegram/scene"
	"github.com/burlang/tolibot/core/vocabulary"
)

const (
	promptEnterText   = "Пожалуйста, введите текст."
	submitFailedText  = "Произошла ошибка при отправке вашего предложения."
	noUserText        = "Не удалось определить пользователя."
	dictionaryText    = "<b>Словарь</b>\n\nВыберите язык для перевода или предложите слово для дальнейшего перевода нашим сообществом"
	suggestLangText   = "Выберите язык, на котором хотите предложить слово для корпуса:"
	suggestDialectTxt = "Укажите диалект предлагаемого слова:"
)

// Wizard steps of the dictionary scene.
const (
	stepTranslate = 1
	stepSuggest   = 2
)

func dictionaryScene(deps Deps) *scene.Scene {
	menu := keyboard.Inline(
		[]keyboard.Btn{
			{Text: "Русский", Unique: "select_russian"},
			{Text: "Бурятский", Unique: "select_buryat"},
		},
		[]keyboard.Btn{{Text: "Предложить слово", Unique: "suggest_word"}},
		[]keyboard.Btn{{Text: "Назад", Unique: "home"}},
	)

	suggestLangMenu := keyboard.Inline(
		[]keyboard.Btn{
			{Text: "Русский", Unique: "suggest_russian"},
			{Text: "Бурятский", Unique: "suggest_buryat"},
		},
		[]keyboard.Btn{{Text: "Назад", Unique: "back"}},
	)

	dialectMenu := keyboard.Inline(
		[]keyboard.Btn{
			{Text: "Хоринский", Unique: "dialect", Data: vocabulary.DialectKhori},
			{Text: "Булагатский", Unique: "dialect", Data: vocabulary.DialectBulagat},
		},
		[]keyboard.Btn{
			{Text: "Сартульский", Unique: "dialect", Data: vocabulary.DialectSartul},
			{Text: "Не знаю", Unique: "dialect", Data: vocabulary.DialectUnknown},
		},
		[]keyboard.Btn{{Text: "Назад", Unique: "back"}},
	)

	s := scene.New(Dictionary).OnEnter(func(c *scene.Context) error {
		return helpers.Present(c, dictionaryText, menu)
	})

	selectLanguage := func(lang, prompt string) scene.ActionHandlerFunc {
		return func(c *scene.Context, payload string) error {
			c.SetFlow(flowLanguage, lang)
			if err := helpers.Present(c, prompt, nil); err != nil {
				return err
			}
			return c.SelectStep(stepTranslate)
		}
	}
	s.OnAction("select_russian", selectLanguage(vocabulary.LanguageRussian, "Введите слово для перевода с русского:"))
	s.OnAction("select_buryat", selectLanguage(vocabulary.LanguageBuryat, "Введите слово для перевода с бурятского:"))

	s.OnAction("suggest_word", func(c *scene.Context, payload string) error {
		return helpers.Present(c, suggestLangText, suggestLangMenu)
	})

	s.OnAction("suggest_russian", func(c *scene.Context, payload string) error {
		c.SetFlow(flowLanguage, vocabulary.LanguageRussian)
		if err := helpers.Present(c, "Введите слово или фразу, которую хотите отправить на перевод с русского:", nil); err != nil {
			return err
		}
		return c.SelectStep(stepSuggest)
	})

	s.OnAction("suggest_buryat", func(c *scene.Context, payload string) error {
		c.SetFlow(flowLanguage, vocabulary.LanguageBuryat)
		return helpers.Present(c, suggestDialectTxt, dialectMenu)
	})

	s.OnActionPrefix("dialect", func(c *scene.Context, payload string) error {
		c.SetFlow(flowDialect, payload)
		if err := helpers.Present(c, "Введите слово или фразу, которую хотите отправить на перевод с бурятского:", nil); err != nil {
			return err
		}
		return c.SelectStep(stepSuggest)
	})

	s.OnAction("back", func(c *scene.Context, payload string) error {
		return c.SwitchScene(Dictionary)
	})

	s.OnStep(stepTranslate, submitWord(deps, vocabulary.DialectKhori))
	s.OnStep(stepSuggest, submitWord(deps, ""))

	return s
}

// TextOnlyReminder asks the user for plain text. It backs the media routes so
// a photo or sticker sent into a wizard step gets a reply instead of silence.
func TextOnlyReminder(c *scene.Context) error {
	return helpers.Present(c, promptEnterText, nil)
}

// submitWord sends the typed word to the moderation queue and re-enters the
// dictionary menu. An empty defaultDialect means the dialect comes from the
// wizard's scratch state.
func submitWord(deps Deps, defaultDialect string) scene.HandlerFunc {
	return func(c *scene.Context) error {
		text := strings.TrimSpace(c.Text())
		if text == "" {
			return helpers.Present(c, promptEnterText, nil)
		}
		userID := c.UserID()
		if userID == 0 {
			return helpers.Present(c, noUserText, nil)
		}

		lang, _ := c.Flow(flowLanguage)
		if lang == "" {
			lang = vocabulary.LanguageBuryat
		}
		dialect := defaultDialect
		if dialect == "" {
			if d, ok := c.Flow(flowDialect); ok {
				dialect = d
			} else {
				dialect = vocabulary.DialectKhori
			}
		}

		err := deps.Vocab.SuggestWord(helpers.BuildContext(c.Context), vocabulary.SuggestWordRequest{
			Text:     text,
			Language: lang,
			Dialect:  dialect,
			UserID:   userID,
		})
		if err != nil {
			return helpers.Present(c, submitFailedText, nil)
		}

		if err := helpers.Present(c, fmt.Sprintf("Ваше предложение успешно отправлено: %s", text), nil); err != nil {
			return err
		}
		return c.SwitchScene(Dictionary)
	}
}
