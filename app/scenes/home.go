package scenes

import (
	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/keyboard"
	"github.com/burlang/tolibot/core/telegram/scene"
)

const homeText = "<b>Самоучитель бурятского языка</b>\n\n" +
	"Каждое взаимодействие с ботом влияет на сохранение и дальнейшее развитие бурятского языка\n\n" +
	"Выберите раздел, чтобы приступить"

func homeScene() *scene.Scene {
	kb := keyboard.Inline(
		[]keyboard.Btn{{Text: "Словарь", Unique: "dictionary"}},
		[]keyboard.Btn{{Text: "Предложения", Unique: "sentences"}},
		[]keyboard.Btn{{Text: "Личный кабинет", Unique: "dashboard"}},
		[]keyboard.Btn{{Text: "Самоучитель", Unique: "self_teacher"}},
	)
	return scene.New(Home).OnEnter(func(c *scene.Context) error {
		return helpers.Present(c, homeText, kb)
	})
}
