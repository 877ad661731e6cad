package scenes

import (
	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/keyboard"
	"github.com/burlang/tolibot/core/telegram/scene"
)

func sentencesScene() *scene.Scene {
	return stubScene(Sentences, "Добро пожаловать в раздел предложений.")
}

func selfTeacherScene() *scene.Scene {
	return stubScene(SelfTeacher, "Добро пожаловать в самоучитель.")
}

func stubScene(id scene.ID, text string) *scene.Scene {
	kb := keyboard.Inline([]keyboard.Btn{{Text: "Главная", Unique: "home"}})
	return scene.New(id).OnEnter(func(c *scene.Context) error {
		return helpers.Present(c, text, kb)
	})
}
