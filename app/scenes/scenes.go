// Package scenes declares the bot's conversation flows: the home menu, the
// dictionary wizard, the dashboard with its moderation queues and the stub
// sections. Scenes only render and route; all dictionary data lives behind
// the vocabulary API.
package scenes

import (
	"context"
	"fmt"

	"github.com/burlang/tolibot/core/telegram/scene"
	"github.com/burlang/tolibot/core/vocabulary"
)

// Scene ids used across the registry and global navigation actions.
const (
	Home        scene.ID = "home"
	Dictionary  scene.ID = "dictionary"
	Sentences   scene.ID = "sentences"
	Dashboard   scene.ID = "dashboard"
	SelfTeacher scene.ID = "self_teacher"
	Moderation  scene.ID = "moderation"
	Translation scene.ID = "translation"
)

// Flow keys shared by the wizard steps.
const (
	flowLanguage     = "language"
	flowDialect      = "dialect"
	flowSelectedWord = "selected_word_id"
	flowSelectedText = "selected_word_text"
)

// VocabService is the slice of the vocabulary client the scenes use.
type VocabService interface {
	SuggestWord(ctx context.Context, req vocabulary.SuggestWordRequest) error
	SuggestTranslation(ctx context.Context, req vocabulary.SuggestTranslationRequest) error
	ListPendingApproval(ctx context.Context, page, size int) (vocabulary.WordList, error)
	ListNeedingTranslation(ctx context.Context, page, size int) (vocabulary.WordList, error)
	AcceptWord(ctx context.Context, wordID string, moderatorID int64) error
	DeclineWord(ctx context.Context, wordID string, moderatorID int64) error
	IsUserRegistered(ctx context.Context, userID int64) (bool, error)
	RegisterUser(ctx context.Context, user vocabulary.TelegramUser) error
}

// Deps carries what the scene handlers need from the application.
type Deps struct {
	Vocab       VocabService
	IsModerator func(userID int64) bool
	PageSize    int
}

func (d Deps) pageSize() int {
	if d.PageSize >= 1 {
		return d.PageSize
	}
	return scene.DefaultPageSize
}

func (d Deps) isModerator(userID int64) bool {
	return d.IsModerator != nil && d.IsModerator(userID)
}

// BuildRegistry assembles the full scene catalog with its global navigation
// actions. Built once at startup.
func BuildRegistry(deps Deps) (*scene.Registry, error) {
	reg := scene.NewRegistry(Home)

	all := []*scene.Scene{
		homeScene(),
		dictionaryScene(deps),
		sentencesScene(),
		dashboardScene(deps),
		selfTeacherScene(),
		moderationScene(deps),
		translationScene(deps),
	}
	for _, s := range all {
		if err := reg.Add(s); err != nil {
			return nil, fmt.Errorf("build scene registry: %w", err)
		}
	}

	// top-level navigation works from any scene
	for key, target := range map[string]scene.ID{
		"home":         Home,
		"dictionary":   Dictionary,
		"sentences":    Sentences,
		"dashboard":    Dashboard,
		"self_teacher": SelfTeacher,
	} {
		id := target
		reg.Global(key, func(c *scene.Context, payload string) error {
			return c.SwitchScene(id)
		})
	}
	return reg, nil
}
