package vocabulary

import "fmt"

// Known word languages accepted by the backend.
const (
	LanguageRussian = "russian"
	LanguageBuryat  = "buryat"
)

// Known Buryat dialects accepted by the backend.
const (
	DialectKhori   = "khori"
	DialectBulagat = "bulagat"
	DialectSartul  = "sartul"
	DialectUnknown = "unknown"
)

// Word is a dictionary entry as the backend returns it.
type Word struct {
	ID              string   `json:"_id"`
	Text            string   `json:"text"`
	NormalizedText  string   `json:"normalized_text,omitempty"`
	Language        string   `json:"language"`
	Dialect         string   `json:"dialect,omitempty"`
	Status          string   `json:"status,omitempty"`
	PreTranslations []string `json:"pre_translations,omitempty"`
}

// WordList is one page of words together with the queue total.
type WordList struct {
	Items []Word `json:"items"`
	Total int    `json:"total_count"`
}

// SuggestWordRequest submits a new word for moderation. The backend keys the
// author by Telegram id.
type SuggestWordRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Dialect  string `json:"dialect,omitempty"`
	UserID   int64  `json:"id"`
}

// SuggestTranslationRequest submits a translation for an existing word.
type SuggestTranslationRequest struct {
	WordID string `json:"word_id"`
	Text   string `json:"text"`
	UserID int64  `json:"id"`
}

// TelegramUser registers a bot user with the backend.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("vocabulary api: status %d", e.Status)
	}
	return fmt.Sprintf("vocabulary api: status %d: %s", e.Status, e.Message)
}

// Code returns a stable machine-readable error code for log summaries.
func (e *APIError) Code() string {
	return fmt.Sprintf("API_%d", e.Status)
}
