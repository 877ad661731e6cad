package vocabulary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/burlang/tolibot/core/logger"
)

// Client talks to the vocabulary backend. All calls honor the configured
// per-request timeout on top of the caller's context.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

// NewClient constructs a Client from a normalized Config.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		timeout: cfg.timeout(),
		http:    &http.Client{},
	}
}

// SuggestWord submits a word to the moderation queue.
func (c *Client) SuggestWord(ctx context.Context, req SuggestWordRequest) error {
	return c.do(ctx, http.MethodPost, "/vocabulary/suggest-word", req, nil)
}

// SuggestTranslation submits a translation for a word from the translation queue.
func (c *Client) SuggestTranslation(ctx context.Context, req SuggestTranslationRequest) error {
	return c.do(ctx, http.MethodPost, "/vocabulary/suggest-translate", req, nil)
}

// ListPendingApproval fetches one page of the moderation queue. Pages are
// numbered from 1; a page past the end comes back empty, not as an error.
func (c *Client) ListPendingApproval(ctx context.Context, page, size int) (WordList, error) {
	return c.list(ctx, "/vocabulary/suggested-words", page, size)
}

// ListNeedingTranslation fetches one page of confirmed words without translations.
func (c *Client) ListNeedingTranslation(ctx context.Context, page, size int) (WordList, error) {
	return c.list(ctx, "/vocabulary/words-without-translation", page, size)
}

// AcceptWord confirms a suggested word on behalf of a moderator.
func (c *Client) AcceptWord(ctx context.Context, wordID string, moderatorID int64) error {
	body := map[string]interface{}{"suggested_word_id": wordID, "telegram_user_id": moderatorID}
	return c.do(ctx, http.MethodPost, "/vocabulary/accept-suggested-word", body, nil)
}

// DeclineWord rejects a suggested word on behalf of a moderator.
func (c *Client) DeclineWord(ctx context.Context, wordID string, moderatorID int64) error {
	body := map[string]interface{}{"suggested_word_id": wordID, "telegram_user_id": moderatorID}
	return c.do(ctx, http.MethodPost, "/vocabulary/decline-suggested-word", body, nil)
}

// IsUserRegistered reports whether the backend already knows the Telegram user.
func (c *Client) IsUserRegistered(ctx context.Context, userID int64) (bool, error) {
	var out struct {
		Exists bool `json:"is_exists"`
	}
	path := "/telegram/user/is-exists?id=" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// RegisterUser creates the Telegram user record on the backend.
func (c *Client) RegisterUser(ctx context.Context, user TelegramUser) error {
	return c.do(ctx, http.MethodPost, "/telegram/user/new", user, nil)
}

func (c *Client) list(ctx context.Context, path string, page, size int) (WordList, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(size))

	var out WordList
	if err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil, &out); err != nil {
		return WordList{}, err
	}
	if out.Items == nil {
		out.Items = []Word{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn(ctx, "svc.vocab", "api.request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("err", logger.SanitizeLimit(err.Error(), 128)),
		)
		return fmt.Errorf("vocabulary api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "svc.vocab", "api.request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}
