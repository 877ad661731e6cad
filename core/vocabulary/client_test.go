package vocabulary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL, Token: "admintoken"}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return NewClient(cfg)
}

func TestSuggestWord(t *testing.T) {
	var got map[string]interface{}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/vocabulary/suggest-word" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer admintoken" {
			t.Errorf("authorization = %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	err := c.SuggestWord(context.Background(), SuggestWordRequest{
		Text:     "мэндэ",
		Language: LanguageBuryat,
		Dialect:  DialectKhori,
		UserID:   42,
	})
	if err != nil {
		t.Fatalf("suggest word: %v", err)
	}

	if got["text"] != "мэндэ" || got["language"] != "buryat" || got["dialect"] != "khori" {
		t.Fatalf("body = %v", got)
	}
	if got["id"] != float64(42) {
		t.Fatalf("id = %v, want 42", got["id"])
	}
}

func TestListPendingApproval(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vocabulary/suggested-words" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"_id": "abc", "text": "слово", "language": "russian"},
			},
			"total_count": 23,
		})
	})

	list, err := c.ListPendingApproval(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 23 || len(list.Items) != 1 {
		t.Fatalf("list = %+v", list)
	}
	if list.Items[0].ID != "abc" || list.Items[0].Text != "слово" {
		t.Fatalf("item = %+v", list.Items[0])
	}
}

func TestListEmptyPageIsNotAnError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"total_count": 23})
	})

	list, err := c.ListNeedingTranslation(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Items == nil || len(list.Items) != 0 {
		t.Fatalf("items = %v, want empty slice", list.Items)
	}
	if list.Total != 23 {
		t.Fatalf("total = %d", list.Total)
	}
}

func TestAPIErrorCarriesStatusAndCode(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "moderator required"})
	})

	err := c.AcceptWord(context.Background(), "abc", 42)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T %v", err, err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Fatalf("status = %d", apiErr.Status)
	}
	if apiErr.Code() != "API_403" {
		t.Fatalf("code = %q", apiErr.Code())
	}
	if apiErr.Message != "moderator required" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestIsUserRegistered(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/telegram/user/is-exists" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "42" {
			t.Errorf("id = %q", r.URL.Query().Get("id"))
		}
		json.NewEncoder(w).Encode(map[string]bool{"is_exists": true})
	})

	exists, err := c.IsUserRegistered(context.Background(), 42)
	if err != nil {
		t.Fatalf("is registered: %v", err)
	}
	if !exists {
		t.Fatal("exists = false, want true")
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.org/ ", Token: "t"}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.BaseURL != "https://api.example.org" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 10 || cfg.PageSize != 10 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}

	bad := Config{Token: "t"}
	if err := bad.Normalize(); err == nil {
		t.Fatal("expected error for missing base url")
	}
	bad = Config{BaseURL: "x"}
	if err := bad.Normalize(); err == nil {
		t.Fatal("expected error for missing token")
	}
}
