package app

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
telegram:
  token: "123:abc"
  run_mode: longpoll
  moderators: [42]
logging:
  level: debug
  format: kv
vocabulary:
  base_url: https://api.example.org
  token: secret
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Session.Backend != SessionBackendMemory {
		t.Fatalf("session backend = %q, want memory default", cfg.Session.Backend)
	}
	if cfg.Vocabulary.TimeoutSeconds != 10 || cfg.Vocabulary.PageSize != 10 {
		t.Fatalf("vocabulary defaults not applied: %+v", cfg.Vocabulary)
	}
	if !cfg.Telegram.IsModerator(42) || cfg.Telegram.IsModerator(7) {
		t.Fatalf("moderators = %v", cfg.Telegram.Moderators)
	}
	if cfg.CoreConfig() == nil {
		t.Fatal("core config accessor returned nil")
	}
}

func TestLoadConfigRejectsBadBackend(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, sampleConfig+"\nsession:\n  backend: redis\n"))
	if err == nil {
		t.Fatal("expected error for unsupported session backend")
	}
}

func TestLoadConfigRequiresVocabulary(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
telegram:
  token: "123:abc"
`))
	if err == nil {
		t.Fatal("expected error for missing vocabulary settings")
	}
}
