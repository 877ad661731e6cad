// Package vocabulary is the HTTP client for the dictionary backend: word
// suggestions, translation suggestions, moderation queues and Telegram user
// registration.
package vocabulary

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultTimeoutSeconds = 10
	defaultPageSize       = 10
)

// Config holds vocabulary API connection settings.
type Config struct {
	BaseURL string `yaml:"base_url" envconfig:"VOCABULARY_API_URL"`
	Token   string `yaml:"token" envconfig:"VOCABULARY_API_TOKEN"`
	// TimeoutSeconds caps one API call; 0 -> default
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"VOCABULARY_TIMEOUT_SECONDS"`
	// PageSize is the number of items requested per list page; 0 -> default
	PageSize int `yaml:"page_size" envconfig:"VOCABULARY_PAGE_SIZE"`
}

// Normalize validates required fields and fills defaults.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("vocabulary.base_url is required")
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("vocabulary.token is required")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("vocabulary.timeout_seconds must be >= 0")
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.PageSize < 0 {
		return fmt.Errorf("vocabulary.page_size must be >= 0")
	}
	if c.PageSize == 0 {
		c.PageSize = defaultPageSize
	}
	return nil
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
