package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		cb      *tele.Callback
		key     string
		payload string
	}{
		{"nil", nil, "", ""},
		{"unique_set", &tele.Callback{Unique: "select_word", Data: "3"}, "select_word", "3"},
		{"encoded", &tele.Callback{Data: "\fselect_word|3"}, "select_word", "3"},
		{"encoded_no_payload", &tele.Callback{Data: "\fhome"}, "home", ""},
		{"plain", &tele.Callback{Data: "select_russian"}, "select_russian", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, payload := Parse(tt.cb)
			if key != tt.key || payload != tt.payload {
				t.Fatalf("Parse() = (%q, %q), want (%q, %q)", key, payload, tt.key, tt.payload)
			}
		})
	}
}
