package keyboard

import "testing"

func TestChunk(t *testing.T) {
	buttons := make([]Btn, 7)
	rows := Chunk(buttons, 5)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if len(rows[0]) != 5 || len(rows[1]) != 2 {
		t.Fatalf("row sizes = %d,%d, want 5,2", len(rows[0]), len(rows[1]))
	}
}

func TestChunkOnePerRow(t *testing.T) {
	rows := Chunk(make([]Btn, 3), 1)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
}

func TestInlineShapes(t *testing.T) {
	rm := Inline(
		[]Btn{{Text: "a", Unique: "act_a"}, {Text: "b", Unique: "act_b"}},
		[]Btn{{Text: "link", URL: "https://example.com"}},
	)
	if len(rm.InlineKeyboard) != 2 {
		t.Fatalf("keyboard rows = %d, want 2", len(rm.InlineKeyboard))
	}
	if len(rm.InlineKeyboard[0]) != 2 {
		t.Fatalf("first row = %d buttons, want 2", len(rm.InlineKeyboard[0]))
	}
	if rm.InlineKeyboard[1][0].URL != "https://example.com" {
		t.Fatalf("url button not preserved: %+v", rm.InlineKeyboard[1][0])
	}
	empty := Empty()
	if empty.InlineKeyboard == nil {
		t.Fatal("Empty() must carry a non-nil keyboard")
	}
}
