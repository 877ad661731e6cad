package scene

import "testing"

func TestSessionResetFor(t *testing.T) {
	s := NewSession("home")
	s.Scene = "dictionary"
	s.Step = 2
	s.Flow["language"] = "russian"
	s.SetCursor("moderation", 3)

	s.ResetFor("home")

	if s.Scene != "home" {
		t.Fatalf("scene = %q, want home", s.Scene)
	}
	if s.Step != NoStep {
		t.Fatalf("step = %d, want NoStep", s.Step)
	}
	if len(s.Flow) != 0 {
		t.Fatalf("flow not cleared: %v", s.Flow)
	}
	if got := s.Cursor("moderation"); got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}
}

func TestSessionCursorPerKind(t *testing.T) {
	s := NewSession("home")
	if got := s.Cursor("moderation"); got != 1 {
		t.Fatalf("fresh cursor = %d, want 1", got)
	}

	s.SetCursor("moderation", 4)
	s.SetCursor("translation", 2)

	if got := s.Cursor("moderation"); got != 4 {
		t.Fatalf("moderation cursor = %d, want 4", got)
	}
	if got := s.Cursor("translation"); got != 2 {
		t.Fatalf("translation cursor = %d, want 2", got)
	}

	s.SetCursor("moderation", 0)
	if got := s.Cursor("moderation"); got != 1 {
		t.Fatalf("clamped cursor = %d, want 1", got)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("home")

	sess, err := store.Get(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Scene != "home" || sess.Step != NoStep {
		t.Fatalf("fresh session = %+v", sess)
	}

	sess.Scene = "dictionary"
	sess.Step = 1
	if err := store.Put(42, sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Scene != "dictionary" || got.Step != 1 {
		t.Fatalf("stored session = %+v", got)
	}

	other, err := store.Get(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if other.Scene != "home" {
		t.Fatalf("other user session = %+v, want fresh", other)
	}
}
