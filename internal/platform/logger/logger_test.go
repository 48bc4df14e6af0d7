package logger

import "testing"

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"prod", "production", "dev", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		if log == nil {
			t.Fatalf("New(%q) returned nil logger", mode)
		}
	}
}

func TestWith_ChildCarriesContext(t *testing.T) {
	child := NewNop().With("run", "abc", "phaseCount", 2)
	if child == nil {
		t.Fatalf("With returned nil")
	}
	// The child must remain usable through the full leveled surface.
	child.Debug("debug", "k", "v")
	child.Info("info")
	child.Warn("warn")
	child.Error("error")
}
