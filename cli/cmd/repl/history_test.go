package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(path)

	if _, err := h.WriteWithMode("a = 1", modeParse); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if _, err := h.WriteWithMode("list", modeCtrl); err != nil {
		t.Fatalf("write error: %v", err)
	}

	// A fresh instance restores entries with their modes.
	h2 := NewHistory(path)
	if err := h2.Load(); err != nil {
		t.Fatalf("load error: %v", err)
	}

	if h2.Len() != 2 {
		t.Fatalf("got %d entries, want 2", h2.Len())
	}

	first, err := h2.GetEntry(0)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if first.Line != "a = 1" || first.Mode != modeParse {
		t.Errorf("entry 0 = %+v, want parse-mode a = 1", first)
	}

	second, err := h2.GetEntry(1)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if second.Line != "list" || second.Mode != modeCtrl {
		t.Errorf("entry 1 = %+v, want ctrl-mode list", second)
	}
}

func TestHistory_SkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	for range 3 {
		if _, err := h.WriteWithMode("a = 1", modeParse); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	if h.Len() != 1 {
		t.Errorf("got %d entries, want 1", h.Len())
	}

	// The same line in the other mode is a distinct entry.
	if _, err := h.WriteWithMode("a = 1", modeCtrl); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if h.Len() != 2 {
		t.Errorf("got %d entries, want 2", h.Len())
	}
}

func TestHistory_SkipsBlankLines(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	if _, err := h.WriteWithMode("   ", modeParse); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("got %d entries, want 0", h.Len())
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "nope"))

	if err := h.Load(); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("got %d entries, want 0", h.Len())
	}
}

func TestHistory_LoadUntaggedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	// Files written before mode tagging carry bare lines.
	if err := os.WriteFile(path, []byte("a = 1\nC:quit\n"), 0o600); err != nil {
		t.Fatalf("write error: %v", err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("load error: %v", err)
	}

	first, err := h.GetEntry(0)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if first.Mode != modeParse {
		t.Errorf("untagged line mode = %v, want parse", first.Mode)
	}

	second, err := h.GetEntry(1)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if second.Mode != modeCtrl || second.Line != "quit" {
		t.Errorf("entry 1 = %+v, want ctrl-mode quit", second)
	}
}

func TestHistory_GetEntryOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	if _, err := h.GetEntry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}

	if _, err := h.GetEntry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}
