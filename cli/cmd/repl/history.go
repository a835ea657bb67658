package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// Entry is a single history line together with the mode it was entered in.
type Entry struct {
	Line string
	Mode inputMode
}

// History persists REPL input across sessions. Each line in the backing
// file carries a mode prefix so parse statements and control commands
// restore into the mode they were typed in.
type History struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

const (
	parseTag = "P:"
	ctrlTag  = "C:"
)

func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads the history file, replacing any in-memory entries. A
// missing file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return ErrLoadHistory.Wrap(err)
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, ctrlTag):
			h.entries = append(h.entries, Entry{
				Line: line[len(ctrlTag):], Mode: modeCtrl,
			})

		case strings.HasPrefix(line, parseTag):
			line = line[len(parseTag):]
			fallthrough

		default:
			// Untagged lines predate mode tagging.
			if line != "" {
				h.entries = append(h.entries, Entry{Line: line, Mode: modeParse})
			}
		}
	}

	return scanner.Err()
}

// WriteWithMode appends a line to the history, skipping consecutive
// duplicates, and persists it. It returns the new entry count.
func (h *History) WriteWithMode(line string, mode inputMode) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return h.Len(), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 {
		last := h.entries[n-1]
		if last.Line == line && last.Mode == mode {
			return n, nil
		}
	}

	h.entries = append(h.entries, Entry{Line: line, Mode: mode})

	tag := parseTag
	if mode == modeCtrl {
		tag = ctrlTag
	}

	file, err := os.OpenFile(
		h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600,
	)
	if err != nil {
		return len(h.entries), ErrWriteHistory.Wrap(err)
	}
	defer file.Close()

	if _, err := file.WriteString(tag + line + "\n"); err != nil {
		return len(h.entries), ErrWriteHistory.Wrap(err)
	}

	return len(h.entries), nil
}

// GetEntry returns the entry at the given index.
func (h *History) GetEntry(idx int) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if idx < 0 || idx >= len(h.entries) {
		return Entry{}, ErrOutOfBounds
	}

	return h.entries[idx], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}
