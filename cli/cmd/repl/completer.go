package repl

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/octm/lang"
)

var ctrlCommands = []string{"help", "list", "tree", "clear", "quit"}

// isWordBoundary reports whether r separates identifiers in a statement.
// Every operator, bracket, and separator the grammar knows is a boundary.
func isWordBoundary(r byte) bool {
	switch r {
	case ' ', '\t',
		'+', '-', '*', '/', '^', '.', ':', ';', ',', '=',
		'(', ')', '[', ']',
		'"', '\'':
		return true
	}

	return false
}

// wordBounds returns the start and end byte offsets of the word
// surrounding the cursor.
func wordBounds(input string, cursor int) (start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor
	for start > 0 && !isWordBoundary(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && !isWordBoundary(input[end]) {
		end++
	}

	return start, end
}

// computeMatches returns fuzzy completion candidates for the word under
// the cursor, along with that word's boundaries. Candidates come from
// session bindings and builtin function names in parse mode, and from
// the command table in control mode.
func (m model) computeMatches() (fuzzy.Matches, int, int) {
	input := m.input.Value()
	cursor := m.input.Position()

	start, end := wordBounds(input, cursor)
	word := input[start:end]

	if word == "" {
		return nil, start, end
	}

	var candidates []string

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		candidates = append(candidates, m.bindings...)
		for _, builtin := range lang.Prelude() {
			candidates = append(candidates, builtin.Name)
		}
	}

	matches := fuzzy.Find(word, candidates)

	sort.Stable(matches)

	return matches, start, end
}

const maxCandidateWidth = 24

// renderCandidateBar renders the completion candidates on one line,
// highlighting the selected one while tab-cycling.
func renderCandidateBar(
	matches fuzzy.Matches, selected int, tabActive bool, width int,
) string {
	var b strings.Builder

	for i, match := range matches {
		if b.Len() > 0 {
			b.WriteString("  ")
		}

		rendered := renderCandidate(match, tabActive && i == selected)
		if b.Len()+len(match.Str) > width {
			b.WriteString(hintStyle.Render("…"))

			break
		}

		b.WriteString(rendered)
	}

	return b.String()
}

func renderCandidate(match fuzzy.Match, selected bool) string {
	name := match.Str
	if len(name) > maxCandidateWidth {
		name = name[:maxCandidateWidth-1] + "…"
	}

	if _, ok := lang.LookupBuiltin(match.Str); ok {
		name += "()"
	}

	if selected {
		return selectedStyle.Render(name)
	}

	return suggestionStyle.Render(name)
}
