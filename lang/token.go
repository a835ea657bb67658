package lang

import "fmt"

// Position locates a byte in source text.
//
// Offset counts bytes from the start of input; Line and Column are 1-based
// and count lines and runes for human-facing diagnostics.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p precedes q in the source text.
func (p Position) Before(q Position) bool { return p.Offset < q.Offset }

// Span is a half-open byte range [Start, End) of source text.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// Contains reports whether the span covers pos.
//
// The end of the span is treated as inside, so a cursor sitting
// immediately after a node still selects it.
func (s Span) Contains(pos Position) bool {
	return s.Start.Offset <= pos.Offset && pos.Offset <= s.End.Offset
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
