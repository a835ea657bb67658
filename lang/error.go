package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrMaxDepthExceeded = NewError("maximum expression depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrWrongKind        = NewError("wrong expression kind")

	// errBacktrack signals an internal parse failure. It never escapes
	// the package; the entry points convert it to a *SyntaxError built
	// from the furthest failure the parser recorded.
	errBacktrack = errors.New("backtrack")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error with a message.
func WrapError(err error, msg string) *Error {
	ee := &Error{}
	if errors.As(err, &ee) && msg == "" {
		return ee
	}

	return &Error{msg: msg, err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches errors sharing the same base message, so copies produced by
// With and Wrap still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError describes why a parse failed.
//
// Pos is the furthest position the parser reached across every
// backtracking alternative, and Expected lists the grammar constructs
// attempted there, sorted and deduplicated. One failed parse produces
// exactly one SyntaxError; there is no recovery or resynchronization.
type SyntaxError struct {
	Pos      Position
	Expected []string
	Source   string // The original source input
}

// Error implements the error interface.
//
// When Source is available the message includes the offending line with a
// caret marking the failure column.
func (e *SyntaxError) Error() string {
	if e.Source != "" {
		return e.formatWithContext()
	}

	return "syntax error at " + e.Pos.String() +
		": expected " + strings.Join(e.quotedExpected(), ", ")
}

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.Int("offset", e.Pos.Offset),
		slog.String("expected", strings.Join(e.Expected, ", ")),
	)
}

// formatWithContext formats the syntax error with source code context.
func (e *SyntaxError) formatWithContext() string {
	lines := strings.Split(e.Source, "\n")

	var buf strings.Builder

	// Write error location and description
	buf.WriteString("syntax error at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(":\n")

	// Show the offending line if within bounds
	if e.Pos.Line > 0 && e.Pos.Line <= len(lines) {
		line := lines[e.Pos.Line-1]

		// Print the line with line number
		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(e.Pos.Line))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteRune('\n')

		// Print marker pointing to the column
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := len(strconv.Itoa(e.Pos.Line)) + 5

		if e.Pos.Column > 0 {
			padding += e.Pos.Column - 1
		}

		buf.WriteString(strings.Repeat(" ", padding))
		buf.WriteString("^\n")
	}

	buf.WriteString("\texpected: ")
	buf.WriteString(strings.Join(e.quotedExpected(), ", "))

	return buf.String()
}

func (e *SyntaxError) quotedExpected() []string {
	exp := make([]string, 0, len(e.Expected))
	for _, s := range e.Expected {
		exp = append(exp, strconv.Quote(s))
	}

	slices.Sort(exp)

	return slices.Compact(exp)
}
