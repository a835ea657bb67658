package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format renders the program in canonical source syntax: one statement
// per line, commas between row elements, spaces around chain operators,
// strings re-encoded with double quotes. The rendering is a fixed point:
// parsing it and formatting again reproduces it byte for byte.
func Format(p *Program) string {
	var sb strings.Builder

	for _, stmt := range p.Stmts {
		writeStmt(&sb, stmt)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Format writes the program in canonical source syntax to the writer.
func (p *Program) Format(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, Format(p))

	return err
}

// FormatJSON writes the syntax tree as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the syntax tree as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func writeStmt(sb *strings.Builder, s *Stmt) {
	if s.Assignment() {
		sb.WriteString(s.Target)
		sb.WriteString(" = ")
	}

	writeExpr(sb, s.Value)

	if s.Suppressed {
		sb.WriteByte(';')
	}
}

func writeExpr(sb *strings.Builder, e *Expr) {
	switch e.Kind {
	case KindNumber, KindIdentifier:
		sb.WriteString(e.Text)

	case KindString:
		writeString(sb, e.Text)

	case KindChain:
		writeExpr(sb, e.First)

		for _, op := range e.Ops {
			sb.WriteByte(' ')
			sb.WriteString(op.Op.String())
			sb.WriteByte(' ')
			writeExpr(sb, op.Operand)
		}

	case KindRange:
		for i, part := range e.Parts {
			if i > 0 {
				sb.WriteByte(':')
			}

			writeExpr(sb, part)
		}

	case KindCall:
		sb.WriteString(e.Text)
		sb.WriteByte('(')

		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeExpr(sb, arg)
		}

		sb.WriteByte(')')

	case KindMatrix:
		sb.WriteByte('[')

		for i, row := range e.Rows {
			if i > 0 {
				sb.WriteString("; ")
			}

			for j, lit := range row {
				if j > 0 {
					sb.WriteString(", ")
				}

				writeExpr(sb, lit)
			}
		}

		sb.WriteByte(']')

	case KindInvalid:
		sb.WriteString("<invalid>")
	}
}

// writeString re-encodes a decoded string value as a double-quoted
// literal, escaping what the grammar cannot carry verbatim.
func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')
}
