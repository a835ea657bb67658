package lang_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ardnew/octm/lang"
)

// TestFormat_FixedPoint verifies that formatting is idempotent under
// reparsing: Format(Parse(Format(Parse(src)))) == Format(Parse(src)).
func TestFormat_FixedPoint(t *testing.T) {
	t.Parallel()

	sources := []string{
		"x",
		"a = 1+2",
		"a=1;b=2",
		"[1 2;3 4]",
		"[1,2;3,4];",
		"f(g(1), [2 3])",
		"1:2:10",
		"v = sin(0:10) * 2",
		`s = 'it\'s a \u00e9'`,
		`m = [a "b"; -1.5e3 2]`,
		"007",
		"[1;]",
		"[]",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			once := lang.Format(parse(t, src))
			twice := lang.Format(parse(t, once))

			if once != twice {
				t.Errorf("not a fixed point:\n first: %q\nsecond: %q", once, twice)
			}
		})
	}
}

func TestFormat_Canonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "operator spacing",
			input: "1+2 *3",
			want:  "1 + 2 * 3\n",
		},
		{
			name:  "row separators",
			input: "[1 2;3,4]",
			want:  "[1, 2; 3, 4]\n",
		},
		{
			name:  "range stays unspaced",
			input: "1 : 2 : 10",
			want:  "1:2:10\n",
		},
		{
			name:  "single quotes become double",
			input: `'hi'`,
			want:  "\"hi\"\n",
		},
		{
			name:  "escapes re-encoded",
			input: `"a\nb\tc"`,
			want:  `"a\nb\tc"` + "\n",
		},
		{
			name:  "call argument spacing",
			input: "f(1,2)",
			want:  "f(1, 2)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := lang.Format(parse(t, tt.input)); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_Writer(t *testing.T) {
	t.Parallel()

	prog := parse(t, "a = 1")

	var sb strings.Builder
	if err := prog.Format(context.Background(), &sb); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if sb.String() != "a = 1\n" {
		t.Errorf("got %q, want %q", sb.String(), "a = 1\n")
	}
}

func TestFormatJSON(t *testing.T) {
	t.Parallel()

	prog := parse(t, "a = [1, 2]")

	var sb strings.Builder
	if err := prog.FormatJSON(context.Background(), &sb, 2); err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded struct {
		Stmts []struct {
			Target string `json:"target"`
			Value  struct {
				Kind string `json:"kind"`
			} `json:"value"`
		} `json:"stmts"`
	}

	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if len(decoded.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(decoded.Stmts))
	}

	if decoded.Stmts[0].Target != "a" {
		t.Errorf("target = %q, want %q", decoded.Stmts[0].Target, "a")
	}

	// Kinds serialize as names, not integers.
	if decoded.Stmts[0].Value.Kind != "matrix" {
		t.Errorf("kind = %q, want %q", decoded.Stmts[0].Value.Kind, "matrix")
	}
}

func TestFormatYAML(t *testing.T) {
	t.Parallel()

	prog := parse(t, "a = 1")

	var sb strings.Builder
	if err := prog.FormatYAML(context.Background(), &sb, 2); err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	out := sb.String()

	for _, want := range []string{"stmts:", "target: a", "kind: number"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
