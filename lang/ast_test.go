package lang_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/octm/lang"
)

func TestExpr_FloatWrongKind(t *testing.T) {
	t.Parallel()

	expr := parse(t, `"1.5"`).Stmts[0].Value

	if _, err := expr.Float(); !errors.Is(err, lang.ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
}

func TestExpr_ShapeNonMatrix(t *testing.T) {
	t.Parallel()

	expr := parse(t, "42").Stmts[0].Value

	if rows, cols := expr.Shape(); rows != 0 || cols != 0 {
		t.Errorf("Shape = %dx%d, want 0x0", rows, cols)
	}

	if !expr.Rectangular() {
		t.Error("non-matrix nodes are trivially rectangular")
	}
}

func TestExpr_String(t *testing.T) {
	t.Parallel()

	expr := parse(t, "f([1 2], 3:4)").Stmts[0].Value

	if got, want := expr.String(), "f([1, 2], 3:4)"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestStmt_String(t *testing.T) {
	t.Parallel()

	stmt := parse(t, "a=1;").Stmts[0]

	if got, want := stmt.String(), "a = 1;"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind lang.Kind
		want string
	}{
		{lang.KindNumber, "number"},
		{lang.KindString, "string"},
		{lang.KindIdentifier, "identifier"},
		{lang.KindChain, "chain"},
		{lang.KindCall, "call"},
		{lang.KindMatrix, "matrix"},
		{lang.KindRange, "range"},
		{lang.KindInvalid, "invalid"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestProgram_Print(t *testing.T) {
	t.Parallel()

	prog := parse(t, "a = [1, 2; 3, 4]")

	var sb strings.Builder

	prog.Print(&sb)

	out := sb.String()

	for _, want := range []string{"assign a", "matrix", "2x2", "row 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrelude(t *testing.T) {
	t.Parallel()

	builtin, ok := lang.LookupBuiltin("sin")
	if !ok {
		t.Fatal("sin should be a builtin")
	}

	if builtin.Params != 1 {
		t.Errorf("sin params = %d, want 1", builtin.Params)
	}

	if _, ok := lang.LookupBuiltin("nope"); ok {
		t.Error("nope should not be a builtin")
	}

	// Returned slice is a copy; mutating it must not affect the table.
	prelude := lang.Prelude()
	prelude[0].Name = "mutated"

	if _, ok := lang.LookupBuiltin("mutated"); ok {
		t.Error("Prelude must return a copy")
	}
}
