package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

// testContext returns a context carrying a kong invocation whose stdout
// is the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	parser, err := kong.New(&struct{}{})
	if err != nil {
		t.Fatalf("kong.New error: %v", err)
	}

	parser.Stdout = &buf

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatalf("kong parse error: %v", err)
	}

	return WithContext(context.Background(), ktx), &buf
}

func TestFmt_Native(t *testing.T) {
	ctx, out := testContext(t)

	path := writeScript(t, t.TempDir(), "in.m", "a=[1 2;3,4];b  =a*2")

	native := &Native{Source: path}
	if err := native.Run(ctx); err != nil {
		t.Fatalf("run error: %v", err)
	}

	want := "a = [1, 2; 3, 4];\nb = a * 2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestFmt_JSON(t *testing.T) {
	ctx, out := testContext(t)

	path := writeScript(t, t.TempDir(), "in.m", "a = 1")

	cmd := &JSON{Indent: 2, Source: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("run error: %v", err)
	}

	for _, want := range []string{`"target": "a"`, `"kind": "number"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestFmt_YAML(t *testing.T) {
	ctx, out := testContext(t)

	path := writeScript(t, t.TempDir(), "in.m", "a = 1")

	cmd := &YAML{Indent: 2, Source: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("run error: %v", err)
	}

	for _, want := range []string{"target: a", "kind: number"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestFmt_AST(t *testing.T) {
	ctx, out := testContext(t)

	path := writeScript(t, t.TempDir(), "in.m", "a = f(1)")

	cmd := &AST{Source: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("run error: %v", err)
	}

	for _, want := range []string{"assign a", "call", "f/1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestFmt_MissingFile(t *testing.T) {
	ctx, _ := testContext(t)

	native := &Native{Source: "/nonexistent/path.m"}

	err := native.Run(ctx)
	if !errors.Is(err, ErrOpenSource) {
		t.Fatalf("expected ErrOpenSource, got %v", err)
	}
}
