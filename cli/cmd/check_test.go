package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func stringSource(name, content string) Source {
	return Source{Name: name, ReadCloser: io.NopCloser(strings.NewReader(content))}
}

func TestCheck_ValidSource(t *testing.T) {
	var out bytes.Buffer

	check := &Check{MaxDepth: 100}

	err := check.checkOne(
		context.Background(),
		&out,
		stringSource("ok.m", "a = [1 2; 3 4];"),
	)
	if err != nil {
		t.Fatalf("checkOne error: %v", err)
	}

	if out.Len() > 0 {
		t.Errorf("valid source produced output: %s", out.String())
	}
}

func TestCheck_SyntaxError(t *testing.T) {
	var out bytes.Buffer

	check := &Check{MaxDepth: 100}

	err := check.checkOne(
		context.Background(),
		&out,
		stringSource("bad.m", "a = [1,2"),
	)
	if err == nil {
		t.Fatal("expected error")
	}

	output := out.String()

	if !strings.HasPrefix(output, "bad.m: ") {
		t.Errorf("diagnostic missing source name: %s", output)
	}

	for _, want := range []string{"syntax error", "line 1, column 9", "^"} {
		if !strings.Contains(output, want) {
			t.Errorf("diagnostic missing %q: %s", want, output)
		}
	}
}

func TestCheck_Bindings(t *testing.T) {
	var out bytes.Buffer

	check := &Check{MaxDepth: 100, Bindings: true}

	err := check.checkOne(
		context.Background(),
		&out,
		stringSource("vars.m", "a = 1\nb = 2\na = 3"),
	)
	if err != nil {
		t.Fatalf("checkOne error: %v", err)
	}

	if got, want := out.String(), "vars.m: a b\n"; got != want {
		t.Errorf("bindings output = %q, want %q", got, want)
	}
}

func TestCheck_MaxDepth(t *testing.T) {
	var out bytes.Buffer

	check := &Check{MaxDepth: 2}

	err := check.checkOne(
		context.Background(),
		&out,
		stringSource("deep.m", "f(g(h(1)))"),
	)
	if err == nil {
		t.Fatal("expected depth error")
	}

	if !strings.Contains(out.String(), "depth") {
		t.Errorf("diagnostic missing depth message: %s", out.String())
	}
}

func TestCheck_RunReportsFailureCount(t *testing.T) {
	dir := t.TempDir()

	good := writeScript(t, dir, "good.m", "a = 1")
	bad := writeScript(t, dir, "bad.m", "[1,2")

	check := &Check{MaxDepth: 100, Source: []string{good, bad}}

	err := check.Run(context.Background())
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}

	check2 := &Check{MaxDepth: 100, Source: []string{good}}
	if err := check2.Run(context.Background()); err != nil {
		t.Fatalf("valid source failed: %v", err)
	}
}
