package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func closeAll(t *testing.T, srcs []Source) {
	t.Helper()

	for _, src := range srcs {
		if err := src.Close(); err != nil {
			t.Errorf("close %s: %v", src.Name, err)
		}
	}
}

func TestOpenSources_PreservesOrder(t *testing.T) {
	dir := t.TempDir()

	a := writeScript(t, dir, "a.m", "a = 1")
	b := writeScript(t, dir, "b.m", "b = 2")

	srcs, err := openSources([]string{b, a})
	if err != nil {
		t.Fatalf("openSources error: %v", err)
	}
	defer closeAll(t, srcs)

	if len(srcs) != 2 {
		t.Fatalf("got %d sources, want 2", len(srcs))
	}

	if srcs[0].Name != b || srcs[1].Name != a {
		t.Errorf("order = %q, %q; want %q, %q",
			srcs[0].Name, srcs[1].Name, b, a)
	}
}

func TestOpenSources_DeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()

	a := writeScript(t, dir, "a.m", "a = 1")

	srcs, err := openSources([]string{a, a})
	if err != nil {
		t.Fatalf("openSources error: %v", err)
	}
	defer closeAll(t, srcs)

	if len(srcs) != 1 {
		t.Fatalf("got %d sources, want 1", len(srcs))
	}
}

func TestOpenSources_DeduplicatesSymlinks(t *testing.T) {
	dir := t.TempDir()

	target := writeScript(t, dir, "target.m", "a = 1")
	link := filepath.Join(dir, "link.m")

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	srcs, err := openSources([]string{target, link})
	if err != nil {
		t.Fatalf("openSources error: %v", err)
	}
	defer closeAll(t, srcs)

	if len(srcs) != 1 {
		t.Fatalf("got %d sources, want 1", len(srcs))
	}

	// The path is reported as given, not resolved.
	if srcs[0].Name != target {
		t.Errorf("name = %q, want %q", srcs[0].Name, target)
	}
}

func TestOpenSources_MissingFile(t *testing.T) {
	_, err := openSources([]string{filepath.Join(t.TempDir(), "absent.m")})
	if !errors.Is(err, ErrOpenSource) {
		t.Fatalf("expected ErrOpenSource, got %v", err)
	}
}

func TestOpenSources_StdinCollapsesToOneLast(t *testing.T) {
	dir := t.TempDir()

	a := writeScript(t, dir, "a.m", "a = 1")

	srcs, err := openSources([]string{"-", a, "-"})
	if err != nil {
		t.Fatalf("openSources error: %v", err)
	}

	defer func() {
		// Close only the regular files; stdin stays open.
		for _, src := range srcs {
			if src.Name != stdinSource {
				_ = src.Close()
			}
		}
	}()

	if len(srcs) != 2 {
		t.Fatalf("got %d sources, want 2", len(srcs))
	}

	if srcs[0].Name != a || srcs[1].Name != stdinSource {
		t.Errorf("order = %q, %q; want file then stdin",
			srcs[0].Name, srcs[1].Name)
	}
}

func TestOpenSources_ContentsReadable(t *testing.T) {
	dir := t.TempDir()

	path := writeScript(t, dir, "a.m", "a = [1 2; 3 4]")

	srcs, err := openSources([]string{path})
	if err != nil {
		t.Fatalf("openSources error: %v", err)
	}
	defer closeAll(t, srcs)

	data, err := io.ReadAll(srcs[0])
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if string(data) != "a = [1 2; 3 4]" {
		t.Errorf("contents = %q", data)
	}
}
