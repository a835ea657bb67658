package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the output writer of the invoking kong context, or
// os.Stdout outside a CLI invocation.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source is one named input to parse. Close is a no-op for stdin.
type Source struct {
	Name string
	io.ReadCloser
}

// openSources opens the given paths for reading, preserving order.
//
// Duplicates are dropped by resolving symlinks and comparing device and
// inode pairs, so the same file named twice (or once directly and once
// through a symlink) is parsed once. All occurrences of "-" collapse to
// a single stdin source placed last.
func openSources(paths []string) ([]Source, error) {
	seen := make(map[fileKey]struct{}, len(paths))
	srcs := make([]Source, 0, len(paths))

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	useStdin := false

	for _, path := range paths {
		if path == stdinSource {
			if _, dup := seen[stdinKey]; !dup {
				seen[stdinKey] = struct{}{}
				useStdin = true
			}

			continue
		}

		src, ok, err := openUniqueFile(path, seen)
		if err != nil {
			for _, s := range srcs {
				_ = s.Close()
			}

			return nil, ErrOpenSource.Wrap(err)
		}

		if ok {
			srcs = append(srcs, src)
		}
	}

	// Stdin reads once, after all regular files, whether named "-" or as
	// a device file.
	if useStdin {
		srcs = append(srcs, Source{
			Name:       stdinSource,
			ReadCloser: io.NopCloser(os.Stdin),
		})
	}

	return srcs, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// A duplicate returns ok=false with no error.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (Source, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, false, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Source{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return Source{}, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, dup := seen[key]; dup {
			return Source{}, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Source{}, false, err
	}

	// Report the path as given, not the resolved target.
	return Source{Name: path, ReadCloser: file}, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not a *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}
