// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The zero value Logger discards everything, so library code can carry a
// Logger field unconditionally and log without nil checks.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parse complete", slog.Int("statements", n))
//
// # Configuration
//
// Configure the logger at creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's debug and is
// reserved for parser cursor diagnostics.
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The
// context-unaware variants call [DefaultContextProvider] for a context.
package log
