// Package profile provides optional runtime profiling for the octm
// application.
//
// Profiling integrates [github.com/pkg/profile] and is compiled in only
// with the "pprof" build tag. Without the tag every operation is a
// no-op with zero overhead, and the command-line flags that configure
// profiling are absent.
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace. Use [Modes] to retrieve
// the list programmatically.
//
//	p := profile.Config(func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", false
//	})
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, mem.pprof). Analyze them with
// go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
