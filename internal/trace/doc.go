// Package trace records spans of the formatter at work: the driver run,
// each file, and each rewrite pass inside a file.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	raccfmt format --trace=- --trace-level=pass grammar.y
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Failures only
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "indent", parentID)
//	defer span.End("")
package trace
