// Package trace records the phases of an analysis run.
//
// A run opens a driver span, one pass span per stage (load, parse, bind,
// analyze) and, at higher levels, one span per compilation unit and per rule:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "bind", 0)
//	defer span.End("")
//
// Stream tracers write events as they happen (text or NDJSON). Ring tracers
// keep the last N events in memory so a failed run can dump them.
package trace
