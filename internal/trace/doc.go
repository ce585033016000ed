// Package trace records what the whisk toolchain is doing.
//
// Events are grouped by scope: driver (one command or compilation unit),
// pass (lex, parse, resolve, fold, codegen, run), func (one function being
// generated or called) and instr (one VM instruction). The level picks how
// deep the output goes:
//
//	off     nothing
//	error   phase events kept in the ring and dumped on failure
//	phase   driver and pass spans
//	detail  plus per-function spans
//	debug   plus VM instructions
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
