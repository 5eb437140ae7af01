// Package diag defines the diagnostic model shared by the analysis passes.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// short message, the primary source.Span, and optional secondary Notes.
//
// Producers emit through a Reporter so that emission stays decoupled from
// storage; BagReporter aggregates into a Bag, which preserves emission order
// and supports sorting and deduplication for rendering. Accumulating a
// diagnostic never aborts a pass: the analyzer records the problem and keeps
// walking (error recovery, not rejection).
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
