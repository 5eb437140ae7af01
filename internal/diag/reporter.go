package diag

import "jsir/internal/source"

// Reporter is the minimal contract for receiving diagnostics from a pass.
// Implementations: BagReporter (stores into a Bag), NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores every reported diagnostic into the wrapped Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Error reports a SevError diagnostic through r, tolerating a nil reporter.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(NewError(code, primary, msg))
}

// ErrorWithNote is Error with one secondary note attached.
func ErrorWithNote(r Reporter, code Code, primary source.Span, msg string, noteSpan source.Span, note string) {
	if r == nil {
		return
	}
	r.Report(NewError(code, primary, msg).WithNote(noteSpan, note))
}
