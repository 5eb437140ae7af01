// Package driver runs the front-end pipeline: decode a serialized syntax
// tree, analyze scopes, and lower to block IR. It owns no policy beyond
// sequencing; each phase lives in its own package.
package driver

import (
	"context"
	"fmt"
	"io"

	"jsir/internal/ast"
	"jsir/internal/diag"
	"jsir/internal/diagfmt"
	"jsir/internal/hir"
	"jsir/internal/lower"
	"jsir/internal/sema"
	"jsir/internal/source"
	"jsir/internal/trace"
)

// Stage selects how far the pipeline runs.
type Stage uint8

const (
	// StageAnalyze stops after scope analysis.
	StageAnalyze Stage = iota + 1
	// StageLower additionally builds and finalizes the IR.
	StageLower
)

// ParseStage converts a string to a Stage.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "analyze", "sema":
		return StageAnalyze, nil
	case "lower", "all":
		return StageLower, nil
	default:
		return 0, fmt.Errorf("invalid stage: %q (expected: analyze|lower)", s)
	}
}

// Options configures a pipeline run.
type Options struct {
	Analyzer sema.Options
	Stage    Stage

	// Jobs bounds directory-level parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// Result is the outcome of processing one file. Unit is nil unless the run
// reached StageLower with no decode failure.
type Result struct {
	Path   string
	FileID source.FileID
	Tree   *ast.Tree
	Table  *sema.Table
	Unit   *hir.Unit
	Bag    *diag.Bag
}

// HasErrors reports whether any phase produced an error diagnostic.
func (r *Result) HasErrors() bool {
	return r.Bag.HasErrors()
}

// ProcessFile loads path into fs and runs the pipeline on it. I/O and decode
// failures surface as diagnostics in the result, not as returned errors;
// the error return covers misconfiguration only.
func ProcessFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	if opts.Stage == 0 {
		opts.Stage = StageLower
	}

	res := &Result{
		Path: path,
		Bag:  diag.NewBag(opts.Analyzer.MaxDiagnostics),
	}

	fileID, err := fs.Load(path)
	if err != nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFile, source.Span{},
			"failed to load file: "+err.Error()))
		return res, nil
	}
	res.FileID = fileID

	processLoaded(ctx, fs, res, opts)
	return res, nil
}

// ProcessSource runs the pipeline on content already registered in fs.
func ProcessSource(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *Result {
	if opts.Stage == 0 {
		opts.Stage = StageLower
	}

	f := fs.Get(fileID)
	res := &Result{
		FileID: fileID,
		Bag:    diag.NewBag(opts.Analyzer.MaxDiagnostics),
	}
	if f != nil {
		res.Path = f.Path
	}

	processLoaded(ctx, fs, res, opts)
	return res
}

func processLoaded(ctx context.Context, fs *source.FileSet, res *Result, opts Options) {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+res.Path, 0)
	defer fileSpan.End("")

	f := fs.Get(res.FileID)
	if f == nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFile, source.Span{}, "unknown file id"))
		return
	}

	decodeSpan := trace.Begin(tracer, trace.ScopePass, "decode", fileSpan.ID())
	tree, err := ast.DecodeJSON(res.FileID, f.Content, nil)
	decodeSpan.End("")
	if err != nil {
		res.Bag.Add(diag.NewError(diag.ASTDecode,
			source.Span{File: res.FileID},
			"failed to decode syntax tree: "+err.Error()))
		return
	}
	res.Tree = tree

	semaSpan := trace.Begin(tracer, trace.ScopePass, "analyze", fileSpan.ID())
	res.Table = sema.Analyze(tree, opts.Analyzer)
	semaSpan.End("")
	res.Bag.Merge(res.Table.Diags)

	// Analysis errors do not stop lowering: names that failed to resolve
	// lower as global loads, so a unit is still produced alongside the
	// diagnostics.
	if opts.Stage < StageLower {
		return
	}

	lowerSpan := trace.Begin(tracer, trace.ScopePass, "lower", fileSpan.ID())
	// Each unit gets its own id space; units never share blocks.
	env := hir.NewEnvironment()
	lowerBag := diag.NewBag(opts.Analyzer.MaxDiagnostics)
	res.Unit = lower.Module(tree, res.Table, env, lowerBag)
	lowerSpan.End("")
	res.Bag.Merge(lowerBag)
}

// DumpUnit renders the finalized IR of a result, or "" when lowering did not
// run.
func DumpUnit(res *Result) string {
	if res.Unit == nil || res.Tree == nil {
		return ""
	}
	return hir.DumpString(res.Unit, res.Tree.Strings)
}

// RenderDiagnostics pretty-prints a result's diagnostics.
func RenderDiagnostics(res *Result, fs *source.FileSet, w io.Writer, opts diagfmt.PrettyOpts) {
	res.Bag.Sort()
	diagfmt.Pretty(w, res.Bag, fs, opts)
}
