package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"jsir/internal/diag"
	"jsir/internal/source"
	"jsir/internal/trace"
)

// ListSourceFiles returns all *.json files under dir, sorted for
// deterministic processing order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ProcessDir runs the pipeline over every source file under dir in parallel.
// Files are preloaded serially so the FileSet never sees concurrent writes;
// analysis itself shares nothing between files.
func ProcessDir(ctx context.Context, fileSet *source.FileSet, dir string, opts Options) ([]*Result, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.ScopeDriver, "dir:"+dir, 0)
	defer dirSpan.End("")

	type loaded struct {
		id  source.FileID
		err error
	}
	preloaded := make([]loaded, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		preloaded[i] = loaded{id: id, err: err}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns a distinct index, so no mutex is needed.
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if pre := preloaded[i]; pre.err != nil {
				bag := diag.NewBag(opts.Analyzer.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFile, source.Span{},
					"failed to load file: "+pre.err.Error()))
				results[i] = &Result{Path: path, Bag: bag}
				return nil
			}

			results[i] = ProcessSource(gctx, fileSet, preloaded[i].id, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
