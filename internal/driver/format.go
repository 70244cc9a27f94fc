package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"raccfmt/internal/config"
	"raccfmt/internal/diag"
	"raccfmt/internal/format"
	"raccfmt/internal/observ"
	"raccfmt/internal/source"
	"raccfmt/internal/trace"
)

// Mode selects what happens with a formatted file.
type Mode uint8

const (
	// ModeStdout returns formatted content without touching files.
	ModeStdout Mode = iota
	// ModeWrite rewrites files that change.
	ModeWrite
	// ModeCheck only reports which files would change.
	ModeCheck
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	default:
		return "stdout"
	}
}

// FormatOptions configures a multi-file run.
type FormatOptions struct {
	Config   config.Config
	Mode     Mode
	Jobs     int            // <= 0 uses GOMAXPROCS
	Cache    *DiskCache     // nil disables caching
	Progress ProgressSink   // nil disables progress events
	Timings  *observ.Totals // nil disables timing collection
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte // set in ModeStdout
	Timings   observ.Report
}

// FormatPaths formats provided files or directories (recursively collecting
// grammar files). Per-file failures are reported in the results; the
// returned error covers collection failures and cancellation only.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, diag.NewIO(diag.IONoSourceFiles, strings.Join(paths, ", "), nil)
	}
	return FormatFiles(ctx, files, opts)
}

// FormatFiles formats files in parallel. Results are in input order.
func FormatFiles(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "format")
	span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("mode", opts.Mode.String())
	defer span.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	r := runner{
		opts:      opts,
		formatter: format.New(opts.Config),
		fileSet:   source.NewFileSet(),
		configKey: opts.Config.Fingerprint(),
	}
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.formatFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FormatBytes formats in-memory content (stdin) named name.
func FormatBytes(ctx context.Context, name string, content []byte, cfg config.Config) ([]byte, error) {
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.AddVirtual(name, content))
	out, err := format.New(cfg).Format(ctx, sf.Content)
	if err != nil {
		return nil, withPath(err, name)
	}
	return sf.Restore(out), nil
}

type runner struct {
	opts      FormatOptions
	formatter *format.Formatter
	fileSet   *source.FileSet
	configKey [32]byte
}

func (r *runner) formatFile(ctx context.Context, path string) (result FormatResult) {
	start := time.Now()
	result.Path = path
	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	defer func() {
		status, stage := StatusDone, StageFormat
		switch {
		case result.Err != nil:
			status = StatusError
			span.Fail(result.Err)
		case result.Cached:
			status = StatusCached
		case result.Changed && r.opts.Mode == ModeWrite:
			stage = StageWrite
		}
		span.WithExtra("changed", strconv.FormatBool(result.Changed)).End(string(status))
		emit(r.opts.Progress, Event{
			File:    path,
			Stage:   stage,
			Status:  status,
			Changed: result.Changed,
			Err:     result.Err,
			Elapsed: time.Since(start),
		})
	}()

	emit(r.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	id, err := r.fileSet.Load(path)
	if err != nil {
		result.Err = diag.NewIO(diag.IOLoadFileError, path, err)
		return result
	}
	sf := r.fileSet.Get(id)

	key := NewCacheKey(sf.Hash, r.configKey)
	if r.opts.Mode != ModeStdout && r.opts.Cache.Has(key) {
		result.Cached = true
		return result
	}

	emit(r.opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	tm := observ.NewTimer()
	formatted, err := r.formatter.FormatTimed(ctx, sf.Content, tm)
	result.Timings = tm.Report()
	r.opts.Timings.Add(result.Timings)
	if err != nil {
		result.Err = withPath(err, path)
		return result
	}
	result.Changed = !bytes.Equal(sf.Content, formatted)

	switch r.opts.Mode {
	case ModeStdout:
		result.Formatted = sf.Restore(formatted)
		return result
	case ModeCheck:
		if !result.Changed {
			r.remember(ctx, key, sf)
		}
		return result
	}

	if result.Changed {
		emit(r.opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeFile(path, sf.Restore(formatted)); err != nil {
			result.Err = diag.NewIO(diag.IOWriteFileError, path, err)
			return result
		}
		id = r.fileSet.Add(path, formatted, sf.Flags)
		sf = r.fileSet.Get(id)
		key = NewCacheKey(sf.Hash, r.configKey)
	}
	r.remember(ctx, key, sf)
	return result
}

// remember records sf as formatted; cache write failures only cost a
// future cache miss.
func (r *runner) remember(ctx context.Context, key CacheKey, sf *source.File) {
	if r.opts.Cache == nil {
		return
	}
	err := r.opts.Cache.Put(key, &CacheEntry{Path: sf.Path, ContentHash: sf.Hash, Config: r.configKey})
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeError, "cache", err.Error(), trace.CurrentSpan(ctx).SpanID)
	}
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}

func withPath(err error, path string) error {
	var de *diag.Error
	if errors.As(err, &de) {
		return de.WithPath(path)
	}
	return err
}
