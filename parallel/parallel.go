// Package parallel runs a function over many independent trials on a bounded
// pool of goroutines. Map keeps results in input order; Apply returns them as
// they complete. A failing trial cancels the rest and no partial results are
// returned.
package parallel

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type Options struct {
	// MaxWorkers bounds the number of trials running at once. Zero or less
	// means runtime.NumCPU().
	MaxWorkers int
	// Parallel turns the pool off when false, running trials one by one in
	// the calling goroutine.
	Parallel bool
	Logger   *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxWorkers: runtime.NumCPU(),
		Parallel:   true,
	}
}

func (opts Options) workers() int {
	if opts.MaxWorkers <= 0 {
		return runtime.NumCPU()
	}
	return opts.MaxWorkers
}

func (opts Options) logger() *slog.Logger {
	if opts.Logger == nil {
		return slog.Default()
	}
	return opts.Logger
}

// Map applies fn to every element of args and returns the results in the
// order of args.
func Map[T, R any](ctx context.Context, fn func(context.Context, T) (R, error), args []T, opts Options) ([]R, error) {
	if !opts.Parallel {
		opts.logger().Warn("parallel map running serially, turn on parallel for faster processing")
		return serial(ctx, fn, args, opts)
	}
	results := make([]R, len(args))
	progress := newProgress(opts.logger(), "map", len(args))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := fn(gCtx, arg)
			if err != nil {
				return err
			}
			results[i] = result
			progress.done()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Apply applies fn to every element of args and returns the results in the
// order the trials complete.
func Apply[T, R any](ctx context.Context, fn func(context.Context, T) (R, error), args []T, opts Options) ([]R, error) {
	if !opts.Parallel {
		opts.logger().Warn("parallel apply running serially, turn on parallel for faster processing")
		return serial(ctx, fn, args, opts)
	}
	completed := make(chan R, len(args))
	progress := newProgress(opts.logger(), "apply", len(args))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for _, arg := range args {
		arg := arg
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := fn(gCtx, arg)
			if err != nil {
				return err
			}
			completed <- result
			progress.done()
			return nil
		})
	}
	err := g.Wait()
	close(completed)
	if err != nil {
		return nil, err
	}
	results := make([]R, 0, len(args))
	for result := range completed {
		results = append(results, result)
	}
	return results, nil
}

// Trials runs fn for trial numbers 0..n-1 with Map and returns the per-trial
// value vectors, ready to be summarised as repeats.
func Trials(ctx context.Context, n int, fn func(ctx context.Context, trial int) ([]float64, error), opts Options) ([][]float64, error) {
	trials := make([]int, n)
	for i := range trials {
		trials[i] = i
	}
	return Map(ctx, fn, trials, opts)
}

func serial[T, R any](ctx context.Context, fn func(context.Context, T) (R, error), args []T, opts Options) ([]R, error) {
	results := make([]R, len(args))
	progress := newProgress(opts.logger(), "serial", len(args))
	for i, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := fn(ctx, arg)
		if err != nil {
			return nil, err
		}
		results[i] = result
		progress.done()
	}
	return results, nil
}

// progress logs at debug level each time another tenth of the trials is done.
type progress struct {
	logger *slog.Logger
	kind   string
	total  int64
	step   int64
	count  int64
}

func newProgress(logger *slog.Logger, kind string, total int) *progress {
	step := int64(total / 10)
	if step == 0 {
		step = 1
	}
	return &progress{logger: logger, kind: kind, total: int64(total), step: step}
}

func (p *progress) done() {
	n := atomic.AddInt64(&p.count, 1)
	if n%p.step == 0 || n == p.total {
		p.logger.Debug("trials completed", "kind", p.kind, "done", n, "total", p.total)
	}
}
