package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tabooprint/pkg/deck"
)

// DefaultBatchLimit bounds concurrent renders when no limit is given.
const DefaultBatchLimit = 4

// Job is one deck to render in a batch.
type Job struct {
	Deck    deck.Deck
	Options Options
}

// BatchResult pairs a job with its outcome. Exactly one of Result and Err is
// set.
type BatchResult struct {
	Job    Job
	Result *Result
	Err    error
}

// RenderBatch executes jobs on at most limit goroutines. A failing job does
// not stop the others; results are returned in job order and the error joins
// every job failure. Cancelling ctx stops jobs that have not started.
func (r *Runner) RenderBatch(ctx context.Context, jobs []Job, limit int) ([]BatchResult, error) {
	return r.RenderBatchFunc(ctx, jobs, limit, nil)
}

// RenderBatchFunc is RenderBatch with done called after each job that ran.
// done runs on the worker goroutines and must be safe for concurrent use.
func (r *Runner) RenderBatchFunc(ctx context.Context, jobs []Job, limit int, done func(BatchResult)) ([]BatchResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	results := make([]BatchResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			res, err := r.Execute(gctx, job.Deck, job.Options)
			results[i].Result, results[i].Err = res, err
			if done != nil {
				done(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Job.Deck.Name, res.Err))
		}
	}
	return results, stderrors.Join(errs...)
}
