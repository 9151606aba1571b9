package batch

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"callcenter-qa-go/internal/types"
)

// RecordProcessor brings one call record up to date.
type RecordProcessor interface {
	Process(ctx context.Context, rec *types.CallRecord) error
}

// Runner applies a processor to every pending row of a batch table, in
// original row order. Already-processed rows are logged as skipped, never
// treated as errors. Rows are independent, so the runner optionally fans
// out across a bounded number of workers; the caller persists the table
// only after Run returns.
type Runner struct {
	processor RecordProcessor
	log       *logrus.Entry
	workers   int
}

func NewRunner(processor RecordProcessor, log *logrus.Entry, workers int) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{processor: processor, log: log, workers: workers}
}

// Run processes the table in place. A processor error is a precondition
// failure and aborts the run; per-call service failures never reach here,
// they are stored inline in the records.
func (r *Runner) Run(ctx context.Context, table *types.BatchTable) error {
	if r.workers == 1 {
		return r.runSequential(ctx, table)
	}
	return r.runBounded(ctx, table)
}

func (r *Runner) runSequential(ctx context.Context, table *types.BatchTable) error {
	for i := range table.Records {
		rec := &table.Records[i]
		if !rec.Pending() {
			// Row numbers match the spreadsheet (header is row 1).
			r.log.WithField("row", i+2).Info("skipping row: already processed")
			continue
		}
		if err := r.processor.Process(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runBounded(ctx context.Context, table *types.BatchTable) error {
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var runErr error

	for i := range table.Records {
		rec := &table.Records[i]
		if !rec.Pending() {
			r.log.WithField("row", i+2).Info("skipping row: already processed")
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}
		wg.Add(1)
		go func(rec *types.CallRecord) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := r.processor.Process(ctx, rec); err != nil {
				mu.Lock()
				if runErr == nil {
					runErr = err
				}
				mu.Unlock()
			}
		}(rec)
	}

	wg.Wait()
	return runErr
}
