package complexity

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BatchItem is one image of a batch.
type BatchItem struct {
	// ID identifies the item in the results. A random UUID is assigned when
	// empty.
	ID   string
	Data []byte
}

// BatchResult is the outcome of one BatchItem.
type BatchResult struct {
	ID     string  `json:"id"`
	Report *Report `json:"report,omitempty"`
	Err    error   `json:"-"`
	Error  string  `json:"error,omitempty"`
}

// AnalyzeBatch analyzes items in parallel on a worker pool and returns the
// results in input order.
//
// workers <= 0 uses Options.Workers. Items that have not started when ctx is
// done are not analyzed; their result carries ctx.Err(). Analyses already
// running are allowed to finish.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, items []BatchItem, workers int) []BatchResult {
	results := make([]BatchResult, len(items))
	if len(items) == 0 {
		return results
	}

	if workers <= 0 {
		workers = a.opts.Workers
	}
	if workers > len(items) {
		workers = len(items)
	}

	pool := NewWorkerPool(workers)
	pool.Start()
	defer pool.Close()

	for i, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		results[i].ID = id

		if err := ctx.Err(); err != nil {
			results[i].setErr(err)
			continue
		}

		i, data := i, item.Data
		pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				results[i].setErr(err)
				return
			}
			report, err := a.AnalyzeImageComplexity(data)
			if err != nil {
				results[i].setErr(err)
				return
			}
			results[i].Report = report
		})
	}
	pool.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	a.log.WithFields(logrus.Fields{
		"items":   len(items),
		"failed":  failed,
		"workers": pool.Workers(),
	}).Debug("batch analysis complete")

	return results
}

func (r *BatchResult) setErr(err error) {
	r.Err = err
	r.Error = err.Error()
}
