package worker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// Processor turns one document into a report
type Processor interface {
	Process(ctx context.Context, doc model.Document) (*model.DocumentReport, error)
}

// DocumentJob processes one input row
type DocumentJob struct {
	Index     int
	Doc       model.Document
	Processor Processor
	Limiter   *Limiter
}

// Execute waits for the limiter, then processes the document
func (j *DocumentJob) Execute(ctx context.Context) Result {
	res := &DocumentResult{Index: j.Index, NAID: j.Doc.NAID}
	if err := j.Limiter.Wait(ctx); err != nil {
		res.Error = fmt.Errorf("rate limit: %w", err)
		return res
	}
	res.Report, res.Error = j.Processor.Process(ctx, j.Doc)
	return res
}

// DocumentResult is the outcome for one input row
type DocumentResult struct {
	Index  int
	NAID   string
	Report *model.DocumentReport
	Error  error
}

// GetError returns the processing error, if any
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor processes many documents concurrently, emitting results in input order
type BatchProcessor struct {
	processor   Processor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. rowsPerSecond 0 means unlimited.
func NewBatchProcessor(processor Processor, concurrency int, rowsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		limiter:     NewLimiter(rowsPerSecond, burst),
	}
}

// ProcessDocuments processes docs and returns one result per document in input order
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, docs []model.Document) []*DocumentResult {
	results := make([]*DocumentResult, 0, len(docs))
	i := 0
	next := func() (model.Document, error) {
		if i >= len(docs) {
			return model.Document{}, io.EOF
		}
		i++
		return docs[i-1], nil
	}
	_ = b.Stream(ctx, next, func(r *DocumentResult) error {
		results = append(results, r)
		return nil
	})
	return results
}

// Stream pulls documents from next until io.EOF and hands each result to
// emit in input order. A read error stops intake; results already in
// flight are still emitted before the error is returned. An emit error
// cancels the remaining work.
func (b *BatchProcessor) Stream(ctx context.Context, next func() (model.Document, error), emit func(*DocumentResult) error) error {
	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	readErr := make(chan error, 1)
	go func() {
		defer pool.Close()
		for index := 0; ; index++ {
			doc, err := next()
			if errors.Is(err, io.EOF) {
				readErr <- nil
				return
			}
			if err != nil {
				readErr <- err
				return
			}
			job := &DocumentJob{Index: index, Doc: doc, Processor: b.processor, Limiter: b.limiter}
			if !pool.Submit(job) {
				readErr <- nil
				return
			}
		}
	}()

	pending := make(map[int]*DocumentResult)
	want := 0
	var emitErr error

	for result := range pool.Results() {
		if emitErr != nil {
			continue
		}
		r := result.(*DocumentResult)
		pending[r.Index] = r
		for {
			ready, ok := pending[want]
			if !ok {
				break
			}
			delete(pending, want)
			want++
			if err := emit(ready); err != nil {
				emitErr = err
				go pool.Shutdown()
				break
			}
		}
	}

	if emitErr != nil {
		return fmt.Errorf("emit result: %w", emitErr)
	}
	if err := <-readErr; err != nil {
		return fmt.Errorf("read documents: %w", err)
	}
	return ctx.Err()
}
