package worker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
)

// Analyzer classifies one raw text value
type Analyzer interface {
	Analyze(ctx context.Context, raw interface{}) (*model.ClassificationResult, error)
}

// Document is one article to classify
type Document struct {
	Name string
	Text string
}

// ClassifyJob classifies a single document
type ClassifyJob struct {
	index    int
	doc      Document
	analyzer Analyzer
	limiter  *Limiter
}

// Index returns the document position in the batch
func (j *ClassifyJob) Index() int {
	return j.index
}

// Execute waits for the limiter and runs the analyzer
func (j *ClassifyJob) Execute(ctx context.Context) Result {
	res := &BatchResult{index: j.index, Name: j.doc.Name}

	if err := j.limiter.Wait(ctx); err != nil {
		res.Error = model.NewError(model.KindUpstreamUnavailable, err)
		return res
	}

	result, err := j.analyzer.Analyze(ctx, j.doc.Text)
	if err != nil {
		res.Error = pipeline.AsPipelineError(err)
		return res
	}
	res.Result = result
	return res
}

// BatchResult is the outcome for one document
type BatchResult struct {
	index  int
	Name   string
	Result *model.ClassificationResult
	Error  *model.PipelineError
}

// Index returns the document position in the batch
func (r *BatchResult) Index() int {
	return r.index
}

// GetError returns the error from the batch result
func (r *BatchResult) GetError() error {
	if r.Error == nil {
		return nil
	}
	return r.Error
}

// BatchProcessor classifies many documents concurrently. Each document is
// an independent pipeline call; nothing is cached or deduplicated.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int, limiter *Limiter) *BatchProcessor {
	if limiter == nil {
		limiter = NewLimiter(0, 0)
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessDocuments classifies docs and returns one result per document in
// input order. Documents not started before ctx ends carry an error.
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, docs []Document) []*BatchResult {
	results := make([]*BatchResult, len(docs))
	if len(docs) == 0 {
		return results
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, doc := range docs {
			job := &ClassifyJob{index: i, doc: doc, analyzer: b.analyzer, limiter: b.limiter}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	for r := range pool.Results() {
		res := r.(*BatchResult)
		results[res.Index()] = res
	}

	for i, res := range results {
		if res == nil {
			results[i] = &BatchResult{
				index: i,
				Name:  docs[i].Name,
				Error: model.Errorf(model.KindUpstreamUnavailable, "not processed: %v", ctx.Err()),
			}
		}
	}

	return results
}

// ReadDocuments loads one document per path. "-" reads from stdin.
func ReadDocuments(paths []string, stdin io.Reader) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		var (
			data []byte
			err  error
			name string
		)
		if path == "-" {
			name = "stdin"
			data, err = io.ReadAll(stdin)
		} else {
			name = filepath.Base(path)
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, Document{Name: name, Text: string(data)})
	}
	return docs, nil
}
