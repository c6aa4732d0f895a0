// Package batch runs the full per-file pipeline over a set of input files
// with bounded concurrency.
package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/de-tools/bill-forge/pkg/services/convert"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Ingestor loads one input workbook into the canonical data model.
type Ingestor interface {
	Load(ctx context.Context, path string) (*domain.BillDataModel, error)
}

// Calculator computes a bill from an ingested model.
type Calculator interface {
	Compute(model *domain.BillDataModel, mode domain.BillingMode) (*domain.Bill, error)
}

// Renderer produces markup for one document type.
type Renderer interface {
	Render(bill *domain.Bill, project domain.Project, dt domain.DocumentType) (domain.Markup, error)
}

// Converter turns markup into a validated final artifact.
type Converter interface {
	ConvertValidated(ctx context.Context, markup domain.Markup, scorer convert.Scorer, newID func() string) (*domain.DocumentArtifact, error)
}

// ArtifactSink receives every finished artifact, HTML intermediates included.
type ArtifactSink interface {
	Write(fileID string, artifact *domain.DocumentArtifact) error
}

// Coordinator owns nothing shared between files beyond the read-only
// configuration: each file's model, bill and artifacts belong to that file's
// pipeline instance alone.
type Coordinator struct {
	cfg       domain.RunConfig
	ingestor  Ingestor
	engine    Calculator
	renderer  Renderer
	converter Converter
	scorer    convert.Scorer
	sink      ArtifactSink
}

func NewCoordinator(
	cfg domain.RunConfig,
	ingestor Ingestor,
	engine Calculator,
	renderer Renderer,
	converter Converter,
	scorer convert.Scorer,
	sink ArtifactSink,
) *Coordinator {
	return &Coordinator{
		cfg:       cfg,
		ingestor:  ingestor,
		engine:    engine,
		renderer:  renderer,
		converter: converter,
		scorer:    scorer,
		sink:      sink,
	}
}

// RunBatch processes every file independently; one file's failure never
// aborts the others. The summary accounts for each file exactly once, in
// completion order.
func (c *Coordinator) RunBatch(ctx context.Context, files []domain.FileRef) (*domain.BatchSummary, error) {
	concurrency := c.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	summary := &domain.BatchSummary{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		TotalFiles: len(files),
		Records:    make([]domain.BatchRecord, 0, len(files)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, ref := range files {
		ref := ref
		g.Go(func() error {
			record := c.processFile(ctx, ref)
			mu.Lock()
			summary.Records = append(summary.Records, record)
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; failures live in the records.
	_ = g.Wait()

	aggregate(summary)
	return summary, nil
}

func (c *Coordinator) processFile(ctx context.Context, ref domain.FileRef) domain.BatchRecord {
	logger := zerolog.Ctx(ctx).With().Str("file", ref.ID).Logger()
	ctx = logger.WithContext(ctx)

	started := time.Now()
	outputBytes, degraded, err := c.runPipeline(ctx, ref)
	record := domain.BatchRecord{
		FileID:      ref.ID,
		Status:      domain.StatusSuccess,
		Duration:    time.Since(started),
		OutputBytes: outputBytes,
		Degraded:    degraded,
	}
	if err != nil {
		record.Status = domain.StatusFailure
		record.ErrorKind = classify(err)
		logger.Error().Err(err).Str("kind", record.ErrorKind).Msg("file pipeline failed")
	}
	return record
}

func (c *Coordinator) runPipeline(ctx context.Context, ref domain.FileRef) (int64, int, error) {
	model, err := c.ingestor.Load(ctx, ref.Path)
	if err != nil {
		return 0, 0, err
	}
	bill, err := c.engine.Compute(model, c.cfg.Mode)
	if err != nil {
		return 0, 0, err
	}

	// The nine renderings are pure functions of the same immutable bill, so
	// document types for one file run concurrently with each other.
	types := domain.DocumentTypesFor(bill)
	var mu sync.Mutex
	var outputBytes int64
	var degraded int
	var firstErr error

	var g errgroup.Group
	for _, dt := range types {
		dt := dt
		g.Go(func() error {
			bytes, deg, err := c.processDocument(ctx, ref, bill, dt)
			mu.Lock()
			defer mu.Unlock()
			outputBytes += bytes
			degraded += deg
			if err != nil && firstErr == nil {
				firstErr = err
			}
			return nil
		})
	}
	_ = g.Wait()

	return outputBytes, degraded, firstErr
}

func (c *Coordinator) processDocument(ctx context.Context, ref domain.FileRef, bill *domain.Bill, dt domain.DocumentType) (int64, int, error) {
	markup, err := c.renderer.Render(bill, bill.Project, dt)
	if err != nil {
		return 0, 0, err
	}

	intermediate := &domain.DocumentArtifact{
		ID:           uuid.NewString(),
		DocumentType: dt,
		Format:       domain.FormatHTML,
		Payload:      markup.HTML,
		QualityScore: 1,
		BackendUsed:  "renderer",
	}
	if err := c.sink.Write(ref.ID, intermediate); err != nil {
		return 0, 0, err
	}

	artifact, err := c.converter.ConvertValidated(ctx, markup, c.scorer, uuid.NewString)
	if err != nil {
		return int64(len(intermediate.Payload)), 0, err
	}
	if err := c.sink.Write(ref.ID, artifact); err != nil {
		return int64(len(intermediate.Payload)), 0, err
	}

	total := int64(len(intermediate.Payload)) + int64(len(artifact.Payload))
	if artifact.Degraded {
		return total, 1, nil
	}
	return total, 0, nil
}

func classify(err error) string {
	var dataErr *domain.DataError
	var renderErr *domain.RenderError
	var timeoutErr *domain.TimeoutError
	switch {
	case errors.As(err, &dataErr):
		return "data"
	case errors.As(err, &renderErr):
		return "render"
	case errors.As(err, &timeoutErr):
		return "timeout"
	default:
		return "internal"
	}
}

func aggregate(s *domain.BatchSummary) {
	for _, record := range s.Records {
		if record.Status == domain.StatusSuccess {
			s.Successes++
		} else {
			s.Failures++
		}
		s.TotalTime += record.Duration
		s.TotalBytes += record.OutputBytes
		if s.FastestFile == 0 || record.Duration < s.FastestFile {
			s.FastestFile = record.Duration
		}
		if record.Duration > s.SlowestFile {
			s.SlowestFile = record.Duration
		}
	}
	if s.TotalFiles > 0 {
		s.SuccessRate = float64(s.Successes) / float64(s.TotalFiles) * 100
		s.AverageTime = s.TotalTime / time.Duration(s.TotalFiles)
		s.AverageBytes = s.TotalBytes / int64(s.TotalFiles)
	}
}
