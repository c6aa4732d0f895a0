package batch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/de-tools/bill-forge/pkg/services/convert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngestor struct {
	failFor map[string]error
}

func (f *fakeIngestor) Load(_ context.Context, path string) (*domain.BillDataModel, error) {
	if err, ok := f.failFor[path]; ok {
		return nil, err
	}
	return &domain.BillDataModel{
		Project: domain.Project{Name: "Project " + path},
		WorkOrder: []domain.WorkOrderItem{
			{Code: "1.1", Description: "Earthwork", Unit: "Cum",
				OriginalQuantity: decimal.NewFromInt(100), Rate: decimal.NewFromInt(150)},
		},
		BillQuantities: []domain.BillQuantityItem{
			{Code: "1.1", MeasuredQuantity: decimal.NewFromInt(90)},
		},
	}, nil
}

type fakeCalculator struct{}

func (fakeCalculator) Compute(model *domain.BillDataModel, _ domain.BillingMode) (*domain.Bill, error) {
	amount := model.WorkOrder[0].Rate.Mul(model.BillQuantities[0].MeasuredQuantity)
	return &domain.Bill{
		Project: model.Project,
		Lines: []domain.BillLine{{
			Item:              model.WorkOrder[0],
			EffectiveQuantity: model.BillQuantities[0].MeasuredQuantity,
			Amount:            amount,
		}},
		MainTotal:  amount,
		GrandTotal: amount,
	}, nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(_ *domain.Bill, _ domain.Project, dt domain.DocumentType) (domain.Markup, error) {
	return domain.Markup{DocumentType: dt, HTML: []byte("<html>" + string(dt) + "</html>")}, nil
}

type fakeConverter struct {
	degradeFor map[string]bool
}

func (f *fakeConverter) ConvertValidated(_ context.Context, markup domain.Markup, _ convert.Scorer, newID func() string) (*domain.DocumentArtifact, error) {
	return &domain.DocumentArtifact{
		ID:           newID(),
		DocumentType: markup.DocumentType,
		Format:       domain.FormatPDF,
		Payload:      []byte("%PDF-1.4 " + string(markup.DocumentType)),
		QualityScore: 1,
		BackendUsed:  "stub",
		Degraded:     f.degradeFor[string(markup.DocumentType)],
	}, nil
}

type acceptAllScorer struct{}

func (acceptAllScorer) Validate(*domain.DocumentArtifact, domain.Markup) (float64, error) {
	return 1, nil
}
func (acceptAllScorer) Accept(float64) bool { return true }
func (acceptAllScorer) Threshold() float64  { return 0.95 }

type memorySink struct {
	mu        sync.Mutex
	artifacts map[string][]*domain.DocumentArtifact
}

func newMemorySink() *memorySink {
	return &memorySink{artifacts: make(map[string][]*domain.DocumentArtifact)}
}

func (m *memorySink) Write(fileID string, artifact *domain.DocumentArtifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[fileID] = append(m.artifacts[fileID], artifact)
	return nil
}

func testCoordinator(ingestor Ingestor, converter Converter, sink ArtifactSink, concurrency int) *Coordinator {
	cfg := domain.RunConfig{
		Mode:             domain.ModeManual,
		Concurrency:      concurrency,
		QualityThreshold: 0.95,
	}
	return NewCoordinator(cfg, ingestor, fakeCalculator{}, fakeRenderer{}, converter, acceptAllScorer{}, sink)
}

func fileRefs(n int) []domain.FileRef {
	refs := make([]domain.FileRef, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("file-%02d", i)
		refs = append(refs, domain.FileRef{ID: id, Path: id + ".xlsx"})
	}
	return refs
}

func TestCoordinator_RunBatch_MixedOutcomes(t *testing.T) {
	ingestor := &fakeIngestor{failFor: map[string]error{
		"file-03.xlsx": &domain.DataError{Reason: "duplicate item code", Code: "1.1"},
		"file-07.xlsx": &domain.DataError{Reason: "missing sheet"},
	}}
	sink := newMemorySink()
	c := testCoordinator(ingestor, &fakeConverter{}, sink, 4)

	summary, err := c.RunBatch(context.Background(), fileRefs(10))
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalFiles)
	assert.Equal(t, 8, summary.Successes)
	assert.Equal(t, 2, summary.Failures)
	assert.InDelta(t, 80.0, summary.SuccessRate, 1e-9)
	assert.Len(t, summary.Records, 10)
	assert.NotEmpty(t, summary.RunID)

	for _, record := range summary.Records {
		if record.FileID == "file-03" || record.FileID == "file-07" {
			assert.Equal(t, domain.StatusFailure, record.Status)
			assert.Equal(t, "data", record.ErrorKind)
		} else {
			assert.Equal(t, domain.StatusSuccess, record.Status)
			assert.Positive(t, record.OutputBytes)
		}
	}

	// Failed files never reach the sink.
	assert.NotContains(t, sink.artifacts, "file-03")
	assert.NotContains(t, sink.artifacts, "file-07")
}

func TestCoordinator_RunBatch_EachFileAccountedOnce(t *testing.T) {
	sink := newMemorySink()
	c := testCoordinator(&fakeIngestor{}, &fakeConverter{}, sink, 3)

	summary, err := c.RunBatch(context.Background(), fileRefs(12))
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, record := range summary.Records {
		seen[record.FileID]++
	}
	assert.Len(t, seen, 12)
	for id, count := range seen {
		assert.Equal(t, 1, count, "file %s", id)
	}
}

func TestCoordinator_RunBatch_ArtifactsPerFile(t *testing.T) {
	sink := newMemorySink()
	c := testCoordinator(&fakeIngestor{}, &fakeConverter{}, sink, 2)

	summary, err := c.RunBatch(context.Background(), fileRefs(3))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Successes)

	// No extra items in the fake bill: eight document types, each with an
	// HTML intermediate and a PDF.
	for id, artifacts := range sink.artifacts {
		assert.Len(t, artifacts, 16, "file %s", id)
		html, pdf := 0, 0
		for _, a := range artifacts {
			switch a.Format {
			case domain.FormatHTML:
				html++
			case domain.FormatPDF:
				pdf++
			}
		}
		assert.Equal(t, 8, html, "file %s", id)
		assert.Equal(t, 8, pdf, "file %s", id)
	}
}

func TestCoordinator_RunBatch_DegradedCounted(t *testing.T) {
	converter := &fakeConverter{degradeFor: map[string]bool{
		string(domain.DocCoverSummary): true,
		string(domain.DocNoteSheet):    true,
	}}
	sink := newMemorySink()
	c := testCoordinator(&fakeIngestor{}, converter, sink, 2)

	summary, err := c.RunBatch(context.Background(), fileRefs(2))
	require.NoError(t, err)

	for _, record := range summary.Records {
		assert.Equal(t, domain.StatusSuccess, record.Status)
		assert.Equal(t, 2, record.Degraded, "file %s", record.FileID)
	}
}

func TestCoordinator_RunBatch_RenderErrorClassified(t *testing.T) {
	converter := &failingConverter{err: &domain.RenderError{
		DocumentType: domain.DocCoverSummary,
		Attempts:     []domain.BackendFailure{{Backend: "chrome", Err: fmt.Errorf("no browser")}},
	}}
	sink := newMemorySink()
	c := testCoordinator(&fakeIngestor{}, converter, sink, 1)

	summary, err := c.RunBatch(context.Background(), fileRefs(1))
	require.NoError(t, err)

	require.Len(t, summary.Records, 1)
	assert.Equal(t, domain.StatusFailure, summary.Records[0].Status)
	assert.Equal(t, "render", summary.Records[0].ErrorKind)
}

type failingConverter struct {
	err error
}

func (f *failingConverter) ConvertValidated(context.Context, domain.Markup, convert.Scorer, func() string) (*domain.DocumentArtifact, error) {
	return nil, f.err
}

func TestCoordinator_RunBatch_Aggregates(t *testing.T) {
	sink := newMemorySink()
	c := testCoordinator(&fakeIngestor{}, &fakeConverter{}, sink, 4)

	summary, err := c.RunBatch(context.Background(), fileRefs(5))
	require.NoError(t, err)

	assert.Positive(t, summary.TotalBytes)
	assert.Equal(t, summary.TotalBytes/5, summary.AverageBytes)
	assert.GreaterOrEqual(t, summary.SlowestFile, summary.FastestFile)
	assert.Equal(t, summary.TotalTime/5, summary.AverageTime)
	assert.False(t, summary.StartedAt.IsZero())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "data", classify(&domain.DataError{Reason: "bad"}))
	assert.Equal(t, "render", classify(&domain.RenderError{}))
	assert.Equal(t, "timeout", classify(&domain.TimeoutError{Backend: "chrome"}))
	assert.Equal(t, "internal", classify(fmt.Errorf("disk full")))
	assert.Equal(t, "data", classify(fmt.Errorf("wrapped: %w", &domain.DataError{Reason: "bad"})))
}

func TestSink_PathShape(t *testing.T) {
	// Degraded artifacts carry the marker in the file name so a reviewer can
	// spot them without opening the report.
	name := artifactFileName(&domain.DocumentArtifact{
		DocumentType: domain.DocCoverSummary,
		Format:       domain.FormatPDF,
		Degraded:     true,
	})
	assert.True(t, strings.Contains(name, "degraded"))
}
