package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/bill-forge/pkg/models/api"
	"github.com/de-tools/bill-forge/pkg/models/store"
	batchstore "github.com/de-tools/bill-forge/pkg/store/sqlite/batch"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveRun(ctx context.Context, run store.BatchRun, records []store.BatchRecord) error {
	args := m.Called(ctx, run, records)
	return args.Error(0)
}

func (m *mockStore) GetRuns(ctx context.Context) ([]store.BatchRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.BatchRun), args.Error(1)
}

func (m *mockStore) GetRun(ctx context.Context, runID string) (*store.BatchRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.BatchRun), args.Error(1)
}

func (m *mockStore) GetRecords(ctx context.Context, runID string) ([]store.BatchRecord, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.BatchRecord), args.Error(1)
}

func testRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/batches", h.ListRuns)
	r.Get("/api/v1/batches/{run}", h.GetRun)
	return r
}

func storedRun(id string) store.BatchRun {
	return store.BatchRun{
		ID:          id,
		StartedAt:   time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
		TotalFiles:  4,
		Successes:   3,
		Failures:    1,
		SuccessRate: 75,
		TotalTimeMs: 6000,
		AvgTimeMs:   1500,
		FastestMs:   800,
		SlowestMs:   2500,
		TotalBytes:  1048576,
		AvgBytes:    262144,
	}
}

func TestHandler_ListRuns(t *testing.T) {
	s := &mockStore{}
	s.On("GetRuns", mock.Anything).Return([]store.BatchRun{storedRun("run-2"), storedRun("run-1")}, nil)

	rec := httptest.NewRecorder()
	testRouter(NewHandler(s)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/batches", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var reports []api.BatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "run-2", reports[0].RunID)
	assert.InDelta(t, 75.0, reports[0].SuccessRatePct, 1e-9)
	assert.Empty(t, reports[0].Records)
	s.AssertExpectations(t)
}

func TestHandler_ListRuns_StoreError(t *testing.T) {
	s := &mockStore{}
	s.On("GetRuns", mock.Anything).Return(nil, fmt.Errorf("database locked"))

	rec := httptest.NewRecorder()
	testRouter(NewHandler(s)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/batches", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_GetRun(t *testing.T) {
	run := storedRun("run-1")
	records := []store.BatchRecord{
		{RunID: "run-1", FileID: "file-01", Status: "success", DurationMs: 1500, OutputBytes: 262144},
		{RunID: "run-1", FileID: "file-02", Status: "failure", DurationMs: 800, ErrorKind: "data"},
	}
	s := &mockStore{}
	s.On("GetRun", mock.Anything, "run-1").Return(&run, nil)
	s.On("GetRecords", mock.Anything, "run-1").Return(records, nil)

	rec := httptest.NewRecorder()
	testRouter(NewHandler(s)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/batches/run-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report api.BatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 4, report.TotalFiles)
	assert.InDelta(t, 1.5, report.AverageTimeSeconds, 1e-9)
	require.Len(t, report.Records, 2)
	assert.Equal(t, "file-02", report.Records[1].FileID)
	assert.Equal(t, "data", report.Records[1].ErrorKind)
	s.AssertExpectations(t)
}

func TestHandler_GetRun_NotFound(t *testing.T) {
	s := &mockStore{}
	s.On("GetRun", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: %q", batchstore.ErrRunNotFound, "missing"))

	rec := httptest.NewRecorder()
	testRouter(NewHandler(s)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/batches/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetRun_StoreError(t *testing.T) {
	// A query failure is not a missing run; the client must not see 404.
	s := &mockStore{}
	s.On("GetRun", mock.Anything, "run-1").Return(nil, fmt.Errorf("database locked"))

	rec := httptest.NewRecorder()
	testRouter(NewHandler(s)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/batches/run-1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
