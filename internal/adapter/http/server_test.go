package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port/mocks"
)

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "127.0.0.1:8089"
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func storedOutcome() *domain.BatchOutcome {
	jobs := domain.NewJobs([]string{"/music/a.flac"}, domain.OperationProbe, nil)
	o := domain.NewBatchOutcome(domain.OperationProbe, jobs)
	o.ID = "batch-1"
	o.FinishedAt = o.StartedAt.Add(time.Second)
	o.Results[0].MarkAsSucceeded()
	o.Results[0].Probe = &domain.ProbeResult{Duration: 3, SampleRate: 44100, Channels: 2, Codec: "flac"}
	return o
}

func TestServer_HistoryPage(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().ListOutcomes(mock.Anything, 20).Return([]domain.BatchSummary{storedOutcome().Summary()}, nil)

	rec := serve(t, NewServer(history, 20, "test"), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `href="/batches/batch-1"`)
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestServer_HistoryPage_Limit(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().ListOutcomes(mock.Anything, 5).Return(nil, nil)
	s := NewServer(history, 20, "test")

	rec := serve(t, s, "/?limit=5")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No batches recorded.")

	rec = serve(t, s, "/?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HistoryPage_StoreErrorRendersEmpty(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().ListOutcomes(mock.Anything, 20).Return(nil, errors.New("disk gone"))

	rec := serve(t, NewServer(history, 20, "test"), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No batches recorded.")
}

func TestServer_BatchPage(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().GetOutcome(mock.Anything, "batch-1").Return(storedOutcome(), nil)

	rec := serve(t, NewServer(history, 20, "test"), "/batches/batch-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/music/a.flac")
	assert.Contains(t, rec.Body.String(), "1 succeeded")
}

func TestServer_BatchNotFound(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().GetOutcome(mock.Anything, "nope").Return(nil, domain.ErrNotFound).Twice()
	s := NewServer(history, 20, "test")

	assert.Equal(t, http.StatusNotFound, serve(t, s, "/batches/nope").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, s, "/api/batches/nope").Code)
}

func TestServer_BatchStoreError(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().GetOutcome(mock.Anything, "batch-1").Return(nil, errors.New("locked"))

	rec := serve(t, NewServer(history, 20, "test"), "/api/batches/batch-1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_APIListBatches(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().ListOutcomes(mock.Anything, 0).Return(nil, nil)

	rec := serve(t, NewServer(history, 20, "test"), "/api/batches?limit=-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServer_APIGetBatch(t *testing.T) {
	history := mocks.NewHistoryStoreMock(t)
	history.EXPECT().GetOutcome(mock.Anything, "batch-1").Return(storedOutcome(), nil)

	rec := serve(t, NewServer(history, 20, "test"), "/api/batches/batch-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ID     string        `json:"id"`
		Counts domain.Counts `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "batch-1", body.ID)
	assert.Equal(t, 1, body.Counts.Succeeded)
}

func TestServer_Health(t *testing.T) {
	rec := serve(t, NewServer(mocks.NewHistoryStoreMock(t), 20, "1.2.3"), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, rec.Body.String())
}

func TestServer_RejectsForeignHost(t *testing.T) {
	s := NewServer(mocks.NewHistoryStoreMock(t), 20, "test")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "attacker.example"
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_ReadOnly(t *testing.T) {
	s := NewServer(mocks.NewHistoryStoreMock(t), 20, "test")

	req := httptest.NewRequest(http.MethodDelete, "/api/batches/batch-1", nil)
	req.Host = "localhost"
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
