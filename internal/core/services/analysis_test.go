package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockAnalysisClient implements driven.AnalysisClient for testing.
// Analyze pops one response per call so the two retry legs can answer
// differently.
type mockAnalysisClient struct {
	mu        sync.Mutex
	responses []analyzeResult
	calls     []domain.UploadPair

	chartBody []byte
	chartErr  error

	previewRows []domain.Record
	previewErr  error
}

type analyzeResult struct {
	report *domain.AnalysisReport
	err    error
}

func (m *mockAnalysisClient) Analyze(_ context.Context, pair domain.UploadPair) (*domain.AnalysisReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, pair)
	if len(m.responses) == 0 {
		return &domain.AnalysisReport{}, nil
	}
	res := m.responses[0]
	m.responses = m.responses[1:]
	return res.report, res.err
}

func (m *mockAnalysisClient) RenderChart(_ context.Context, _ domain.ChartID, _ domain.UploadPair) ([]byte, error) {
	if m.chartErr != nil {
		return nil, m.chartErr
	}
	return m.chartBody, nil
}

func (m *mockAnalysisClient) Preview(_ context.Context, _ domain.Upload) ([]domain.Record, error) {
	if m.previewErr != nil {
		return nil, m.previewErr
	}
	return m.previewRows, nil
}

func (m *mockAnalysisClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func testPair() domain.UploadPair {
	return domain.UploadPair{
		Business:     domain.Upload{Path: "/tmp/business.csv"},
		Demographics: domain.Upload{Path: "/tmp/demographics.csv"},
	}
}

// --- Tests ---

func TestAnalysisService_Analyze_Success(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{{report: &domain.AnalysisReport{TotalZipcodes: 12}}},
	}
	service := NewAnalysisService(client)

	run, err := service.Analyze(context.Background(), testPair())

	require.NoError(t, err)
	require.NotNil(t, run)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 12, run.Report.TotalZipcodes)
	assert.Equal(t, testPair(), run.Pair)
	assert.Equal(t, 1, client.callCount())
}

func TestAnalysisService_Analyze_MissingInput(t *testing.T) {
	client := &mockAnalysisClient{}
	service := NewAnalysisService(client)

	_, err := service.Analyze(context.Background(), domain.UploadPair{
		Business: domain.Upload{Path: "only-one.csv"},
	})

	assert.ErrorIs(t, err, domain.ErrMissingInput)
	assert.Equal(t, 0, client.callCount(), "no network call on missing input")
}

func TestAnalysisService_Analyze_SwapRetrySucceeds(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{
			{err: &domain.AnalysisError{Message: "No valid ZIP column found"}},
			{report: &domain.AnalysisReport{TotalZipcodes: 7}},
		},
	}
	service := NewAnalysisService(client)

	run, err := service.Analyze(context.Background(), testPair())

	require.NoError(t, err)
	require.Equal(t, 2, client.callCount())

	// The retry submitted the swapped orientation.
	assert.Equal(t, testPair(), client.calls[0])
	assert.Equal(t, testPair().Swapped(), client.calls[1])

	// The run keeps the user-facing assignment.
	assert.Equal(t, testPair(), run.Pair)
	assert.Equal(t, 7, run.Report.TotalZipcodes)
}

func TestAnalysisService_Analyze_SwapRetryOnlyOnce(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{
			{err: &domain.AnalysisError{Message: "no valid zip column found"}},
			{err: &domain.AnalysisError{Message: "no valid zip column found"}},
			{report: &domain.AnalysisReport{}},
		},
	}
	service := NewAnalysisService(client)

	_, err := service.Analyze(context.Background(), testPair())

	require.Error(t, err)
	assert.Equal(t, 2, client.callCount(), "the retry outcome is final")
}

func TestAnalysisService_Analyze_NoRetryOnOtherServerError(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{
			{err: &domain.AnalysisError{Message: "invalid CSV header"}},
		},
	}
	service := NewAnalysisService(client)

	_, err := service.Analyze(context.Background(), testPair())

	var srvErr *domain.AnalysisError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "invalid CSV header", srvErr.Message)
	assert.Empty(t, srvErr.RetryMessage)
	assert.Equal(t, 1, client.callCount())
}

func TestAnalysisService_Analyze_NoRetryOnTransportError(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{
			{err: domain.ErrServiceUnavailable},
		},
	}
	service := NewAnalysisService(client)

	_, err := service.Analyze(context.Background(), testPair())

	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, 1, client.callCount())
}

func TestAnalysisService_Analyze_RetryFailureCombinesMessages(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{
			{err: &domain.AnalysisError{Message: "No valid ZIP column found"}},
			{err: &domain.AnalysisError{Message: "file is not a CSV"}},
		},
	}
	service := NewAnalysisService(client)

	_, err := service.Analyze(context.Background(), testPair())

	var srvErr *domain.AnalysisError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "No valid ZIP column found", srvErr.Message)
	assert.Equal(t, "file is not a CSV", srvErr.RetryMessage)
	assert.Contains(t, srvErr.Error(), "retry with swapped files")
}

func TestAnalysisService_Analyze_RetryTransportFailure(t *testing.T) {
	client := &mockAnalysisClient{
		responses: []analyzeResult{
			{err: &domain.AnalysisError{Message: "no valid zip column found"}},
			{err: domain.ErrServiceUnavailable},
		},
	}
	service := NewAnalysisService(client)

	_, err := service.Analyze(context.Background(), testPair())

	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, 2, client.callCount())
}

func TestAnalysisService_Analyze_InFlightGuard(t *testing.T) {
	service := NewAnalysisService(&mockAnalysisClient{})

	// Simulate an active invocation.
	require.True(t, service.begin())

	_, err := service.Analyze(context.Background(), testPair())
	assert.ErrorIs(t, err, domain.ErrAnalysisInFlight)

	service.end()
	_, err = service.Analyze(context.Background(), testPair())
	assert.NoError(t, err)
}

func TestAnalysisService_Analyze_FreshCycleIDPerRun(t *testing.T) {
	service := NewAnalysisService(&mockAnalysisClient{})

	first, err := service.Analyze(context.Background(), testPair())
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), testPair())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestAnalysisService_Preview(t *testing.T) {
	client := &mockAnalysisClient{
		previewRows: []domain.Record{{"zipcode": "10001"}},
	}
	service := NewAnalysisService(client)

	rows, err := service.Preview(context.Background(), domain.Upload{Path: "biz.csv"})

	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAnalysisService_Preview_MissingFile(t *testing.T) {
	service := NewAnalysisService(&mockAnalysisClient{})

	_, err := service.Preview(context.Background(), domain.Upload{})

	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestAnalysisService_Preview_WrapsClientError(t *testing.T) {
	client := &mockAnalysisClient{previewErr: errors.New("boom")}
	service := NewAnalysisService(client)

	_, err := service.Preview(context.Background(), domain.Upload{Path: "biz.csv"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview biz.csv")
}
