// Package rest provides the HTTP adapter for the remote analysis
// service. Both files go up as one multipart request; chart endpoints
// return raw image bodies.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driven"
	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AnalysisClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 60 * time.Second

	// DefaultRequestRate bounds request bursts against the service.
	// Chart fetches fan out three requests at once; the burst allows
	// them through while throttling anything beyond that.
	DefaultRequestRate  = 4.0
	DefaultRequestBurst = 4
)

// Endpoint paths on the analysis service.
const (
	analyzePath = "/analyze"
	previewPath = "/upload"
)

// chartPaths maps each chart slot to its endpoint.
var chartPaths = map[domain.ChartID]string{
	domain.ChartIndustryPie:        "/plot/pie_industries",
	domain.ChartBusinessPerCapita:  "/plot/bar_business_per_capita",
	domain.ChartCorrelationHeatmap: "/plot/correlation_heatmap",
}

// Config holds configuration for the REST client.
type Config struct {
	// BaseURL is the analysis service base URL.
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Client talks to the analysis service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new analysis service client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestRate), DefaultRequestBurst),
	}
}

// analyzeResponse is the service's /analyze response envelope.
type analyzeResponse struct {
	Status   string         `json:"status"`
	Analysis *reportPayload `json:"analysis"`
	Error    string         `json:"error"`
	Message  string         `json:"message"`
}

// reportPayload is the successful analysis aggregate on the wire.
type reportPayload struct {
	TotalZipcodes         int             `json:"total_zipcodes"`
	CorrelationWithIncome *float64        `json:"correlation_with_income"`
	TopZipcodes           []domain.Record `json:"top_zipcodes"`
	BusinessData          []domain.Record `json:"business_data"`
	DemoData              []domain.Record `json:"demo_data"`
	GroupedByZipIndustry  []domain.Record `json:"grouped_by_zip_industry"`
	TopIndividualZipcodes []domain.Record `json:"top_individual_zipcodes"`
}

// previewResponse is the service's /upload response envelope.
type previewResponse struct {
	Status  string          `json:"status"`
	Data    []domain.Record `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Analyze submits both files and decodes the analysis aggregate.
func (c *Client) Analyze(ctx context.Context, pair domain.UploadPair) (*domain.AnalysisReport, error) {
	body, err := c.post(ctx, analyzePath, map[string]domain.Upload{
		string(domain.RoleBusiness):     pair.Business,
		string(domain.RoleDemographics): pair.Demographics,
	})
	if err != nil {
		return nil, err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Warn("Malformed analyze response: %v", err)
		return nil, domain.ErrServiceUnavailable
	}

	if resp.Status != "success" || resp.Analysis == nil {
		return nil, &domain.AnalysisError{Message: failureMessage(resp.Error, resp.Message)}
	}

	return &domain.AnalysisReport{
		TotalZipcodes:         resp.Analysis.TotalZipcodes,
		CorrelationWithIncome: resp.Analysis.CorrelationWithIncome,
		TopZipcodes:           resp.Analysis.TopZipcodes,
		BusinessRows:          resp.Analysis.BusinessData,
		DemoRows:              resp.Analysis.DemoData,
		ZipIndustryGroups:     resp.Analysis.GroupedByZipIndustry,
		TopIndividualZipcodes: resp.Analysis.TopIndividualZipcodes,
	}, nil
}

// RenderChart submits the file(s) a chart needs and returns the image
// bytes.
func (c *Client) RenderChart(ctx context.Context, id domain.ChartID, pair domain.UploadPair) ([]byte, error) {
	path, ok := chartPaths[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown chart %q", domain.ErrChartUnavailable, id)
	}

	files := map[string]domain.Upload{
		string(domain.RoleBusiness): pair.Business,
	}
	if id.NeedsDemographics() {
		files[string(domain.RoleDemographics)] = pair.Demographics
	}

	body, err := c.post(ctx, path, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrChartUnavailable, id)
	}

	// A JSON body here means the service reported an error instead of
	// rendering an image.
	if looksLikeJSON(body) {
		logger.Warn("Chart %s returned an error body", id)
		return nil, fmt.Errorf("%w: %s", domain.ErrChartUnavailable, id)
	}

	return body, nil
}

// Preview submits one file and returns its parsed rows.
func (c *Client) Preview(ctx context.Context, file domain.Upload) ([]domain.Record, error) {
	body, err := c.post(ctx, previewPath, map[string]domain.Upload{"file": file})
	if err != nil {
		return nil, err
	}

	var resp previewResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Warn("Malformed preview response: %v", err)
		return nil, domain.ErrServiceUnavailable
	}

	if resp.Status != "success" {
		return nil, &domain.AnalysisError{Message: failureMessage(resp.Error, resp.Message)}
	}
	return resp.Data, nil
}

// post sends a multipart request and returns the raw response body.
// Transport faults are normalised to domain.ErrServiceUnavailable; raw
// detail only reaches the verbose log.
func (c *Client) post(ctx context.Context, path string, files map[string]domain.Upload) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, file := range files {
		if err := writeFilePart(writer, field, file); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		// Honour caller cancellation; everything else is a transport
		// fault and surfaces as the generic unavailable error.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("Request %s failed: %v", path, err)
		return nil, domain.ErrServiceUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("Reading %s response: %v", path, err)
		return nil, domain.ErrServiceUnavailable
	}

	// The service reports analysis failures as JSON with non-2xx
	// status codes; those are server-reported outcomes, not transport
	// faults, so let the caller decode them. Anything non-2xx without
	// a JSON body is transport-level.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !looksLikeJSON(body) {
			logger.Warn("Request %s returned status %d", path, resp.StatusCode)
			return nil, domain.ErrServiceUnavailable
		}
	}

	return body, nil
}

// writeFilePart streams one upload into the multipart body.
func writeFilePart(w *multipart.Writer, field string, file domain.Upload) error {
	if file.IsZero() {
		return domain.ErrMissingInput
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, file.Name())
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s: %w", file.Name(), err)
	}
	return nil
}

// failureMessage picks the server's error text, preferring the error
// field over message.
func failureMessage(errText, message string) string {
	if errText != "" {
		return errText
	}
	return message
}

// looksLikeJSON reports whether a body starts like a JSON document.
func looksLikeJSON(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
