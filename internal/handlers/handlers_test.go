package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/compliance-dashboard/internal/models"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

const (
	pairsJSON = `[
		{"job_description": "Go backend role", "candidate_cv": "Gopher since 2015"},
		{"job_description": "Data role", "candidate_cv": "SQL person"}
	]`
	resultsJSON = `[
		[[{"requirement": "Must know Go", "status": "Pass", "similarity_score": 0.9}],
		 {"compliance_rate": 1.0, "avg_similarity": 0.9}]
	]`
)

func newApp(dashboard services.DashboardService, writer services.SourceWriter) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, NewDashboardHandler(dashboard), NewUploadHandler(dashboard, writer, 1024))
	return app
}

func newMockApp(t *testing.T) *fiber.App {
	t.Helper()
	loader, err := services.NewMockLoader()
	require.NoError(t, err)
	dashboard := services.NewDashboardService(loader, nil, services.MockPairsSource, []string{services.MockResultsSource})
	return newApp(dashboard, nil)
}

func newFileApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Mkdir(dir, 0755))
	files := map[string]string{
		"document_pairs": "document_pairs.json",
		"Results 1":      "all_results.json",
		"Results 2":      "all_results2.json",
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "document_pairs.json"), []byte(pairsJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_results.json"), []byte(resultsJSON), 0644))

	dashboard := services.NewDashboardService(
		services.NewFileLoader(dir, files),
		services.NewDocumentResolver(dir, services.NewPDFParserService()),
		"document_pairs",
		[]string{"Results 1", "Results 2"},
	)
	return newApp(dashboard, services.NewStorageService(dir, files)), dir
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func uploadRequest(t *testing.T, source, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "upload.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sources/"+source+"/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleSources(t *testing.T) {
	app := newMockApp(t)

	var body models.SourcesResponse
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources", nil), &body)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, services.MockPairsSource, body.DocumentPairs)
	assert.Equal(t, []string{services.MockResultsSource}, body.Sources)
}

func TestHandlePairs(t *testing.T) {
	app := newMockApp(t)

	var body models.PairsResponse
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/pairs", nil), &body)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"Document Pair 1", "Document Pair 2"}, body.Pairs)
}

func TestHandleGetPair(t *testing.T) {
	app := newMockApp(t)

	var view models.DashboardView
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Mock%20Results/pairs/1", nil), &view)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Analysis for Document Pair 1 (from Mock Results)", view.Title)
	assert.Equal(t, "75%", view.Metrics.ComplianceRate)
	assert.Equal(t, 3, view.Metrics.PassedRules)
	assert.Equal(t, 1, view.Metrics.FailedRules)
	assert.Len(t, view.Requirements, 4)
}

func TestHandleGetPairErrors(t *testing.T) {
	mockApp := newMockApp(t)
	fileApp, _ := newFileApp(t)

	tests := []struct {
		name   string
		app    *fiber.App
		path   string
		status int
		kind   string
	}{
		{"pair out of range", mockApp, "/api/v1/sources/Mock%20Results/pairs/3", fiber.StatusBadRequest, "index_out_of_range"},
		{"pair zero", mockApp, "/api/v1/sources/Mock%20Results/pairs/0", fiber.StatusBadRequest, "index_out_of_range"},
		{"unknown source", mockApp, "/api/v1/sources/Nope/pairs/1", fiber.StatusNotFound, "source_not_found"},
		{"missing file", fileApp, "/api/v1/sources/Results%202/pairs/1", fiber.StatusNotFound, "source_not_found"},
		{"short results", fileApp, "/api/v1/sources/Results%201/pairs/2", fiber.StatusNotFound, "results_not_available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body models.ErrorResponse
			status := doRequest(t, tt.app, httptest.NewRequest(http.MethodGet, tt.path, nil), &body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.status, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.Sources)
			assert.Len(t, body.Pairs, 2, "selection controls stay available")
		})
	}
}

func TestHandleGetPairMessages(t *testing.T) {
	fileApp, _ := newFileApp(t)

	var body models.ErrorResponse
	doRequest(t, fileApp, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Results%201/pairs/2", nil), &body)
	assert.Equal(t, "Data for 'Document Pair 2' not found in `Results 1`.", body.Error)

	doRequest(t, fileApp, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Results%202/pairs/1", nil), &body)
	assert.Equal(t, "File not found for source `Results 2`. Please make sure it exists.", body.Error)
}

func TestHandleGetPairInvalidNumber(t *testing.T) {
	app := newMockApp(t)

	var body map[string]any
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Mock%20Results/pairs/first", nil), &body)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid pair number", body["error"])
}

func TestHandleReload(t *testing.T) {
	app, dir := newFileApp(t)

	path := "/api/v1/sources/Results%202/pairs/1"
	assert.Equal(t, fiber.StatusNotFound, doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil), nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_results2.json"), []byte(resultsJSON), 0644))

	status := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/sources/Results%202/reload", nil), nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, fiber.StatusOK, doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil), nil))

	var body models.ErrorResponse
	status = doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/sources/Nope/reload", nil), &body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "source_not_found", body.Kind)
}

func TestHandleUpload(t *testing.T) {
	app, dir := newFileApp(t)

	var created models.UploadResponse
	status := doRequest(t, app, uploadRequest(t, "Results%202", resultsJSON), &created)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Results 2", created.Source)
	assert.Equal(t, len(resultsJSON), created.Size)

	stored, err := os.ReadFile(filepath.Join(dir, "all_results2.json"))
	require.NoError(t, err)
	assert.Equal(t, resultsJSON, string(stored))

	var view models.DashboardView
	status = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Results%202/pairs/1", nil), &view)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "100%", view.Metrics.ComplianceRate)
}

func TestHandleUploadRejectsBadContent(t *testing.T) {
	app, dir := newFileApp(t)

	var body models.ErrorResponse
	status := doRequest(t, app, uploadRequest(t, "Results%201", `{"not": "a list"`), &body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "malformed_source", body.Kind)

	stored, err := os.ReadFile(filepath.Join(dir, "all_results.json"))
	require.NoError(t, err)
	assert.Equal(t, resultsJSON, string(stored), "rejected uploads leave the source untouched")

	status = doRequest(t, app, uploadRequest(t, "Results%201", string(bytes.Repeat([]byte(" "), 2048))), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = doRequest(t, app, uploadRequest(t, "Nope", resultsJSON), &body)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandleUploadDisabled(t *testing.T) {
	app := newMockApp(t)

	var body models.ErrorResponse
	status := doRequest(t, app, uploadRequest(t, "Mock%20Results", resultsJSON), &body)

	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.Equal(t, "uploads_disabled", body.Kind)
}

func TestHealthAndRoot(t *testing.T) {
	app := newMockApp(t)

	var health map[string]any
	assert.Equal(t, fiber.StatusOK, doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), &health))
	assert.Equal(t, "healthy", health["status"])

	var root map[string]any
	assert.Equal(t, fiber.StatusOK, doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil), &root))
	assert.Equal(t, "Compliance Dashboard API", root["message"])
}

func TestUploadedPairsCannotReadOutsideDataDir(t *testing.T) {
	app, dir := newFileApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), "secret.txt"), []byte("TOP-SECRET"), 0644))

	pairs := `[{"job_description_file": "../secret.txt", "candidate_cv_file": "/etc/hostname"}]`
	require.Equal(t, fiber.StatusCreated, doRequest(t, app, uploadRequest(t, "document_pairs", pairs), nil))

	var view models.DashboardView
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Results%201/pairs/1", nil), &view)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.DocumentPlaceholder, view.Documents.JobDescription)
	assert.Equal(t, models.DocumentPlaceholder, view.Documents.CandidateProfile)
}

func TestNonFiniteScoresStillRender(t *testing.T) {
	app, dir := newFileApp(t)
	results := `[
		[[{"status": "Pass", "similarity_score": 1e308}, {"status": "Pass", "similarity_score": 1e308}], {}],
		[[{"status": "Fail", "similarity_score": "NaN"}, {"status": "Fail", "similarity_score": "-Inf"}], {}]
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_results2.json"), []byte(results), 0644))

	var view models.DashboardView
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Results%202/pairs/1", nil), &view)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1e308, view.Metrics.Raw.ComputedAvgSimilarity)

	status = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/sources/Results%202/pairs/2", nil), &view)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "0.00", view.Metrics.AvgSimilarity)
	assert.Equal(t, "0.00", view.Requirements[0].SimilarityScore)
}
