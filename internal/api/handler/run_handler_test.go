package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-posture-summary/internal/store"
)

// chdir mirrors t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestCreateRunRejectsInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRunRejectsUnknownWorkbookType(t *testing.T) {
	body := `{"workbook":{"type":"excel","path":"/tmp/x"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRunRequiresPathForDirWorkbooks(t *testing.T) {
	body := `{"workbook":{"type":"dir"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRunRequiresSheetsForInlineWorkbooks(t *testing.T) {
	body := `{"workbook":{"type":"inline"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRunStartsInlineRun(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))

	body := `{"workbook":{"type":"inline","sheets":{
		"Config":[["IsEnabled","SheetName","AppIdHeaders","DataHeadersToPull","AggregationType","ValueHeaderForAggregation","MasterAppFieldsToPull"],
		          ["TRUE","Patches","App ID","Status","List","",""]],
		"MasterAppList":[["UniqueID"],["app1"]],
		"Patches":[["App ID","Status"],["app1","Installed"]]
	}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["runID"])
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, false, resp["scheduled"])

	run, err := store.GetRun(resp["runID"].(string))
	require.NoError(t, err)
	assert.NotNil(t, run["spec"])
}

func TestCreateRunScheduleWithoutSchedulerFails(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))
	UseScheduler(nil)

	body := `{"schedule":"0 * * * *","workbook":{"type":"inline","sheets":{"Config":[["IsEnabled"]]}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateRun(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunIDFromPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		suffix string
		wantID string
		wantOK bool
	}{
		{"plain id", "/api/v1/runs/run-1", "", "run-1", true},
		{"with suffix", "/api/v1/runs/run-1/logs", "/logs", "run-1", true},
		{"missing id", "/api/v1/runs/", "", "", false},
		{"wrong suffix", "/api/v1/runs/run-1/errors", "/logs", "", false},
		{"nested id rejected", "/api/v1/runs/a/b", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			id, ok := runIDFromPath(rec, req, tt.suffix)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestGetRunNotFound(t *testing.T) {
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/missing", nil)
	rec := httptest.NewRecorder()

	GetRun(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
