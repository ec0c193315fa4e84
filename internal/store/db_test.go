package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-posture-summary/internal/model"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
}

func TestRunLifecycle(t *testing.T) {
	setupDB(t)

	spec := model.RunSpec{OutputSheet: "Summary", Timeout: "1m"}
	require.NoError(t, SaveRun("run-1", spec))

	run, err := GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", run["status"])
	assert.Equal(t, spec, run["spec"])

	require.NoError(t, UpdateRunStatus("run-1", "completed"))
	run, err = GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", run["status"])

	runs, err := ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunErrorsAndLogs(t *testing.T) {
	setupDB(t)
	require.NoError(t, SaveRun("run-1", model.RunSpec{}))

	require.NoError(t, SaveRunError("run-1", assert.AnError))
	errors, err := GetRunErrors("run-1")
	require.NoError(t, err)
	require.Len(t, errors, 1)

	// nil errors are ignored
	require.NoError(t, SaveRunError("run-1", nil))
	errors, _ = GetRunErrors("run-1")
	assert.Len(t, errors, 1)

	require.NoError(t, SaveRunLog("run-1", "config", "warning", "row 3 is not enabled"))
	require.NoError(t, SaveRunLog("run-1", "extract", "info", "done"))

	logs, err := GetRunLogs("run-1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "config", logs[0]["stage"])

	logs, err = GetRunLogs("run-1", 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestSummarySnapshotRoundTrip(t *testing.T) {
	setupDB(t)

	header := []string{"UniqueID", "Patches"}
	rows := [][]string{
		{"app1", "KB1 - Installed"},
		{"app2", ""},
	}
	require.NoError(t, SaveSummarySnapshot("run-1", header, rows))

	gotHeader, gotRows, err := GetSummary("run-1")
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, rows, gotRows)

	// Saving again replaces, never appends.
	require.NoError(t, SaveSummarySnapshot("run-1", header, rows[:1]))
	_, gotRows, err = GetSummary("run-1")
	require.NoError(t, err)
	assert.Len(t, gotRows, 1)
}

func TestStageProgress(t *testing.T) {
	setupDB(t)

	start := time.Now().UTC()
	end := start.Add(time.Second)
	require.NoError(t, SaveStageProgress("run-1", "config", "started", &start, nil, 0))
	require.NoError(t, SaveStageProgress("run-1", "config", "completed", &start, &end, 4))

	progress, err := GetStageProgress("run-1")
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "started", progress[0]["status"])
	assert.Equal(t, 4, progress[1]["records"])
}

func TestOutputFiles(t *testing.T) {
	setupDB(t)

	require.NoError(t, SaveOutputFile("run-1", "Summary.csv", "outputs/run-1/Summary.csv", "csv", 128, "/api/v1/download/run-1/Summary.csv"))

	files, err := GetOutputFiles("run-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Summary.csv", files[0]["file_name"])
	assert.Equal(t, int64(128), files[0]["file_size"])
}

func TestDeleteRunRemovesEverything(t *testing.T) {
	setupDB(t)

	require.NoError(t, SaveRun("run-1", model.RunSpec{}))
	require.NoError(t, SaveRunLog("run-1", "config", "info", "x"))
	require.NoError(t, SaveSummarySnapshot("run-1", []string{"UniqueID"}, nil))

	require.NoError(t, DeleteRun("run-1"))

	_, err := GetRun("run-1")
	assert.Error(t, err)
	logs, err := GetRunLogs("run-1", 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
