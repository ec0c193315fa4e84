package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"go-posture-summary/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			stage TEXT,
			level TEXT,
			message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS stage_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			stage TEXT,
			status TEXT,
			started_at DATETIME,
			ended_at DATETIME,
			records INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS summary_rows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			app_id TEXT,
			position INTEGER,
			cells TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS output_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			file_name TEXT,
			file_path TEXT,
			file_type TEXT,
			file_size INTEGER,
			download_url TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a new summary run.
func SaveRun(runID string, spec model.RunSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates a run's status.
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// GetRunErrors returns all recorded errors for a run.
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var message string
		var createdAt time.Time
		if err := rows.Scan(&message, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// SaveRunLog persists one diagnostic line for a run.
func SaveRunLog(runID, stage, level, message string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_logs (run_id, stage, level, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, stage, level, message, now)
	return err
}

// GetRunLogs returns up to limit diagnostics for a run, oldest first.
func GetRunLogs(runID string, limit int) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, level, message, created_at FROM run_logs WHERE run_id = ? ORDER BY id LIMIT ?`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var stage, level, message string
		var createdAt time.Time
		if err := rows.Scan(&stage, &level, &message, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"stage":     stage,
			"level":     level,
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// SaveStageProgress records a stage transition for a run.
func SaveStageProgress(runID, stage, status string, startedAt, endedAt *time.Time, records int) error {
	_, err := db.Exec(`INSERT INTO stage_progress (run_id, stage, status, started_at, ended_at, records) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, stage, status, startedAt, endedAt, records)
	return err
}

// GetStageProgress returns stage transitions for a run in order.
func GetStageProgress(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, status, started_at, ended_at, records FROM stage_progress WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var stage, status string
		var startedAt, endedAt sql.NullTime
		var records int
		if err := rows.Scan(&stage, &status, &startedAt, &endedAt, &records); err != nil {
			return nil, err
		}
		entry := map[string]interface{}{
			"stage":   stage,
			"status":  status,
			"records": records,
		}
		if startedAt.Valid {
			entry["startedAt"] = startedAt.Time
		}
		if endedAt.Valid {
			entry["endedAt"] = endedAt.Time
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// SaveSummarySnapshot replaces the queryable copy of a run's written
// summary. Position 0 is the header row.
func SaveSummarySnapshot(runID string, header []string, rows [][]string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM summary_rows WHERE run_id = ?`, runID); err != nil {
		tx.Rollback()
		return err
	}

	insert := func(position int, appID string, cells []string) error {
		cellsJSON, err := json.Marshal(cells)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO summary_rows (run_id, app_id, position, cells) VALUES (?, ?, ?, ?)`,
			runID, appID, position, cellsJSON)
		return err
	}

	if err := insert(0, "", header); err != nil {
		tx.Rollback()
		return err
	}
	for i, row := range rows {
		appID := ""
		if len(row) > 0 {
			appID = row[0]
		}
		if err := insert(i+1, appID, row); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetSummary returns a run's summary snapshot as header + data rows.
func GetSummary(runID string) ([]string, [][]string, error) {
	rows, err := db.Query(`SELECT position, cells FROM summary_rows WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var header []string
	var data [][]string
	for rows.Next() {
		var position int
		var cellsJSON string
		if err := rows.Scan(&position, &cellsJSON); err != nil {
			return nil, nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, nil, err
		}
		if position == 0 {
			header = cells
		} else {
			data = append(data, cells)
		}
	}
	return header, data, rows.Err()
}

// SaveOutputFile registers a file produced by a run.
func SaveOutputFile(runID, fileName, filePath, fileType string, fileSize int64, downloadURL string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO output_files (run_id, file_name, file_path, file_type, file_size, download_url, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, fileName, filePath, fileType, fileSize, downloadURL, now)
	return err
}

// GetOutputFiles returns the files produced by a run.
func GetOutputFiles(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT file_name, file_path, file_type, file_size, download_url, created_at FROM output_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var fileName, filePath, fileType, downloadURL string
		var fileSize int64
		var createdAt time.Time
		if err := rows.Scan(&fileName, &filePath, &fileType, &fileSize, &downloadURL, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"file_name":    fileName,
			"file_path":    filePath,
			"file_type":    fileType,
			"file_size":    fileSize,
			"download_url": downloadURL,
			"createdAt":    createdAt,
		})
	}
	return out, rows.Err()
}

// ListRuns returns all runs with basic info, newest first.
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches the full spec and status of one run.
func GetRun(runID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.RunSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// DeleteRun removes a run and everything recorded for it.
func DeleteRun(runID string) error {
	for _, table := range []string{"run_errors", "run_logs", "stage_progress", "summary_rows", "output_files"} {
		if _, err := db.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return err
		}
	}
	_, err := db.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	return err
}
