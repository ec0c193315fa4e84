package engine

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"go-posture-summary/internal/model"
	"go-posture-summary/internal/store"
	"go-posture-summary/internal/workbook"
	"go-posture-summary/pkg/utils"
)

// Run executes one full summary rebuild: load config, load the master
// registry, extract per rule in declared order, aggregate per application
// in sorted order, assemble, write.
//
// The pipeline is strictly sequential; the only suspension points are the
// workbook I/O calls, awaited one at a time. A fatal config or registry
// error terminates the run before anything is written. Nothing is retried.
func Run(ctx context.Context, runID string, spec model.RunSpec, wb workbook.Provider) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting summary run: %s\n", runID)

	store.UpdateRunStatus(runID, "running")
	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	spec.ApplyDefaults()
	timeout := utils.ParseDuration(spec.Timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	diag := &Diagnostics{
		RunID: runID,
		Sink: func(stage, level, message string) {
			store.SaveRunLog(runID, stage, level, message)
		},
	}

	// --- CONFIG ---
	store.UpdateRunStatus(runID, "loading-config")
	configStart := time.Now()
	store.SaveStageProgress(runID, "config", "started", &configStart, nil, 0)

	configGrid, err := readSheet(ctx, wb, spec.ConfigSheet)
	if err != nil {
		return fmt.Errorf("failed to read configuration sheet %q: %w", spec.ConfigSheet, err)
	}
	cfg, err := LoadConfig(configGrid, diag)
	if err != nil {
		return err
	}
	configEnd := time.Now()
	store.SaveStageProgress(runID, "config", "completed", &configStart, &configEnd, len(cfg.Rules))
	fmt.Printf("⚙️ Config loaded: %d rules, %d passthrough fields\n", len(cfg.Rules), len(cfg.MasterFields))

	// --- REGISTRY ---
	store.UpdateRunStatus(runID, "loading-registry")
	registryGrid, err := readSheet(ctx, wb, spec.RegistrySheet)
	if err != nil {
		return fmt.Errorf("failed to read master registry sheet %q: %w", spec.RegistrySheet, err)
	}
	reg, err := LoadRegistry(registryGrid, spec.RegistryIDHeaders, cfg.MasterFields, diag)
	if err != nil {
		return err
	}

	// --- EXTRACTION ---
	store.UpdateRunStatus(runID, "extracting")
	extractStart := time.Now()
	store.SaveStageProgress(runID, "extraction", "started", &extractStart, nil, 0)

	attrStore := make(EntityAttributeStore)
	for _, rule := range cfg.Rules {
		grid, err := readSheet(ctx, wb, rule.SheetName)
		if err != nil {
			// Rule-level skip: this source contributes nothing, the run continues.
			diag.Warnf("extract", "failed to read sheet %q: %v; skipping rule", rule.SheetName, err)
			continue
		}
		Extract(rule, grid, reg, attrStore, diag)
	}
	extractEnd := time.Now()
	store.SaveStageProgress(runID, "extraction", "completed", &extractStart, &extractEnd, len(attrStore))

	// --- AGGREGATION + ASSEMBLY ---
	store.UpdateRunStatus(runID, "aggregating")
	header, rows := Assemble(cfg.Rules, reg, attrStore, diag)
	fmt.Printf("📊 Assembled %d summary rows across %d columns\n", len(rows), len(header))

	// --- WRITE ---
	store.UpdateRunStatus(runID, "writing")
	if err := writeSummary(ctx, wb, spec.OutputSheet, header, rows, diag); err != nil {
		return err
	}

	headerStrings := displayStrings(header)
	rowStrings := make([][]string, 0, len(rows))
	for _, row := range rows {
		rowStrings = append(rowStrings, displayStrings(row))
	}
	if err := store.SaveSummarySnapshot(runID, headerStrings, rowStrings); err != nil {
		diag.Warnf("write", "failed to snapshot summary: %v", err)
	}
	if err := exportSummaryCSV(runID, spec.OutputSheet, headerStrings, rowStrings); err != nil {
		diag.Warnf("write", "failed to export summary CSV: %v", err)
	}

	store.UpdateRunStatus(runID, "completed")
	fmt.Printf("🏁 Summary run %s completed in %v\n", runID, time.Since(start))
	return nil
}

// readSheet resolves and reads one named source.
func readSheet(ctx context.Context, wb workbook.Provider, name string) (model.Grid, error) {
	src, err := wb.Source(name)
	if err != nil {
		return nil, err
	}
	return src.ReadAll(ctx)
}

// writeSummary recreates the destination sheet and writes header + rows,
// then requests the default cosmetic formatting. Formatting failures are
// warnings, never run failures.
func writeSummary(ctx context.Context, wb workbook.Provider, name string, header []model.Cell, rows [][]model.Cell, diag *Diagnostics) error {
	if err := wb.DeleteSource(name); err != nil {
		diag.Warnf("write", "failed to delete existing sheet %q: %v", name, err)
	}
	dest, err := wb.CreateSource(name)
	if err != nil {
		return fmt.Errorf("failed to create output sheet %q: %w", name, err)
	}

	grid := make(model.Grid, 0, len(rows)+1)
	grid = append(grid, header)
	grid = append(grid, rows...)
	if err := dest.WriteCells(ctx, 0, 0, grid); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	opts := workbook.FormatOptions{
		Bold:            true,
		BackgroundColor: "#4472C4",
		FontColor:       "#FFFFFF",
		WrapText:        true,
		VerticalAlign:   "top",
		AutofitColumns:  true,
	}
	if err := dest.ApplyFormatting(ctx, opts); err != nil {
		diag.Warnf("write", "failed to apply formatting to %q: %v", name, err)
	}
	return nil
}

// exportSummaryCSV writes a downloadable copy of the summary under the
// run's output directory and registers it.
func exportSummaryCSV(runID, outputSheet string, header []string, rows [][]string) error {
	om := utils.NewOutputManager("outputs")
	fileName := outputSheet + ".csv"
	path, err := om.OutputFilePath(runID, fileName)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	size, err := om.FileSize(path)
	if err != nil {
		size = 0
	}
	return store.SaveOutputFile(runID, fileName, path, om.FileType(fileName), size, om.DownloadURL(runID, fileName))
}

func displayStrings(cells []model.Cell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.DisplayString())
	}
	return out
}
