package workbook

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-posture-summary/internal/model"
)

// Dir is a workbook backed by a directory of CSV files. A source named
// "Patches" is looked up as tables/Patches.csv first (the structured-table
// form) and Patches.csv second (the plain used-range form); both normalize
// to the same grid shape.
type Dir struct {
	path string
}

// NewDir creates a directory-backed workbook rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) tablePath(name string) string { return filepath.Join(d.path, "tables", name+".csv") }
func (d *Dir) sheetPath(name string) string { return filepath.Join(d.path, name+".csv") }

// resolve returns the existing file for a source name, table form first.
func (d *Dir) resolve(name string) (string, error) {
	for _, p := range []string{d.tablePath(name), d.sheetPath(name)} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSourceNotFound, name)
}

func (d *Dir) Source(name string) (Source, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return &dirSource{path: p}, nil
}

func (d *Dir) DeleteSource(name string) error {
	for _, p := range []string{d.tablePath(name), d.sheetPath(name)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete source %s: %w", name, err)
		}
	}
	return nil
}

func (d *Dir) CreateSource(name string) (Destination, error) {
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workbook directory: %w", err)
	}
	return &dirDestination{path: d.sheetPath(name)}, nil
}

// dirSource reads one CSV file into a grid.
type dirSource struct {
	path string
}

func (s *dirSource) ReadAll(ctx context.Context) (model.Grid, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1 // rows of inconsistent length are expected

	var grid model.Grid
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			return grid, nil
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		cells := make([]model.Cell, 0, len(record))
		if len(grid) == 0 {
			// Header row: trim whitespace and remove stray quotes, keep text.
			for _, field := range record {
				clean := strings.TrimSpace(strings.ReplaceAll(field, `"`, ""))
				if clean == "" {
					cells = append(cells, model.EmptyCell())
				} else {
					cells = append(cells, model.TextCell(clean))
				}
			}
		} else {
			for _, field := range record {
				cells = append(cells, model.ParseCell(field))
			}
		}
		grid = append(grid, cells)
	}
}

// dirDestination writes a grid back out as CSV. CSV carries no cosmetic
// formatting, so ApplyFormatting succeeds without doing anything.
type dirDestination struct {
	path string
}

func (d *dirDestination) WriteCells(ctx context.Context, topLeftRow, topLeftCol int, grid model.Grid) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	file, err := os.Create(d.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Offsets pad with empty cells so the written block lands at the
	// requested top-left coordinate.
	for i := 0; i < topLeftRow; i++ {
		if err := writer.Write([]string{}); err != nil {
			return fmt.Errorf("failed to write padding row: %w", err)
		}
	}
	for _, row := range grid {
		record := make([]string, 0, topLeftCol+len(row))
		for i := 0; i < topLeftCol; i++ {
			record = append(record, "")
		}
		for _, cell := range row {
			record = append(record, cell.DisplayString())
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return writer.Error()
}

func (d *dirDestination) ApplyFormatting(ctx context.Context, opts FormatOptions) error {
	return nil
}
