// Package workbook models the tabular storage medium the summary engine
// reads from and writes to: named sources that load into a cell grid and a
// destination that accepts a grid plus cosmetic formatting.
package workbook

import (
	"context"
	"errors"
	"fmt"

	"go-posture-summary/internal/model"
)

// ErrSourceNotFound is returned by Provider.Source for unknown names.
var ErrSourceNotFound = errors.New("source not found")

// Provider exposes the named tabular sources of one workbook.
type Provider interface {
	// Source resolves a named source for reading.
	Source(name string) (Source, error)
	// DeleteSource removes a source if it exists. Missing sources are not
	// an error.
	DeleteSource(name string) error
	// CreateSource creates a fresh, empty destination source.
	CreateSource(name string) (Destination, error)
}

// Source reads a full cell grid; row 0 is the header row. Rows may come
// back with inconsistent lengths.
type Source interface {
	ReadAll(ctx context.Context) (model.Grid, error)
}

// FormatOptions describes the cosmetic formatting applied to a written
// range. Backends that carry no formatting (CSV) treat this as a no-op.
type FormatOptions struct {
	Bold            bool   `json:"bold"`
	BackgroundColor string `json:"background_color,omitempty"`
	FontColor       string `json:"font_color,omitempty"`
	WrapText        bool   `json:"wrap_text"`
	VerticalAlign   string `json:"vertical_align,omitempty"`
	AutofitColumns  bool   `json:"autofit_columns"`
}

// Destination accepts a written grid and optional formatting.
type Destination interface {
	WriteCells(ctx context.Context, topLeftRow, topLeftCol int, grid model.Grid) error
	ApplyFormatting(ctx context.Context, opts FormatOptions) error
}

// FromSpec builds a provider from a run spec's workbook description.
func FromSpec(spec model.WorkbookSpec) (Provider, error) {
	switch spec.Type {
	case "dir":
		if spec.Path == "" {
			return nil, fmt.Errorf("dir workbook requires a path")
		}
		return NewDir(spec.Path), nil
	case "inline", "":
		mem := NewMemory()
		for name, rows := range spec.Sheets {
			mem.SetSheet(name, model.GridFromValues(rows))
		}
		return mem, nil
	default:
		return nil, fmt.Errorf("unknown workbook type: %s", spec.Type)
	}
}
