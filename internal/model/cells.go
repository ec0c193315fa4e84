package model

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// CellKind discriminates the closed set of scalar cell types a tabular
// source can hold.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
)

// Cell is a single scalar value read from (or written to) a tabular source.
// Exactly one of Text/Number/Bool is meaningful, selected by Kind.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
}

func EmptyCell() Cell            { return Cell{Kind: CellEmpty} }
func TextCell(s string) Cell     { return Cell{Kind: CellText, Text: s} }
func NumberCell(f float64) Cell  { return Cell{Kind: CellNumber, Number: f} }
func BoolCell(b bool) Cell       { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell carries no value: the empty kind or an
// empty text cell. Such values are never accumulated during extraction.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellText && c.Text == "")
}

// DisplayString renders the cell for output and comparisons: empty cells
// become "", numbers drop trailing zeros, booleans render as true/false.
func (c Cell) DisplayString() string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		return cast.ToString(c.Bool)
	}
	return ""
}

// ParseCell converts a raw string token (e.g. a CSV field) into a typed cell.
// Numbers and booleans are recognized, everything else stays text.
func ParseCell(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return EmptyCell()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return BoolCell(true)
	case "false":
		return BoolCell(false)
	}
	return TextCell(trimmed)
}

// CellFromValue converts a decoded JSON value (string, float64, bool, nil)
// into a cell. Used for inline workbook sheets submitted over the API.
func CellFromValue(v interface{}) Cell {
	switch val := v.(type) {
	case nil:
		return EmptyCell()
	case string:
		if val == "" {
			return EmptyCell()
		}
		return TextCell(val)
	case bool:
		return BoolCell(val)
	case float64:
		return NumberCell(val)
	case int:
		return NumberCell(float64(val))
	default:
		return TextCell(cast.ToString(val))
	}
}

// Grid is a rectangular-ish block of cells; row 0 is the header row.
// Rows may be ragged, so consumers index through At.
type Grid [][]Cell

// At returns the cell at (row, col), or an empty cell when the coordinates
// fall outside the grid. Sources have historically returned rows of
// inconsistent length, so every read goes through this bounds check.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return EmptyCell()
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return EmptyCell()
	}
	return r[col]
}

// RowCount returns the number of rows including the header.
func (g Grid) RowCount() int { return len(g) }

// GridFromValues builds a grid from decoded JSON rows.
func GridFromValues(rows [][]interface{}) Grid {
	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		cells := make([]Cell, 0, len(row))
		for _, v := range row {
			cells = append(cells, CellFromValue(v))
		}
		grid = append(grid, cells)
	}
	return grid
}
