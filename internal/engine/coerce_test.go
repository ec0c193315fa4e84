package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-posture-summary/internal/model"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name   string
		cell   model.Cell
		want   float64
		wantOK bool
	}{
		{"number cell", model.NumberCell(42.5), 42.5, true},
		{"plain text number", model.TextCell("17"), 17, true},
		{"currency", model.TextCell("$1,234.56"), 1234.56, true},
		{"percent", model.TextCell("95%"), 95, true},
		{"negative", model.TextCell("-5"), -5, true},
		{"embedded units", model.TextCell("12 days"), 12, true},
		{"pure text", model.TextCell("abc"), 0, false},
		{"empty cell", model.EmptyCell(), 0, false},
		{"empty text", model.TextCell(""), 0, false},
		{"bool true", model.BoolCell(true), 1, true},
		{"only symbols", model.TextCell("$,"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
