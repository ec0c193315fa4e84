package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Cell
	}{
		{"empty", "", EmptyCell()},
		{"whitespace only", "   ", EmptyCell()},
		{"number", "42", NumberCell(42)},
		{"decimal", "3.14", NumberCell(3.14)},
		{"negative", "-7.5", NumberCell(-7.5)},
		{"bool true", "TRUE", BoolCell(true)},
		{"bool false", "false", BoolCell(false)},
		{"text", "hello", TextCell("hello")},
		{"trimmed text", "  hello  ", TextCell("hello")},
		{"currency stays text", "$100", TextCell("$100")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCell(tt.in))
		})
	}
}

func TestCellDisplayString(t *testing.T) {
	assert.Equal(t, "", EmptyCell().DisplayString())
	assert.Equal(t, "hello", TextCell("hello").DisplayString())
	assert.Equal(t, "42", NumberCell(42).DisplayString())
	assert.Equal(t, "3.14", NumberCell(3.14).DisplayString())
	assert.Equal(t, "true", BoolCell(true).DisplayString())
}

func TestCellIsEmpty(t *testing.T) {
	assert.True(t, EmptyCell().IsEmpty())
	assert.True(t, TextCell("").IsEmpty())
	assert.False(t, TextCell("x").IsEmpty())
	assert.False(t, NumberCell(0).IsEmpty())
	assert.False(t, BoolCell(false).IsEmpty())
}

func TestGridAtOutOfBounds(t *testing.T) {
	grid := Grid{
		{TextCell("a"), TextCell("b")},
		{TextCell("c")},
	}

	assert.Equal(t, TextCell("b"), grid.At(0, 1))
	// Short row
	assert.Equal(t, EmptyCell(), grid.At(1, 1))
	// Outside the grid entirely
	assert.Equal(t, EmptyCell(), grid.At(5, 0))
	assert.Equal(t, EmptyCell(), grid.At(-1, 0))
}

func TestGridFromValues(t *testing.T) {
	grid := GridFromValues([][]interface{}{
		{"ID", "Score"},
		{"app1", 9.5},
		{"app2", nil},
		{"app3", true},
	})

	assert.Equal(t, 4, grid.RowCount())
	assert.Equal(t, TextCell("app1"), grid.At(1, 0))
	assert.Equal(t, NumberCell(9.5), grid.At(1, 1))
	assert.Equal(t, EmptyCell(), grid.At(2, 1))
	assert.Equal(t, BoolCell(true), grid.At(3, 1))
}
