package engine

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"go-posture-summary/internal/model"
)

// ToNumber converts a cell to a float64 on a best-effort basis. Text cells
// are stripped of every rune that is not a digit, '.' or '-' before
// parsing, so "$1,234.56" coerces to 1234.56. Empty cells and
// unparseable text report ok=false; they are dropped by the numeric
// aggregation strategies rather than treated as zero.
func ToNumber(c model.Cell) (float64, bool) {
	switch c.Kind {
	case model.CellEmpty:
		return 0, false
	case model.CellNumber:
		return c.Number, true
	case model.CellBool:
		return cast.ToFloat64(c.Bool), true
	case model.CellText:
		trimmed := strings.TrimSpace(c.Text)
		if trimmed == "" {
			return 0, false
		}
		var b strings.Builder
		for _, r := range trimmed {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// ToDisplayString renders a cell for output; empty cells become "".
func ToDisplayString(c model.Cell) string {
	return c.DisplayString()
}
