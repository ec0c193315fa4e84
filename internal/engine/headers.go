package engine

import (
	"strings"

	"go-posture-summary/internal/model"
)

// HeaderNotFound is the sentinel index for an unresolved header.
const HeaderNotFound = -1

// ResolveHeader returns the column index of the first header cell matching
// any of the candidate names, comparing case-insensitively after trimming
// whitespace. Candidates are tried in order so a rule can tolerate several
// historical spellings of the same logical column ("SheetName" vs
// "Sheet Name"). Returns HeaderNotFound when nothing matches.
func ResolveHeader(headerRow []model.Cell, candidates []string) int {
	for _, candidate := range candidates {
		want := strings.TrimSpace(candidate)
		if want == "" {
			continue
		}
		for i, cell := range headerRow {
			got := strings.TrimSpace(cell.DisplayString())
			if strings.EqualFold(got, want) {
				return i
			}
		}
	}
	return HeaderNotFound
}
