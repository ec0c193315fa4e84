package engine

import (
	"sort"

	"go-posture-summary/internal/model"
)

// Assemble computes the summary header schema and one output row per
// registered application.
//
// The header is [identifier column] ++ passthrough fields (first-seen
// order) ++ one column per rule keyed by its sheet name (first rule wins
// when two rules target the same sheet; later duplicates are dropped with
// a warning, not an error). Every returned row has exactly the header's
// length: rows that come out misaligned are dropped and reported rather
// than written, a guard against the column-misalignment defects this
// summary has accumulated in the past.
func Assemble(rules []model.AggregationRule, reg *MasterRegistry, store EntityAttributeStore, diag *Diagnostics) ([]model.Cell, [][]model.Cell) {
	const stage = "assemble"

	header := []model.Cell{model.TextCell(reg.IDHeaderName)}
	for _, field := range reg.Fields {
		header = append(header, model.TextCell(field))
	}

	// Map each summary column back to its owning rule, first rule wins.
	seenSheets := make(map[string]bool)
	var ruleColumns []model.AggregationRule
	for _, rule := range rules {
		if seenSheets[rule.SheetName] {
			diag.Warnf(stage, "duplicate sheet %q in configuration; keeping the first rule and dropping row %d", rule.SheetName, rule.ConfigRow)
			continue
		}
		seenSheets[rule.SheetName] = true
		ruleColumns = append(ruleColumns, rule)
		header = append(header, model.TextCell(rule.SheetName))
	}

	appIDs := make([]string, 0, len(reg.IDs))
	for id := range reg.IDs {
		appIDs = append(appIDs, id)
	}
	sort.Strings(appIDs)

	dataRows := make([][]model.Cell, 0, len(appIDs))
	for _, appID := range appIDs {
		row := make([]model.Cell, 0, len(header))
		row = append(row, model.TextCell(appID))

		for _, field := range reg.Fields {
			if value, ok := reg.Attrs[appID][field]; ok {
				row = append(row, value)
			} else {
				row = append(row, model.EmptyCell())
			}
		}
		for _, rule := range ruleColumns {
			row = append(row, Aggregate(rule, appID, store, diag))
		}

		if len(row) != len(header) {
			diag.Errorf(stage, "row for %q has %d columns, expected %d; dropping the row", appID, len(row), len(header))
			continue
		}
		dataRows = append(dataRows, row)
	}

	return header, dataRows
}
