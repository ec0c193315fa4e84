package engine

import (
	"strings"

	"go-posture-summary/internal/model"
)

// EntityAttributeStore accumulates raw posture values per application, per
// attribute header: appID -> header -> values in source row order,
// duplicates kept. Only applications present in the master registry are
// ever inserted; empty cells never are. The store is mutated by Extract
// during the extraction phase and treated as read-only by aggregation.
type EntityAttributeStore map[string]map[string][]model.Cell

// add appends a value for one application/header pair.
func (s EntityAttributeStore) add(appID, header string, value model.Cell) {
	attrs, ok := s[appID]
	if !ok {
		attrs = make(map[string][]model.Cell)
		s[appID] = attrs
	}
	attrs[header] = append(attrs[header], value)
}

// Values returns the accumulated list for one application/header pair.
func (s EntityAttributeStore) Values(appID, header string) []model.Cell {
	if attrs, ok := s[appID]; ok {
		return attrs[header]
	}
	return nil
}

// Extract scans one rule's sheet and accumulates per-application values
// into the store. All failure modes here are rule-level: they skip the
// rule with a warning and never abort the run.
func Extract(rule model.AggregationRule, grid model.Grid, reg *MasterRegistry, store EntityAttributeStore, diag *Diagnostics) {
	const stage = "extract"

	if grid.RowCount() < 2 {
		diag.Warnf(stage, "sheet %q is empty or header-only; skipping rule", rule.SheetName)
		return
	}
	header := grid[0]

	idCol := ResolveHeader(header, rule.AppIDHeaders)
	if idCol == HeaderNotFound {
		diag.Warnf(stage, "sheet %q has no app ID column (tried %s); skipping rule",
			rule.SheetName, strings.Join(rule.AppIDHeaders, ", "))
		return
	}

	resolved := make(map[string]int)
	for _, h := range neededHeaders(rule) {
		col := ResolveHeader(header, []string{h})
		if col == HeaderNotFound {
			if criticalHeader(rule, h) {
				diag.Warnf(stage, "sheet %q is missing critical column %q; skipping rule", rule.SheetName, h)
				return
			}
			diag.Warnf(stage, "sheet %q is missing column %q; excluded from extraction", rule.SheetName, h)
			continue
		}
		resolved[h] = col
	}

	// Second guard: a header can be individually non-critical yet still
	// leave the strategy without the columns it must have.
	if !requiredColumnsPresent(rule, resolved) {
		diag.Warnf(stage, "sheet %q resolved no usable columns for strategy %s; skipping rule", rule.SheetName, rule.Strategy)
		return
	}

	added := 0
	for r := 1; r < grid.RowCount(); r++ {
		appID := strings.TrimSpace(grid.At(r, idCol).DisplayString())
		if appID == "" || !reg.IDs[appID] {
			// The join filter: rows for unregistered applications are dropped.
			continue
		}
		for h, col := range resolved {
			value := grid.At(r, col)
			if value.IsEmpty() {
				continue
			}
			store.add(appID, h, value)
			added++
		}
	}
	diag.Infof(stage, "sheet %q: accumulated %d values", rule.SheetName, added)
}

// neededHeaders is the union of the rule's data headers and its value
// header, preserving declaration order.
func neededHeaders(rule model.AggregationRule) []string {
	headers := append([]string(nil), rule.DataHeaders...)
	if rule.ValueHeader != "" && !containsString(headers, rule.ValueHeader) {
		headers = append(headers, rule.ValueHeader)
	}
	return headers
}

// criticalHeader reports whether a missing header makes the whole rule
// unusable rather than merely narrowing it.
func criticalHeader(rule model.AggregationRule, header string) bool {
	switch rule.Strategy {
	case model.StrategyList, model.StrategyCount:
		return containsString(rule.DataHeaders, header)
	case model.StrategyUniqueList:
		return len(rule.DataHeaders) > 0 && rule.DataHeaders[0] == header
	case model.StrategySum, model.StrategyAverage, model.StrategyMin, model.StrategyMax:
		return header == rule.ValueHeader
	}
	return false
}

// requiredColumnsPresent re-verifies the strategy's full column set
// against what actually resolved.
func requiredColumnsPresent(rule model.AggregationRule, resolved map[string]int) bool {
	switch rule.Strategy {
	case model.StrategyList, model.StrategyCount:
		for _, h := range rule.DataHeaders {
			if _, ok := resolved[h]; !ok {
				return false
			}
		}
		return true
	case model.StrategyUniqueList:
		if len(rule.DataHeaders) == 0 {
			return false
		}
		_, ok := resolved[rule.DataHeaders[0]]
		return ok
	case model.StrategySum, model.StrategyAverage, model.StrategyMin, model.StrategyMax:
		_, ok := resolved[rule.ValueHeader]
		return ok
	}
	return false
}
