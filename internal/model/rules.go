package model

import "strings"

// Strategy is one of the closed set of aggregation kinds a configuration
// row can request.
type Strategy string

const (
	StrategyList       Strategy = "List"
	StrategyCount      Strategy = "Count"
	StrategySum        Strategy = "Sum"
	StrategyAverage    Strategy = "Average"
	StrategyMin        Strategy = "Min"
	StrategyMax        Strategy = "Max"
	StrategyUniqueList Strategy = "UniqueList"
)

// NormalizeStrategy maps a raw configuration cell to a Strategy: first
// letter upper-cased, rest lower-cased, then matched against the allowed
// set. ok is false for anything unrecognized (callers fall back to List).
func NormalizeStrategy(raw string) (Strategy, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	norm := strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
	switch norm {
	case "List":
		return StrategyList, true
	case "Count":
		return StrategyCount, true
	case "Sum":
		return StrategySum, true
	case "Average":
		return StrategyAverage, true
	case "Min":
		return StrategyMin, true
	case "Max":
		return StrategyMax, true
	case "Uniquelist":
		return StrategyUniqueList, true
	}
	return "", false
}

// IsNumeric reports whether the strategy reduces a single numeric column.
func (s Strategy) IsNumeric() bool {
	switch s {
	case StrategySum, StrategyAverage, StrategyMin, StrategyMax:
		return true
	}
	return false
}

// AggregationRule is one enabled configuration row: which sheet to read,
// which columns to pull, and how to reduce them per application.
type AggregationRule struct {
	SheetName    string   `json:"sheet_name"`
	AppIDHeaders []string `json:"app_id_headers"`
	DataHeaders  []string `json:"data_headers"`
	Strategy     Strategy `json:"strategy"`
	ValueHeader  string   `json:"value_header,omitempty"`
	MasterFields []string `json:"master_fields,omitempty"`
	ConfigRow    int      `json:"config_row"` // 1-based row in the config sheet, for diagnostics
}
