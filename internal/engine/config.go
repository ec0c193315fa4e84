package engine

import (
	"fmt"
	"strings"

	"go-posture-summary/internal/model"
	"go-posture-summary/pkg/utils"
)

// Recognized header spellings of the configuration sheet, all matched
// case-insensitively.
var (
	enabledHeaders      = []string{"IsEnabled", "Enabled"}
	sheetNameHeaders    = []string{"SheetName", "Sheet Name"}
	appIDHeaderHeaders  = []string{"AppIdHeaders", "App ID Headers", "Application ID Headers"}
	dataHeadersHeaders  = []string{"DataHeadersToPull", "Data Headers"}
	aggTypeHeaders      = []string{"AggregationType", "Aggregation Type"}
	valueHeaderHeaders  = []string{"ValueHeaderForAggregation", "Value Header"}
	masterFieldsHeaders = []string{"MasterAppFieldsToPull", "Master Fields"}
)

// Config is the parsed configuration sheet: the enabled aggregation rules
// plus the global, deduplicated list of registry fields to pass through.
type Config struct {
	Rules        []model.AggregationRule
	MasterFields []string
}

// LoadConfig parses the configuration grid into validated rules.
//
// Two failure severities are deliberately distinct: per-row conditions
// that only skip that row (disabled, blank sheet name, unknown strategy)
// are warnings, while strategy validation failures are hard errors. A
// hard error anywhere invalidates the entire load, but the scan still
// visits every row first so all problems are reported in one pass.
func LoadConfig(grid model.Grid, diag *Diagnostics) (*Config, error) {
	const stage = "config"

	if grid.RowCount() == 0 {
		return nil, fmt.Errorf("configuration sheet is empty")
	}
	header := grid[0]

	enabledCol := ResolveHeader(header, enabledHeaders)
	sheetCol := ResolveHeader(header, sheetNameHeaders)
	appIDCol := ResolveHeader(header, appIDHeaderHeaders)
	aggCol := ResolveHeader(header, aggTypeHeaders)

	var missing []string
	if enabledCol == HeaderNotFound {
		missing = append(missing, enabledHeaders[0])
	}
	if sheetCol == HeaderNotFound {
		missing = append(missing, sheetNameHeaders[0])
	}
	if appIDCol == HeaderNotFound {
		missing = append(missing, appIDHeaderHeaders[0])
	}
	if aggCol == HeaderNotFound {
		missing = append(missing, aggTypeHeaders[0])
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("configuration sheet is missing essential columns: %s", strings.Join(missing, ", "))
	}

	// Optional columns; absence here only matters once a rule's strategy
	// needs them, which validation below reports per row.
	dataCol := ResolveHeader(header, dataHeadersHeaders)
	valueCol := ResolveHeader(header, valueHeaderHeaders)
	masterCol := ResolveHeader(header, masterFieldsHeaders)

	maxCol := enabledCol
	for _, c := range []int{sheetCol, appIDCol, aggCol, dataCol, valueCol, masterCol} {
		if c > maxCol {
			maxCol = c
		}
	}

	cfg := &Config{}
	seenFields := make(map[string]bool)
	invalid := false

	for r := 1; r < grid.RowCount(); r++ {
		row := grid[r]
		rowNum := r + 1 // 1-based, as a user sees it

		// Malformed short rows are skipped without comment.
		if len(row) <= maxCol {
			continue
		}

		enabled := strings.TrimSpace(row[enabledCol].DisplayString())
		if !strings.EqualFold(enabled, "TRUE") {
			diag.Warnf(stage, "row %d is not enabled; skipping", rowNum)
			continue
		}

		sheetName := strings.TrimSpace(row[sheetCol].DisplayString())
		appIDsRaw := strings.TrimSpace(row[appIDCol].DisplayString())
		if sheetName == "" || appIDsRaw == "" {
			diag.Warnf(stage, "row %d has no sheet name or app ID headers; skipping", rowNum)
			continue
		}

		rule := model.AggregationRule{
			SheetName:    sheetName,
			AppIDHeaders: utils.SplitAndTrim(appIDsRaw),
			ConfigRow:    rowNum,
		}
		if dataCol != HeaderNotFound {
			rule.DataHeaders = utils.SplitAndTrim(row[dataCol].DisplayString())
		}
		if valueCol != HeaderNotFound {
			rule.ValueHeader = strings.TrimSpace(row[valueCol].DisplayString())
		}
		if masterCol != HeaderNotFound {
			rule.MasterFields = utils.SplitAndTrim(row[masterCol].DisplayString())
		}

		rawStrategy := strings.TrimSpace(row[aggCol].DisplayString())
		strategy, ok := model.NormalizeStrategy(rawStrategy)
		if !ok {
			diag.Warnf(stage, "row %d has unknown aggregation type %q; falling back to List", rowNum, rawStrategy)
			strategy = model.StrategyList
		}
		rule.Strategy = strategy

		if err := validateRule(rule, diag); err != nil {
			diag.Errorf(stage, "row %d: %v", rowNum, err)
			invalid = true
			continue
		}

		for _, f := range rule.MasterFields {
			if !seenFields[f] {
				seenFields[f] = true
				cfg.MasterFields = append(cfg.MasterFields, f)
			}
		}
		cfg.Rules = append(cfg.Rules, rule)
	}

	if invalid {
		return nil, fmt.Errorf("configuration contains invalid rules; aborting before extraction")
	}
	if len(cfg.Rules) == 0 {
		diag.Warnf(stage, "no enabled rules configured; summary will be empty")
	}
	return cfg, nil
}

// validateRule applies the strategy-specific hard requirements.
func validateRule(rule model.AggregationRule, diag *Diagnostics) error {
	switch rule.Strategy {
	case model.StrategyList, model.StrategyCount, model.StrategyUniqueList:
		if len(rule.DataHeaders) == 0 {
			return fmt.Errorf("strategy %s requires at least one data header", rule.Strategy)
		}
		if rule.Strategy == model.StrategyUniqueList && len(rule.DataHeaders) > 1 {
			diag.Warnf("config", "row %d: UniqueList uses only the first data header %q", rule.ConfigRow, rule.DataHeaders[0])
		}
	case model.StrategySum, model.StrategyAverage, model.StrategyMin, model.StrategyMax:
		if rule.ValueHeader == "" {
			return fmt.Errorf("strategy %s requires a value header", rule.Strategy)
		}
		if !containsString(rule.DataHeaders, rule.ValueHeader) {
			return fmt.Errorf("value header %q must be listed in the data headers", rule.ValueHeader)
		}
	}
	return nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
