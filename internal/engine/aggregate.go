package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go-posture-summary/internal/model"
)

// groupKeySeparator joins a row's per-header values into a Count group
// key. It must never appear in real data.
const groupKeySeparator = "|||"

// errorCellValue is written when aggregating one application/rule cell
// panics; the failure never propagates past that cell.
const errorCellValue = "ERROR"

// Aggregate reduces one application's accumulated values into a single
// output cell using the rule's strategy. When the application has no data
// the result is the missing sentinel (an empty cell), except for Count
// which yields numeric 0.
func Aggregate(rule model.AggregationRule, appID string, store EntityAttributeStore, diag *Diagnostics) (cell model.Cell) {
	defer func() {
		if r := recover(); r != nil {
			diag.Errorf("aggregate", "failed to aggregate %s for %q: %v", rule.SheetName, appID, r)
			cell = model.TextCell(errorCellValue)
		}
	}()

	switch rule.Strategy {
	case model.StrategyList:
		return aggregateList(rule, appID, store)
	case model.StrategyCount:
		return aggregateCount(rule, appID, store)
	case model.StrategySum, model.StrategyAverage, model.StrategyMin, model.StrategyMax:
		return aggregateNumeric(rule, appID, store)
	case model.StrategyUniqueList:
		return aggregateUniqueList(rule, appID, store)
	}
	panic(fmt.Sprintf("unhandled aggregation strategy %q", rule.Strategy))
}

// alignedRows materializes the application's values as row-aligned string
// tuples: the i-th value of each data header forms row i, up to the
// longest list, shorter lists padding with "".
func alignedRows(rule model.AggregationRule, appID string, store EntityAttributeStore) [][]string {
	maxLen := 0
	for _, h := range rule.DataHeaders {
		if n := len(store.Values(appID, h)); n > maxLen {
			maxLen = n
		}
	}
	rows := make([][]string, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		row := make([]string, 0, len(rule.DataHeaders))
		for _, h := range rule.DataHeaders {
			values := store.Values(appID, h)
			if i < len(values) {
				row = append(row, values[i].DisplayString())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func aggregateList(rule model.AggregationRule, appID string, store EntityAttributeStore) model.Cell {
	rows := alignedRows(rule, appID, store)
	if len(rows) == 0 {
		return model.EmptyCell()
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " - "))
	}
	return model.TextCell(strings.Join(lines, "\n"))
}

func aggregateCount(rule model.AggregationRule, appID string, store EntityAttributeStore) model.Cell {
	rows := alignedRows(rule, appID, store)
	if len(rows) == 0 {
		return model.NumberCell(0)
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, row := range rows {
		key := strings.Join(row, groupKeySeparator)
		counts[key]++
		display[key] = strings.Join(row, " - ")
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, display[key]+": "+strconv.Itoa(counts[key]))
	}
	return model.TextCell(strings.Join(lines, "\n"))
}

func aggregateNumeric(rule model.AggregationRule, appID string, store EntityAttributeStore) model.Cell {
	var nums []float64
	for _, v := range store.Values(appID, rule.ValueHeader) {
		if f, ok := ToNumber(v); ok {
			nums = append(nums, f)
		}
	}
	// An empty numeric set is missing data, not zero.
	if len(nums) == 0 {
		return model.EmptyCell()
	}

	switch rule.Strategy {
	case model.StrategySum:
		return model.NumberCell(sum(nums))
	case model.StrategyAverage:
		avg := sum(nums) / float64(len(nums))
		return model.NumberCell(math.Round(avg*100) / 100)
	case model.StrategyMin:
		min := nums[0]
		for _, n := range nums[1:] {
			if n < min {
				min = n
			}
		}
		return model.NumberCell(min)
	case model.StrategyMax:
		max := nums[0]
		for _, n := range nums[1:] {
			if n > max {
				max = n
			}
		}
		return model.NumberCell(max)
	}
	return model.EmptyCell()
}

func aggregateUniqueList(rule model.AggregationRule, appID string, store EntityAttributeStore) model.Cell {
	values := store.Values(appID, rule.DataHeaders[0])
	if len(values) == 0 {
		return model.EmptyCell()
	}
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		s := v.DisplayString()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, s)
		}
	}
	sort.Strings(unique)
	return model.TextCell(strings.Join(unique, "\n"))
}

func sum(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}
