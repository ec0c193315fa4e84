package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-posture-summary/internal/model"
)

func registryWith(ids ...string) *MasterRegistry {
	reg := &MasterRegistry{
		IDHeaderName: "UniqueID",
		IDs:          make(map[string]bool),
		Attrs:        make(map[string]map[string]model.Cell),
	}
	for _, id := range ids {
		reg.IDs[id] = true
	}
	return reg
}

func listRule(sheet string, dataHeaders ...string) model.AggregationRule {
	return model.AggregationRule{
		SheetName:    sheet,
		AppIDHeaders: []string{"App ID"},
		DataHeaders:  dataHeaders,
		Strategy:     model.StrategyList,
	}
}

func TestExtractAccumulatesPerApplication(t *testing.T) {
	grid := textGrid(
		[]string{"App ID", "Patch Name", "Status"},
		[]string{"app1", "KB1", "Installed"},
		[]string{"app1", "KB2", "Pending"},
		[]string{"app2", "KB3", "Installed"},
	)
	store := make(EntityAttributeStore)

	Extract(listRule("Patches", "Patch Name", "Status"), grid, registryWith("app1", "app2"), store, &Diagnostics{})

	require.Len(t, store.Values("app1", "Patch Name"), 2)
	assert.Equal(t, "KB1", store.Values("app1", "Patch Name")[0].DisplayString())
	assert.Equal(t, "KB2", store.Values("app1", "Patch Name")[1].DisplayString())
	assert.Len(t, store.Values("app2", "Status"), 1)
}

func TestExtractDropsUnregisteredApplications(t *testing.T) {
	grid := textGrid(
		[]string{"App ID", "Status"},
		[]string{"app1", "Installed"},
		[]string{"rogue", "Installed"},
	)
	store := make(EntityAttributeStore)

	Extract(listRule("Patches", "Status"), grid, registryWith("app1"), store, &Diagnostics{})

	assert.Len(t, store.Values("app1", "Status"), 1)
	assert.Empty(t, store.Values("rogue", "Status"))
}

func TestExtractSkipsEmptyCells(t *testing.T) {
	grid := textGrid(
		[]string{"App ID", "Status"},
		[]string{"app1", ""},
		[]string{"app1", "Installed"},
	)
	store := make(EntityAttributeStore)

	Extract(listRule("Patches", "Status"), grid, registryWith("app1"), store, &Diagnostics{})

	require.Len(t, store.Values("app1", "Status"), 1)
	assert.Equal(t, "Installed", store.Values("app1", "Status")[0].DisplayString())
}

func TestExtractSkipsRuleWithoutAppIDColumn(t *testing.T) {
	grid := textGrid(
		[]string{"Hostname", "Status"},
		[]string{"app1", "Installed"},
	)
	store := make(EntityAttributeStore)

	Extract(listRule("Patches", "Status"), grid, registryWith("app1"), store, &Diagnostics{})

	assert.Empty(t, store)
}

func TestExtractSkipsRuleMissingCriticalColumn(t *testing.T) {
	// Numeric strategies cannot run without their value header.
	rule := model.AggregationRule{
		SheetName:    "Findings",
		AppIDHeaders: []string{"App ID"},
		DataHeaders:  []string{"Severity", "Days Open"},
		Strategy:     model.StrategySum,
		ValueHeader:  "Days Open",
	}
	grid := textGrid(
		[]string{"App ID", "Severity"},
		[]string{"app1", "High"},
	)
	store := make(EntityAttributeStore)

	Extract(rule, grid, registryWith("app1"), store, &Diagnostics{})

	assert.Empty(t, store)
}

func TestExtractToleratesMissingNonCriticalColumn(t *testing.T) {
	// The value header is present; a missing secondary data header only
	// narrows the extraction.
	rule := model.AggregationRule{
		SheetName:    "Findings",
		AppIDHeaders: []string{"App ID"},
		DataHeaders:  []string{"Severity", "Days Open"},
		Strategy:     model.StrategySum,
		ValueHeader:  "Days Open",
	}
	grid := textGrid(
		[]string{"App ID", "Days Open"},
		[]string{"app1", "12"},
	)
	store := make(EntityAttributeStore)

	Extract(rule, grid, registryWith("app1"), store, &Diagnostics{})

	require.Len(t, store.Values("app1", "Days Open"), 1)
	assert.Empty(t, store.Values("app1", "Severity"))
}

func TestExtractHeaderOnlySheet(t *testing.T) {
	grid := textGrid([]string{"App ID", "Status"})
	store := make(EntityAttributeStore)

	Extract(listRule("Patches", "Status"), grid, registryWith("app1"), store, &Diagnostics{})

	assert.Empty(t, store)
}
