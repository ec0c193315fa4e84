package workbook

import (
	"context"
	"fmt"
	"sync"

	"go-posture-summary/internal/model"
)

// Memory is a workbook of named in-memory grids. It backs inline sheets
// submitted over the API and is the fixture of choice in tests.
type Memory struct {
	mu     sync.RWMutex
	sheets map[string]model.Grid

	// LastFormat records the most recent formatting request per source.
	lastFormat map[string]FormatOptions
}

// NewMemory creates an empty in-memory workbook.
func NewMemory() *Memory {
	return &Memory{
		sheets:     make(map[string]model.Grid),
		lastFormat: make(map[string]FormatOptions),
	}
}

// SetSheet installs or replaces a named grid.
func (m *Memory) SetSheet(name string, grid model.Grid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[name] = grid
}

// Sheet returns the current grid for a name, with ok=false when absent.
func (m *Memory) Sheet(name string) (model.Grid, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	grid, ok := m.sheets[name]
	return grid, ok
}

// Format returns the last formatting applied to a named source.
func (m *Memory) Format(name string) (FormatOptions, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	opts, ok := m.lastFormat[name]
	return opts, ok
}

func (m *Memory) Source(name string) (Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	grid, ok := m.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
	}
	return &memorySource{grid: grid}, nil
}

func (m *Memory) DeleteSource(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sheets, name)
	delete(m.lastFormat, name)
	return nil
}

func (m *Memory) CreateSource(name string) (Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[name] = model.Grid{}
	return &memoryDestination{wb: m, name: name}, nil
}

type memorySource struct {
	grid model.Grid
}

func (s *memorySource) ReadAll(ctx context.Context) (model.Grid, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	// Copy so callers can't mutate the workbook through the returned grid.
	out := make(model.Grid, len(s.grid))
	for i, row := range s.grid {
		out[i] = append([]model.Cell(nil), row...)
	}
	return out, nil
}

type memoryDestination struct {
	wb   *Memory
	name string
}

func (d *memoryDestination) WriteCells(ctx context.Context, topLeftRow, topLeftCol int, grid model.Grid) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	d.wb.mu.Lock()
	defer d.wb.mu.Unlock()

	target := d.wb.sheets[d.name]
	for i, row := range grid {
		r := topLeftRow + i
		for r >= len(target) {
			target = append(target, nil)
		}
		for j, cell := range row {
			c := topLeftCol + j
			for c >= len(target[r]) {
				target[r] = append(target[r], model.EmptyCell())
			}
			target[r][c] = cell
		}
	}
	d.wb.sheets[d.name] = target
	return nil
}

func (d *memoryDestination) ApplyFormatting(ctx context.Context, opts FormatOptions) error {
	d.wb.mu.Lock()
	defer d.wb.mu.Unlock()
	d.wb.lastFormat[d.name] = opts
	return nil
}
