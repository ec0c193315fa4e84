package engine

import (
	"fmt"
	"strings"

	"go-posture-summary/internal/model"
)

// MasterRegistry is the authoritative application list: the identifier
// set the extractor joins against, plus per-application passthrough
// field values copied verbatim into the summary. Built once per run and
// read-only afterward.
type MasterRegistry struct {
	// IDHeaderName is the display name of the resolved identifier column;
	// it becomes the first summary column header.
	IDHeaderName string
	IDs          map[string]bool
	// Fields are the requested passthrough field names (deduplicated,
	// first request wins the ordering). Fields whose registry column was
	// not found stay in the schema but resolve to the missing sentinel.
	Fields []string
	Attrs  map[string]map[string]model.Cell
}

// LoadRegistry builds the registry from its grid. A missing identifier
// column is fatal; a missing passthrough column is only a warning and
// that field is dropped from value collection.
func LoadRegistry(grid model.Grid, idCandidates, masterFields []string, diag *Diagnostics) (*MasterRegistry, error) {
	const stage = "registry"

	if grid.RowCount() == 0 {
		return nil, fmt.Errorf("master registry sheet is empty")
	}
	header := grid[0]

	idCol := ResolveHeader(header, idCandidates)
	if idCol == HeaderNotFound {
		return nil, fmt.Errorf("master registry is missing an identifier column (tried %s)", strings.Join(idCandidates, ", "))
	}

	reg := &MasterRegistry{
		IDHeaderName: strings.TrimSpace(header[idCol].DisplayString()),
		IDs:          make(map[string]bool),
		Fields:       masterFields,
		Attrs:        make(map[string]map[string]model.Cell),
	}

	// Each passthrough column resolves independently.
	fieldCols := make(map[string]int, len(masterFields))
	for _, field := range masterFields {
		col := ResolveHeader(header, []string{field})
		if col == HeaderNotFound {
			diag.Warnf(stage, "passthrough field %q not found in the registry; it will be blank in the summary", field)
			continue
		}
		fieldCols[field] = col
	}

	for r := 1; r < grid.RowCount(); r++ {
		id := strings.TrimSpace(grid.At(r, idCol).DisplayString())
		if id == "" {
			continue
		}
		if reg.IDs[id] {
			// First occurrence wins; later rows are never merged in.
			diag.Warnf(stage, "duplicate application ID %q at row %d ignored; first occurrence wins", id, r+1)
			continue
		}
		reg.IDs[id] = true

		attrs := make(map[string]model.Cell, len(fieldCols))
		for field, col := range fieldCols {
			attrs[field] = grid.At(r, col)
		}
		reg.Attrs[id] = attrs
	}

	diag.Infof(stage, "loaded %d applications from the master registry", len(reg.IDs))
	return reg, nil
}
