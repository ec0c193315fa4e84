package model

// Defaults for the well-known sheet names and the registry identifier
// column. The whole run is otherwise data-driven through the config sheet.
const (
	DefaultConfigSheet   = "Config"
	DefaultRegistrySheet = "MasterAppList"
	DefaultOutputSheet   = "Summary"
)

// DefaultRegistryIDHeaders are the accepted spellings of the registry's
// identifier column.
func DefaultRegistryIDHeaders() []string {
	return []string{"UniqueID", "Application ID"}
}

// WorkbookSpec identifies where the tabular sources live.
type WorkbookSpec struct {
	Type   string                     `json:"type"`             // "dir" or "inline"
	Path   string                     `json:"path,omitempty"`   // dir: directory of CSV sheets
	Sheets map[string][][]interface{} `json:"sheets,omitempty"` // inline: named grids
}

// RunSpec is the request body for POST /api/v1/runs and the document the
// CLI loads from disk. Zero values fall back to the defaults above.
type RunSpec struct {
	Workbook          WorkbookSpec `json:"workbook"`
	ConfigSheet       string       `json:"configSheet,omitempty"`
	RegistrySheet     string       `json:"registrySheet,omitempty"`
	RegistryIDHeaders []string     `json:"registryIdHeaders,omitempty"`
	OutputSheet       string       `json:"outputSheet,omitempty"`
	Schedule          string       `json:"schedule,omitempty"` // cron expression for recurring rebuilds
	Timeout           string       `json:"timeout,omitempty"`  // e.g. "5m"
}

// ApplyDefaults fills unset fields in place.
func (s *RunSpec) ApplyDefaults() {
	if s.ConfigSheet == "" {
		s.ConfigSheet = DefaultConfigSheet
	}
	if s.RegistrySheet == "" {
		s.RegistrySheet = DefaultRegistrySheet
	}
	if len(s.RegistryIDHeaders) == 0 {
		s.RegistryIDHeaders = DefaultRegistryIDHeaders()
	}
	if s.OutputSheet == "" {
		s.OutputSheet = DefaultOutputSheet
	}
}
