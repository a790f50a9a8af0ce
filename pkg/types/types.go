// Package types holds the value types shared across the scan,
// aggregation, analytics, and serialization stages: FileRow, the
// aggregation rows, report containers, and the receipt envelope.
// Every type here is a plain value owned by the stage that builds it
// and consumed by move by the next stage -- no cyclic references.
// JSON tags are the wire format directly: every top-level receipt
// field is snake_case per spec.md §6, so there is no separate
// wire-format struct to keep in sync for these shared shapes.
package types

import "encoding/json"

// Kind marks whether a FileRow describes a file's primary (Parent)
// language or an embedded fragment (Child) detected inside it.
type Kind int

const (
	Parent Kind = iota
	Child
)

// String returns the lowercase name used in serialized output.
func (k Kind) String() string {
	if k == Child {
		return "child"
	}
	return "parent"
}

// MarshalJSON renders Kind as its lowercase string form.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// FileRow is one (path, language, kind) observation produced by the
// Scanner. Invariant: Lines == Code + Comments + Blanks.
type FileRow struct {
	Path     string `json:"path"` // normalized, forward-slash, relative path
	Module   string `json:"module"` // module key derived from Path
	Lang     string `json:"lang"` // canonical language name
	Kind     Kind   `json:"kind"`
	Code     int    `json:"code"`
	Comments int    `json:"comments"`
	Blanks   int    `json:"blanks"`
	Lines    int    `json:"lines"`
	Bytes    int    `json:"bytes"`
	Tokens   int    `json:"tokens"`
}

// Row is one aggregation row over a language or module key. Totals
// equal the elementwise sum of Rows in a report, a folded "Other" row
// included (AvgLines aside, which is recomputed from the sums).
type Row struct {
	Key      string `json:"key"`
	Code     int    `json:"code"`
	Comments int    `json:"comments"`
	Blanks   int    `json:"blanks"`
	Lines    int    `json:"lines"`
	Files    int    `json:"files"` // unique parent-file count
	Bytes    int    `json:"bytes"`
	Tokens   int    `json:"tokens"`
	AvgLines int    `json:"avg_lines"` // round_half_up(Lines / Files), 0 when Files == 0
}

// Totals carries the same fields as Row minus the key, computed
// before any top-N folding.
type Totals struct {
	Code     int `json:"code"`
	Comments int `json:"comments"`
	Blanks   int `json:"blanks"`
	Lines    int `json:"lines"`
	Files    int `json:"files"`
	Bytes    int `json:"bytes"`
	Tokens   int `json:"tokens"`
	AvgLines int `json:"avg_lines"`
}

// ChildrenMode selects how embedded-language fragments are folded
// into a language report.
type ChildrenMode int

const (
	Collapse ChildrenMode = iota
	Separate
)

func (m ChildrenMode) String() string {
	if m == Separate {
		return "separate"
	}
	return "collapse"
}

// MarshalJSON renders ChildrenMode as its lowercase string form.
func (m ChildrenMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// RedactMode selects which fields are hashed before serialization.
type RedactMode int

const (
	RedactNone RedactMode = iota
	RedactPaths
	RedactAll
)

func (m RedactMode) String() string {
	switch m {
	case RedactPaths:
		return "paths"
	case RedactAll:
		return "all"
	default:
		return "none"
	}
}

// MarshalJSON renders RedactMode as its lowercase string form.
func (m RedactMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// ReportParams records the parameters a report was built with, so
// the envelope can echo them back verbatim.
type ReportParams struct {
	Top         int          `json:"top"`
	WithFiles   bool         `json:"with_files"`
	Children    ChildrenMode `json:"children"`
	ModuleRoots []string     `json:"module_roots"`
	ModuleDepth int          `json:"module_depth"`
}

// LangReport is an ordered sequence of per-language rows plus totals
// and the parameters used to build it.
type LangReport struct {
	Rows   []Row        `json:"rows"`
	Totals Totals       `json:"totals"`
	Params ReportParams `json:"params"`
}

// ModuleReport is an ordered sequence of per-module rows plus totals
// and the parameters used to build it.
type ModuleReport struct {
	Rows   []Row        `json:"rows"`
	Totals Totals       `json:"totals"`
	Params ReportParams `json:"params"`
}

// ExportData is a filtered, sorted, capped sequence of FileRow plus
// the scan parameters that produced it.
type ExportData struct {
	Rows     []FileRow    `json:"rows"`
	MinCode  int          `json:"min_code"`
	MaxRows  int          `json:"max_rows"`
	Children ChildrenMode `json:"children"`
}

// Status is the top-level completion state of a receipt.
type Status int

const (
	Complete Status = iota
	Partial
)

func (s Status) String() string {
	if s == Partial {
		return "partial"
	}
	return "complete"
}

// MarshalJSON renders Status as its lowercase string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ToolInfo identifies the producing binary inside an envelope.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Mode    string `json:"mode"`
}

// Envelope wraps every top-level output with schema versioning,
// provenance, and warnings. GeneratedAtMs is the only
// non-deterministic field in any output and is zeroed by determinism
// tests.
type Envelope struct {
	SchemaVersion int      `json:"schema_version"`
	GeneratedAtMs int64    `json:"generated_at_ms"`
	Tool          ToolInfo `json:"tool"`
	Mode          string   `json:"mode"`
	Status        Status   `json:"status"`
	Warnings      []string `json:"warnings"`
	Redacted      []string `json:"redacted"` // field names redacted, if any
}
