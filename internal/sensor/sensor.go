// Package sensor holds the Finding/CapabilityStatus/SensorReport
// types shared across every analysis output (spec.md §4.9), plus
// deterministic finding fingerprinting.
package sensor

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/ingo-eichhorst/tokmd/internal/schema"
)

// Severity is a Finding's severity level, serialized lowercase.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarn
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	default:
		return "info"
	}
}

// Location pinpoints a finding inside a source tree.
type Location struct {
	Path string
	Line int
}

// Finding is one normalized observation produced by a sub-analyzer.
type Finding struct {
	CheckID     string
	Code        string
	Severity    Severity
	Title       string
	Message     string
	Location    *Location
	Evidence    string
	DocsURL     string
	Fingerprint string
}

// NewFinding builds a Finding and stamps its fingerprint, computed
// over (toolName, check_id, code, location.path or "").
func NewFinding(toolName string, f Finding) Finding {
	f.Fingerprint = fingerprint(toolName, f.CheckID, f.Code, locationPath(f.Location))
	return f
}

func locationPath(loc *Location) string {
	if loc == nil {
		return ""
	}
	return loc.Path
}

// fingerprint is a deterministic BLAKE3 digest over a canonical
// concatenation of the fingerprint components, truncated to 32 hex
// characters.
func fingerprint(toolName, checkID, code, path string) string {
	h := blake3.New()
	for _, part := range []string{toolName, checkID, code, path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)[:32]
}

// CapabilityState is the availability of a named analyzer feature.
type CapabilityState int

const (
	Available CapabilityState = iota
	Unavailable
	Skipped
)

func (s CapabilityState) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Skipped:
		return "skipped"
	default:
		return "available"
	}
}

// CapabilityStatus implements "no green by omission": an absent
// capability must be explicitly reported, never silently dropped.
type CapabilityStatus struct {
	State  CapabilityState
	Reason string
}

// Verdict is a SensorReport's top-level outcome.
type Verdict int

const (
	Pass Verdict = iota
	WarnVerdict
	Fail
	Skip
	Pending
)

func (v Verdict) String() string {
	switch v {
	case WarnVerdict:
		return "warn"
	case Fail:
		return "fail"
	case Skip:
		return "skip"
	case Pending:
		return "pending"
	default:
		return "pass"
	}
}

// Report is the envelope every sub-analyzer's output is wrapped in
// before being merged into an AnalysisReceipt.
type Report struct {
	SchemaID     string
	Verdict      Verdict
	Summary      string
	Findings     []Finding
	Artifacts    []string
	Capabilities map[string]CapabilityStatus
	Data         interface{}
}

// NewReport builds a Report stamped with the sensor schema identifier.
func NewReport(verdict Verdict, summary string, findings []Finding) Report {
	return Report{
		SchemaID: schema.SensorSchemaID,
		Verdict:  verdict,
		Summary:  summary,
		Findings: findings,
	}
}
