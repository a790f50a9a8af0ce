package analyzers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
)

func init() {
	Registry["license"] = License
}

// LicenseData is the `license` receipt section (Security preset).
type LicenseData struct {
	Detected   string
	Path       string
	Confidence string
}

var licenseFileNames = []string{
	"LICENSE", "LICENSE.txt", "LICENSE.md",
	"COPYING", "LICENSE-MIT", "LICENSE-APACHE",
}

// licenseMarkers matches by substring against well-known license
// boilerplate rather than parsing SPDX identifiers: the marker text
// is stable across license revisions that don't change terms.
var licenseMarkers = []struct {
	Name    string
	Markers []string
}{
	{"MIT", []string{"Permission is hereby granted, free of charge"}},
	{"Apache-2.0", []string{"Apache License", "Version 2.0"}},
	{"GPL-3.0", []string{"GNU GENERAL PUBLIC LICENSE", "Version 3"}},
	{"GPL-2.0", []string{"GNU GENERAL PUBLIC LICENSE", "Version 2"}},
	{"BSD-3-Clause", []string{"Redistributions of source code must retain"}},
	{"Unlicense", []string{"This is free and unencumbered software"}},
	{"MPL-2.0", []string{"Mozilla Public License Version 2.0"}},
}

// License looks for a recognized LICENSE file at the scan root and
// classifies it by boilerplate match. A missing license file is
// reported as a Warn finding, not a silently empty section (spec.md
// §4.10 "no green by omission").
func License(in Input) Result {
	for _, name := range licenseFileNames {
		data, err := os.ReadFile(filepath.Join(in.Root, name))
		if err != nil {
			continue
		}
		text := string(data)
		for _, candidate := range licenseMarkers {
			if matchesAll(text, candidate.Markers) {
				return Result{
					Data:       LicenseData{Detected: candidate.Name, Path: name, Confidence: "high"},
					Capability: available(),
				}
			}
		}
		return Result{
			Data:       LicenseData{Detected: "Unknown", Path: name, Confidence: "low"},
			Capability: available(),
		}
	}

	finding := sensor.NewFinding("tokmd", sensor.Finding{
		CheckID:  "license",
		Code:     "missing-license",
		Severity: sensor.SeverityWarn,
		Title:    "No license file found",
		Message:  "repository root contains no recognized LICENSE file",
	})
	return Result{
		Data:       LicenseData{Detected: "None"},
		Findings:   []sensor.Finding{finding},
		Capability: available(),
	}
}

func matchesAll(text string, markers []string) bool {
	for _, m := range markers {
		if !strings.Contains(text, m) {
			return false
		}
	}
	return true
}
