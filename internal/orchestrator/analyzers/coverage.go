package analyzers

import (
	"path/filepath"

	"golang.org/x/tools/cover"
)

func init() {
	Registry["coverage"] = Coverage
}

// CoverageData is the `coverage` receipt section: the Go test coverage
// percentage parsed from a `cover.out` profile at the scan root.
type CoverageData struct {
	Percent           float64
	TotalStatements   int
	CoveredStatements int
	Source            string
}

// Coverage parses a Go coverage profile (`cover.out`, produced by
// `go test -coverprofile=cover.out`) at the repository root into a
// covered-statement percentage for the Health preset. Unavailable when
// no profile is present -- this analyzer never shells out to `go test`
// itself, it only reads a profile the caller already produced.
//
// Grounded on the teacher's internal/analyzer/c6_testing.go
// parseGoCoverage, which parses the same format via
// golang.org/x/tools/cover.
func Coverage(in Input) Result {
	path := filepath.Join(in.Root, "cover.out")
	profiles, err := cover.ParseProfiles(path)
	if err != nil {
		return Result{Capability: unavailable("no cover.out coverage profile found at repository root")}
	}

	var total, covered int
	for _, p := range profiles {
		for _, block := range p.Blocks {
			total += block.NumStmt
			if block.Count > 0 {
				covered += block.NumStmt
			}
		}
	}

	var pct float64
	if total > 0 {
		pct = round2(float64(covered) / float64(total) * 100)
	}

	return Result{
		Data: CoverageData{
			Percent:           pct,
			TotalStatements:   total,
			CoveredStatements: covered,
			Source:            "go-cover",
		},
		Capability: available(),
	}
}
