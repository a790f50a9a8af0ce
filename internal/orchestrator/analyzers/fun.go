package analyzers

import (
	"sort"
	"strconv"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["fun"] = Fun
}

// EcoLabel is a whimsical, deterministic build-energy proxy grade.
type EcoLabel struct {
	Grade     string
	CO2eGrams float64
	Basis     string
}

// FunFact is one human-readable factoid about the scanned tree.
type FunFact struct {
	Label string
	Value string
}

// FunData is the `fun` receipt section (Fun preset).
type FunData struct {
	Eco   EcoLabel
	Facts []FunFact
}

// kwhPerKLOC and gramsCO2PerKWh are a back-of-envelope proxy (build +
// CI minutes scale roughly with source volume), not a measured
// figure -- the Fun preset is explicitly playful, not a carbon audit.
const kwhPerKLOC = 0.002
const gramsCO2PerKWh = 400.0

// Fun computes an eco-label grade from total source volume and a
// handful of deterministic factoids (dominant language, longest
// file) for the Fun preset (spec.md §4.10).
func Fun(in Input) Result {
	var totalLines int
	byLang := map[string]int{}
	longestPath := ""
	longestLines := 0

	for _, r := range in.Export.Rows {
		if r.Kind != types.Parent {
			continue
		}
		totalLines += r.Lines
		byLang[r.Lang] += r.Code
		if r.Lines > longestLines {
			longestLines = r.Lines
			longestPath = r.Path
		}
	}

	kloc := float64(totalLines) / 1000
	co2 := kloc * kwhPerKLOC * gramsCO2PerKWh
	grade := ecoGrade(co2)

	type langCount struct {
		lang string
		code int
	}
	langs := make([]langCount, 0, len(byLang))
	for l, c := range byLang {
		langs = append(langs, langCount{l, c})
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].code != langs[j].code {
			return langs[i].code > langs[j].code
		}
		return langs[i].lang < langs[j].lang
	})

	facts := []FunFact{
		{Label: "total-languages", Value: strconv.Itoa(len(byLang))},
	}
	if longestPath != "" {
		facts = append(facts, FunFact{Label: "longest-file", Value: longestPath + " (" + strconv.Itoa(longestLines) + " lines)"})
	}
	if len(langs) > 0 {
		facts = append(facts, FunFact{Label: "dominant-language", Value: langs[0].lang})
	}

	data := FunData{
		Eco:   EcoLabel{Grade: grade, CO2eGrams: round2(co2), Basis: "kloc-proxy"},
		Facts: facts,
	}
	return Result{Data: data, Capability: available()}
}

func ecoGrade(co2 float64) string {
	switch {
	case co2 > 500:
		return "E"
	case co2 > 200:
		return "D"
	case co2 > 100:
		return "C"
	case co2 > 50:
		return "B"
	default:
		return "A"
	}
}
