package analyzers

import (
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["git"] = Git
}

// Hotspot is a file ranked by churn * size, a cheap stand-in for
// "likely to need attention again" (the Risk/Identity presets).
type Hotspot struct {
	Path  string
	Churn int
	Code  int
	Score int
}

// GitData is the `git` / `predictive_churn` receipt section.
type GitData struct {
	CommitsAnalyzed int
	ChurnByPath      map[string]int
	Hotspots         []Hotspot
	PredictiveChurn  []string
}

const topHotspotsLimit = 10

// Git computes per-file churn (commit touch counts) and a churn*size
// hotspot ranking over the repository history, via go-git rather than
// shelling out to the git binary (spec.md §4.10's Risk/Identity/Git
// presets). Returns CapabilityStatus::Unavailable when root isn't a
// git working tree at all, per "no green by omission" (§4.10).
func Git(in Input) Result {
	repo, err := git.PlainOpen(in.Root)
	if err != nil {
		return Result{Capability: unavailable("not a git repository: " + err.Error())}
	}

	head, err := repo.Head()
	if err != nil {
		return Result{Capability: unavailable("no HEAD commit: " + err.Error())}
	}

	commitIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return Result{Capability: unavailable("git log failed: " + err.Error())}
	}
	defer commitIter.Close()

	churn := map[string]int{}
	analyzed := 0
	maxCommits := in.Limits.MaxCommits
	if maxCommits <= 0 {
		maxCommits = DefaultLimits.MaxCommits
	}

	err = commitIter.ForEach(func(c *object.Commit) error {
		if analyzed >= maxCommits {
			return storer.ErrStop
		}
		analyzed++

		stats, statErr := c.Stats()
		if statErr != nil {
			return nil
		}
		filesSeen := 0
		for _, fs := range stats {
			if in.Limits.MaxCommitFiles > 0 && filesSeen >= in.Limits.MaxCommitFiles {
				break
			}
			churn[fs.Name]++
			filesSeen++
		}
		return nil
	})
	if err != nil {
		return Result{Capability: unavailable("git log iteration failed: " + err.Error())}
	}

	codeByPath := map[string]int{}
	for _, r := range in.Export.Rows {
		if r.Kind == types.Parent {
			codeByPath[r.Path] = r.Code
		}
	}

	var hotspots []Hotspot
	for path, count := range churn {
		hotspots = append(hotspots, Hotspot{
			Path:  path,
			Churn: count,
			Code:  codeByPath[path],
			Score: count * codeByPath[path],
		})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Score != hotspots[j].Score {
			return hotspots[i].Score > hotspots[j].Score
		}
		return hotspots[i].Path < hotspots[j].Path
	})
	if len(hotspots) > topHotspotsLimit {
		hotspots = hotspots[:topHotspotsLimit]
	}

	predictive := make([]string, 0, len(hotspots))
	for _, h := range hotspots {
		predictive = append(predictive, h.Path)
	}

	data := GitData{
		CommitsAnalyzed: analyzed,
		ChurnByPath:      churn,
		Hotspots:         hotspots,
		PredictiveChurn:  predictive,
	}

	return Result{Data: data, Capability: available()}
}
