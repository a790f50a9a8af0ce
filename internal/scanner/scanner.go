// Package scanner implements the parallel directory walk and
// per-file language classification that produces a Languages
// structure (spec.md §4.3): a map of language name to parent file
// reports plus embedded-language children discovered inside them.
package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ingo-eichhorst/tokmd/internal/ignoreengine"
	"github.com/ingo-eichhorst/tokmd/internal/pathmodel"
)

// skipDirNames are always excluded from the walk regardless of ignore
// configuration -- VCS internals are never source.
var skipDirNames = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Options mirrors the CLI scan flags that feed the ignore engine and
// the file classifier.
type Options struct {
	StripPrefix               string
	Excluded                  []string
	Hidden                    bool
	NoIgnore                  bool
	NoIgnoreParent            bool
	NoIgnoreDot               bool
	NoIgnoreVCS               bool
	NoIgnoreGlobal            bool
	TreatDocStringsAsComments bool
}

func (o Options) ignoreOptions() ignoreengine.Options {
	return ignoreengine.Options{
		Excluded:       o.Excluded,
		Hidden:         o.Hidden,
		NoIgnore:       o.NoIgnore,
		NoIgnoreParent: o.NoIgnoreParent,
		NoIgnoreDot:    o.NoIgnoreDot,
		NoIgnoreVCS:    o.NoIgnoreVCS,
		NoIgnoreGlobal: o.NoIgnoreGlobal,
	}
}

// FileReport holds per-file stats for one parent file or one embedded
// fragment found inside a parent file.
type FileReport struct {
	Name     string // normalized path of the containing file
	Code     int
	Comments int
	Blanks   int
	Bytes    int
	Tokens   int
}

// Lines returns Code + Comments + Blanks.
func (f FileReport) Lines() int { return f.Code + f.Comments + f.Blanks }

// LangAgg is one language's aggregate: its own parent file reports,
// plus a map of embedded child language name to the reports found
// inside this language's own files (tokei's embedded-language model:
// Children is keyed by the language appearing INSIDE this one, e.g.
// Languages["HTML"].Children["JavaScript"] for a <script> block
// inside a .html file, or Languages["Markdown"].Children["Go"] for a
// fenced Go block in a .md file).
type LangAgg struct {
	Reports  []FileReport
	Children map[string][]FileReport
}

// Languages is the Scanner's output: one aggregate per canonical
// language name.
type Languages map[string]*LangAgg

// Result bundles the scan output with any non-fatal warnings
// accumulated along the way (per-file I/O errors, per spec.md §7).
type Result struct {
	Languages Languages
	Warnings  []string
}

type candidate struct {
	absPath string
	relPath string // normalized, before strip-prefix
	name    string
}

// Scan walks each of paths (a file or directory) honoring opts, and
// returns the aggregated Languages structure. Per-file processing runs
// in parallel with no ordering guarantees; candidates are discovered and
// indexed by a single-threaded walk first, so the final Languages map is always
// built from the same deterministic candidate order regardless of
// which goroutine finishes a given file first.
func Scan(paths []string, opts Options) (*Result, error) {
	var candidates []candidate
	var warnings []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			abs, _ := filepath.Abs(root)
			candidates = append(candidates, candidate{
				absPath: abs,
				relPath: pathmodel.NormalizePath(root, ""),
				name:    filepath.Base(root),
			})
			continue
		}

		engine, err := ignoreengine.New(root, opts.ignoreOptions())
		if err != nil {
			return nil, err
		}

		walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				warnings = append(warnings, "skipping "+path+": "+err.Error())
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				warnings = append(warnings, "skipping "+path+": "+relErr.Error())
				return nil
			}
			normalizedRel := pathmodel.NormalizePath(rel, "")
			name := info.Name()

			if info.IsDir() {
				if path != root && skipDirNames[name] {
					return filepath.SkipDir
				}
				if path != root {
					decision := engine.Check(normalizedRel, name, true)
					if decision.Ignored {
						return filepath.SkipDir
					}
				}
				return nil
			}

			decision := engine.Check(normalizedRel, name, false)
			if decision.Ignored {
				return nil
			}

			candidates = append(candidates, candidate{
				absPath: path,
				relPath: normalizedRel,
				name:    name,
			})
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	reports := make([]*fileResult, len(candidates))

	g := new(errgroup.Group)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			reports[i] = processFile(c, opts)
			return nil
		})
	}
	_ = g.Wait() // processFile never returns an error; failures are recorded as warnings

	languages := make(Languages)
	for _, r := range reports {
		if r == nil {
			continue
		}
		if r.warning != "" {
			warnings = append(warnings, r.warning)
			continue
		}

		agg, ok := languages[r.lang]
		if !ok {
			agg = &LangAgg{Children: make(map[string][]FileReport)}
			languages[r.lang] = agg
		}
		agg.Reports = append(agg.Reports, r.report)

		for childLang, fragReport := range r.children {
			agg.Children[childLang] = append(agg.Children[childLang], fragReport...)
		}
	}

	sort.Strings(warnings)

	return &Result{Languages: languages, Warnings: warnings}, nil
}

type fileResult struct {
	lang     string
	report   FileReport
	children map[string][]FileReport
	warning  string
}

func processFile(c candidate, opts Options) *fileResult {
	content, err := os.ReadFile(c.absPath)
	if err != nil {
		return &fileResult{warning: "skipping " + c.absPath + ": " + err.Error()}
	}

	firstLine := content
	if idx := indexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}

	rules, ok := classifyLanguage(c.name, string(firstLine))
	if !ok {
		return &fileResult{} // unsupported file type, silently skipped (not a warning)
	}

	normalizedName := pathmodel.NormalizePath(c.relPath, opts.StripPrefix)

	counts := classify(content, rules, opts.TreatDocStringsAsComments)
	report := FileReport{
		Name:     normalizedName,
		Code:     counts.Code,
		Comments: counts.Comments,
		Blanks:   counts.Blanks,
		Bytes:    len(content),
		Tokens:   countTokens(content),
	}

	children := make(map[string][]FileReport)
	for _, frag := range detectEmbedded(rules.name, content) {
		fragRules, ok := rulesForLanguage(frag.lang)
		if !ok {
			continue
		}
		fragCounts := classify(frag.content, fragRules, opts.TreatDocStringsAsComments)
		children[frag.lang] = append(children[frag.lang], FileReport{
			Name:     normalizedName,
			Code:     fragCounts.Code,
			Comments: fragCounts.Comments,
			Blanks:   fragCounts.Blanks,
			Bytes:    len(frag.content),
			Tokens:   countTokens(frag.content),
		})
	}

	return &fileResult{lang: rules.name, report: report, children: children}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
