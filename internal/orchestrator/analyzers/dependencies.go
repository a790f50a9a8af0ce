package analyzers

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

func init() {
	Registry["dependencies"] = Dependencies
}

// Dependency is one declared third-party dependency.
type Dependency struct {
	Name    string
	Version string
	Manifest string
}

// DepsData is the `deps` receipt section.
type DepsData struct {
	Manifests    []string
	Dependencies []Dependency
}

// manifestFiles maps a manifest file name to the parser that reads
// its declared dependencies.
var manifestFiles = map[string]func(string) ([]Dependency, error){
	"go.mod":          parseGoMod,
	"package.json":    parsePackageJSON,
	"Cargo.toml":      parseCargoToml,
	"requirements.txt": parseRequirementsTxt,
	"pyproject.toml":  parsePyprojectToml,
}

// Dependencies scans root for recognized manifest files and extracts
// their declared dependency names (Supply preset, spec.md §4.10).
// package.json is decoded as JSON; the other manifests are parsed
// line by line rather than through a full TOML document model, since
// only the dependency name/version pairs are needed. The capability is
// Unavailable when no recognized manifest is found.
func Dependencies(in Input) Result {
	var manifests []string
	var deps []Dependency

	for name, parse := range manifestFiles {
		full := filepath.Join(in.Root, name)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		manifests = append(manifests, name)
		found, err := parse(full)
		if err != nil {
			continue
		}
		deps = append(deps, found...)
	}
	if len(manifests) == 0 {
		return Result{Capability: unavailable("no recognized dependency manifest found at scan root")}
	}

	sort.Strings(manifests)
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Manifest != deps[j].Manifest {
			return deps[i].Manifest < deps[j].Manifest
		}
		return deps[i].Name < deps[j].Name
	})

	return Result{Data: DepsData{Manifests: manifests, Dependencies: deps}, Capability: available()}
}

var goModRequireLine = regexp.MustCompile(`^\s*([^\s]+)\s+(v[^\s]+)`)

func parseGoMod(path string) ([]Dependency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []Dependency
	inRequire := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case matchesPrefix(line, "require ("):
			inRequire = true
			continue
		case inRequire && matchesPrefix(line, ")"):
			inRequire = false
			continue
		case matchesPrefix(line, "require ") && !inRequire:
			if m := goModRequireLine.FindStringSubmatch(line[len("require "):]); m != nil {
				deps = append(deps, Dependency{Name: m[1], Version: m[2], Manifest: "go.mod"})
			}
			continue
		}
		if inRequire {
			if m := goModRequireLine.FindStringSubmatch(line); m != nil {
				deps = append(deps, Dependency{Name: m[1], Version: m[2], Manifest: "go.mod"})
			}
		}
	}
	return deps, scanner.Err()
}

func matchesPrefix(line, prefix string) bool {
	trimmed := line
	for len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[0] == '\t') {
		trimmed = trimmed[1:]
	}
	return len(trimmed) >= len(prefix) && trimmed[:len(prefix)] == prefix
}

type packageJSONDoc struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func parsePackageJSON(path string) ([]Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc packageJSONDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var deps []Dependency
	for name, version := range doc.Dependencies {
		deps = append(deps, Dependency{Name: name, Version: version, Manifest: "package.json"})
	}
	for name, version := range doc.DevDependencies {
		deps = append(deps, Dependency{Name: name, Version: version, Manifest: "package.json"})
	}
	return deps, nil
}

var cargoDepLine = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*=\s*"?([^"\s]*)"?`)

func parseCargoToml(path string) ([]Dependency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []Dependency
	inDeps := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if matchesPrefix(line, "[dependencies") {
			inDeps = true
			continue
		}
		if matchesPrefix(line, "[") {
			inDeps = false
			continue
		}
		if inDeps {
			if m := cargoDepLine.FindStringSubmatch(line); m != nil {
				deps = append(deps, Dependency{Name: m[1], Version: m[2], Manifest: "Cargo.toml"})
			}
		}
	}
	return deps, scanner.Err()
}

var requirementsLine = regexp.MustCompile(`^([A-Za-z0-9_.-]+)\s*(==|>=|<=|~=|>|<)?\s*([A-Za-z0-9_.-]*)`)

func parseRequirementsTxt(path string) ([]Dependency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []Dependency
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if matchesPrefix(line, "#") || line == "" {
			continue
		}
		if m := requirementsLine.FindStringSubmatch(line); m != nil && m[1] != "" {
			deps = append(deps, Dependency{Name: m[1], Version: m[3], Manifest: "requirements.txt"})
		}
	}
	return deps, scanner.Err()
}

var pyprojectDepLine = regexp.MustCompile(`^\s*"?([A-Za-z0-9_.-]+)"?\s*=\s*"?([^",]*)"?`)

func parsePyprojectToml(path string) ([]Dependency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []Dependency
	inDeps := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if matchesPrefix(line, "[tool.poetry.dependencies]") || matchesPrefix(line, "[project.dependencies]") {
			inDeps = true
			continue
		}
		if matchesPrefix(line, "[") {
			inDeps = false
			continue
		}
		if inDeps {
			if m := pyprojectDepLine.FindStringSubmatch(line); m != nil && m[1] != "python" {
				deps = append(deps, Dependency{Name: m[1], Version: m[2], Manifest: "pyproject.toml"})
			}
		}
	}
	return deps, scanner.Err()
}
