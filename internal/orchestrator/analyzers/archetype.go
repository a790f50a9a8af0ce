package analyzers

import (
	"os"
	"path/filepath"
)

func init() {
	Registry["archetype"] = Archetype
}

// ArchetypeData is the `archetype` receipt section (Identity preset).
type ArchetypeData struct {
	Archetype string
	Signals   []string
}

// Archetype classifies the repository's shape (library/cli/service/
// monorepo) from cheap structural signals: no build is performed and
// no language-specific parsing beyond directory/file existence checks
// (spec Non-goal (a)).
func Archetype(in Input) Result {
	var signals []string
	exists := func(rel string) bool {
		_, err := os.Stat(filepath.Join(in.Root, rel))
		return err == nil
	}

	archetype := "library"

	if exists("cmd") {
		signals = append(signals, "cmd/ directory")
		archetype = "cli"
	}
	if exists("Dockerfile") || exists("docker-compose.yml") || exists("docker-compose.yaml") {
		signals = append(signals, "container build file")
		archetype = "service"
	}
	if exists("k8s") || exists("deploy") || exists("helm") {
		signals = append(signals, "deployment manifests")
		archetype = "service"
	}
	if exists("go.work") || countGoModules(in.Root) > 1 {
		signals = append(signals, "multiple module roots")
		archetype = "monorepo"
	}

	return Result{Data: ArchetypeData{Archetype: archetype, Signals: signals}, Capability: available()}
}

func countGoModules(root string) int {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), "go.mod")); err == nil {
			count++
		}
	}
	return count
}
