// Package ignoreengine resolves file eligibility under the layered
// ignore sources described in spec.md §4.2: explicit excludes, a
// hidden-file rule, a custom ignore file, VCS (gitignore) rules
// (including parent directories above the scan root), a dot-ignore
// file, and a global ignore file. Decisions are deterministic for a
// given filesystem state and layer configuration.
package ignoreengine

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ingo-eichhorst/tokmd/internal/pathmodel"
)

// customIgnoreFile is the tool-specific ignore file name, consulted
// regardless of the no_ignore_* flags (it has no dedicated disable
// flag in the contract).
const customIgnoreFile = ".tokeignore"

const dotIgnoreFile = ".ignore"
const vcsIgnoreFile = ".gitignore"

// maxParentLevels bounds how far above the scan root the VCS parent
// layer climbs looking for .gitignore files.
const maxParentLevels = 64

// Layer names used for "check-ignore" reporting, in precedence order.
const (
	LayerExcluded = "excluded"
	LayerHidden   = "hidden"
	LayerCustom   = "custom"
	LayerVCS      = "vcs"
	LayerDot      = "dot"
	LayerGlobal   = "global"
)

// Options mirrors the scan options that govern ignore resolution.
type Options struct {
	Excluded       []string // glob/gitignore-syntax patterns matched against normalized paths
	Hidden         bool     // when false, hidden files/dirs are excluded
	NoIgnore       bool     // disables parent, dot, and vcs layers
	NoIgnoreParent bool     // disables climbing above the scan root for .gitignore
	NoIgnoreDot    bool     // disables the .ignore layer
	NoIgnoreVCS    bool     // disables the .gitignore layer entirely
	NoIgnoreGlobal bool     // disables the global ignore file
}

// Decision is the outcome of checking one candidate path.
type Decision struct {
	Ignored bool
	Layer   string // which layer produced the rejection; empty when not ignored
}

// Engine resolves ignore decisions for paths under a single scan
// root. It is safe to share a read-only *Engine across goroutines
// once constructed; per-worker matchers consult the same immutable
// configuration.
type Engine struct {
	root     string
	opts     Options
	excluded *ignore.GitIgnore
	custom   *ignore.GitIgnore
	vcs      *ignore.GitIgnore
	dot      *ignore.GitIgnore
	global   *ignore.GitIgnore
}

// New builds an Engine for root using opts. Missing ignore files are
// not an error; the corresponding layer is simply empty.
func New(root string, opts Options) (*Engine, error) {
	e := &Engine{root: root, opts: opts}

	if len(opts.Excluded) > 0 {
		e.excluded = ignore.CompileIgnoreLines(opts.Excluded...)
	}

	vcsDisabled := opts.NoIgnore || opts.NoIgnoreVCS
	dotDisabled := opts.NoIgnore || opts.NoIgnoreDot
	parentDisabled := opts.NoIgnore || opts.NoIgnoreParent

	e.custom = compileIfExists(filepath.Join(root, customIgnoreFile))

	if !vcsDisabled {
		lines := readLines(filepath.Join(root, vcsIgnoreFile))
		if !parentDisabled {
			lines = append(lines, parentGitignoreLines(root)...)
		}
		if len(lines) > 0 {
			e.vcs = ignore.CompileIgnoreLines(lines...)
		}
	}

	if !dotDisabled {
		e.dot = compileIfExists(filepath.Join(root, dotIgnoreFile))
	}

	if !opts.NoIgnoreGlobal {
		if p := globalIgnorePath(); p != "" {
			e.global = compileIfExists(p)
		}
	}

	return e, nil
}

// Check resolves the ignore decision for relPath (forward-slash,
// relative to the scan root). name is the file/directory's base name,
// used for the hidden-file rule.
func (e *Engine) Check(relPath, name string, isDir bool) Decision {
	normalized := pathmodel.NormalizePath(relPath, "")

	if e.excluded != nil && e.excluded.MatchesPath(normalized) {
		return Decision{Ignored: true, Layer: LayerExcluded}
	}

	if !e.opts.Hidden && isHidden(name) {
		return Decision{Ignored: true, Layer: LayerHidden}
	}

	if e.custom != nil && e.custom.MatchesPath(normalized) {
		return Decision{Ignored: true, Layer: LayerCustom}
	}

	if e.vcs != nil && e.vcs.MatchesPath(normalized) {
		return Decision{Ignored: true, Layer: LayerVCS}
	}

	if e.dot != nil && e.dot.MatchesPath(normalized) {
		return Decision{Ignored: true, Layer: LayerDot}
	}

	if e.global != nil && e.global.MatchesPath(normalized) {
		return Decision{Ignored: true, Layer: LayerGlobal}
	}

	return Decision{}
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}

func compileIfExists(path string) *ignore.GitIgnore {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

// parentGitignoreLines climbs from root's parent directory upward,
// collecting .gitignore lines until the filesystem root or
// maxParentLevels is reached, whichever comes first. Patterns from a
// parent .gitignore are interpreted relative to that parent, which is
// approximated by matching on the path tail the same as the root's
// own gitignore -- sufficient for the common case of repo-wide rules
// declared above a scanned subdirectory.
func parentGitignoreLines(root string) []string {
	var lines []string
	dir := filepath.Dir(root)
	for i := 0; i < maxParentLevels; i++ {
		lines = append(lines, readLines(filepath.Join(dir, vcsIgnoreFile))...)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return lines
}

// globalIgnorePath returns the path to the user's global ignore file:
// $XDG_CONFIG_HOME/tokmd/ignore, falling back to ~/.config/tokmd/ignore.
func globalIgnorePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tokmd", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tokmd", "ignore")
}
