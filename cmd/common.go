package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/ignoreengine"
	"github.com/ingo-eichhorst/tokmd/internal/pathmodel"
	"github.com/ingo-eichhorst/tokmd/internal/scanner"
	"github.com/ingo-eichhorst/tokmd/internal/termui"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// scanFlags mirrors the scan-option flags shared by lang/module/export/
// analyze (spec.md §6).
type scanFlags struct {
	excluded       []string
	hidden         bool
	noIgnore       bool
	noIgnoreParent bool
	noIgnoreDot    bool
	noIgnoreVCS    bool
	noIgnoreGlobal bool
	stripPrefix    string
}

func addScanFlags(cmd *cobra.Command, f *scanFlags) {
	cmd.Flags().StringSliceVar(&f.excluded, "exclude", nil, "glob patterns to exclude, matched against normalized paths")
	cmd.Flags().BoolVar(&f.hidden, "hidden", false, "include hidden files and directories")
	cmd.Flags().BoolVar(&f.noIgnore, "no-ignore", false, "disable parent/dot/vcs ignore layers (explicit excludes still apply)")
	cmd.Flags().BoolVar(&f.noIgnoreParent, "no-ignore-parent", false, "disable ignore lookup in parent directories")
	cmd.Flags().BoolVar(&f.noIgnoreDot, "no-ignore-dot", false, "disable .ignore files")
	cmd.Flags().BoolVar(&f.noIgnoreVCS, "no-ignore-vcs", false, "disable .gitignore files")
	cmd.Flags().BoolVar(&f.noIgnoreGlobal, "no-ignore-global", false, "disable the user's global ignore file")
	cmd.Flags().StringVar(&f.stripPrefix, "strip-prefix", "", "strip this prefix from every emitted path")
}

func (f scanFlags) options() scanner.Options {
	return scanner.Options{
		StripPrefix:    f.stripPrefix,
		Excluded:       f.excluded,
		Hidden:         f.hidden,
		NoIgnore:       f.noIgnore,
		NoIgnoreParent: f.noIgnoreParent,
		NoIgnoreDot:    f.noIgnoreDot,
		NoIgnoreVCS:    f.noIgnoreVCS,
		NoIgnoreGlobal: f.noIgnoreGlobal,
	}
}

func (f scanFlags) ignoreOptions() ignoreengine.Options {
	return ignoreengine.Options{
		Excluded:       f.excluded,
		Hidden:         f.hidden,
		NoIgnore:       f.noIgnore,
		NoIgnoreParent: f.noIgnoreParent,
		NoIgnoreDot:    f.noIgnoreDot,
		NoIgnoreVCS:    f.noIgnoreVCS,
		NoIgnoreGlobal: f.noIgnoreGlobal,
	}
}

// scanPaths defaults to the current directory when the user passes no
// positional PATHS argument.
func scanPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// runScan executes the scanner and surfaces per-file I/O warnings as
// ordinary warnings rather than a fatal error (spec.md §7 kind 3);
// only a missing/unreadable root path (kind 2) is fatal. A stderr
// spinner marks the scan phase on an interactive terminal; it is a
// silent no-op under redirection, in CI, or when output is piped.
func runScan(paths []string, f scanFlags) (*scanner.Result, error) {
	spinner := termui.NewSpinner(os.Stderr)
	spinner.Start("scanning")
	result, err := scanner.Scan(paths, f.options())
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return result, nil
}

// moduleKeyFunc binds module_roots/module_depth into the closure
// reportmodel.ExportOptions.Module expects.
func moduleKeyFunc(moduleRoots []string, moduleDepth int) func(string) string {
	return func(path string) string {
		return pathmodel.ModuleKey(path, moduleRoots, moduleDepth)
	}
}

// parseRedactMode accepts the CLI's lowercase mode names.
func parseRedactMode(s string) (types.RedactMode, error) {
	switch s {
	case "", "none":
		return types.RedactNone, nil
	case "paths":
		return types.RedactPaths, nil
	case "all":
		return types.RedactAll, nil
	default:
		return types.RedactNone, fmt.Errorf("invalid --redact mode %q (want none, paths, or all)", s)
	}
}

// writeOutput writes content to outPath, or to cmd's stdout when
// outPath is empty.
func writeOutput(cmd *cobra.Command, outPath string, content []byte) error {
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(content)
		if err == nil && (len(content) == 0 || content[len(content)-1] != '\n') {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return err
	}
	return os.WriteFile(outPath, content, 0o644)
}

func writeOutputString(cmd *cobra.Command, outPath, content string) error {
	return writeOutput(cmd, outPath, []byte(content))
}
