package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/diffengine"
	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/schema"
	"github.com/ingo-eichhorst/tokmd/internal/scanner"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var diffOut string

var diffCmd = &cobra.Command{
	Use:          "diff FROM TO",
	Short:        "diff two lang reports, given as receipt file paths or git refs",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		from, err := resolveLangReport(args[0], cfg)
		if err != nil {
			return fmt.Errorf("resolve FROM %q: %w", args[0], err)
		}
		to, err := resolveLangReport(args[1], cfg)
		if err != nil {
			return fmt.Errorf("resolve TO %q: %w", args[1], err)
		}

		result := diffengine.Diff(from, to)

		env := serialize.BuildEnvelope(serialize.EnvelopeParams{
			SchemaVersion: schema.CoreReceipt,
			ToolName:      version.Name,
			ToolVersion:   version.Version,
			Mode:          "diff",
			Status:        types.Complete,
		})
		out, err := serialize.RenderDiffJSON(env, result)
		if err != nil {
			return err
		}
		return writeOutput(cmd, diffOut, out)
	},
}

// resolveLangReport accepts either a path to a previously rendered
// `lang --format json` receipt, or a git ref to scan a worktree
// checked out at that ref via `git archive`.
func resolveLangReport(ref string, cfg projectconfig.ProjectConfig) (types.LangReport, error) {
	if data, err := os.ReadFile(ref); err == nil {
		var payload serialize.ReportPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return types.LangReport{}, fmt.Errorf("parse receipt file: %w", err)
		}
		return types.LangReport{Rows: payload.Report.Rows, Totals: payload.Report.Totals, Params: payload.Report.Params}, nil
	}

	dir, err := checkoutGitRef(ref)
	if err != nil {
		return types.LangReport{}, err
	}
	defer os.RemoveAll(dir)

	result, err := scanner.Scan([]string{dir}, scanner.Options{})
	if err != nil {
		return types.LangReport{}, err
	}
	return reportmodel.BuildLangReport(result.Languages, reportmodel.LangOptions{
		ModuleRoots: cfg.ModuleRoots, ModuleDepth: cfg.ModuleDepth,
	}), nil
}

// checkoutGitRef materializes ref's tree into a temporary directory
// via `git archive`, so a diff target can be a commit/tag/branch
// instead of a receipt file.
func checkoutGitRef(ref string) (string, error) {
	dir, err := os.MkdirTemp("", "tokmd-diff-*")
	if err != nil {
		return "", err
	}

	archive := exec.Command("git", "archive", "--format=tar", ref)
	untar := exec.Command("tar", "-x", "-C", dir)

	pipe, err := archive.StdoutPipe()
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	untar.Stdin = pipe

	var stderr strings.Builder
	archive.Stderr = &stderr
	untar.Stderr = &stderr

	if err := untar.Start(); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	if err := archive.Run(); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("git archive %s: %w: %s", ref, err, stderr.String())
	}
	if err := untar.Wait(); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("extract %s: %w: %s", ref, err, stderr.String())
	}

	return dir, nil
}

func init() {
	diffCmd.Flags().StringVar(&diffOut, "out", "", "write to this path instead of stdout")
	rootCmd.AddCommand(diffCmd)
}
