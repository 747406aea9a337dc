package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ecordell/pubif/internal/config"
	"github.com/ecordell/pubif/internal/diag"
	"github.com/ecordell/pubif/internal/rewrite"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file>...",
	Short: "Expand annotated declarations in source files",
	Long: `expand rewrites every #[pub_if(...)] declaration in the given files.

By default the rewritten files are printed to stdout in argument order. With
--write they replace the originals; with --diff a line diff of each changed
file is printed instead; with --check nothing is written and the command fails
when any file would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().BoolP("write", "w", false, "write results back to the source files")
	expandCmd.Flags().Bool("check", false, "fail if any file would change, without writing")
	expandCmd.Flags().Bool("diff", false, "print a line diff of each changed file")
	expandCmd.MarkFlagsMutuallyExclusive("write", "check", "diff")
}

// fileResult pairs a processed file with its original contents.
type fileResult struct {
	name string
	src  []byte
	res  rewrite.Result
}

// errDiagnostics is returned when a run reported errors; they have already
// been printed.
var errDiagnostics = errors.New("expansion failed")

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	showDiff, _ := cmd.Flags().GetBool("diff")
	logger := newLogger(cmd, cmd.ErrOrStderr())

	results, err := rewriteFiles(cmd.Context(), args, cfg, logger)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, results); err != nil {
		return err
	}

	var stale []string
	for _, fr := range results {
		switch {
		case check:
			if fr.res.Changed(fr.src) {
				stale = append(stale, fr.name)
			}
		case showDiff:
			if fr.res.Changed(fr.src) {
				writeDiff(cmd.OutOrStdout(), fr.name, fr.src, fr.res.Output, useColor(cmd))
			}
		case write:
			if !fr.res.Changed(fr.src) {
				continue
			}
			info, err := os.Stat(fr.name)
			if err != nil {
				return err
			}
			if err := os.WriteFile(fr.name, fr.res.Output, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", fr.name, err)
			}
			logger.Info("wrote file", "file", fr.name, "declarations", len(fr.res.Records))
		default:
			if _, err := cmd.OutOrStdout().Write(fr.res.Output); err != nil {
				return err
			}
		}
	}

	if len(stale) > 0 {
		for _, name := range stale {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return fmt.Errorf("%d file(s) contain unexpanded declarations", len(stale))
	}
	return nil
}

// rewriteFiles reads and rewrites files concurrently, bounded by the
// configured worker count. Results keep argument order.
func rewriteFiles(ctx context.Context, files []string, cfg config.Config, logger *slog.Logger) ([]fileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			results[i] = fileResult{
				name: name,
				src:  src,
				res:  rewrite.File(name, src, cfg, rewrite.WithLogger(logger)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reportDiagnostics prints every diagnostic to stderr and returns
// errDiagnostics when any of them is an error.
func reportDiagnostics(cmd *cobra.Command, results []fileResult) error {
	var all []diag.Diagnostic
	sources := make(map[string][]byte, len(results))
	for _, fr := range results {
		all = append(all, fr.res.Diagnostics...)
		sources[fr.name] = fr.src
	}
	if len(all) == 0 {
		return nil
	}
	diag.Print(cmd.ErrOrStderr(), all, sources, diag.PrintOpts{Color: useColor(cmd)})
	if diag.HasErrors(all) {
		return errDiagnostics
	}
	return nil
}

// writeDiff prints the lines removed from before and added in after.
func writeDiff(w io.Writer, name string, before, after []byte, colored bool) {
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	for _, c := range []*color.Color{removed, added} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintf(w, "--- %s\n+++ %s\n", name, name)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(w, removed.Sprint("-"+line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(w, added.Sprint("+"+line))
			default:
				fmt.Fprintln(w, " "+line)
			}
		}
	}
}
