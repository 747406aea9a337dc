package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ecordell/pubif/internal/manifest"
	"github.com/ecordell/pubif/internal/rewrite"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest --output <file.go> [flags] <file>...",
	Short: "Write a Go file listing the annotated declarations",
	Long: `manifest scans the given files for #[pub_if(...)] declarations and writes a
Go file declaring GatedRecords, one entry per declaration. The source files are
not modified.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().StringP("output", "o", "", "location where the manifest will be written")
	manifestCmd.Flags().String("package", "", "package name of the manifest (default: the package in the output directory)")
	_ = manifestCmd.MarkFlagRequired("output")
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	pkgName, _ := cmd.Flags().GetString("package")
	if pkgName == "" {
		pkgName = packageNameIn(filepath.Dir(output))
	}
	logger := newLogger(cmd, cmd.ErrOrStderr())

	results, err := rewriteFiles(cmd.Context(), args, cfg, logger)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, results); err != nil {
		return err
	}

	var records []rewrite.Record
	for _, fr := range results {
		records = append(records, fr.res.Records...)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].File < records[j].File
	})

	f, err := os.OpenFile(output, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("couldn't open %s for writing: %w", output, err)
	}
	if err := manifest.Write(f, pkgName, records); err != nil {
		_ = f.Close()
		return err
	}
	logger.Info("wrote manifest", "file", output, "package", pkgName, "declarations", len(records))
	return f.Close()
}

// packageNameIn returns the package declared by the Go files in dir, or
// "main" when there are none.
func packageNameIn(dir string) string {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.PackageClauseOnly)
	if err != nil || len(pkgs) == 0 {
		return "main"
	}
	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}
