// Package main implements pubif, which expands #[pub_if(...)] record
// declarations into two conditionally compiled copies.
//
// The first copy is guarded by the attribute's condition and makes every
// member visible; the second is guarded by the negated condition and keeps
// the declared visibility:
//
//	#[pub_if(feature = "foo")]
//	pub struct S { field: i32, pub bar: String }
//
// becomes
//
//	#[cfg(feature = "foo")] pub struct S { pub field: i32, pub bar: String }
//	#[cfg(not(feature = "foo"))] pub struct S { field: i32, pub bar: String }
//
// Usage:
//
//	pubif expand [--write | --check] <file>...
//	pubif manifest --output <file.go> [--package <name>] <file>...
//	pubif wire
//	pubif config
//
// Settings are read from pubif.toml in the working directory, or from the
// file named by --config.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecordell/pubif/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "pubif",
	Short:         "Expand #[pub_if] record declarations",
	Long:          `pubif rewrites annotated record declarations into a variant with every member visible and a variant with the declared visibility, each behind a complementary cfg guard.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(wireCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a pubif.toml (default: ./pubif.toml when present)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for cmd from --config or the working
// directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.Find(path, wd)
}

func newLogger(cmd *cobra.Command, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}
