package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/ecordell/pubif/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration and the available keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := toml.NewEncoder(out).Encode(cfg); err != nil {
			return err
		}

		keys, err := config.Describe()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "# KEY\tDEFAULT\tDESCRIPTION")
		for _, k := range keys {
			fmt.Fprintf(tw, "# %s\t%s\t%s\n", k.Name, k.Default, k.Description)
		}
		return tw.Flush()
	},
}
