package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/ecordell/pubif/internal/wire"
)

var wireCmd = &cobra.Command{
	Use:   "wire",
	Short: "Serve expansion requests as msgpack over stdin and stdout",
	Long: `wire reads a stream of msgpack requests, each a condition and a token
stream, from stdin and answers each with the expanded token stream or an
error on stdout. It stops at the end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cmd.ErrOrStderr())
		in := bufio.NewReader(cmd.InOrStdin())
		return wire.Serve(cmd.Context(), in, cmd.OutOrStdout(), logger, cfg.GateOptions()...)
	},
}
