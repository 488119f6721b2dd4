package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"packlist/internal/checklist"
	"packlist/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, ok := cmd.OutOrStdout().(*os.File)
			if !ok || !isTerminal(out) {
				return errors.New("tui requires an interactive terminal; use `packlist list` instead")
			}
			return ctx.withStore(cmd, func(runCtx context.Context, store *checklist.Store) error {
				return tui.Run(runCtx, store)
			})
		},
	}
}
