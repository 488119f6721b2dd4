package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"packlist/internal/checklist"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an unchecked item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(runCtx context.Context, store *checklist.Store) error {
				text := strings.Join(args, " ")
				items, err := store.Add(runCtx, text)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), statusOK, "Added %s (%d items)", items[len(items)-1].Text, len(items))
				return nil
			})
		},
	}
}

func newToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <n>",
		Aliases: []string{"check"},
		Short:   "Check or uncheck item number n from `packlist list`",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(runCtx context.Context, store *checklist.Store) error {
				entry, err := resolvePosition(store, args[0])
				if err != nil {
					return err
				}
				item, err := store.Toggle(runCtx, entry.Index)
				if err != nil {
					return err
				}
				if item.Checked {
					printStatus(cmd.OutOrStdout(), statusOK, "Packed %s", item.Text)
				} else {
					printStatus(cmd.OutOrStdout(), statusOK, "Unpacked %s", item.Text)
				}
				return nil
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Delete item number n from `packlist list`",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := ctx.newConfirmer(cmd)
			return ctx.withStore(cmd, func(runCtx context.Context, store *checklist.Store) error {
				entry, err := resolvePosition(store, args[0])
				if err != nil {
					return err
				}
				ok, err := confirm("Remove " + entry.Item.Text + " from the list?")
				if err != nil {
					return err
				}
				if !ok {
					printStatus(cmd.OutOrStdout(), statusInfo, "Kept %s", entry.Item.Text)
					return nil
				}
				removed, err := store.Remove(runCtx, entry.Index)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), statusOK, "Removed %s", removed.Text)
				return nil
			})
		},
	}
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Uncheck every item (or restore the default list with --defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := ctx.newConfirmer(cmd)
			out := cmd.OutOrStdout()
			return ctx.withStore(cmd, func(runCtx context.Context, store *checklist.Store) error {
				if defaults {
					ok, err := confirm("Replace the whole list with the default items?")
					if err != nil {
						return err
					}
					if !ok {
						printStatus(out, statusInfo, "List unchanged")
						return nil
					}
					if err := store.ResetToDefaults(runCtx); err != nil {
						return err
					}
					printStatus(out, statusOK, "Restored the %d default items", store.Len())
					return nil
				}

				total, checked := store.Counts()
				switch {
				case total == 0:
					printStatus(out, statusInfo, "The list is empty; nothing to reset")
					return nil
				case checked == 0:
					printStatus(out, statusInfo, "Nothing is checked")
					return nil
				}
				ok, err := confirm("Uncheck all items?")
				if err != nil {
					return err
				}
				if !ok {
					printStatus(out, statusInfo, "List unchanged")
					return nil
				}
				cleared, err := store.ResetChecks(runCtx)
				if err != nil {
					return err
				}
				printStatus(out, statusOK, "Unchecked %d of %d items", cleared, total)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "Replace the list with the default items")
	return cmd
}
