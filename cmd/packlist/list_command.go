package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"packlist/internal/checklist"
)

const markdownWrap = 80

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the checklist, unchecked items first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(_ context.Context, store *checklist.Store) error {
				entries := store.DisplayOrder()
				total, checked := store.Counts()
				out := cmd.OutOrStdout()

				switch {
				case asJSON:
					view := listJSON{Items: make([]listItemJSON, 0, len(entries)), Total: total, Checked: checked}
					for i, entry := range entries {
						view.Items = append(view.Items, listItemJSON{Number: i + 1, Text: entry.Item.Text, Checked: entry.Item.Checked})
					}
					return writeJSON(cmd, view)
				case asMarkdown:
					rendered, err := renderMarkdownList(entries, checked, shouldColorize(out))
					if err != nil {
						return err
					}
					fmt.Fprint(out, rendered)
					return nil
				}

				if len(entries) == 0 {
					fmt.Fprintln(out, "No items. Add one with: packlist add <name>")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for i, entry := range entries {
					rows = append(rows, []string{strconv.Itoa(i + 1), checkbox(entry.Item.Checked), entry.Item.Text})
				}
				fmt.Fprintln(out, renderTable(tableView{
					headers: []string{"#", "Packed", "Item"},
					rows:    rows,
					aligns:  []columnAlignment{alignRight, alignCenter, alignLeft},
					footer:  packedSummary(checked, total),
				}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Render as a markdown task list")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	return cmd
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func packedSummary(checked, total int) string {
	return fmt.Sprintf("%d of %d packed", checked, total)
}

func markdownList(entries []checklist.DisplayEntry, checked int) string {
	var b strings.Builder
	b.WriteString("# Gym pack list\n\n")
	if len(entries) == 0 {
		b.WriteString("_No items yet._\n")
		return b.String()
	}
	for _, entry := range entries {
		fmt.Fprintf(&b, "- %s %s\n", checkbox(entry.Item.Checked), entry.Item.Text)
	}
	fmt.Fprintf(&b, "\n_%s_\n", packedSummary(checked, len(entries)))
	return b.String()
}

func renderMarkdownList(entries []checklist.DisplayEntry, checked int, colorize bool) (string, error) {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if colorize {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(markdownWrap))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(markdownList(entries, checked))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return rendered, nil
}
