package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"packlist/internal/backup"
	"packlist/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories and the stored checklist without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Storage", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderLabeledStatusLine("Backend", statusInfo, cfg.Storage.Backend, colorize))

			failed := 0
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				switch {
				case !result.Passed && result.Optional:
					kind = statusWarn
				case !result.Passed:
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderLabeledStatusLine(result.Name, kind, result.Detail, colorize))
			}

			entries, err := backup.List(cfg.Paths.BackupDir)
			switch {
			case err != nil:
				fmt.Fprintln(out, renderLabeledStatusLine("Latest backup", statusWarn, err.Error(), colorize))
			case len(entries) == 0:
				fmt.Fprintln(out, renderLabeledStatusLine("Latest backup", statusInfo, "none", colorize))
			default:
				latest := entries[0]
				detail := fmt.Sprintf("%s (%d total)", latest.Name, len(entries))
				fmt.Fprintln(out, renderLabeledStatusLine("Latest backup", statusInfo, detail, colorize))
			}

			if failed > 0 {
				return fmt.Errorf("%d %s failed", failed, pluralize(failed, "check", "checks"))
			}
			return nil
		},
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderLabeledStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}
