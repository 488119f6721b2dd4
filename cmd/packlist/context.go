package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"packlist/internal/checklist"
	"packlist/internal/config"
	"packlist/internal/logging"
	"packlist/internal/storage"
)

type rootFlags struct {
	config  string
	dataDir string
	yes     bool
	verbose bool
}

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if dir := strings.TrimSpace(c.flags.dataDir); dir != "" {
			expanded, err := config.ExpandPath(dir)
			if err != nil {
				c.configErr = fmt.Errorf("resolve --data-dir: %w", err)
				return
			}
			cfg.Paths.DataDir = expanded
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the per-invocation logger. Output goes to the command's
// stderr, plus the log file when enabled; the close function releases it.
func (c *commandContext) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, func() error, error) {
	override := ""
	if c.flags.verbose {
		override = "debug"
	}
	logger, closeLog, err := logging.NewFromConfig(cfg, override, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return logger.With(logging.String(logging.FieldCommand, cmd.CommandPath())), closeLog, nil
}

// withStore opens the configured backend, loads the checklist and runs fn.
// A recovered (unreadable) checklist is reported on stderr before fn runs.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(context.Context, *checklist.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := c.logger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	logger = logging.WithContext(ctx, logger)

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			logger.Warn("failed to close storage", logging.Error(closeErr))
		}
	}()

	store, err := checklist.New(backend, checklist.WithLogger(logger))
	if err != nil {
		return err
	}
	outcome := store.Load(ctx)
	logger.Debug("checklist loaded",
		logging.String("outcome", outcome.String()),
		logging.String(logging.FieldPath, backend.Path()),
		logging.Int(logging.FieldItemCount, store.Len()))
	if outcome == checklist.RecoveredDefaults {
		fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine(statusWarn,
			"Stored checklist was unreadable; the default items were restored", shouldColorize(cmd.ErrOrStderr())))
	}
	return fn(ctx, store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
