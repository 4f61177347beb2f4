package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"posekit/internal/config"
	"posekit/internal/logging"
	"posekit/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// loadRegistry reads the configured metadata table into a session registry.
func (c *commandContext) loadRegistry(tableOverride string) (*session.Registry, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	tablePath := cfg.Paths.MetadataFile
	if strings.TrimSpace(tableOverride) != "" {
		tablePath, err = config.ExpandPath(tableOverride)
		if err != nil {
			return nil, err
		}
	}
	return session.ReadTable(tablePath, session.TableOptions{
		Delimiter:  cfg.DelimiterRune(),
		IDColumn:   cfg.Metadata.IDColumn,
		PathColumn: cfg.Metadata.PathColumn,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
