package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataPath == "" {
		return errors.New("paths.data_path must be set")
	}
	if c.Paths.SkeletonPath == "" {
		return errors.New("paths.skeleton_path must be set")
	}
	return nil
}

func (c *Config) validateMetadata() error {
	if utf8.RuneCountInString(c.Metadata.Delimiter) != 1 {
		return fmt.Errorf("metadata.delimiter must be a single character, got %q", c.Metadata.Delimiter)
	}
	if c.Metadata.IDColumn == c.Metadata.PathColumn {
		return fmt.Errorf("metadata.id_column and metadata.path_column are both %q", c.Metadata.IDColumn)
	}
	return nil
}

func (c *Config) validateMerge() error {
	if c.Merge.Workers < 0 {
		return errors.New("merge.workers must not be negative")
	}
	if c.Merge.Format == "" {
		return errors.New("merge.format must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// DelimiterRune returns the metadata delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Metadata.Delimiter)
	return r
}
