package config

import (
	"fmt"
	"strings"

	"github.com/roach88/lexc/internal/junction"
	"github.com/roach88/lexc/internal/phonology"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Compiler.validate(); err != nil {
		return fmt.Errorf("compiler: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json (got %q)", l.Format)
	}
	return nil
}

func (c *CompilerConfig) validate() error {
	if !junction.ClusterStrategy(c.Clusters).Valid() {
		return fmt.Errorf("clusters must be one of elide, keep, epenthesis (got %q)", c.Clusters)
	}
	if c.Epenthetic == "" {
		return fmt.Errorf("epenthetic must not be empty")
	}
	if c.Vowels == "" {
		return fmt.Errorf("vowels must not be empty")
	}
	if strings.ContainsAny(c.Precedence, c.Vowels) {
		return fmt.Errorf("precedence %q lists a vowel", c.Precedence)
	}
	if _, err := c.assembler(phonology.Default()); err != nil {
		return err
	}
	return nil
}
