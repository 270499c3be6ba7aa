package config

import (
	"strings"

	"github.com/arthur-debert/nulink/pkg/errors"
)

// Output formats
const (
	FormatAuto = "auto"
	FormatTerm = "term"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the merged nulink configuration
type Config struct {
	Packages Packages `koanf:"packages"`
	Local    Local    `koanf:"local"`
	// Sources maps package ids to local sources
	Sources map[string]string `koanf:"sources"`
	Output  Output            `koanf:"output"`
}

// Packages configures where installed packages live
type Packages struct {
	Root string `koanf:"root"`
}

// Local configures local source resolution
type Local struct {
	Configuration string `koanf:"configuration"`
}

// Output configures reporting
type Output struct {
	Format string `koanf:"format"`
	Color  bool   `koanf:"color"`
}

// SourceFor returns the configured local source of a package id, matching
// case-insensitively
func (c *Config) SourceFor(packageID string) (string, bool) {
	for id, source := range c.Sources {
		if strings.EqualFold(id, packageID) {
			return source, source != ""
		}
	}
	return "", false
}

// Validate checks values that cannot be checked while decoding
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatAuto, FormatTerm, FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Newf(errors.ErrConfigLoad, "unknown output format %q", c.Output.Format).
			WithDetail("key", "output.format")
	}
	if strings.TrimSpace(c.Local.Configuration) == "" {
		return errors.New(errors.ErrConfigLoad, "local.configuration must not be empty").
			WithDetail("key", "local.configuration")
	}
	return nil
}
