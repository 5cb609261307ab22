package config

import (
	"fmt"
	"strings"
)

func (c *Config) validate() error {
	var problems []string

	if c.Paths.SourceDir == "" {
		problems = append(problems, "paths.source_dir must not be empty")
	}
	if c.Paths.TargetDir == "" {
		problems = append(problems, "paths.target_dir must not be empty")
	}
	if c.Encoding.Quality < 0 || c.Encoding.Quality > 100 {
		problems = append(problems, "encoding.quality must be in range 0-100")
	}
	if c.Encoding.QualityAlpha < 0 || c.Encoding.QualityAlpha > 100 {
		problems = append(problems, "encoding.quality_alpha must be in range 0-100")
	}
	if c.Encoding.Speed < 0 || c.Encoding.Speed > 10 {
		problems = append(problems, "encoding.speed must be in range 0-10")
	}
	if len(c.Encoding.Extensions) == 0 {
		problems = append(problems, "encoding.extensions must name at least one extension")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch c.Logging.Colors {
	case "auto", "always", "never":
	default:
		problems = append(problems, fmt.Sprintf("logging.colors must be auto, always or never, got %q", c.Logging.Colors))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
