package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the source and target directory configuration.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	TargetDir string `toml:"target_dir"`
}

// Encoding contains AVIF encoder settings and the set of file
// extensions treated as convertible images.
type Encoding struct {
	Quality      int      `toml:"quality"`
	QualityAlpha int      `toml:"quality_alpha"`
	Speed        int      `toml:"speed"`
	Extensions   []string `toml:"extensions"`
}

// Logging contains console output configuration.
type Logging struct {
	Format string `toml:"format"` // console or json
	Level  string `toml:"level"`  // debug, info, warn, error
	Colors string `toml:"colors"` // auto, always, never
}

// Config encapsulates all configuration values for assetconv.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Encoding Encoding `toml:"encoding"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the path probed when no --config flag is given.
func DefaultConfigPath() string {
	return "assetconv.toml"
}

// Overrides are flag-level settings layered over the config file.
// Zero-value string fields and nil int fields leave the file value in
// place.
type Overrides struct {
	SourceDir    string
	TargetDir    string
	Quality      *int
	QualityAlpha *int
	Speed        *int
}

// Load locates, parses, validates and normalizes a configuration file,
// applying flag overrides on top. A missing file is not an error:
// defaults apply and exists reports false.
func Load(path string, ov *Overrides) (*Config, string, bool, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}

	exists := true
	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if ov != nil {
		if ov.SourceDir != "" {
			cfg.Paths.SourceDir = ov.SourceDir
		}
		if ov.TargetDir != "" {
			cfg.Paths.TargetDir = ov.TargetDir
		}
		if ov.Quality != nil {
			cfg.Encoding.Quality = *ov.Quality
		}
		if ov.QualityAlpha != nil {
			cfg.Encoding.QualityAlpha = *ov.QualityAlpha
		}
		if ov.Speed != nil {
			cfg.Encoding.Speed = *ov.Speed
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, path, exists, nil
}

// normalize makes both directory paths absolute and cleans the
// extension list into lowercase dotted form.
func (c *Config) normalize() error {
	src, err := filepath.Abs(c.Paths.SourceDir)
	if err != nil {
		return fmt.Errorf("resolve source dir: %w", err)
	}
	dst, err := filepath.Abs(c.Paths.TargetDir)
	if err != nil {
		return fmt.Errorf("resolve target dir: %w", err)
	}
	c.Paths.SourceDir = filepath.Clean(src)
	c.Paths.TargetDir = filepath.Clean(dst)

	exts := make([]string, 0, len(c.Encoding.Extensions))
	for _, ext := range c.Encoding.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Encoding.Extensions = exts

	if c.Paths.SourceDir == c.Paths.TargetDir {
		return errors.New("source_dir and target_dir must differ")
	}
	if isWithin(c.Paths.SourceDir, c.Paths.TargetDir) {
		return errors.New("target_dir must not be inside source_dir")
	}
	// The target is destroyed on every run; a source below it would go
	// with it.
	if isWithin(c.Paths.TargetDir, c.Paths.SourceDir) {
		return errors.New("source_dir must not be inside target_dir")
	}
	return nil
}

func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ImageExtensions returns the configured extensions as a lookup set.
func (c *Config) ImageExtensions() map[string]bool {
	set := make(map[string]bool, len(c.Encoding.Extensions))
	for _, ext := range c.Encoding.Extensions {
		set[ext] = true
	}
	return set
}

// WriteSample writes the embedded sample configuration to path. It
// refuses to overwrite an existing file.
func WriteSample(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
