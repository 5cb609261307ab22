package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assetconv/config"
)

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("", nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved != "assetconv.toml" {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}

	wd, _ := os.Getwd()
	if cfg.Paths.SourceDir != filepath.Join(wd, "assets") {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}
	if cfg.Paths.TargetDir != filepath.Join(wd, "public", "assets") {
		t.Fatalf("unexpected target dir: %q", cfg.Paths.TargetDir)
	}
	if cfg.Encoding.Quality != 85 {
		t.Fatalf("unexpected quality: %d", cfg.Encoding.Quality)
	}
	if cfg.Encoding.Speed != 6 {
		t.Fatalf("unexpected speed: %d", cfg.Encoding.Speed)
	}
	exts := cfg.ImageExtensions()
	for _, want := range []string{".png", ".jpg", ".jpeg"} {
		if !exts[want] {
			t.Fatalf("expected default extension %s", want)
		}
	}
	if exts[".ttf"] {
		t.Fatal("did not expect .ttf in image extensions")
	}
}

func TestLoadAppliesOverridesAndNormalizesExtensions(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	contents := `
[paths]
source_dir = "in"
target_dir = "out"

[encoding]
quality = 60
extensions = ["PNG", ".WebP"]
`
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Encoding.Quality != 60 {
		t.Fatalf("unexpected quality: %d", cfg.Encoding.Quality)
	}
	if cfg.Encoding.Speed != 6 {
		t.Fatalf("expected default speed to survive overlay, got %d", cfg.Encoding.Speed)
	}
	if cfg.Paths.SourceDir != filepath.Join(dir, "in") {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}

	exts := cfg.ImageExtensions()
	if !exts[".png"] || !exts[".webp"] {
		t.Fatalf("expected lowercased dotted extensions, got %v", cfg.Encoding.Extensions)
	}
}

func TestLoadLayersFlagOverridesOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "assetconv.toml")
	if err := os.WriteFile(path, []byte("[encoding]\nquality = 60\nspeed = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	quality := 42
	cfg, _, _, err := config.Load(path, &config.Overrides{
		SourceDir: "overridden",
		Quality:   &quality,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Encoding.Quality != 42 {
		t.Fatalf("override lost, quality = %d", cfg.Encoding.Quality)
	}
	if cfg.Encoding.Speed != 3 {
		t.Fatalf("file value lost, speed = %d", cfg.Encoding.Speed)
	}
	if cfg.Paths.SourceDir != filepath.Join(dir, "overridden") {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}

	bad := 400
	if _, _, _, err := config.Load(path, &config.Overrides{Quality: &bad}); err == nil {
		t.Fatal("expected out-of-range override to be rejected")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "quality out of range",
			contents: "[encoding]\nquality = 150\n",
			want:     "quality must be in range 0-100",
		},
		{
			name:     "speed out of range",
			contents: "[encoding]\nspeed = 11\n",
			want:     "speed must be in range 0-10",
		},
		{
			name:     "bad log format",
			contents: "[logging]\nformat = \"xml\"\n",
			want:     "logging.format",
		},
		{
			name:     "target equals source",
			contents: "[paths]\nsource_dir = \"same\"\ntarget_dir = \"same\"\n",
			want:     "must differ",
		},
		{
			name:     "target inside source",
			contents: "[paths]\nsource_dir = \"assets\"\ntarget_dir = \"assets/out\"\n",
			want:     "target_dir must not be inside",
		},
		{
			name:     "source inside target",
			contents: "[paths]\nsource_dir = \"build/assets\"\ntarget_dir = \"build\"\n",
			want:     "source_dir must not be inside",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assetconv.toml")

	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[encoding]") {
		t.Fatal("sample config missing [encoding] section")
	}

	// Sample must parse back into a valid config.
	if _, _, _, err := config.Load(path, nil); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}

	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
}
