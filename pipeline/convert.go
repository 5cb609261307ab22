package pipeline

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/avif"
	_ "golang.org/x/image/webp"

	"assetconv/config"
)

// Converter re-encodes single image files to AVIF.
type Converter struct {
	Options avif.Options
}

func NewConverter(cfg *config.Config) *Converter {
	return &Converter{
		Options: avif.Options{
			Quality:           cfg.Encoding.Quality,
			QualityAlpha:      cfg.Encoding.QualityAlpha,
			Speed:             cfg.Encoding.Speed,
			ChromaSubsampling: image.YCbCrSubsampleRatio420,
		},
	}
}

// TargetPath maps a source-relative image path to its target-relative
// AVIF path, swapping the extension.
func TargetPath(relPath string) string {
	return strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".avif"
}

// ConvertFile decodes sourcePath and writes it as AVIF to targetPath,
// creating parent directories as needed. The encode goes through a
// temp file in the destination directory so a failed encode never
// leaves a partial target behind. Returns source and target sizes.
func (c *Converter) ConvertFile(sourcePath, targetPath string) (int64, int64, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("stat source: %w", err)
	}
	sourceSize := info.Size()

	f, err := os.Open(sourcePath)
	if err != nil {
		return sourceSize, 0, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return sourceSize, 0, fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return sourceSize, 0, fmt.Errorf("create target dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(targetPath), "*.avif")
	if err != nil {
		return sourceSize, 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := avif.Encode(tmp, img, c.Options); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return sourceSize, 0, fmt.Errorf("encode AVIF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return sourceSize, 0, fmt.Errorf("close temp file: %w", err)
	}

	tmpInfo, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return sourceSize, 0, fmt.Errorf("stat temp file: %w", err)
	}
	targetSize := tmpInfo.Size()

	if err := os.Rename(tmpPath, targetPath); err != nil {
		os.Remove(tmpPath)
		return sourceSize, targetSize, fmt.Errorf("rename into place: %w", err)
	}

	return sourceSize, targetSize, nil
}
