package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"assetconv/config"
	"assetconv/logger"
)

// Runner executes one full source-to-target conversion pass: reset the
// target, convert every configured image extension, copy everything
// else, report totals.
type Runner struct {
	cfg       *config.Config
	console   *logger.Console
	converter *Converter
}

func NewRunner(cfg *config.Config, console *logger.Console) *Runner {
	return &Runner{
		cfg:       cfg,
		console:   console,
		converter: NewConverter(cfg),
	}
}

// Run performs a single pass. The source directory is checked before
// any side effect: a missing source leaves the target untouched. A
// lock file beside the target keeps two runs from interleaving their
// destructive reset phases.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	sourceDir := r.cfg.Paths.SourceDir
	targetDir := r.cfg.Paths.TargetDir

	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("source asset directory missing: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source asset path is not a directory: %s", sourceDir)
	}

	if err := os.MkdirAll(filepath.Dir(targetDir), 0o755); err != nil {
		return nil, fmt.Errorf("create target parent: %w", err)
	}

	lock := flock.New(lockPath(targetDir))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another conversion run is already writing to %s", targetDir)
	}
	defer lock.Unlock()

	r.console.Info("run %s: %s → %s (quality %d, speed %d)",
		runID, sourceDir, targetDir, r.converter.Options.Quality, r.converter.Options.Speed)

	if _, err := os.Stat(targetDir); err == nil {
		r.console.Warn("clearing target directory: %s", targetDir)
	}
	if err := os.RemoveAll(targetDir); err != nil {
		return nil, fmt.Errorf("clear target directory: %w", err)
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	timer := r.console.StartTimer("conversion run")

	spinner := r.console.StartSpinner("scanning " + sourceDir)
	images, err := r.collectImages(sourceDir)
	if err != nil {
		spinner.Stop(false, "scan failed")
		return nil, fmt.Errorf("scan source tree: %w", err)
	}
	spinner.Stop(true, fmt.Sprintf("found %d images to convert", len(images)))

	convertStats, err := r.convertAll(ctx, images)
	if err != nil {
		return nil, err
	}

	copyStats, err := CopyTree(sourceDir, targetDir, r.cfg.ImageExtensions(), r.console)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     runID,
		Convert:   convertStats,
		Copy:      copyStats,
		Elapsed:   timer.End(),
		TargetDir: targetDir,
	}
	r.renderReport(report)
	return report, nil
}

// collectImages returns source-relative paths of every file whose
// extension is configured for conversion, in walk order.
func (r *Runner) collectImages(sourceDir string) ([]string, error) {
	exts := r.cfg.ImageExtensions()
	var images []string

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		images = append(images, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// convertAll converts images sequentially. Per-file failures are
// logged and counted but never abort the batch.
func (r *Runner) convertAll(ctx context.Context, images []string) (ConvertStats, error) {
	stats := ConvertStats{TotalImages: len(images)}
	if len(images) == 0 {
		return stats, nil
	}

	bar := r.console.NewProgressBar(int64(len(images)), "Converting")
	defer bar.Complete()

	for _, rel := range images {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("conversion interrupted: %w", err)
		}

		sourcePath := filepath.Join(r.cfg.Paths.SourceDir, rel)
		targetRel := TargetPath(rel)
		targetPath := filepath.Join(r.cfg.Paths.TargetDir, targetRel)

		sourceSize, targetSize, err := r.converter.ConvertFile(sourcePath, targetPath)
		if err != nil {
			stats.recordFailure()
			r.console.Error("conversion failed for %s: %v", rel, err)
		} else {
			stats.recordSuccess(sourceSize, targetSize)
			r.console.Success("%s → %s (%s → %s, -%.1f%%)",
				rel, targetRel,
				humanize.IBytes(uint64(sourceSize)), humanize.IBytes(uint64(targetSize)),
				reductionPercent(sourceSize, targetSize))
		}
		bar.Increment(1)
	}

	return stats, nil
}

func (r *Runner) renderReport(report *Report) {
	table := r.console.NewTable("Metric", "Value")
	table.AddRow("Run", report.RunID)
	table.AddRow("Images converted", fmt.Sprintf("%d/%d", report.Convert.Converted, report.Convert.TotalImages))
	table.AddRow("Failed conversions", fmt.Sprintf("%d", report.Convert.Failed))
	table.AddRow("Files copied", fmt.Sprintf("%d", report.Copy.Copied))
	table.AddRow("Original size", humanize.IBytes(uint64(report.Convert.SourceBytes)))
	table.AddRow("Converted size", humanize.IBytes(uint64(report.Convert.TargetBytes)))
	table.AddRow("Reduction", fmt.Sprintf("%.1f%%", report.Convert.ReductionPercent()))
	if saved := report.Convert.SourceBytes - report.Convert.TargetBytes; saved > 0 {
		table.AddRow("Space saved", humanize.IBytes(uint64(saved)))
	}
	table.AddRow("Elapsed", report.Elapsed.Round(time.Millisecond).String())

	r.console.Info("conversion summary:")
	table.Print()
	r.console.Success("assets written to %s", report.TargetDir)
}

func reductionPercent(sourceSize, targetSize int64) float64 {
	if sourceSize == 0 {
		return 0
	}
	return (1 - float64(targetSize)/float64(sourceSize)) * 100
}

// lockPath places the lock file beside the target directory so it
// survives the destructive reset of the target itself.
func lockPath(targetDir string) string {
	return filepath.Join(filepath.Dir(targetDir), "."+filepath.Base(targetDir)+".assetconv.lock")
}
