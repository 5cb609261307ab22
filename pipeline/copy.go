package pipeline

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"assetconv/logger"
)

// CopyTree mirrors every file under sourceDir whose extension is not in
// skipExts to the same relative path under targetDir, preserving
// permissions and modification time. Any error aborts the copy: copy
// failures are the fatal class, unlike per-file conversion failures.
func CopyTree(sourceDir, targetDir string, skipExts map[string]bool, console *logger.Console) (CopyStats, error) {
	var stats CopyStats

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if skipExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		n, err := copyFile(path, filepath.Join(targetDir, rel))
		if err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}

		stats.Copied++
		stats.Bytes += n
		console.Log("copied %s", rel)
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("copy tree: %w", err)
	}
	return stats, nil
}

func copyFile(sourcePath, targetPath string) (int64, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return 0, err
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, err
	}

	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return n, err
	}
	return n, nil
}
