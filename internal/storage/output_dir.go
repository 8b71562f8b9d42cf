package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrPathEscapesBase is returned for a path outside the output directory
var ErrPathEscapesBase = errors.New("path escapes base directory")

// OutputDir manages the directory reports are written to
type OutputDir struct {
	baseDir string
	logger  *zap.Logger
}

// NewOutputDir creates a new OutputDir
func NewOutputDir(baseDir string, logger *zap.Logger) *OutputDir {
	return &OutputDir{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Ensure creates the output directory and its parents
func (d *OutputDir) Ensure() error {
	if d.baseDir == "" {
		return fmt.Errorf("cannot create output directory: empty path")
	}
	if err := os.MkdirAll(d.baseDir, 0755); err != nil {
		d.logger.Error("Failed to create output directory",
			zap.String("path", d.baseDir),
			zap.Error(err))
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Path returns the full path of a file name inside the output directory
func (d *OutputDir) Path(name string) (string, error) {
	safe := SanitizeFileName(name)
	if safe == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	full := filepath.Join(d.baseDir, safe)
	if err := d.ValidatePath(full); err != nil {
		return "", err
	}
	return full, nil
}

// SaveFile writes content to name inside the output directory and returns its path
func (d *OutputDir) SaveFile(name string, content []byte) (string, error) {
	if err := d.Ensure(); err != nil {
		return "", err
	}
	full, err := d.Path(name)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(full, content, 0644); err != nil {
		d.logger.Error("Failed to write file",
			zap.String("path", full),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	d.logger.Debug("File saved",
		zap.String("path", full),
		zap.Int("size", len(content)))
	return full, nil
}

// ValidatePath checks that fullPath lies inside the output directory
func (d *OutputDir) ValidatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(d.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathEscapesBase, fullPath)
	}
	return nil
}

// SanitizeFileName strips path separators and parent references from a file name
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	return strings.TrimSpace(name)
}
