package forecast

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/garyjia/forecast-reporter/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultExtensions lists the workbook extensions scanned when none are configured
var DefaultExtensions = []string{".xlsm"}

// DefaultWorkers is the number of workbooks extracted concurrently
const DefaultWorkers = 4

// SkippedFile records a workbook that could not be extracted
type SkippedFile struct {
	Path string
	Err  error
}

// ScanResult is the outcome of scanning one forecast directory
type ScanResult struct {
	Forecasts []*models.PersonForecast
	Skipped   []SkippedFile
	Scanned   int
}

// Collector extracts every forecast workbook in a directory
type Collector struct {
	extractor  *Extractor
	extensions []string
	workers    int
	logger     *zap.Logger
}

// NewCollector creates a new Collector
func NewCollector(extractor *Extractor, extensions []string, logger *zap.Logger) *Collector {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &Collector{
		extractor:  extractor,
		extensions: normalized,
		workers:    DefaultWorkers,
		logger:     logger,
	}
}

// WithWorkers sets how many workbooks are extracted at once. Values below 1 are ignored.
func (c *Collector) WithWorkers(n int) *Collector {
	if n > 0 {
		c.workers = n
	}
	return c
}

// Scan extracts all forecasts in dir. Results keep lexical file order
// whatever the worker count. Malformed or unreadable workbooks are logged
// and skipped; only an unusable directory fails the scan.
func (c *Collector) Scan(dir string) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, dir, err)
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() || !c.matches(de.Name()) {
			continue
		}
		if strings.HasPrefix(de.Name(), "~") {
			c.logger.Info("Ignoring temporary file", zap.String("file", de.Name()))
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}

	forecasts := make([]*models.PersonForecast, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			c.logger.Info("Loading forecast", zap.String("file", filepath.Base(path)))
			forecasts[i], errs[i] = c.extractor.ExtractFile(path)
			return nil
		})
	}
	_ = g.Wait()

	result := &ScanResult{Scanned: len(paths)}
	for i, path := range paths {
		if errs[i] != nil {
			c.logger.Error("Skipping forecast", zap.String("file", filepath.Base(path)), zap.Error(errs[i]))
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: errs[i]})
			continue
		}
		result.Forecasts = append(result.Forecasts, forecasts[i])
	}

	c.logger.Info("Forecast directory scanned",
		zap.String("dir", dir),
		zap.Int("scanned", result.Scanned),
		zap.Int("extracted", len(result.Forecasts)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

func (c *Collector) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range c.extensions {
		if ext == want {
			return true
		}
	}
	return false
}
