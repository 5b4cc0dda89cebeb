package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"histviz/internal/files"
)

var (
	// ErrNotFound is returned when a dataset identifier does not resolve to a readable source
	ErrNotFound = errors.New("dataset not found")
	// ErrInvalidIdentifier is returned for identifiers that are not plain file names
	ErrInvalidIdentifier = errors.New("invalid dataset identifier")
	// ErrUnsupportedFormat is returned for files no reader understands
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// ID identifies one dataset: a file name, optionally inside a date directory.
type ID struct {
	Date string
	Name string
}

func (id ID) String() string {
	if id.Date == "" {
		return id.Name
	}
	return id.Date + "/" + id.Name
}

// Source is the row-source collaborator the summary services read from.
type Source interface {
	LoadRows(ctx context.Context, id ID) (*Dataset, error)
	ListColumns(ctx context.Context, id ID) ([]string, error)
	ListDatasets(ctx context.Context, date string) ([]string, error)
	ListDates(ctx context.Context) ([]string, error)
}

// LoadObserver is notified after every file read.
type LoadObserver func(ctx context.Context, id ID, elapsed time.Duration, err error)

// FileSource reads datasets from .xlsx and .csv files under a data directory.
// Concurrent loads of the same file share a single read; the returned Dataset
// must be treated as read-only.
type FileSource struct {
	discovery *files.Discovery
	logger    *slog.Logger
	group     singleflight.Group
	observer  LoadObserver
}

// NewFileSource creates a row source rooted at dataDir
func NewFileSource(dataDir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		discovery: files.NewDiscovery(dataDir),
		logger:    logger.With(slog.String("component", "file_source")),
	}
}

// SetObserver installs a hook called after every file read
func (s *FileSource) SetObserver(observer LoadObserver) {
	s.observer = observer
}

// DataDir returns the directory datasets are read from
func (s *FileSource) DataDir() string {
	return s.discovery.BasePath()
}

// LoadRows reads every row of the dataset
func (s *FileSource) LoadRows(ctx context.Context, id ID) (*Dataset, error) {
	path, err := s.resolve(id)
	if err != nil {
		return nil, err
	}

	v, err, shared := s.group.Do(path, func() (interface{}, error) {
		start := time.Now()
		ds, err := readFile(path, id.Name)
		if s.observer != nil {
			s.observer(ctx, id, time.Since(start), err)
		}
		return ds, err
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load dataset",
			slog.String("dataset", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	ds := v.(*Dataset)
	s.logger.DebugContext(ctx, "dataset loaded",
		slog.String("dataset", id.String()),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Columns)),
		slog.Bool("shared", shared))
	return ds, nil
}

// ListColumns returns the dataset's column names with the time axis excluded
func (s *FileSource) ListColumns(ctx context.Context, id ID) ([]string, error) {
	path, err := s.resolve(id)
	if err != nil {
		return nil, err
	}

	header, err := readHeader(path)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return []string{}, nil
	}

	cols := make([]string, 0, len(header)-1)
	for _, h := range header[1:] {
		cols = append(cols, strings.TrimSpace(h))
	}
	return cols, nil
}

// ListDatasets returns the dataset names for a date, or at the top level when date is empty
func (s *FileSource) ListDatasets(ctx context.Context, date string) ([]string, error) {
	names, err := s.discovery.FindDatasets(date)
	if err != nil {
		return nil, mapDiscoveryError(err)
	}
	return names, nil
}

// ListDates returns the date directories
func (s *FileSource) ListDates(ctx context.Context) ([]string, error) {
	dates, err := s.discovery.ListDates()
	if err != nil {
		return nil, mapDiscoveryError(err)
	}
	return dates, nil
}

func (s *FileSource) resolve(id ID) (string, error) {
	path, err := s.discovery.Resolve(id.Date, id.Name)
	if err != nil {
		return "", mapDiscoveryError(err)
	}
	return path, nil
}

func mapDiscoveryError(err error) error {
	switch {
	case errors.Is(err, files.ErrInvalidName):
		return fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	case errors.Is(err, files.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return err
	}
}

func readFile(path, name string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadExcel(path, name)
	case ".csv":
		return ReadCSV(path, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readHeader(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadExcelHeader(path)
	case ".csv":
		return ReadCSVHeader(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
