package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a date directory or dataset file does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidName is returned for identifiers that could escape the data directory
	ErrInvalidName = errors.New("invalid name")
)

// datasetExtensions lists the file types a row source can read
var datasetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Discovery provides file discovery operations rooted at the data directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// BasePath returns the data directory this discovery is rooted at
func (d *Discovery) BasePath() string {
	return d.basePath
}

// IsDatasetFile reports whether name has a readable dataset extension
func IsDatasetFile(name string) bool {
	return datasetExtensions[strings.ToLower(filepath.Ext(name))]
}

// ValidateName rejects empty names, path separators and parent references
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ListDates lists the date (grouping) directories, sorted by name
func (d *Discovery) ListDates() ([]string, error) {
	dirs, err := d.ListDirectories("")
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if strings.HasPrefix(dir.Name, ".") {
			continue
		}
		dates = append(dates, dir.Name)
	}
	sort.Strings(dates)
	return dates, nil
}

// FindDatasets returns the dataset file names inside a date directory, or
// directly inside the data directory when date is empty. Names are sorted.
func (d *Discovery) FindDatasets(date string) ([]string, error) {
	dir := ""
	if date != "" {
		if err := ValidateName(date); err != nil {
			return nil, err
		}
		dir = date
	}

	found, err := d.FindDatasetFiles(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names, nil
}

// FindDatasetFiles finds all dataset files in the specified directory
func (d *Discovery) FindDatasetFiles(dir string) ([]FileInfo, error) {
	fullPath := d.fullPath(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory %s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		// Excel lock files ("~$name.xlsx") are not datasets
		if strings.HasPrefix(name, "~$") || !IsDatasetFile(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   false,
		})
	}

	return files, nil
}

// ListDirectories lists all subdirectories in the specified directory
func (d *Discovery) ListDirectories(dir string) ([]FileInfo, error) {
	fullPath := d.fullPath(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory %s: %w", fullPath, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var dirs []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			dirs = append(dirs, FileInfo{
				Path:    filepath.Join(fullPath, entry.Name()),
				Name:    entry.Name(),
				Size:    0,
				ModTime: info.ModTime(),
				IsDir:   true,
			})
		}
	}

	return dirs, nil
}

// Resolve maps a (date, dataset) pair to the file path that holds it.
func (d *Discovery) Resolve(date, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if !IsDatasetFile(name) {
		return "", fmt.Errorf("dataset %s: %w", name, ErrNotFound)
	}

	dir := ""
	if date != "" {
		if err := ValidateName(date); err != nil {
			return "", err
		}
		dir = date
	}

	path := filepath.Join(d.fullPath(dir), name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("dataset %s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("dataset %s: %w", name, ErrNotFound)
	}
	return path, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

func (d *Discovery) fullPath(dir string) string {
	if dir == "" {
		return d.basePath
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
