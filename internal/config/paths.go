package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved, absolute application paths
type Paths struct {
	ExecutableDir string
	DataDir       string
	WebDir        string
	LogsDir       string
}

// GetExecutableDir returns the directory holding the running binary with
// symlinks resolved.
func GetExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return filepath.Dir(exe), nil
}

// ResolvePaths turns the configured paths into absolute ones. Relative
// entries are joined onto ExecutableDir, which itself defaults to the
// directory of the running binary, never the working directory.
func ResolvePaths(pc PathsConfig) (*Paths, error) {
	base := pc.ExecutableDir
	if base == "" {
		dir, err := GetExecutableDir()
		if err != nil {
			return nil, err
		}
		base = dir
	}

	resolve := func(p, fallback string) string {
		if p == "" {
			p = fallback
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		ExecutableDir: base,
		DataDir:       resolve(pc.DataDir, DefaultDataDir),
		WebDir:        resolve(pc.WebDir, DefaultWebDir),
		LogsDir:       resolve(pc.LogsDir, DefaultLogsDir),
	}, nil
}

// EnsureDirectories creates the data and logs directories if they don't
// exist. The web directory is optional since assets are embedded.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved paths
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("web_dir", p.WebDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
