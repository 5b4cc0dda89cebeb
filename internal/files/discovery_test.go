package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("time,a\n1,2\n"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.BasePath())
}

func TestFindDatasets(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "excel and csv files",
			files:    []string{"b.xlsx", "a.csv", "c.XLSX"},
			expected: []string{"a.csv", "b.xlsx", "c.XLSX"},
		},
		{
			name:     "mixed file types",
			files:    []string{"report.xlsx", "doc.pdf", "notes.txt"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "excel lock files are skipped",
			files:    []string{"~$report.xlsx", "report.xlsx"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "empty directory",
			files:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeFiles(t, tmpDir, tt.files...)

			names, err := NewDiscovery(tmpDir).FindDatasets("")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindDatasets_ByDate(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, filepath.Join(tmpDir, "2024-03-01"), "flow.csv", "sensors.xlsx")
	writeFiles(t, filepath.Join(tmpDir, "2024-03-02"), "sensors.xlsx")

	discovery := NewDiscovery(tmpDir)

	names, err := discovery.FindDatasets("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"flow.csv", "sensors.xlsx"}, names)

	_, err = discovery.FindDatasets("2024-12-31")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = discovery.FindDatasets("../etc")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestListDates(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, filepath.Join(tmpDir, "2024-03-02"), "a.csv")
	writeFiles(t, filepath.Join(tmpDir, "2024-03-01"), "a.csv")
	writeFiles(t, filepath.Join(tmpDir, ".cache"))
	writeFiles(t, tmpDir, "top.csv")

	dates, err := NewDiscovery(tmpDir).ListDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, dates)
}

func TestListDates_MissingDataDir(t *testing.T) {
	_, err := NewDiscovery(filepath.Join(t.TempDir(), "absent")).ListDates()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "top.csv")
	writeFiles(t, filepath.Join(tmpDir, "2024-03-01"), "sensors.xlsx")
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dir.csv"), 0755))

	discovery := NewDiscovery(tmpDir)

	tests := []struct {
		name    string
		date    string
		dataset string
		want    string
		wantErr error
	}{
		{name: "top level", dataset: "top.csv", want: filepath.Join(tmpDir, "top.csv")},
		{name: "dated", date: "2024-03-01", dataset: "sensors.xlsx", want: filepath.Join(tmpDir, "2024-03-01", "sensors.xlsx")},
		{name: "missing file", dataset: "nope.csv", wantErr: ErrNotFound},
		{name: "missing date", date: "2020-01-01", dataset: "sensors.xlsx", wantErr: ErrNotFound},
		{name: "unsupported extension", dataset: "notes.txt", wantErr: ErrNotFound},
		{name: "directory with dataset suffix", dataset: "dir.csv", wantErr: ErrNotFound},
		{name: "traversal in dataset", dataset: "../top.csv", wantErr: ErrInvalidName},
		{name: "separator in date", date: "a/b", dataset: "top.csv", wantErr: ErrInvalidName},
		{name: "empty dataset", dataset: "", wantErr: ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := discovery.Resolve(tt.date, tt.dataset)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old.csv", ModTime: now.Add(-2 * time.Hour)},
		{Name: "new.csv", ModTime: now},
		{Name: "mid.csv", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	assert.True(t, ok)
	assert.Equal(t, "new.csv", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}
