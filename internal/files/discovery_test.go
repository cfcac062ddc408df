package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindDTAFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		pattern  string
		expected []string
	}{
		{
			name:     "case-insensitive default pattern",
			files:    []string{"b_run.DTA", "a_run.dta", "notes.txt", "c.Dta"},
			expected: []string{"a_run.dta", "b_run.DTA", "c.Dta"},
		},
		{
			name:     "explicit upper-case pattern matches lower-case names",
			files:    []string{"cv_1.dta", "eis_1.dta", "cv_2.DTA"},
			pattern:  "CV_*.DTA",
			expected: []string{"cv_1.dta", "cv_2.DTA"},
		},
		{
			name:     "no matches",
			files:    []string{"readme.md"},
			expected: nil,
		},
		{
			name:     "empty directory",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("EXPLAIN\n"), 0o644))
			}
			require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.dta"), 0o755))

			found, err := NewDiscovery("").FindDTAFiles(dir, tt.pattern)
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
				assert.Equal(t, int64(8), f.Size)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindDTAFiles_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "runs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "runs", "x.dta"), nil, 0o644))

	found, err := NewDiscovery(base).FindDTAFiles("runs", "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(base, "runs", "x.dta")}, Paths(found))
}

func TestFindDTAFiles_Errors(t *testing.T) {
	_, err := NewDiscovery("").FindDTAFiles(filepath.Join(t.TempDir(), "missing"), "")
	assert.Error(t, err)

	_, err = NewDiscovery("").FindDTAFiles(t.TempDir(), "[")
	assert.Error(t, err)
}
