package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// passed to its methods are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDTAFiles returns the regular files in dir whose names match pattern,
// compared case-insensitively, sorted by name. An empty pattern means *.dta.
// Subdirectories are not searched.
func (d *Discovery) FindDTAFiles(dir, pattern string) ([]FileInfo, error) {
	if pattern == "" {
		pattern = "*.dta"
	}
	pattern = strings.ToLower(pattern)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	fullPath := d.resolve(dir)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ok, _ := filepath.Match(pattern, strings.ToLower(name)); !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Paths returns the Path of every entry.
func Paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
