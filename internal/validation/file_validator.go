package validation

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "gamrycli/internal/errors"
)

// dtaSignature is the first line of every DTA file.
const dtaSignature = "EXPLAIN"

// FileValidator provides file checks shared by the CLI commands
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory validates that dir exists and is a directory
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("input directory does not exist",
			slog.String("directory", dir))
		return apperrors.NewNotFoundError("input directory "+dir, err)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat directory "+dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewPreconditionError(fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory "+dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory "+dir+" is not writable", err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists, is regular and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("file does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("file "+path, apperrors.ErrSourceNotFound)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat file "+path, err)
	}
	if !info.Mode().IsRegular() {
		v.logger.Error("path is not a regular file",
			slog.String("path", path))
		return apperrors.NewPreconditionError(fmt.Sprintf("%s is not a regular file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file "+path+" is not readable", err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateDTAFile runs ValidateFile and then checks the DTA conventions. A
// foreign extension or a missing EXPLAIN first line is only logged.
func (v *FileValidator) ValidateDTAFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".dta" {
		v.logger.Warn("file does not have a .dta extension",
			slog.String("file", path),
			slog.String("extension", ext))
	}

	first, err := firstLine(path)
	if err != nil {
		return apperrors.NewStorageError("failed to read "+path, err)
	}
	if first != dtaSignature {
		v.logger.Warn("file does not start with the EXPLAIN signature",
			slog.String("file", path),
			slog.String("first_line", first))
	}
	return nil
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\uFEFF")), nil
	}
	return "", sc.Err()
}
