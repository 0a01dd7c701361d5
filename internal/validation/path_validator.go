package validation

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	apperrors "assemblystats/internal/errors"
)

// PathValidator checks local paths before a run commits to reading its input.
type PathValidator struct {
	logger *slog.Logger
}

// NewPathValidator creates a new path validator
func NewPathValidator(logger *slog.Logger) *PathValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PathValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path exists, is not a directory and can be
// opened for reading.
func (v *PathValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("input file does not exist", slog.String("file", path))
		return apperrors.NewNotFoundError("input file "+path).WithContext("path", path)
	}
	if err != nil {
		return apperrors.NewValidationError("failed to stat input file", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("input path is a directory", slog.String("path", path))
		return apperrors.NewValidationError(path+" is a directory, not a file", nil).
			WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewValidationError("input file is not readable", err).
			WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory checks that dir exists as a writable directory or
// could be created. Nothing is left behind on disk.
func (v *PathValidator) ValidateOutputDirectory(dir string) error {
	existing, err := nearestExisting(dir)
	if err != nil {
		return apperrors.NewStorageError("failed to inspect output directory", err).
			WithContext("directory", dir)
	}

	info, err := os.Stat(existing)
	if err != nil {
		return apperrors.NewStorageError("failed to stat output directory", err).
			WithContext("directory", dir)
	}
	if !info.IsDir() {
		v.logger.Error("output path is blocked by a file",
			slog.String("directory", dir),
			slog.String("file", existing))
		return apperrors.NewStorageError(existing+" is not a directory", nil).
			WithContext("directory", dir)
	}

	scratch, err := os.CreateTemp(existing, ".assemblystats-write-test-*")
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", existing),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).
			WithContext("directory", dir)
	}
	scratch.Close()
	os.Remove(scratch.Name())

	v.logger.Debug("output directory validated",
		slog.String("directory", dir),
		slog.String("existing", existing))
	return nil
}

// nearestExisting walks up from path to the first component that exists.
// A regular file in the middle of path makes Stat fail with ENOTDIR; the walk
// continues so that file is returned.
func nearestExisting(path string) (string, error) {
	path = filepath.Clean(path)
	for {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		path = parent
	}
}
