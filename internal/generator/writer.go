package generator

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/quantmind-br/evp/internal/utils"
	"github.com/spf13/afero"
)

// DefaultFileName is the generator file CMake reads
const DefaultFileName = "CMakeLists.txt"

// Writer persists generator output into the build directory
type Writer struct {
	fs       afero.Fs
	buildDir string
	fileName string
	dryRun   bool
	logger   *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Fs       afero.Fs
	BuildDir string
	FileName string
	DryRun   bool
	Logger   *utils.Logger
}

// Result describes one write
type Result struct {
	Path    string
	Hash    string
	Changed bool
}

// NewWriter creates a new generator writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.BuildDir == "" {
		opts.BuildDir = "build"
	}
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	return &Writer{
		fs:       opts.Fs,
		buildDir: opts.BuildDir,
		fileName: opts.FileName,
		dryRun:   opts.DryRun,
		logger:   opts.Logger,
	}
}

// Write stores content unless the file already holds identical bytes, so a
// no-op regeneration keeps the file's modification time.
func (w *Writer) Write(content string) (Result, error) {
	res := Result{Path: w.Path(), Hash: ContentHash(content)}

	existing, err := afero.ReadFile(w.fs, res.Path)
	switch {
	case err == nil && bytes.Equal(existing, []byte(content)):
		if w.logger != nil {
			w.logger.Debug().Str("path", res.Path).Msg("Generator file unchanged")
		}
		return res, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return res, err
	}

	res.Changed = true
	if w.dryRun {
		return res, nil
	}

	if err := w.fs.MkdirAll(w.buildDir, 0755); err != nil {
		return res, err
	}
	if err := afero.WriteFile(w.fs, res.Path, []byte(content), 0644); err != nil {
		return res, err
	}
	if w.logger != nil {
		w.logger.Debug().Str("path", res.Path).Str("hash", res.Hash[:12]).Msg("Generator file written")
	}
	return res, nil
}

// Path returns the generator file path
func (w *Writer) Path() string {
	return filepath.Join(w.buildDir, w.fileName)
}

// ContentHash returns the hex SHA-256 of generator content
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
