package adapter

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	m "distill.dev/pkg/distill/internal/model"
)

// Archiver collects legacy files into a single compressed archive.
type Archiver interface {
	// Add appends the file at src to the archive under name.
	Add(src m.Path, name string) (int64, error)
	// Close flushes and closes the archive.
	Close() error
	// Path returns the archive location.
	Path() m.Path
}

// ArchiverFactory opens a new Archiver at path.
type ArchiverFactory func(path m.Path) (Archiver, error)

// ZstdTarArchiver writes a zstd-compressed tar stream.
type ZstdTarArchiver struct {
	path m.Path
	file *os.File
	zw   *zstd.Encoder
	tw   *tar.Writer
}

// NewZstdTarArchiver creates the archive file (and its parent directory) at path.
func NewZstdTarArchiver(path m.Path) (Archiver, error) {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	// #nosec G304 - archive lives in the configured output dir
	file, err := os.Create(string(path))
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	zw, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("init zstd encoder: %w", err)
	}

	return &ZstdTarArchiver{
		path: path,
		file: file,
		zw:   zw,
		tw:   tar.NewWriter(zw),
	}, nil
}

// Add implements Archiver.
func (a *ZstdTarArchiver) Add(src m.Path, name string) (int64, error) {
	info, err := os.Stat(string(src))
	if err != nil {
		return 0, err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return 0, err
	}

	header.Name = filepath.ToSlash(name)

	// #nosec G304 - src is a planned project file
	f, err := os.Open(string(src))
	if err != nil {
		return 0, err
	}

	defer func() { _ = f.Close() }()

	if err := a.tw.WriteHeader(header); err != nil {
		return 0, fmt.Errorf("write tar header: %w", err)
	}

	return io.Copy(a.tw, f)
}

// Close implements Archiver.
func (a *ZstdTarArchiver) Close() error {
	return errors.Join(a.tw.Close(), a.zw.Close(), a.file.Close())
}

// Path implements Archiver.
func (a *ZstdTarArchiver) Path() m.Path {
	return a.path
}
