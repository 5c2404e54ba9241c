package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/ruteri/silo/interfaces"
	"github.com/ruteri/silo/keys"
)

const (
	DefaultDirMode  os.FileMode = 0o755
	DefaultFileMode os.FileMode = 0o644
)

// FileBackendConfig configures a FileBackend.
type FileBackendConfig struct {
	// BaseDir is the storage root. It is created if missing.
	BaseDir string

	// MetadataPrefix is the vendor header prefix persisted with objects.
	// Empty means DefaultMetadataPrefix.
	MetadataPrefix string

	// DirMode is used for every directory created below BaseDir.
	DirMode os.FileMode

	// FileMode is used for data and metadata files.
	FileMode os.FileMode
}

// FileBackend implements interfaces.Store on the local file system.
// It holds no locks and no cache: every call goes straight to disk.
// An object's data and metadata files are each replaced atomically, but not
// together, so concurrent writers to one key can leave a mismatched pair.
type FileBackend struct {
	baseDir        string
	metadataPrefix string
	dirMode        os.FileMode
	fileMode       os.FileMode
	log            *slog.Logger
	locationURI    string
}

// NewFileBackend creates a file storage backend rooted at cfg.BaseDir.
func NewFileBackend(cfg FileBackendConfig, log *slog.Logger) (*FileBackend, error) {
	if cfg.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.MetadataPrefix == "" {
		cfg.MetadataPrefix = DefaultMetadataPrefix
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = DefaultDirMode
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = DefaultFileMode
	}

	baseDir, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	if err := os.MkdirAll(baseDir, cfg.DirMode); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileBackend{
		baseDir:        baseDir,
		metadataPrefix: cfg.MetadataPrefix,
		dirMode:        cfg.DirMode,
		fileMode:       cfg.FileMode,
		log:            log,
		locationURI:    fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Locate translates a key into a path below the base directory.
func (b *FileBackend) Locate(key interfaces.Key) string {
	return keys.Translate(b.baseDir, key)
}

// Get opens the data file for stem and decodes its metadata.
// Returns ErrNotFound if the data file is absent or unreadable.
func (b *FileBackend) Get(ctx context.Context, stem string) (io.ReadCloser, interfaces.Metadata, error) {
	dataFile := keys.DataFile(stem)

	f, err := os.Open(dataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open data file: %w: %w", interfaces.ErrNotFound, err)
	}

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("data file is not readable: %w", interfaces.ErrNotFound)
	}

	md := b.readMetadata(keys.MetaFile(stem))

	b.log.Debug("Fetched object",
		slog.String("path", dataFile),
		slog.Int64("size", fi.Size()))

	return f, md, nil
}

// Put writes body to the data file and the allow-listed headers to the metadata file,
// replacing both wholesale. Missing parent directories are created.
func (b *FileBackend) Put(ctx context.Context, stem string, body io.Reader, headers http.Header) (interfaces.PutResult, error) {
	dataFile := keys.DataFile(stem)
	metaFile := keys.MetaFile(stem)

	// Creation errors surface through the write below.
	_ = os.MkdirAll(filepath.Dir(stem), b.dirMode)

	result := interfaces.Updated
	if _, err := os.Stat(dataFile); errors.Is(err, fs.ErrNotExist) {
		result = interfaces.Created
	}

	n, err := b.writeFile(dataFile, body)
	if err != nil {
		b.log.Error("Failed to write object data", "err", err, slog.String("path", dataFile))
		return result, fmt.Errorf("can't modify: %w: %w", interfaces.ErrForbidden, err)
	}

	if err := checkWritable(dataFile); err != nil {
		b.log.Error("Object data is not writable after put", "err", err, slog.String("path", dataFile))
		return result, fmt.Errorf("can't modify: %w: %w", interfaces.ErrForbidden, err)
	}

	md := StoredHeaders(headers, b.metadataPrefix)
	if _, err := b.writeFile(metaFile, bytes.NewReader(EncodeMetadata(md))); err != nil {
		b.log.Error("Failed to write object metadata", "err", err, slog.String("path", metaFile))
		return result, fmt.Errorf("can't modify: %w: %w", interfaces.ErrForbidden, err)
	}

	b.log.Debug("Stored object",
		slog.String("path", dataFile),
		slog.Int64("size", n),
		slog.String("result", result.String()))

	return result, nil
}

// Delete removes the data and metadata files for stem.
// It fails with ErrForbidden only if a removal failed and a file is still there.
func (b *FileBackend) Delete(ctx context.Context, stem string) error {
	dataFile := keys.DataFile(stem)
	metaFile := keys.MetaFile(stem)

	var errs *multierror.Error
	if err := removeFile(dataFile); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := removeFile(metaFile); err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs != nil && (fileExists(dataFile) || fileExists(metaFile)) {
		b.log.Error("Failed to delete object", "err", errs, slog.String("path", stem))
		return fmt.Errorf("can't modify: %w: %w", interfaces.ErrForbidden, errs)
	}

	b.log.Debug("Deleted object", slog.String("path", stem))
	return nil
}

// Available checks if the file backend is accessible by verifying the base directory exists.
func (b *FileBackend) Available(ctx context.Context) bool {
	_, err := os.Stat(b.baseDir)
	if err != nil {
		b.log.Debug("File backend unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this storage backend.
func (b *FileBackend) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(b.baseDir))
}

// LocationURI returns the URI that identifies this storage backend.
func (b *FileBackend) LocationURI() string {
	return b.locationURI
}

// readMetadata decodes the metadata file. A missing or broken record yields
// whatever could be decoded, possibly nothing.
func (b *FileBackend) readMetadata(metaFile string) interfaces.Metadata {
	f, err := os.Open(metaFile)
	if err != nil {
		return interfaces.Metadata{}
	}
	defer f.Close()

	md, err := DecodeMetadata(f)
	if err != nil {
		b.log.Warn("Failed to decode object metadata", "err", err, slog.String("path", metaFile))
	}
	return md
}

func removeFile(p string) error {
	err := os.Remove(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func fileExists(p string) bool {
	fi, err := os.Lstat(p)
	return err == nil && !fi.IsDir()
}

func dirExists(p string) bool {
	fi, err := os.Lstat(p)
	return err == nil && fi.IsDir()
}
