package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempPrefix starts with a dot, so temporary files never match the child name grammar
// and are never listed.
const tempPrefix = ".tmp-"

// writeFile writes src to a uniquely named temporary file next to p and renames it
// into place, so readers see either the previous file or the complete new one.
func (b *FileBackend) writeFile(p string, src io.Reader) (int64, error) {
	tmpPath := filepath.Join(filepath.Dir(p), tempPrefix+uuid.NewString())

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, b.fileMode)
	if err != nil {
		return 0, fmt.Errorf("open temporary file: %w", err)
	}

	n, err := io.Copy(f, src)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return n, fmt.Errorf("write data to the file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return n, fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tmpPath, p); err != nil {
		_ = os.Remove(tmpPath)
		return n, fmt.Errorf("rename file %q->%q: %w", tmpPath, p, err)
	}

	return n, nil
}

// checkWritable reports whether p can be opened for reading and writing.
func checkWritable(p string) error {
	f, err := os.OpenFile(p, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	return f.Close()
}
