package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/ruteri/silo/interfaces"
	"github.com/ruteri/silo/keys"
)

// List returns the immediate children of dir: object names with their suffix
// stripped and sub-collection names, deduplicated and sorted.
// Entries that do not match the child name grammar are ignored.
func (b *FileBackend) List(ctx context.Context, dir string) ([]string, error) {
	if !dirExists(dir) {
		return nil, fmt.Errorf("no data at collection: %w", interfaces.ErrNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		b.log.Error("Failed to read collection", "err", err, slog.String("path", dir))
		return nil, fmt.Errorf("can't read: %w: %w", interfaces.ErrForbidden, err)
	}

	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := keys.ChildName(entry.Name())
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	b.log.Debug("Listed collection",
		slog.String("path", dir),
		slog.Int("children", len(names)))

	return names, nil
}

// DeleteRecursive removes every matching entry below dir, then dir itself.
// Individual failures are collected rather than aborting the walk; the result is
// ErrForbidden only if dir is still present afterwards. An absent dir is a no-op.
func (b *FileBackend) DeleteRecursive(ctx context.Context, dir string) error {
	var errs *multierror.Error
	if err := removeContents(dir); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = multierror.Append(errs, err)
	}

	if dirExists(dir) {
		b.log.Error("Failed to delete collection", "err", errs.ErrorOrNil(), slog.String("path", dir))
		if errs != nil {
			return fmt.Errorf("can't modify: %w: %w", interfaces.ErrForbidden, errs)
		}
		return fmt.Errorf("can't modify: %w", interfaces.ErrForbidden)
	}

	if errs != nil {
		b.log.Warn("Collection deleted with ignored errors", "err", errs, slog.String("path", dir))
	} else {
		b.log.Debug("Deleted collection", slog.String("path", dir))
	}
	return nil
}

// removeContents unlinks matching files and recursively removes matching
// directories inside dir. Entries outside the child name grammar are left alone.
func removeContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	var errs *multierror.Error
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	for _, entry := range entries {
		if _, ok := keys.ChildName(entry.Name()); !ok {
			continue
		}

		p := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := removeContents(p); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}
