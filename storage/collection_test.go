package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruteri/silo/interfaces"
	"github.com/ruteri/silo/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, p string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
}

func TestFileBackend_List(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	dir := locate(t, backend, "/abcdef/")

	touch(t, filepath.Join(dir, "foo.data"))
	touch(t, filepath.Join(dir, "bar.data"))
	touch(t, filepath.Join(dir, "bar.meta"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".tmp-1234"))
	touch(t, filepath.Join(dir, "baz", "inner.data"))

	names, err := backend.List(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "baz", "foo"}, names)
}

func TestFileBackend_ListAfterPut(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	for _, path := range []string{"/66ba1038/one", "/66ba1038/two", "/66ba1038/three", "/66ba1038/nested/four"} {
		_, err := backend.Put(ctx, locate(t, backend, path), strings.NewReader("x"), nil)
		require.NoError(t, err)
	}

	names, err := backend.List(ctx, locate(t, backend, "/66ba1038/"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nested", "one", "three", "two"}, names)
}

func TestFileBackend_ListEmpty(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	dir := locate(t, backend, "/abcdef/")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	names, err := backend.List(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileBackend_ListNotFound(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	_, err := backend.List(ctx, locate(t, backend, "/abcdef/missing/"))
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	// a regular file is not a collection
	file := filepath.Join(backend.baseDir, "plain")
	touch(t, file)
	_, err = backend.List(ctx, file)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestFileBackend_ListForbidden(t *testing.T) {
	skipIfRoot(t)
	ctx := context.Background()
	backend := newTestBackend(t)
	dir := locate(t, backend, "/abcdef/")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.Chmod(dir, 0o311))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := backend.List(ctx, dir)
	assert.ErrorIs(t, err, interfaces.ErrForbidden)
}

func TestFileBackend_DeleteRecursive(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	paths := []string{
		"/abcdef/nested/above",
		"/abcdef/nested/above/below",
		"/abcdef/nested/a/b/c/d",
		"/abcdef/nested/x",
	}
	for _, path := range paths {
		_, err := backend.Put(ctx, locate(t, backend, path), strings.NewReader("x"), nil)
		require.NoError(t, err)
	}

	dir := locate(t, backend, "/abcdef/nested/")
	require.NoError(t, backend.DeleteRecursive(ctx, dir))
	assert.NoDirExists(t, dir)

	for _, path := range paths {
		_, _, err := backend.Get(ctx, locate(t, backend, path))
		assert.ErrorIs(t, err, interfaces.ErrNotFound, path)
	}

	_, err := backend.List(ctx, dir)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	// second call is a no-op
	assert.NoError(t, backend.DeleteRecursive(ctx, dir))
}

func TestFileBackend_DeleteRecursiveKeepsSiblings(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	kept := locate(t, backend, "/abcdef/kept")
	_, err := backend.Put(ctx, kept, strings.NewReader("x"), nil)
	require.NoError(t, err)
	_, err = backend.Put(ctx, locate(t, backend, "/abcdef/gone/item"), strings.NewReader("x"), nil)
	require.NoError(t, err)

	require.NoError(t, backend.DeleteRecursive(ctx, locate(t, backend, "/abcdef/gone/")))

	rc, _, err := backend.Get(ctx, kept)
	require.NoError(t, err)
	rc.Close()
}

func TestFileBackend_DeleteRecursiveLeavesForeignEntries(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	dir := locate(t, backend, "/abcdef/mixed/")

	touch(t, filepath.Join(dir, "obj.data"))
	touch(t, filepath.Join(dir, "obj.meta"))
	foreign := filepath.Join(dir, "README.txt")
	touch(t, foreign)

	err := backend.DeleteRecursive(ctx, dir)
	assert.ErrorIs(t, err, interfaces.ErrForbidden)

	assert.FileExists(t, foreign)
	assert.NoFileExists(t, filepath.Join(dir, "obj"+keys.DataSuffix))
	assert.NoFileExists(t, filepath.Join(dir, "obj"+keys.MetaSuffix))
}

func TestFileBackend_DeleteRecursiveDoesNotFollowSymlinks(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	dir := locate(t, backend, "/abcdef/links/")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	outside := t.TempDir()
	precious := filepath.Join(outside, "precious.data")
	touch(t, precious)
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "escape")))

	require.NoError(t, backend.DeleteRecursive(ctx, dir))
	assert.NoDirExists(t, dir)
	assert.FileExists(t, precious)
}

func TestFileBackend_DeleteRecursiveAbsent(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)
	assert.NoError(t, backend.DeleteRecursive(ctx, locate(t, backend, "/never/existed/")))
}
