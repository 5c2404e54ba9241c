// Package storage implements the object store on the local file system.
//
// Keys are translated by package keys into a sharded directory tree below a
// base directory. Every object is a pair of sibling files sharing a stem:
//
//	<stem>.data   the object bytes, written verbatim
//	<stem>.meta   the allow-listed request headers, one "name: value" line each
//
// Collections are plain directories and exist as long as something was stored
// below them. They are created implicitly by Put and removed by DeleteRecursive.
//
// # Metadata
//
// On write, content-type and every header starting with the configured vendor
// prefix (X-SecondLife- by default) are stored; everything else is dropped.
// On read, only content-type is replayed.
//
// # Consistency
//
// Each file is written to a temporary name and renamed into place, so a reader
// never sees a half-written file. The data and metadata files are still two
// separate renames: a crash or a concurrent writer between them can pair data
// from one put with metadata from another. There is no locking.
//
// # Usage Example
//
//	backend, err := storage.NewFileBackend(storage.FileBackendConfig{BaseDir: "/var/lib/silo"}, logger)
//	if err != nil {
//	    log.Fatalf("Failed to create file backend: %v", err)
//	}
//
//	key, _ := keys.Parse("/abcdef/g1")
//	result, err := backend.Put(ctx, backend.Locate(key), body, req.Header)
package storage
