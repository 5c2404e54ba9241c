// Package main (cmd/httpserver) implements silo-server, a path-addressed
// object store served over HTTP and kept on a local directory.
//
// Every request path on --listen-addr is a key. Objects are stored as a
// ".data" file holding the body and a ".meta" file holding the content type
// and any headers carrying the --metadata-prefix. Collections are directories.
// The first path segment is sharded into up to three directory levels so
// the storage root never holds too many entries.
//
// Metrics, health, drain and pprof endpoints are served on --metrics-addr,
// which keeps every path on the data listener free for keys.
//
// On SIGINT or SIGTERM the server marks itself not ready, waits
// --drain-seconds and shuts both listeners down gracefully.
//
// Every flag can also be set through its SILO_* environment variable.
//
// Example usage:
//
//	silo-server --listen-addr=0.0.0.0:8080 \
//	    --metrics-addr=127.0.0.1:8090 \
//	    --data-dir=/var/lib/silo \
//	    --max-body-bytes=104857600
package main
