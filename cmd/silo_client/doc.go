// Package main (cmd/silo_client) implements silo, a command-line client for
// the object store API.
//
// Commands:
//
//	get KEY         print the object, or write it to --output
//	put KEY         store --file (or stdin) at KEY
//	delete KEY      remove the object
//	list KEY/       print the collection's children, one per line
//	rmdir KEY/      remove the collection and everything below it
//
// put accepts --content-type and repeated --meta name=value headers. Only
// headers carrying the server's metadata prefix are kept by the server.
//
// A missing object or collection exits with an error wrapping
// interfaces.ErrNotFound.
package main
