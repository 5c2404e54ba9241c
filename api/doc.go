/*
Package api holds what the object store server and its clients agree on:
server configuration, response content types and the collection listing format.

# Protocol

Every request path is a key. A path ending in "/" names a collection, any
other path names an object.

	GET    /key        object bytes; a stored Content-Type is replayed
	PUT    /key        store the body; 201 on first write, 200 on overwrite
	DELETE /key        remove the object; removing an absent object succeeds
	GET    /key/       child names, one per line
	DELETE /key/       remove the collection and everything below it

Errors are plain text of the form "<detail>: <path>\n" with status 400
(malformed path), 403 (write or delete failed), 404 (nothing stored) or
405 (verb not valid for the kind of key).

The clients subpackage implements this protocol in Go.
*/
package api
