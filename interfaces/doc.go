// Package interfaces defines the types shared between the path grammar, the
// storage engine and the HTTP dispatcher, separating interface definitions
// from their implementations.
//
// # Keys
//
// Key is a validated request path: a first segment, up to ten further
// segments and a flag telling whether the path named a collection (trailing
// slash) or a single object.
//
// # Storage Interfaces
//
// ObjectStore: get/put/delete of one object, stored as a data record plus a
// metadata record sharing a stem.
//
// CollectionStore: listing and recursive removal of a collection directory.
//
// Store: both of the above plus key translation, used by the dispatcher.
//
// # Errors
//
// Storage failures are reported with the sentinel errors ErrMalformedPath,
// ErrNotFound, ErrForbidden and ErrMethodNotAllowed, wrapped with context.
// StatusFromError maps them onto the Status tags handed to the transport.
package interfaces
