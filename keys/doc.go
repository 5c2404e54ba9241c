// Package keys validates request paths and translates them into storage locations.
//
// A path is accepted only when it matches
//
//	/first(/segment){0,10}/?
//
// where every segment is drawn from [A-Za-z0-9%_+-]. Paths are lowercased before
// matching. A trailing slash names a collection, its absence an object.
//
// The first segment is sharded over two directory levels to bound fan-out at
// the top of the tree:
//
//	/abcdef/g1  ->  <root>/ab/cd/ef/g1.data + <root>/ab/cd/ef/g1.meta
//	/abcdef/    ->  <root>/ab/cd/ef
package keys
