// Package assets loads a directory tree into memory once and answers
// path lookups against it.
//
// A Store is produced by Build, which walks the root directory, reads every
// file and attaches a content type to each one. The Store is never modified
// after Build returns, so a single *Store may be shared by any number of
// goroutines without locking. Map turns a request path into a Response by
// joining it onto the root with the same rule Build used for its keys.
package assets
