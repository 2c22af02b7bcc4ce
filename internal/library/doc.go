// Package library implements the local-first view of the user's music
// library.
//
// The core abstraction is [Library], which orchestrates the remote catalog
// walk (libraries, artists, albums, songs), merges results into the five
// cache namespaces, and reconciles playlist mutations between the cache and
// the remote server.
//
// Read paths come in three strengths:
//   - [Library.Reload] : cache first, falling back to a full remote sync
//   - [Library.ReloadNoPull] : cache only, nil snapshot on a miss
//   - [Library.Refresh] : unconditional remote sync
//
// Playlist mutations are optimistic: the cache is updated before the remote
// call and is never rolled back when the remote call fails. The cache may
// therefore run ahead of the server until the next pull; that window is an
// accepted property of the design, reconciled whenever remote data is next
// fetched.
//
// A Library instance has a single logical owner. No internal locking is
// performed; callers must not run overlapping mutating operations on the
// same instance.
package library
