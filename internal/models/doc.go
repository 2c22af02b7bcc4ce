// Package models defines domain entities for the Etoile catalog sync layer.
//
// The package contains two categories of types:
//
// 1. Library records, serialized as-is into the cache namespaces:
//   - [Album] : Album metadata with optional primary artwork
//   - [Song] : Song metadata with its ordinal position in the album
//   - [Playlist] : Playlist metadata with optional artwork
//   - [Artist] : Transient artist record used only during a full sync
//   - [Lyrics] : Timed or plain lyric lines, derived on demand per song
//   - [ExternalPlayback] : Handoff payload for playing a song on another device
//
// 2. Remote shapes: [RemoteItem] mirrors the catalog server's generic item
// record. Remote records frequently arrive with required fields missing; the
// Complete* predicates make the skip policy explicit instead of burying nil
// checks in the sync loops.
package models
