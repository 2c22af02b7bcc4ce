// Package cache implements the two-tier expiring store behind the library's
// five namespaces.
//
// A [Store] pairs a small in-memory tier (hard count and cost ceilings,
// expiry deadline fixed at construction) with a persistent SQLite tier
// (per-row expiry stamped at write time). Reads consult memory first, then
// disk; writes land in both. Expired or evicted entries are
// indistinguishable from entries that were never written: both surface
// [shared.ErrNotFound].
//
// Namespaces share one database table and are distinguished by name.
// Constructing a store for a namespace that already has rows on disk never
// destroys them.
package cache
