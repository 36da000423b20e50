// Package state holds the tag cache and category index shared by the refresh
// engine and the presentation layer.
//
// # Overview
//
// The Store owns a single immutable Snapshot. Each successful refresh builds a
// brand-new Snapshot from the fetched tag list and swaps it in; nothing is
// merged with the previous snapshot, so a tag missing from the latest payload
// disappears immediately.
//
//	Producer (engine):             Consumer (UI / CLI):
//	┌──────────────────┐          ┌──────────────────┐
//	│ FetchSnapshot()  │          │                  │
//	│       ↓          │          │                  │
//	│ store.Replace()  │─────────→│ store.Snapshot() │
//	│  or              │  (swap)  │       ↓          │
//	│ RecordFailure()  │          │ view.Visible()   │
//	└──────────────────┘          └──────────────────┘
//
// # Core Types
//
// Store:
//   - Replace(tags): build and install a new snapshot
//   - RecordFailure(err): keep cached data, record the error
//   - Snapshot(): current snapshot, never nil
//
// Snapshot:
//   - Ordered tags (backend order) with a name index
//   - Category index (category → count), "general" substituted for empty
//     categories, ordered by first appearance
//   - LastUpdated, LastError, ConsecutiveFailures
//
// # Concurrency Model
//
// Snapshots are never mutated once published. The lock only guards the pointer
// swap, so readers hold a fully formed snapshot for as long as they like and
// overlapping refreshes resolve as last-writer-wins.
//
// # Failure Semantics
//
// RecordFailure copies the current snapshot header, attaches the error and
// bumps ConsecutiveFailures. The tag list, name index and category index are
// shared with the previous snapshot unchanged. IsOffline reports two or more
// consecutive failures; the next successful Replace resets the counter.
package state
