// Package app wires configuration, the tag client, the refresh engine and the
// UI together. It is the composition root for both the dashboard and the
// one-shot CLI commands.
//
// # Startup
//
//  1. Load ~/.config/tagview/config.toml (defaults when absent)
//  2. Load UI preferences (theme, last category)
//  3. Open the log file; the terminal belongs to the TUI
//  4. Build the tag client and, when metrics_addr is set, the metrics server
//  5. Create the Engine and start it in the background: one refresh, then
//     the Scheduler
//  6. Run the Bubble Tea program until the user quits or ctx is cancelled;
//     the header reads "connecting" until the first refresh lands
//  7. Stop the Engine; late fetch results are discarded
//
// # Data Flow
//
//	Scheduler tick ──> Engine.Refresh ──> Source.FetchSnapshot
//	                        │
//	                        ├─ ok:   Store.Replace        (wholesale swap)
//	                        ├─ fail: Store.RecordFailure  (cache kept)
//	                        └─> OnUpdate ──> program.Send ──> ui re-reads Store
//
// # Refresh Semantics
//
// Ticks fire every interval regardless of whether the previous fetch has
// returned, so a slow server can cause fetches to overlap. Each applied result
// replaces the cache in full; whichever fetch completes last wins. A failed
// fetch never clears the cache. After Stop no result is applied, including
// fetches that were already in flight.
//
// # Errors
//
// Setup errors (bad config, unusable log path, malformed api_bind) are
// returned from Setup and Run. Fetch errors are logged, recorded on the store
// and counted in metrics; polling continues.
package app
