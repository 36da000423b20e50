// Package tags provides the HTTP client and data model for the tag server API.
//
// # Overview
//
// A tag server exposes SCADA-style tags: named points carrying a value, a data
// type, a quality flag, units, writability and optional simulation metadata.
// This package fetches the full tag set in one request and decodes it into
// Tag records. It knows nothing about caching or filtering; see the state and
// view packages for that.
//
// # Endpoints
//
//   - GET /api/tags/discovery: the full tag list with metadata (path configurable)
//   - GET /api/health: server status and tag count
//
// # Error Handling
//
// Every failure (transport error, non-2xx status, malformed JSON) is returned as
// a *SnapshotError so callers can keep serving stale data:
//
//	tags, err := client.FetchSnapshot(ctx)
//	if tags.IsSnapshotError(err) {
//		// keep the previous snapshot, retry on the next tick
//	}
//
// # Defaults
//
// Optional fields are decoded as zero values. Display code should use
// CategoryOrDefault ("general"), DescriptionOrDefault ("No description") and
// QualityOrDefault (good). HasRange only checks Min, so a tag with Min but no
// Max still shows a range.
package tags
