// Package view computes what the presentation layer shows from a state.Snapshot:
// the visible tag set for a category/search filter, the category selector
// options, and the per-tag detail record.
//
// Everything here is a pure function of its inputs. Re-filtering never touches
// the network, and a detail request is answered from whichever snapshot the
// caller passes in, so a tag that vanished on the last refresh yields
// ErrNotFound rather than stale data.
package view
