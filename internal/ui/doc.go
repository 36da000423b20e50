// Package ui provides the Bubble Tea dashboard for tagview.
//
// The dashboard is read-only. It never talks to the tag server itself: the
// refresh engine writes snapshots into a state.Store and pushes a message to
// the program after every refresh, and the model re-reads the store on each
// message and on its own tick.
//
// # Layout
//
//   - Header: connection state, tag and category counts, last update time
//   - Category bar: "All Categories" first, then categories in order of first
//     appearance, each with its tag count
//   - Table: name with a writable marker, value with units, type, clipped
//     description, category and a quality badge
//   - Command bar: key hints, the live search input, transient notices
//
// Filtering happens locally on every keystroke and every refresh through
// package view. The detail modal projects the selected tag against the
// newest snapshot; a tag that vanished in between produces the notice
// "Tag metadata not available" instead of a modal.
//
// Theme and category choices are persisted through package prefs.
package ui
