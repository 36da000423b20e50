// Package logtail reads the tail of tagview's own log file.
//
// The refresh engine logs through log/slog's text handler into a file, since
// the terminal belongs to the TUI. Read pulls the last N lines (optionally only
// those accepted by a Keep predicate such as WarningsOnly) using a ring buffer,
// so memory stays O(N) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 200, logtail.WarningsOnly)
//
// A missing file is not an error; it simply yields no lines.
package logtail
