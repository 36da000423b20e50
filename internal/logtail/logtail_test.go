package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tagview.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var all []string
	for i := 1; i <= 10; i++ {
		all = append(all, fmt.Sprintf("Line %d", i))
	}
	path := writeLog(t, all)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero reads nothing", 0, nil},
		{"negative reads nothing", -1, nil},
		{"read partial (5)", 5, all[5:]},
		{"read exactly all (10)", 10, all},
		{"read more than exists (20)", 20, all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines, nil)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10, nil)
	if err != nil {
		t.Fatalf("Read returned error for missing file: %v", err)
	}
	if got != nil {
		t.Fatalf("Read = %v, want nil", got)
	}
}

func TestRead_WarningsOnly(t *testing.T) {
	path := writeLog(t, []string{
		`time=2026-01-01T10:00:00Z level=INFO msg="refresh engine started" interval=2s`,
		`time=2026-01-01T10:00:02Z level=WARN msg="tag refresh failed" error="connection refused"`,
		`time=2026-01-01T10:00:04Z level=DEBUG msg="tag refresh applied" tags=12`,
		`time=2026-01-01T10:00:06Z level=ERROR msg="refresh tick panicked" panic=boom`,
		`time=2026-01-01T10:00:08Z level=WARN msg="tag refresh failed" error=timeout`,
	})

	got, err := Read(path, 2, WarningsOnly)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Read returned %d lines, want 2: %v", len(got), got)
	}
	if Level(got[0]) != "ERROR" || Level(got[1]) != "WARN" {
		t.Fatalf("Read levels = %q, %q; want ERROR, WARN", Level(got[0]), Level(got[1]))
	}
}

func TestLevel(t *testing.T) {
	cases := map[string]string{
		`level=INFO msg=x`:        "INFO",
		`time=t level=WARN`:       "WARN",
		`no level here`:           "",
		`msg="x" level=DEBUG+2 a`: "DEBUG+2",
	}
	for line, want := range cases {
		if got := Level(line); got != want {
			t.Fatalf("Level(%q) = %q, want %q", line, got, want)
		}
	}
}
