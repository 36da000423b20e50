package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tagview/internal/printer"
)

const discoveryBody = `{"tags":[
	{"name":"Pump_Speed","value":42.5,"type":"float","units":"rpm","category":"pumps","writable":true,"min":0,"max":3000},
	{"name":"Tank_Level","value":71,"type":"int","units":"%","category":"tanks","description":"Level of the main storage tank measured by radar"},
	{"name":"Heartbeat","value":1,"type":"int","quality":"uncertain"}
]}`

func newTagServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags/discovery":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(discoveryBody))
		case "/api/health":
			_, _ = w.Write([]byte(`{"status":"healthy","tags_count":3}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type result struct {
	out    string
	errOut string
	err    error
}

// run executes the command tree with an isolated HOME so config, prefs and
// log files land in a temp dir.
func run(t *testing.T, home string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", home)

	var out, errOut bytes.Buffer
	printer.SetOutput(&out, &errOut)
	t.Cleanup(func() { printer.SetOutput(os.Stdout, os.Stderr) })

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(home, "missing.toml")}, args...))
	err := root.ExecuteContext(context.Background())
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func TestList_PrintsAllTags(t *testing.T) {
	srv := newTagServer(t)
	res := run(t, t.TempDir(), "list", "--api", srv.URL)

	require.NoError(t, res.err, res.errOut)
	for _, want := range []string{"Pump_Speed", "✎", "42.5 rpm", "Tank_Level", "Heartbeat", "general", "3 of 3 tags"} {
		assert.Contains(t, res.out, want)
	}
	assert.Contains(t, res.out, "Level of the main storage tank measured ...")
}

func TestList_CategoryAndSearchCombine(t *testing.T) {
	srv := newTagServer(t)
	home := t.TempDir()

	res := run(t, home, "list", "--api", srv.URL, "--category", "pumps", "--search", "SPEED")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Pump_Speed")
	assert.NotContains(t, res.out, "Tank_Level")
	assert.Contains(t, res.out, "1 of 3 tags")

	res = run(t, home, "list", "--api", srv.URL, "--category", "Pumps")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "No tags match (3 cached).")
}

func TestList_EmptyCategoryMeansAll(t *testing.T) {
	srv := newTagServer(t)
	res := run(t, t.TempDir(), "list", "--api", srv.URL, "--category", "")

	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "3 of 3 tags")
}

func TestShow_PrintsDetail(t *testing.T) {
	srv := newTagServer(t)
	res := run(t, t.TempDir(), "show", "Pump_Speed", "--api", srv.URL)

	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "Current Value:")
	assert.Contains(t, res.out, "42.5 rpm")
	assert.Contains(t, res.out, "0 to 3000 rpm")
	assert.Contains(t, res.out, "Yes")
}

func TestShow_UnknownTag(t *testing.T) {
	srv := newTagServer(t)
	res := run(t, t.TempDir(), "show", "pump_speed", "--api", srv.URL)

	require.Error(t, res.err)
	assert.Equal(t, "Tag metadata not available", res.err.Error())
	assert.Contains(t, res.errOut, `none is named "pump_speed"`)
}

func TestShow_RequiresName(t *testing.T) {
	res := run(t, t.TempDir(), "show")
	require.Error(t, res.err)
}

func TestHealth(t *testing.T) {
	srv := newTagServer(t)
	res := run(t, t.TempDir(), "health", "--api", srv.URL)

	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "healthy")
	assert.Contains(t, res.out, "Tags:    3")
}

func TestList_ServerDownThenLogsShowsWarning(t *testing.T) {
	srv := newTagServer(t)
	addr := srv.URL
	srv.Close()
	home := t.TempDir()

	res := run(t, home, "list", "--api", addr)
	require.Error(t, res.err)
	assert.Equal(t, "Failed to fetch tags", res.err.Error())
	assert.Contains(t, res.errOut, "Server: "+addr)

	res = run(t, home, "logs")
	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "tag refresh failed")
}

func TestLogs_EmptyLog(t *testing.T) {
	res := run(t, t.TempDir(), "logs")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "no matching log entries")
}

func TestRoot_RejectsUnknownFlagsAndArgs(t *testing.T) {
	res := run(t, t.TempDir(), "--unknown-flag", "value")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown flag")

	res = run(t, t.TempDir(), "stray")
	require.Error(t, res.err)
}
