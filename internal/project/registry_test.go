package project

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard)

func fixedClock(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}

func TestUpsertCreatesRegistry(t *testing.T) {
	fixedClock(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "projects.json")

	p, err := Upsert(path, "/work/site", "20.0.0", discard)
	require.NoError(t, err)
	assert.Equal(t, "site", p.Name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"active":true,"name":"site","path":"/work/site","version":"20.0.0",
		"createAt":"2024-05-01T12:00:00Z","updateAt":"2024-05-01T12:00:00Z"}]`, string(data))
}

func TestUpsertUpdatesExistingByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	fixedClock(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	_, err := Upsert(path, "/work/site", "18.0.0", discard)
	require.NoError(t, err)
	_, err = Upsert(path, "/work/api", "18.0.0", discard)
	require.NoError(t, err)

	fixedClock(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	_, err = Upsert(path, "/work/site", "20.0.0", discard)
	require.NoError(t, err)

	projects, err := Load(path)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "/work/api", projects[0].Path, "new entries go first")
	assert.Equal(t, "20.0.0", projects[1].Version)
	assert.Equal(t, "2024-05-01T12:00:00Z", projects[1].CreateAt)
	assert.Equal(t, "2024-06-01T12:00:00Z", projects[1].UpdateAt)
}

func TestLoadMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()
	projects, err := Load(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, projects)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o644))
	projects, err = Load(empty)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestLoadMalformedReportsSentinel(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{oops"), 0o644))

	projects, err := Load(bad)
	require.ErrorIs(t, err, ErrMalformedRegistry)
	assert.Empty(t, projects)
}

func TestUpsertMalformedRegistryWarnsAndReplaces(t *testing.T) {
	fixedClock(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
	var logs bytes.Buffer

	_, err := Upsert(path, "/work/site", "20.0.0", log.New(&logs))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "project registry is malformed")
	projects, err := Load(path)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "/work/site", projects[0].Path)
}

func TestUpsertWriteFailure(t *testing.T) {
	_, err := Upsert(filepath.Join(t.TempDir(), "missing", "projects.json"), "/work/site", "20.0.0", discard)
	require.Error(t, err)
}
