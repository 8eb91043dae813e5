package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryOpener() runtimeOpener {
	rt := &bootstrap.Runtime{
		Config: &config.Config{DBDriver: config.DriverMemory},
		Store:  repository.NewMemoryStorage(),
	}
	return func(context.Context) (*bootstrap.Runtime, error) { return rt, nil }
}

func run(t *testing.T, open runtimeOpener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out, open).Run(context.Background(), append([]string{"folioctl"}, args...))
	return out.String(), err
}

func TestUserCreateAndShow(t *testing.T) {
	open := memoryOpener()

	out, err := run(t, open, "user", "create", "--username", "editor", "--password", "CorrectHorse42")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user editor (id 1)")

	out, err = run(t, open, "user", "show", "--username", "editor")
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "editor"`)
	assert.NotContains(t, out, "CorrectHorse42")

	out, err = run(t, open, "user", "show", "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": 1`)

	_, err = run(t, open, "user", "create", "--username", "editor", "--password", "CorrectHorse42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUserCreate_WeakPassword(t *testing.T) {
	_, err := run(t, memoryOpener(), "user", "create", "--username", "editor", "--password", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestUserShow_RequiresOneSelector(t *testing.T) {
	_, err := run(t, memoryOpener(), "user", "show")
	assert.Error(t, err)

	_, err = run(t, memoryOpener(), "user", "show", "--username", "a", "--id", "2")
	assert.Error(t, err)
}

func TestPostsSeedAndList(t *testing.T) {
	open := memoryOpener()

	out, err := run(t, open, "posts", "seed", "--count", "3", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 skipped)")

	out, err = run(t, open, "posts", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")), "only the header: seeded posts are drafts")

	out, err = run(t, open, "posts", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "SLUG")
	assert.Equal(t, 4, bytes.Count([]byte(out), []byte("\n")))
}

func TestPostsSeed_Fixtures(t *testing.T) {
	open := memoryOpener()
	path := filepath.Join(t.TempDir(), "posts.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
posts:
  - title: Hello Fixtures
    content: <p>Hi</p>
`), 0o600))

	out, err := run(t, open, "posts", "seed", "--fixtures", path, "--publish")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 posts (0 skipped)")

	out, err = run(t, open, "posts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hello-fixtures")
}

func TestSchemaMigrate_RequiresDatabase(t *testing.T) {
	_, err := run(t, memoryOpener(), "schema", "migrate")
	assert.Error(t, err)
}

func TestSchemaMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:        "test",
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "folio.db"),
	}
	open := func(ctx context.Context) (*bootstrap.Runtime, error) {
		return bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SkipRedis: true})
	}

	out, err := run(t, open, "schema", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date")

	out, err = run(t, open, "posts", "seed", "--count", "2", "--publish", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded")
}
