package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alexanderramin/stride/internal/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestDBKeyringCommands(t *testing.T) {
	gokeyring.MockInit()

	out := mustExecNoSetup(t, "db", "keyring", "set", "postgres://stride@localhost/stride?sslmode=disable")
	assert.Contains(t, out, "stored")

	dsn, err := keyring.GetConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://stride@localhost/stride?sslmode=disable", dsn)

	assert.Contains(t, mustExecNoSetup(t, "db", "keyring", "delete"), "removed")
	assert.Contains(t, mustExecNoSetup(t, "db", "keyring", "delete"), "No connection string stored")
}

func TestDBKeyringSet_RejectsSQLitePaths(t *testing.T) {
	gokeyring.MockInit()
	_, err := executeNoSetup(t, "db", "keyring", "set", "/tmp/stride.db")
	assert.ErrorContains(t, err, "only Postgres")
}

// TestDBCommands_SkipSetup checks that db commands never open storage,
// so a broken or missing database can still be configured.
func TestDBCommands_SkipSetup(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no keyring here"))

	_, err := executeNoSetup(t, "db", "keyring", "delete")
	assert.ErrorContains(t, err, "no keyring here")
}

func executeNoSetup(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(&App{}, func() error {
		t.Fatal("setup must not run for db commands")
		return nil
	})
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExecNoSetup(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeNoSetup(t, args...)
	require.NoError(t, err, out)
	return out
}
