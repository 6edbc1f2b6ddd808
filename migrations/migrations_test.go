package migrations

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	src, err := iofs.New(FS, ".")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, ident, err := src.ReadUp(version)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_contact_submissions", ident)
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS contact_submissions"))

	down, _, err := src.ReadDown(version)
	require.NoError(t, err)
	defer down.Close()
}
