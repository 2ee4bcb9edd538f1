package cart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreGeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "id")
	store := NewSessionStore(path)

	id, err := store.Load()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "session_"))

	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, id, string(stored))
}

func TestSessionStoreIsStableAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id")
	first, err := NewSessionStore(path).Load()
	require.NoError(t, err)

	second, err := NewSessionStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSessionStoreReadsExistingId(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id")
	require.NoError(t, os.WriteFile(path, []byte("session_existing\n"), 0o600))

	id, err := NewSessionStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "session_existing", id)
}
