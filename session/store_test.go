package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gowtham404/bookstore-auth-go/session"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	saved := testSession(t, time.Now().Add(1*time.Hour))
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.Save(testSession(t, time.Now().Add(1*time.Hour))))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	// clearing again is a no-op
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptRecordIsAbsent(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "{{{{"},
		{"partial record", `{"user":{"user_id":"1"},"access_token":"a"}`},
		{"empty object", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0o600))

			store := session.NewFileStore(path)
			loaded, err := store.Load()
			require.NoError(t, err)
			require.Nil(t, loaded)

			// the corrupt file is dropped so it is not re-parsed
			_, statErr := os.Stat(path)
			require.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestFileStoreSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.Save(testSession(t, time.Now().Add(1*time.Hour))))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
}

func TestMemoryStore(t *testing.T) {
	store := session.NewMemoryStore()

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	saved := testSession(t, time.Now().Add(1*time.Hour))
	require.NoError(t, store.Save(saved))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)

	// the store hands out copies, not aliases
	loaded.AccessToken = "mutated"
	again, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, saved.AccessToken, again.AccessToken)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}
