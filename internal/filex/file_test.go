package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureStateDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureStateDir(tmp, ".recipehub")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, ".recipehub"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureStateDir_DefaultsToHome(t *testing.T) {
	tmp := t.TempDir()
	orig := userHomeDir
	userHomeDir = func() (string, error) { return tmp, nil }
	t.Cleanup(func() { userHomeDir = orig })

	got, err := EnsureStateDir("", ".recipehub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, ".recipehub"), got)

	userHomeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = EnsureStateDir("", ".recipehub")
	require.Error(t, err)
}

func TestEnsureStateDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureStateDir(tmp, "state")
	require.NoError(t, err)
	second, err := EnsureStateDir(tmp, "state")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureStateDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "state"), []byte("x"), 0o600))

	_, err := EnsureStateDir(tmp, "state")
	require.Error(t, err)
}

func TestReadUpload(t *testing.T) {
	tmp := t.TempDir()
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	path := filepath.Join(tmp, "pancakes.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	data, ct, err := ReadUpload(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, "image/png", ct)

	_, _, err = ReadUpload(path, 4)
	require.ErrorIs(t, err, ErrTooLarge)

	_, _, err = ReadUpload(filepath.Join(tmp, "missing.png"), 1024)
	require.Error(t, err)
}
