// Package filex wraps filesystem chores of the CLI client: locating its
// state directory and reading files picked for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned by ReadUpload when the file exceeds the limit.
var ErrTooLarge = errors.New("file too large")

var userHomeDir = os.UserHomeDir

// EnsureStateDir creates (if needed) the directory name under base and
// returns its absolute path. An empty base means the user's home directory.
func EnsureStateDir(base, name string) (string, error) {
	if base == "" {
		home, err := userHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		base = home
	}

	dir, err := filepath.Abs(filepath.Join(base, name))
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", name, err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadUpload reads at most maxSize bytes of path and sniffs its content type.
func ReadUpload(path string, maxSize int64) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, maxSize)
	}

	return data, http.DetectContentType(data), nil
}
