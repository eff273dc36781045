// Package filesystem opens the files downloaded bodies are written to.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NamanBalaji/etaprogress/internal/errors"
)

var ErrExists = errors.New("file already exists")

// Create opens path for writing and creates missing parent directories. An
// existing file is only truncated when overwrite is set.
func Create(path string, overwrite bool) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return nil, err
	}

	return f, nil
}

// Exists checks if a file exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
