// Package filex contains small filesystem helpers shared by the store and
// session layers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureFile creates path with the given initial content if it does not
// exist yet, creating parent directories as needed. An existing file is
// left untouched.
func EnsureFile(path string, initial []byte, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	if err := WriteAtomic(path, initial, perm); err != nil {
		return fmt.Errorf("init %s: %w", path, err)
	}
	return nil
}

// WriteAtomic replaces the content of path in one step: the data is written
// to a temporary file in the same directory and renamed over the target, so
// a concurrent reader sees either the old or the new content, never a
// partial write.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}
