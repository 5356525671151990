// Package cfgutil implements small filesystem helpers shared by the
// daemon's configuration loader.
package cfgutil

import (
	"fmt"
	"os"
)

// FileExists reports whether path exists, treating any stat error other
// than "not exist" as a genuine failure.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CheckCreateDir creates path if it does not exist, and errors if path
// exists but is not a directory.
func CheckCreateDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0700); err != nil {
				return fmt.Errorf("cannot create directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("error checking directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
