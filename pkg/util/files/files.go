package files

import (
	"fmt"
	"os"
)

// Exists reports whether path exists, distinguishing "not there" from a real
// stat error.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to determine if %s exists: %w", path, err)
}
