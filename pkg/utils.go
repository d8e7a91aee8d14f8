package pkg

import (
	"os"
	"path/filepath"
)

// FindProjectRoot walks up from the working directory until it finds go.mod.
// Used to resolve the migrations directory regardless of where the process
// or a test binary started.
func FindProjectRoot() string {
	dir, err := os.Getwd()

	if err != nil {
		return "."
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			return "."
		}

		dir = parent
	}
}
