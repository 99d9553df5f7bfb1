//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Download runs the full search-and-download pipeline with the
// built-in vocabulary.
func Download() error {
	mg.Deps(Build, Init)
	return runBinary("download")
}

// Index rebuilds the CSV index from the snapshots on disk.
func Index() error {
	mg.Deps(Build)
	return runBinary("index")
}

func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", binName, args, err)
	}
	return nil
}
