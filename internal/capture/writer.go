package capture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meshcap/meshcap/pkg/formats"
)

// writeCloud encodes points to path atomically: the cloud is written
// to a temporary sibling file and renamed into place, so a crash or a
// concurrent reader never observes a truncated PCD.
func writeCloud(path string, points []formats.PCDPoint, mode formats.PCDLabelMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	// EncodePCD buffers and flushes internally.
	if err := formats.EncodePCD(f, points, mode); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
