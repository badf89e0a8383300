package capture

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest summarizes a finished capture: enough for downstream tools
// to replay the frame sequence without re-reading every PCD header.
type Manifest struct {
	Frames       int     `yaml:"frames"`
	Rate         float64 `yaml:"rate"`
	Seed         int64   `yaml:"seed"`
	FramePoints  []int   `yaml:"frame_points"`
	StaticFile   string  `yaml:"static_file,omitempty"`
	StaticPoints int     `yaml:"static_points,omitempty"`
}

func (s *Session) writeManifest() error {
	data, err := yaml.Marshal(&s.manifest)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(s.opts.OutputDir, "manifest.yaml")
	if err := os.MkdirAll(s.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
