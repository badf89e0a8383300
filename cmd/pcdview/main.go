// pcdview plays back captured point-cloud frame sequences.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meshcap/meshcap/internal/logger"
	"github.com/meshcap/meshcap/internal/viewer"
	"github.com/meshcap/meshcap/pkg/formats"
)

func main() {
	rate := flag.Float64("rate", 30, "Playback rate in frames per second")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	pointSize := flag.Float64("point-size", 2, "Point size in pixels")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, `Usage: pcdview [options] <capture-dir>

The capture directory is expected to hold frames/frame_*.pcd, and
optionally scene_point_cloud/scene.pcd with separately captured static
geometry.

Controls:
  space        pause/resume
  left/right   step one frame
  drag         orbit
  wheel        zoom
  q, escape    quit`)
		os.Exit(1)
	}

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dir := flag.Arg(0)
	frames, err := viewer.LoadFrames(filepath.Join(dir, "frames"))
	if err != nil {
		// The directory itself may hold the frames.
		frames, err = viewer.LoadFrames(dir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var static *formats.PCD
	staticPath := filepath.Join(dir, "scene_point_cloud", "scene.pcd")
	if data, err := os.ReadFile(staticPath); err == nil {
		static, err = formats.ParsePCD(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", staticPath, err)
			os.Exit(1)
		}
	}

	v, err := viewer.New(frames, static, viewer.Options{
		Title:     "meshcap viewer",
		Width:     *width,
		Height:    *height,
		Rate:      *rate,
		PointSize: float32(*pointSize),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
