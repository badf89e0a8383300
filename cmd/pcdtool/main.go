// pcdtool is a CLI utility for inspecting and previewing PCD point clouds.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/meshcap/meshcap/internal/preview"
	"github.com/meshcap/meshcap/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "preview":
		cmdPreview(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pcdtool - PCD point cloud utility

Usage:
  pcdtool <command> [options]

Commands:
  info <file.pcd>              Show cloud statistics
  preview <file.pcd> [output]  Render a top-down WebP preview

Examples:
  pcdtool info captures/frames/frame_000.pcd
  pcdtool preview captures/frames/frame_000.pcd frame0.webp`)
}

func loadCloud(path string) *formats.PCD {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pcd, err := formats.ParsePCD(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}
	return pcd
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pcdtool info <file.pcd>")
		os.Exit(1)
	}

	pcd := loadCloud(args[0])

	// Count by label
	labelCount := make(map[string]int)
	for _, p := range pcd.Points {
		labelCount[p.Label]++
	}

	fmt.Printf("Cloud:  %s\n", args[0])
	fmt.Printf("Points: %d\n", len(pcd.Points))
	fmt.Printf("Labels: %d\n", len(labelCount))
	fmt.Println()
	fmt.Println("Points by label:")

	type labelStat struct {
		label string
		count int
	}
	var stats []labelStat
	for label, count := range labelCount {
		stats = append(stats, labelStat{label, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})

	for _, s := range stats {
		fmt.Printf("  %-24s %d\n", s.label, s.count)
	}
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	size := fs.Int("size", 512, "Output image edge length in pixels")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pcdtool preview <file.pcd> [output.webp]")
		os.Exit(1)
	}

	path := fs.Arg(0)
	out := strings.TrimSuffix(path, ".pcd") + ".webp"
	if fs.NArg() >= 2 {
		out = fs.Arg(1)
	}

	pcd := loadCloud(path)

	opts := preview.DefaultOptions()
	opts.Size = *size
	if err := preview.WriteFile(out, pcd.Points, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d points)\n", out, len(pcd.Points))
}
