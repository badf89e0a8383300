package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/meshcap/meshcap/pkg/math"
)

// PCD format errors.
var (
	ErrPCDMissingHeader = errors.New("PCD header incomplete: missing DATA marker")
	ErrPCDNotASCII      = errors.New("only DATA ascii PCD files are supported")
	ErrPCDTruncated     = errors.New("PCD data has fewer points than the header declares")
)

// PCDLabelMode selects how the label column is encoded on disk.
type PCDLabelMode int

const (
	// PCDLabelString writes the literal label with spaces replaced by
	// underscores. This is the canonical encoding.
	PCDLabelString PCDLabelMode = iota
	// PCDLabelHash writes the FNV-1a 32-bit hash of the label, for
	// consumers that require purely numeric columns.
	PCDLabelHash
)

// PCDPoint is one labeled, colored, oriented surface point. Alpha is
// carried in memory but not persisted.
type PCDPoint struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    color.RGBA
	Label    string
}

// PCD holds a parsed point-cloud file.
type PCD struct {
	Points []PCDPoint
}

// pcdFieldNames is the canonical field layout, in column order.
const pcdFieldNames = "x y z normal_x normal_y normal_z rgb label"

// LabelHash returns the stable 32-bit FNV-1a hash used by the
// PCDLabelHash encoding and by per-object RNG seeding.
func LabelHash(label string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(label))
	return h.Sum32()
}

// EncodePCD writes points to w in the ASCII PCD layout:
// a fixed-field header followed by one line per point.
func EncodePCD(w io.Writer, points []PCDPoint, mode PCDLabelMode) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# .PCD v0.7 - Point Cloud Data file format")
	fmt.Fprintln(bw, "VERSION 0.7")
	fmt.Fprintln(bw, "FIELDS "+pcdFieldNames)
	fmt.Fprintln(bw, "SIZE 4 4 4 4 4 4 4 4")
	fmt.Fprintln(bw, "TYPE F F F F F F U U")
	fmt.Fprintln(bw, "COUNT 1 1 1 1 1 1 1 1")
	fmt.Fprintf(bw, "WIDTH %d\n", len(points))
	fmt.Fprintln(bw, "HEIGHT 1")
	fmt.Fprintln(bw, "VIEWPOINT 0 0 0 1 0 0 0")
	fmt.Fprintf(bw, "POINTS %d\n", len(points))
	fmt.Fprintln(bw, "DATA ascii")

	for i := range points {
		p := &points[i]
		rgb := uint32(p.Color.R)<<16 | uint32(p.Color.G)<<8 | uint32(p.Color.B)
		var label string
		if mode == PCDLabelHash {
			label = strconv.FormatUint(uint64(LabelHash(p.Label)), 10)
		} else {
			label = strings.ReplaceAll(p.Label, " ", "_")
		}
		fmt.Fprintf(bw, "%g %g %g %g %g %g %d %s\n",
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Normal.X, p.Normal.Y, p.Normal.Z,
			rgb, label)
	}

	return bw.Flush()
}

// ParsePCD parses an ASCII PCD file. Column layout is taken from the
// FIELDS header line, so files without normals also parse. The label
// column is returned verbatim (a string-mode label or the decimal hash
// of a hash-mode label).
func ParsePCD(data []byte) (*PCD, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	fieldIdx := map[string]int{}
	pointCount := -1
	inData := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "FIELDS":
			for i, name := range fields[1:] {
				fieldIdx[name] = i
			}
		case "POINTS":
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("bad POINTS value %q", fields[1])
			}
			pointCount = n
		case "DATA":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, ErrPCDNotASCII
			}
			inData = true
		case "VERSION", "SIZE", "TYPE", "COUNT", "WIDTH", "HEIGHT", "VIEWPOINT":
			// Informational for ASCII parsing
		}
		if inData {
			break
		}
	}

	if !inData || pointCount < 0 {
		return nil, ErrPCDMissingHeader
	}
	xi, ok := fieldIdx["x"]
	if !ok {
		return nil, fmt.Errorf("PCD header missing x field")
	}

	pcd := &PCD{Points: make([]PCDPoint, 0, pointCount)}
	for len(pcd.Points) < pointCount && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Fields(line)

		var p PCDPoint
		var err error
		if p.Position, err = parseVec3At(cols, xi); err != nil {
			return nil, fmt.Errorf("point %d: %w", len(pcd.Points), err)
		}
		if ni, ok := fieldIdx["normal_x"]; ok {
			if p.Normal, err = parseVec3At(cols, ni); err != nil {
				return nil, fmt.Errorf("point %d: %w", len(pcd.Points), err)
			}
		}
		if ci, ok := fieldIdx["rgb"]; ok && ci < len(cols) {
			rgb, err := strconv.ParseUint(cols[ci], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("point %d: bad rgb %q", len(pcd.Points), cols[ci])
			}
			p.Color = color.RGBA{
				R: uint8(rgb >> 16),
				G: uint8(rgb >> 8),
				B: uint8(rgb),
				A: 255,
			}
		}
		if li, ok := fieldIdx["label"]; ok && li < len(cols) {
			p.Label = cols[li]
		}

		pcd.Points = append(pcd.Points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pcd.Points) < pointCount {
		return nil, ErrPCDTruncated
	}

	return pcd, nil
}

// Bounds returns the axis-aligned bounding box of the cloud.
func (p *PCD) Bounds() math.Box3 {
	b := math.EmptyBox3()
	for i := range p.Points {
		b = b.Expand(p.Points[i].Position)
	}
	return b
}

func parseVec3At(cols []string, i int) (math.Vec3, error) {
	if i+2 >= len(cols) {
		return math.Vec3{}, fmt.Errorf("row too short for field at column %d", i)
	}
	x, err1 := strconv.ParseFloat(cols[i], 32)
	y, err2 := strconv.ParseFloat(cols[i+1], 32)
	z, err3 := strconv.ParseFloat(cols[i+2], 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return math.Vec3{}, fmt.Errorf("bad float in columns %d-%d", i, i+2)
	}
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}
