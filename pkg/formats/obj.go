// Package formats provides parsers and encoders for mesh and
// point-cloud file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/meshcap/meshcap/pkg/math"
)

// OBJ format errors.
var (
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
	ErrOBJBadFace         = errors.New("OBJ face with fewer than 3 vertices")
)

// OBJ holds a parsed Wavefront OBJ mesh, re-indexed so that normals
// and UVs (when present) are parallel to Positions.
type OBJ struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3 // empty when the file has no vn records
	UVs       []math.Vec2 // empty when the file has no vt records
	Indices   []uint32    // triangle triplets into Positions
}

// objCorner identifies one face corner by its OBJ-space indices.
type objCorner struct {
	pos, uv, norm int
}

// ParseOBJ parses a Wavefront OBJ file. Faces with more than three
// vertices are fan-triangulated; negative (relative) indices are
// resolved against the current attribute counts. Material and group
// records are ignored.
func ParseOBJ(data []byte) (*OBJ, error) {
	var (
		positions []math.Vec3
		normals   []math.Vec3
		uvs       []math.Vec2
		corners   []objCorner
		name      string
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		ident, vals := fields[0], fields[1:]

		switch ident {
		case "v", "vn":
			if len(vals) < 3 {
				return nil, fmt.Errorf("line %d: %q needs 3 components", lineNo, ident)
			}
			x, err1 := strconv.ParseFloat(vals[0], 32)
			y, err2 := strconv.ParseFloat(vals[1], 32)
			z, err3 := strconv.ParseFloat(vals[2], 32)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("line %d: bad %q component", lineNo, ident)
			}
			v := math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
			if ident == "v" {
				positions = append(positions, v)
			} else {
				normals = append(normals, v)
			}

		case "vt":
			if len(vals) < 2 {
				return nil, fmt.Errorf("line %d: vt needs 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(vals[0], 32)
			w, err2 := strconv.ParseFloat(vals[1], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad vt component", lineNo)
			}
			uvs = append(uvs, math.Vec2{X: float32(u), Y: float32(w)})

		case "o", "g":
			if name == "" && len(vals) > 0 {
				name = vals[0]
			}

		case "f":
			if len(vals) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJBadFace)
			}
			face := make([]objCorner, 0, len(vals))
			for _, s := range vals {
				c, err := parseOBJCorner(s, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, c)
			}
			// Fan triangulation around the first corner
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
		// s, mtllib, usemtl and anything else: not needed for sampling
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return reindexOBJ(name, positions, normals, uvs, corners)
}

// parseOBJCorner parses one "pos", "pos/uv", "pos//norm", or
// "pos/uv/norm" face corner reference. Indices are 1-based; negative
// values count back from the end of the attribute list.
func parseOBJCorner(s string, nPos, nUV, nNorm int) (objCorner, error) {
	c := objCorner{pos: -1, uv: -1, norm: -1}
	parts := strings.Split(s, "/")

	resolve := func(raw string, n int) (int, error) {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("bad face index %q", raw)
		}
		if idx < 0 {
			idx = n + idx
		} else {
			idx--
		}
		if idx < 0 || idx >= n {
			return 0, ErrOBJIndexOutOfRange
		}
		return idx, nil
	}

	var err error
	if c.pos, err = resolve(parts[0], nPos); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.uv, err = resolve(parts[1], nUV); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.norm, err = resolve(parts[2], nNorm); err != nil {
			return c, err
		}
	}
	return c, nil
}

// reindexOBJ flattens OBJ's separate index spaces into one vertex
// stream where normals/UVs line up with positions. Corners sharing the
// same (pos, uv, norm) triple are merged.
func reindexOBJ(name string, positions, normals []math.Vec3, uvs []math.Vec2, corners []objCorner) (*OBJ, error) {
	out := &OBJ{Name: name}
	hasNormals := len(normals) > 0
	hasUVs := len(uvs) > 0

	seen := make(map[objCorner]uint32, len(corners))
	for _, c := range corners {
		idx, ok := seen[c]
		if !ok {
			idx = uint32(len(out.Positions))
			seen[c] = idx
			out.Positions = append(out.Positions, positions[c.pos])
			if hasNormals {
				n := math.Vec3{Y: 1}
				if c.norm >= 0 {
					n = normals[c.norm]
				}
				out.Normals = append(out.Normals, n)
			}
			if hasUVs {
				var uv math.Vec2
				if c.uv >= 0 {
					uv = uvs[c.uv]
				}
				out.UVs = append(out.UVs, uv)
			}
		}
		out.Indices = append(out.Indices, idx)
	}

	return out, nil
}
