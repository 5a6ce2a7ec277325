package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedOBJ is returned for OBJ statements that cannot be parsed.
var ErrMalformedOBJ = errors.New("malformed OBJ")

// LoadOBJ parses a Wavefront .obj file from disk.
func LoadOBJ(path string) ([]Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	shapes, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shapes, nil
}

// ParseOBJ parses Wavefront OBJ geometry into one Shape per "o"/"g" group.
// Only positions and faces are read; polygons are fan-triangulated and the
// vt/vn parts of face vertices are ignored. Each shape gets its own
// compacted point list. Groups without faces are dropped.
func ParseOBJ(r io.Reader) ([]Shape, error) {
	var (
		positions []float32 // global "v" list
		shapes    []Shape
	)

	cur := Shape{Name: "default"}
	remap := make(map[uint32]uint32) // global point index -> shape index

	flush := func() {
		if len(cur.Indices) > 0 {
			shapes = append(shapes, cur)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: %w: vertex needs 3 coordinates", lineNo, ErrMalformedOBJ)
			}
			for _, p := range parts[1:4] {
				f, err := strconv.ParseFloat(p, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedOBJ, err)
				}
				positions = append(positions, float32(f))
			}

		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: %w: face needs 3 vertices", lineNo, ErrMalformedOBJ)
			}
			face := make([]uint32, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				global, err := resolveOBJIndex(ref, len(positions)/3)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				local, ok := remap[global]
				if !ok {
					local = uint32(len(cur.Positions) / 3)
					cur.Positions = append(cur.Positions, positions[global*3:global*3+3]...)
					remap[global] = local
				}
				face = append(face, local)
			}
			for i := 2; i < len(face); i++ {
				cur.Indices = append(cur.Indices, face[0], face[i-1], face[i])
			}

		case "o", "g":
			flush()
			name := "unnamed"
			if len(parts) > 1 {
				name = strings.Join(parts[1:], " ")
			}
			cur = Shape{Name: name}
			remap = make(map[uint32]uint32)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	flush()

	return shapes, nil
}

// resolveOBJIndex converts a face vertex reference ("7", "7/2", "7//3",
// "-1/...") into a zero-based position index.
func resolveOBJIndex(ref string, count int) (uint32, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("%w: bad face index %q", ErrMalformedOBJ, ref)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += count
	default:
		return 0, fmt.Errorf("%w: face index 0", ErrMalformedOBJ)
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: face index %q out of range (%d points)", ErrMalformedOBJ, ref, count)
	}
	return uint32(idx), nil
}
