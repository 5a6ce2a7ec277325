package formats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeOBJ = `# unit cube, two groups
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
g front
f 1 2 3 4
g back
f 5/1 6/2 7/3
f -4//1 -2//2 -1//3
`

func TestParseOBJGroups(t *testing.T) {
	shapes, err := ParseOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	require.Len(t, shapes, 2)

	front := shapes[0]
	assert.Equal(t, "front", front.Name)
	assert.Equal(t, 4, front.PointCount())
	assert.Equal(t, 2, front.TriangleCount(), "quad is fan-triangulated")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, front.Indices)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, front.Positions)

	back := shapes[1]
	assert.Equal(t, "back", back.Name)
	assert.Equal(t, 2, back.TriangleCount())
	// Points 5,6,7 then 8 (via -1); 5 and 7 are shared between both faces.
	assert.Equal(t, 4, back.PointCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, back.Indices)
	assert.Equal(t, []float32{0, 1, 1}, back.Positions[9:12])
}

func TestParseOBJDefaultGroup(t *testing.T) {
	shapes, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "default", shapes[0].Name)
}

func TestParseOBJSkipsEmptyGroups(t *testing.T) {
	src := "g empty\nv 0 0 0\nv 1 0 0\nv 0 1 0\ng tri\nf 1 2 3\ng trailing\n"
	shapes, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "tri", shapes[0].Name)
}

func TestParseOBJEmpty(t *testing.T) {
	shapes, err := ParseOBJ(strings.NewReader("# nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, shapes)
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrMalformedOBJ)
		})
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "Cube.OBJ")
	require.NoError(t, os.WriteFile(objPath, []byte(cubeOBJ), 0644))

	shapes, err := Load(objPath)
	require.NoError(t, err)
	assert.Len(t, shapes, 2)

	_, err = Load(filepath.Join(dir, "model.stl"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	emptyPath := filepath.Join(dir, "empty.obj")
	require.NoError(t, os.WriteFile(emptyPath, []byte("v 0 0 0\n"), 0644))
	_, err = Load(emptyPath)
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = Load(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
