package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// quadAt returns a unit square in the plane z = depth, facing +Z.
func quadAt(depth float32) *mesh.Mesh {
	return mesh.FromArrays(
		[]float32{0, 0, depth, 1, 0, depth, 1, 1, depth, 0, 1, depth},
		[]uint32{0, 1, 2, 0, 2, 3},
	)
}

// grid returns an n x n grid of quads in the z = 0 plane, enough
// triangles to force interior BVH nodes.
func grid(n int) *mesh.Mesh {
	var pos []float32
	var idx []uint32
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			pos = append(pos, float32(x), float32(y), 0)
		}
	}
	row := uint32(n + 1)
	for y := uint32(0); y < uint32(n); y++ {
		for x := uint32(0); x < uint32(n); x++ {
			a := y*row + x
			idx = append(idx, a, a+1, a+row+1, a, a+row+1, a+row)
		}
	}
	return mesh.FromArrays(pos, idx)
}

func downZ(x, y float32) Ray {
	return Ray{Origin: math.Vec3{X: x, Y: y, Z: 10}, Direction: math.Vec3{Z: -1}}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{}
	b := math.Vec3{X: 1}
	c := math.Vec3{Y: 1}

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float32
	}{
		{"front", downZ(0.25, 0.25), true, 10},
		{"outside", downZ(0.9, 0.9), false, 0},
		{"parallel", Ray{Origin: math.Vec3{Z: 1}, Direction: math.Vec3{X: 1}}, false, 0},
		{"behind origin", Ray{Origin: math.Vec3{X: 0.2, Y: 0.2, Z: -1}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"back face", Ray{Origin: math.Vec3{X: 0.2, Y: 0.2, Z: -2}, Direction: math.Vec3{Z: 1}}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectTriangle(a, b, c)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.dist, d, 1e-5)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	d, hit := downZ(0, 0).IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 9, d, 1e-5)

	_, hit = downZ(5, 0).IntersectAABB(box)
	assert.False(t, hit)

	inside := Ray{Direction: math.Vec3{X: 1}}
	d, hit = inside.IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 1, d, 1e-5)
}

func TestEntryDistance(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	d, hit := downZ(0, 0).EntryDistance(box)
	require.True(t, hit)
	assert.InDelta(t, 9, d, 1e-5)

	inside := Ray{Direction: math.Vec3{X: 1}}
	d, hit = inside.EntryDistance(box)
	require.True(t, hit)
	assert.Equal(t, float32(0), d)

	behind := Ray{Origin: math.Vec3{X: 5}, Direction: math.Vec3{X: 1}}
	_, hit = behind.EntryDistance(box)
	assert.False(t, hit)
}

func TestLocatorIsLazy(t *testing.T) {
	loc := NewLocator(quadAt(0))
	assert.False(t, loc.Built())
	assert.Equal(t, 0, loc.Builds())

	hit, ok := loc.IntersectRay(downZ(0.5, 0.25))
	require.True(t, ok)
	assert.True(t, loc.Built())
	assert.Equal(t, 1, loc.Builds())
	assert.InDelta(t, 10, hit.Distance, 1e-5)
	assert.InDelta(t, 0, hit.Point.Z, 1e-5)
	assert.InDelta(t, 1, hit.Normal.Z, 1e-5)

	loc.IntersectRay(downZ(0.5, 0.25))
	assert.Equal(t, 1, loc.Builds(), "second query reuses the tree")

	loc.MarkDirty()
	assert.False(t, loc.Built())
	loc.IntersectRay(downZ(0.5, 0.25))
	assert.Equal(t, 2, loc.Builds())
}

func TestLocatorSetMeshRebuilds(t *testing.T) {
	loc := NewLocator(quadAt(0))
	hit, ok := loc.IntersectRay(downZ(0.5, 0.5))
	require.True(t, ok)
	assert.InDelta(t, 10, hit.Distance, 1e-5)

	loc.SetMesh(quadAt(4))
	hit, ok = loc.IntersectRay(downZ(0.5, 0.5))
	require.True(t, ok)
	assert.InDelta(t, 6, hit.Distance, 1e-5)
}

func TestLocatorGridMatchesBruteForce(t *testing.T) {
	m := grid(8)
	loc := NewLocator(m)

	for _, p := range [][2]float32{{0.3, 0.1}, {3.7, 5.2}, {7.9, 7.95}, {4.5, 0.25}} {
		r := downZ(p[0], p[1])
		hit, ok := loc.IntersectRay(r)
		require.True(t, ok, "point %v", p)

		want := -1
		for i := 0; i < m.TriangleCount(); i++ {
			if _, h := r.IntersectTriangle(m.Triangle(i)); h {
				want = i
				break
			}
		}
		assert.Equal(t, want, hit.Triangle, "point %v", p)
		assert.InDelta(t, p[0], hit.Point.X, 1e-4)
		assert.InDelta(t, p[1], hit.Point.Y, 1e-4)
	}

	_, ok := loc.IntersectRay(downZ(9, 9))
	assert.False(t, ok)
}

// originInsideLeaf builds two leaves split along X. The left leaf holds
// triangle 0 at z=1 plus tall fillers, so its box contains the origin and
// exits beyond z=5. The right leaf holds triangle 4 at z=5.
func originInsideLeaf() *mesh.Mesh {
	tris := [][9]float32{
		{-1, -1, 1, 1, -1, 1, 0, 1, 1},
		{-20, 0, -10, -19, 0, 10, -20, 1, 0},
		{-25, 0, -10, -24, 0, 10, -25, 1, 0},
		{-30, 0, -10, -29, 0, 10, -30, 1, 0},
		{-1, -1, 5, 9, -1, 5, 0, 1, 5},
		{20, 0, 5, 21, 0, 5, 20, 1, 5},
		{25, 0, 5, 26, 0, 5, 25, 1, 5},
		{30, 0, 5, 31, 0, 5, 30, 1, 5},
	}
	var pos []float32
	var idx []uint32
	for i, tri := range tris {
		pos = append(pos, tri[:]...)
		base := uint32(i * 3)
		idx = append(idx, base, base+1, base+2)
	}
	return mesh.FromArrays(pos, idx)
}

func TestLocatorOriginInsideNode(t *testing.T) {
	loc := NewLocator(originInsideLeaf())
	r := Ray{Direction: math.Vec3{Z: 1}}

	hit, ok := loc.IntersectRay(r)
	require.True(t, ok)
	assert.Equal(t, 0, hit.Triangle)
	assert.InDelta(t, 1, hit.Distance, 1e-5)
}

func TestLocatorBounds(t *testing.T) {
	box, ok := NewLocator(grid(3)).Bounds()
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 3, Y: 3}, box.Max)
	assert.Equal(t, math.Vec3{}, box.Min)

	_, ok = NewLocator(mesh.FromArrays(nil, nil)).Bounds()
	assert.False(t, ok)
}

func TestLocatorEmptyMesh(t *testing.T) {
	loc := NewLocator(mesh.FromArrays(nil, nil))
	_, ok := loc.IntersectRay(downZ(0, 0))
	assert.False(t, ok)
	assert.True(t, loc.Built())
}

func TestPickerNearest(t *testing.T) {
	p := NewPicker()
	p.Add(1, NewLocator(quadAt(0)))
	p.Add(2, NewLocator(quadAt(3)))
	p.Add(3, NewLocator(quadAt(-2)))
	require.Equal(t, 3, p.Len())

	hit, ok := p.Pick(downZ(0.5, 0.5))
	require.True(t, ok)
	assert.Equal(t, uint64(2), hit.Owner)
	assert.InDelta(t, 7, hit.Distance, 1e-5)

	_, ok = p.Pick(downZ(5, 5))
	assert.False(t, ok)
}

func TestPickerRemove(t *testing.T) {
	p := NewPicker()
	p.Add(1, NewLocator(quadAt(0)))
	p.Add(2, NewLocator(quadAt(3)))

	p.Remove(2)
	p.Remove(42)
	assert.Equal(t, 1, p.Len())
	_, ok := p.Locator(2)
	assert.False(t, ok)

	hit, ok := p.Pick(downZ(0.5, 0.5))
	require.True(t, ok)
	assert.Equal(t, uint64(1), hit.Owner)
}

func TestPickerTieKeepsFirst(t *testing.T) {
	p := NewPicker()
	p.Add(7, NewLocator(quadAt(1)))
	p.Add(3, NewLocator(quadAt(1)))

	hit, ok := p.Pick(downZ(0.5, 0.5))
	require.True(t, ok)
	assert.Equal(t, uint64(7), hit.Owner)
}

func TestPickerAddReplaces(t *testing.T) {
	p := NewPicker()
	p.Add(1, NewLocator(quadAt(0)))
	p.Add(1, NewLocator(quadAt(5)))
	assert.Equal(t, 1, p.Len())

	hit, ok := p.Pick(downZ(0.5, 0.5))
	require.True(t, ok)
	assert.InDelta(t, 5, hit.Distance, 1e-5)
}

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(1.0, 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(50, 50, 100, 100, inv)
	assert.InDelta(t, 0, r.Direction.X, 1e-4)
	assert.InDelta(t, 0, r.Direction.Y, 1e-4)
	assert.InDelta(t, -1, r.Direction.Z, 1e-4)

	centered := mesh.FromArrays(
		[]float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0},
		[]uint32{0, 1, 2, 0, 2, 3},
	)
	hit, ok := NewLocator(centered).IntersectRay(r)
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Point.Z, 1e-3)

	corner := ScreenToRay(0, 0, 100, 100, inv)
	assert.Less(t, corner.Direction.X, float32(0), "left edge points left")
	assert.Greater(t, corner.Direction.Y, float32(0), "top edge points up")
}
