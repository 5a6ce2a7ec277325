package picking

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// maxLeafTriangles bounds the triangles stored in one BVH leaf.
const maxLeafTriangles = 4

// Hit describes the nearest intersection of a ray with a mesh.
type Hit struct {
	Owner    uint64 // registry ID, set by Picker
	Triangle int
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3 // geometric normal of the hit triangle
}

type bvhNode struct {
	box         AABB
	left, right int // child node indices; -1 for leaves
	start, end  int // triangle range in Locator.order, leaves only
}

// Locator is a bounding-volume hierarchy over one mesh's triangles.
// The tree is built on the first query after construction or MarkDirty,
// so meshes that are never probed never pay for it. The locator does not
// notice geometry changes on its own; owners call MarkDirty.
type Locator struct {
	mesh   *mesh.Mesh
	nodes  []bvhNode
	order  []int // triangle indices, grouped by leaf
	dirty  bool
	builds int
}

// NewLocator creates a lazy locator for m.
func NewLocator(m *mesh.Mesh) *Locator {
	return &Locator{mesh: m, dirty: true}
}

// Mesh returns the indexed mesh.
func (l *Locator) Mesh() *mesh.Mesh {
	return l.mesh
}

// SetMesh swaps the indexed geometry and marks the tree dirty.
func (l *Locator) SetMesh(m *mesh.Mesh) {
	l.mesh = m
	l.MarkDirty()
}

// MarkDirty schedules a rebuild on the next query.
func (l *Locator) MarkDirty() {
	l.dirty = true
}

// Built reports whether the tree is currently materialized.
func (l *Locator) Built() bool {
	return !l.dirty
}

// Builds returns how many times the tree has been built.
func (l *Locator) Builds() int {
	return l.builds
}

// Bounds returns the bounding box of the whole mesh. ok is false for a
// mesh without triangles.
func (l *Locator) Bounds() (box AABB, ok bool) {
	l.ensure()
	if len(l.nodes) == 0 {
		return AABB{}, false
	}
	return l.nodes[0].box, true
}

// IntersectRay returns the nearest triangle hit along the ray.
func (l *Locator) IntersectRay(r Ray) (Hit, bool) {
	l.ensure()
	if len(l.nodes) == 0 {
		return Hit{}, false
	}

	best := Hit{Triangle: -1, Distance: float32(gomath.MaxFloat32)}
	stack := []int{0}
	for len(stack) > 0 {
		n := &l.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		t, ok := r.EntryDistance(n.box)
		if !ok || t > best.Distance {
			continue
		}
		if n.left < 0 {
			for _, tri := range l.order[n.start:n.end] {
				a, b, c := l.mesh.Triangle(tri)
				d, hit := r.IntersectTriangle(a, b, c)
				if hit && d < best.Distance {
					best.Triangle = tri
					best.Distance = d
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}

	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	best.Normal = mesh.FaceNormal(l.mesh.Triangle(best.Triangle))
	return best, true
}

// Build forces the tree to be (re)built now.
func (l *Locator) Build() {
	l.nodes = l.nodes[:0]
	l.order = l.order[:0]
	l.builds++
	l.dirty = false

	count := l.mesh.TriangleCount()
	if count == 0 {
		return
	}

	boxes := make([]AABB, count)
	centroids := make([]math.Vec3, count)
	for i := 0; i < count; i++ {
		a, b, c := l.mesh.Triangle(i)
		boxes[i] = EmptyAABB().Extend(a).Extend(b).Extend(c)
		centroids[i] = a.Add(b).Add(c).Scale(1.0 / 3.0)
		l.order = append(l.order, i)
	}
	l.split(0, count, boxes, centroids)
}

func (l *Locator) ensure() {
	if l.dirty {
		l.Build()
	}
}

// split builds the subtree over order[start:end] and returns its node index.
func (l *Locator) split(start, end int, boxes []AABB, centroids []math.Vec3) int {
	box := EmptyAABB()
	for _, tri := range l.order[start:end] {
		box = box.Union(boxes[tri])
	}

	idx := len(l.nodes)
	l.nodes = append(l.nodes, bvhNode{box: box, left: -1, right: -1, start: start, end: end})
	if end-start <= maxLeafTriangles {
		return idx
	}

	// Median split along the longest axis of the centroid bounds.
	cbox := EmptyAABB()
	for _, tri := range l.order[start:end] {
		cbox = cbox.Extend(centroids[tri])
	}
	axis := cbox.LongestAxis()
	span := l.order[start:end]
	sort.Slice(span, func(i, j int) bool {
		return centroids[span[i]].Axis(axis) < centroids[span[j]].Axis(axis)
	})
	mid := start + (end-start)/2

	left := l.split(start, mid, boxes, centroids)
	right := l.split(mid, end, boxes, centroids)
	l.nodes[idx].left = left
	l.nodes[idx].right = right
	return idx
}
