package mesh

import (
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// DefaultFeatureAngle is the split threshold in degrees.
const DefaultFeatureAngle = 60

// ComputeNormals attaches normals using the selected algorithm and returns
// the mesh to render. Smooth mode updates m in place and returns it; split
// mode returns a new mesh because it may add points.
func ComputeNormals(m *Mesh, mode NormalMode, featureAngle float32) *Mesh {
	if mode == NormalsSplit {
		return SplitNormals(m, featureAngle)
	}
	SmoothNormals(m)
	return m
}

// FaceNormal returns normalize((b-a) x (c-a)). The sign follows the winding
// of a, b, c. Degenerate triangles give the zero vector.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// SmoothNormals sets every point normal to the unit-length average of the
// face normals of the triangles that use it. Points used by no triangle get
// the zero vector. Any previous normals are replaced.
func SmoothNormals(m *Mesh) {
	m.Normals = averageFaceNormals(m)
	for i, n := range m.Normals {
		m.Normals[i] = n.Normalize()
	}
}

// SmoothNormalsRaw is SmoothNormals without the final renormalization: each
// normal is the plain average, so it is shorter than unit length wherever
// the incident faces disagree.
func SmoothNormalsRaw(m *Mesh) {
	m.Normals = averageFaceNormals(m)
}

// accum is the per-point accumulation of face normal contributions.
type accum struct {
	sum   math.Vec3
	count int
}

func averageFaceNormals(m *Mesh) []math.Vec3 {
	buf := make([]accum, len(m.Points))

	for i, tri := range m.Triangles {
		n := FaceNormal(m.Triangle(i))
		for _, p := range tri {
			buf[p].sum = buf[p].sum.Add(n)
			buf[p].count++
		}
	}

	normals := make([]math.Vec3, len(m.Points))
	for i, a := range buf {
		if a.count == 0 {
			continue
		}
		normals[i] = a.sum.Scale(1 / float32(a.count))
	}
	return normals
}
