package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// SplitNormals computes point normals with hard edges. Around each point,
// triangles that share an edge and whose face normals differ by no more
// than featureAngle degrees form one smooth fan. The first fan keeps the
// original point; every further fan gets a copy of the point appended, so
// sharp edges shade faceted while smooth regions interpolate. Each fan's
// normal is the unit average of its face normals.
//
// The input mesh is not modified. The result has at least as many points
// as the input and, when every point is used, at most three per triangle.
func SplitNormals(m *Mesh, featureAngle float32) *Mesh {
	cosFeature := math32.Cos(featureAngle * math32.Pi / 180)

	faceNormals := make([]math.Vec3, len(m.Triangles))
	for i := range m.Triangles {
		faceNormals[i] = FaceNormal(m.Triangle(i))
	}

	// corner identifies one vertex slot of one triangle.
	type corner struct {
		face int
		slot int
	}
	incident := make([][]corner, len(m.Points))
	for f, tri := range m.Triangles {
		for s, p := range tri {
			incident[p] = append(incident[p], corner{f, s})
		}
	}

	out := &Mesh{
		Points:    append([]math.Vec3(nil), m.Points...),
		Triangles: append([][3]uint32(nil), m.Triangles...),
		Normals:   make([]math.Vec3, len(m.Points)),
	}

	for p, corners := range incident {
		if len(corners) == 0 {
			continue
		}

		uf := newUnionFind(len(corners))

		// Faces around p that share the edge (p, q) are neighbours.
		byEdge := make(map[uint32][]int)
		for i, c := range corners {
			for _, q := range m.Triangles[c.face] {
				if q != uint32(p) {
					byEdge[q] = append(byEdge[q], i)
				}
			}
		}
		for _, fan := range byEdge {
			for a := 0; a < len(fan); a++ {
				for b := a + 1; b < len(fan); b++ {
					na := faceNormals[corners[fan[a]].face]
					nb := faceNormals[corners[fan[b]].face]
					if na.Dot(nb) >= cosFeature {
						uf.union(fan[a], fan[b])
					}
				}
			}
		}

		// Assign an output point to each fan, in corner order.
		fanPoint := make(map[int]uint32)
		fanSum := make(map[int]math.Vec3)
		for i, c := range corners {
			root := uf.find(i)
			idx, ok := fanPoint[root]
			if !ok {
				if len(fanPoint) == 0 {
					idx = uint32(p)
				} else {
					idx = uint32(len(out.Points))
					out.Points = append(out.Points, m.Points[p])
					out.Normals = append(out.Normals, math.Vec3{})
				}
				fanPoint[root] = idx
			}
			fanSum[root] = fanSum[root].Add(faceNormals[c.face])
			out.Triangles[c.face][c.slot] = idx
		}
		for root, idx := range fanPoint {
			out.Normals[idx] = fanSum[root].Normalize()
		}
	}

	return out
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
