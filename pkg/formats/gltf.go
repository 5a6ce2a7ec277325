package formats

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf or .glb file and returns one Shape per triangle
// primitive. Node transforms are not applied.
func LoadGLTF(path string) ([]Shape, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return shapesFromGLTF(doc)
}

func shapesFromGLTF(doc *gltf.Document) ([]Shape, error) {
	var shapes []Shape
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d positions: %w", mi, pi, err)
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %d primitive %d indices: %w", mi, pi, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}

			shape := Shape{
				Name:      primitiveName(m.Name, mi, pi, len(m.Primitives)),
				Positions: make([]float32, 0, len(positions)*3),
				Indices:   indices[:len(indices)/3*3],
			}
			for _, p := range positions {
				shape.Positions = append(shape.Positions, p[0], p[1], p[2])
			}
			if len(shape.Indices) > 0 {
				shapes = append(shapes, shape)
			}
		}
	}
	return shapes, nil
}

func primitiveName(meshName string, mi, pi, count int) string {
	if meshName == "" {
		meshName = fmt.Sprintf("mesh_%d", mi)
	}
	if count > 1 {
		return fmt.Sprintf("%s.%d", meshName, pi)
	}
	return meshName
}
