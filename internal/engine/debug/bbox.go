// Package debug provides overlay geometry and frame capture helpers.
package debug

import "github.com/Faultbox/mesh-illustrator/internal/engine/mesh"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// SelectionPaddingRatio is the outline padding as a fraction of the box
// diagonal.
const SelectionPaddingRatio = 0.02

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// SelectionOutline returns the wireframe around b, padded by
// SelectionPaddingRatio of its diagonal.
func SelectionOutline(b mesh.Bounds) []float32 {
	pad := b.Size().Length() * SelectionPaddingRatio
	return GenerateBBoxWireframeVertices(
		b.Min.X-pad, b.Min.Y-pad, b.Min.Z-pad,
		b.Max.X+pad, b.Max.Y+pad, b.Max.Z+pad,
	)
}
