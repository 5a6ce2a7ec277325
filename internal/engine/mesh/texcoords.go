package mesh

// GenerateTexCoords assigns each point a corner of the unit triangle in a
// repeating pattern: even points get (0,0), odd multiples of three (1,0),
// the rest (0,1). It gives shaders a cheap barycentric-like varying for
// meshes imported without UVs.
func GenerateTexCoords(m *Mesh) {
	m.TexCoords = make([][2]float32, len(m.Points))
	for i := range m.TexCoords {
		switch {
		case i%2 == 0:
			m.TexCoords[i] = [2]float32{0, 0}
		case i%3 == 0:
			m.TexCoords[i] = [2]float32{1, 0}
		default:
			m.TexCoords[i] = [2]float32{0, 1}
		}
	}
}
