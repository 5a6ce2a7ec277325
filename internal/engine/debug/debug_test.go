package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

func TestGenerateBBoxWireframeVertices(t *testing.T) {
	v := GenerateBBoxWireframeVertices(0, 0, 0, 1, 2, 3)
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] != 0 && v[i] != 1 || v[i+1] != 0 && v[i+1] != 2 || v[i+2] != 0 && v[i+2] != 3 {
			t.Errorf("vertex %d = %v not a box corner", i/3, v[i:i+3])
		}
	}
}

func TestSelectionOutlinePadding(t *testing.T) {
	b := mesh.Bounds{Min: math.Vec3{}, Max: math.Vec3{X: 3, Y: 4}}
	v := SelectionOutline(b)

	pad := float32(5 * SelectionPaddingRatio)
	if !near(v[0], -pad) || !near(v[3], 3+pad) || !near(v[1], -pad) {
		t.Errorf("first edge = %v, want padded by %v", v[:6], pad)
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "frame")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "shots", "frame_2024-05-01_12-30-00.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, _, b, _ := img.At(0, 0).RGBA()
	if b == 0 || r != 0 {
		t.Errorf("top pixel should be blue after flip, got r=%d b=%d", r, b)
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}
