// Package registry owns the meshes loaded into the illustrator together
// with their actors and picking locators.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/engine/actor"
	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
	"github.com/Faultbox/mesh-illustrator/internal/engine/picking"
	"github.com/Faultbox/mesh-illustrator/internal/logger"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// ErrUnknownMesh is returned for IDs that are not registered.
var ErrUnknownMesh = errors.New("unknown mesh")

// ID identifies a registered mesh for its whole lifetime.
type ID uint64

// CustomMesh is one registered mesh and its presentation state.
type CustomMesh struct {
	ID        ID
	Name      string
	Color     [3]float32
	Opacity   float32 // perceived opacity in [0, 1]
	Selected  bool
	Generated bool
	Z         int

	Mesh    *mesh.Mesh
	Actor   *actor.Actor
	Locator *picking.Locator
}

// Registry keeps meshes in insertion order.
type Registry struct {
	entries []*CustomMesh
	byID    map[ID]*CustomMesh
	nextID  ID
	picker  *picking.Picker
	log     *zap.Logger
}

// New creates an empty registry with its own picker.
func New() *Registry {
	return &Registry{
		byID:   make(map[ID]*CustomMesh),
		nextID: 1,
		picker: picking.NewPicker(),
		log:    logger.Named("registry"),
	}
}

// ActualOpacity maps a perceived opacity percentage to the value handed
// to the renderer: 100 and above is fully opaque, anything lower is halved.
func ActualOpacity(perceived float32) float32 {
	if perceived >= 100 {
		return 1
	}
	if perceived <= 0 {
		return 0
	}
	return perceived / 100 * 0.5
}

// Add registers m. opacity in [0, 1] goes to the actor unchanged; use
// SetOpacity for the perceived slider scale.
func (r *Registry) Add(m *mesh.Mesh, z int, name string, color [3]float32, opacity float32) *CustomMesh {
	cm := &CustomMesh{
		ID:      r.nextID,
		Name:    name,
		Color:   color,
		Opacity: opacity,
		Z:       z,
		Mesh:    m,
		Actor:   actor.New(m, color, opacity),
		Locator: picking.NewLocator(m),
	}
	r.nextID++

	r.entries = append(r.entries, cm)
	r.byID[cm.ID] = cm
	r.picker.Add(uint64(cm.ID), cm.Locator)

	r.log.Debug("mesh added",
		zap.Uint64("id", uint64(cm.ID)),
		zap.String("name", name),
		zap.Int("points", m.PointCount()),
		zap.Int("triangles", m.TriangleCount()))
	return cm
}

// Get returns the entry registered under id.
func (r *Registry) Get(id ID) (*CustomMesh, error) {
	cm, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("mesh %d: %w", id, ErrUnknownMesh)
	}
	return cm, nil
}

// At returns the i-th entry in insertion order. It panics if i is out of
// range.
func (r *Registry) At(i int) *CustomMesh {
	return r.entries[i]
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the entries in insertion order.
func (r *Registry) Entries() []*CustomMesh {
	out := make([]*CustomMesh, len(r.entries))
	copy(out, r.entries)
	return out
}

// Picker returns the picker shared by all entries.
func (r *Registry) Picker() *picking.Picker {
	return r.picker
}

// SetOpacity stores a perceived opacity percentage and pushes the derived
// rendering opacity to the actor.
func (r *Registry) SetOpacity(id ID, perceived float32) error {
	cm, err := r.Get(id)
	if err != nil {
		return err
	}
	cm.Opacity = perceived / 100
	cm.Actor.SetOpacity(ActualOpacity(perceived))
	return nil
}

// SetColor updates the stored color and the actor's material.
func (r *Registry) SetColor(id ID, color [3]float32) error {
	cm, err := r.Get(id)
	if err != nil {
		return err
	}
	cm.Color = color
	cm.Actor.SetColor(color)
	return nil
}

// SetSelected sets the selection flag.
func (r *Registry) SetSelected(id ID, selected bool) error {
	cm, err := r.Get(id)
	if err != nil {
		return err
	}
	cm.Selected = selected
	return nil
}

// Select marks id as the only selected entry.
func (r *Registry) Select(id ID) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	for _, cm := range r.entries {
		cm.Selected = cm.ID == id
	}
	return nil
}

// ClearSelection deselects every entry.
func (r *Registry) ClearSelection() {
	for _, cm := range r.entries {
		cm.Selected = false
	}
}

// Selected returns the selected entries in insertion order.
func (r *Registry) Selected() []*CustomMesh {
	var out []*CustomMesh
	for _, cm := range r.entries {
		if cm.Selected {
			out = append(out, cm)
		}
	}
	return out
}

// Remove unregisters id and its locator.
func (r *Registry) Remove(id ID) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	delete(r.byID, id)
	r.picker.Remove(uint64(id))
	for i, cm := range r.entries {
		if cm.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.log.Debug("mesh removed", zap.Uint64("id", uint64(id)))
	return nil
}

// Pick returns the entry hit nearest along the ray.
func (r *Registry) Pick(ray picking.Ray) (*CustomMesh, picking.Hit, bool) {
	hit, ok := r.picker.Pick(ray)
	if !ok {
		return nil, picking.Hit{}, false
	}
	cm, ok := r.byID[ID(hit.Owner)]
	return cm, hit, ok
}

// Bounds returns the union of all entry bounds.
func (r *Registry) Bounds() (mesh.Bounds, bool) {
	var (
		out   mesh.Bounds
		found bool
	)
	for _, cm := range r.entries {
		b, ok := cm.Mesh.Bounds()
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}

// DrawOrder splits visible entries into the opaque pass, in z order, and
// the translucent pass, sorted back to front as seen from eye.
func (r *Registry) DrawOrder(eye math.Vec3) (opaque, translucent []*CustomMesh) {
	for _, cm := range r.entries {
		if !cm.Actor.Visible {
			continue
		}
		if cm.Actor.Translucent() {
			translucent = append(translucent, cm)
		} else {
			opaque = append(opaque, cm)
		}
	}
	sort.SliceStable(opaque, func(i, j int) bool { return opaque[i].Z < opaque[j].Z })

	depth := make(map[ID]float32, len(translucent))
	for _, cm := range translucent {
		if b, ok := cm.Mesh.Bounds(); ok {
			depth[cm.ID] = b.Center().Distance(eye)
		}
	}
	sort.SliceStable(translucent, func(i, j int) bool {
		return depth[translucent[i].ID] > depth[translucent[j].ID]
	})
	return opaque, translucent
}
