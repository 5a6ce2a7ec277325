// Package session holds the interactive state of the illustrator: the
// current selection, shader uniforms and the commands that change them.
package session

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/config"
	"github.com/Faultbox/mesh-illustrator/internal/engine/lighting"
	"github.com/Faultbox/mesh-illustrator/internal/engine/picking"
	"github.com/Faultbox/mesh-illustrator/internal/engine/registry"
	"github.com/Faultbox/mesh-illustrator/internal/logger"
)

// Command is a user action independent of the input device.
type Command int

const (
	CmdNone Command = iota
	CmdOpen
	CmdToggleToon
	CmdToggleTranslucency
	CmdTogglePeek
	CmdCycleShading
	CmdOpacityUp
	CmdOpacityDown
	CmdShininessUp
	CmdShininessDown
	CmdDarker
	CmdLighter
	CmdCycleColor
	CmdClearSelection
	CmdRemoveSelected
	CmdFitCamera
	CmdTogglePause
	CmdScreenshot
	CmdToggleFullscreen
	CmdQuit
)

// Step sizes for incremental commands.
const (
	OpacityStep   = 10
	ShininessStep = 8
	MaxShininess  = 128
	DarknessStep  = 16
)

// Palette is the color cycle offered for the selected mesh.
var Palette = [][3]float32{
	{0.90, 0.86, 0.80},
	{0.85, 0.30, 0.25},
	{0.30, 0.65, 0.35},
	{0.25, 0.45, 0.85},
	{0.95, 0.75, 0.20},
	{0.60, 0.40, 0.80},
}

// Session is the interactive state shared by input handling and
// rendering.
type Session struct {
	Registry *registry.Registry
	Uniforms Uniforms
	Paused   bool

	selected   registry.ID
	colorIndex int
	darkness   int // slider value in [-128, 128]
	log        *zap.Logger
}

// New creates a session over reg with shading and lighting from cfg.
func New(reg *registry.Registry, cfg *config.Config) *Session {
	u := DefaultUniforms()
	u.Shading, u.Toon = ParseShading(cfg.Render.Shading)
	u.LightDir = lighting.SunDirection(cfg.Render.LightAzimuth, cfg.Render.LightElevation)

	return &Session{
		Registry: reg,
		Uniforms: u,
		log:      logger.Named("session"),
	}
}

// Selected returns the selected entry, if any.
func (s *Session) Selected() (*registry.CustomMesh, bool) {
	if s.selected == 0 {
		return nil, false
	}
	cm, err := s.Registry.Get(s.selected)
	if err != nil {
		s.selected = 0
		return nil, false
	}
	return cm, true
}

// Select makes cm the only selected entry. A nil cm clears the selection.
func (s *Session) Select(cm *registry.CustomMesh) {
	if cm == nil {
		s.Registry.ClearSelection()
		s.selected = 0
		return
	}
	if err := s.Registry.Select(cm.ID); err != nil {
		s.log.Warn("select failed", zap.Error(err))
		return
	}
	s.selected = cm.ID
	s.log.Info("mesh selected", zap.Uint64("id", uint64(cm.ID)), zap.String("name", cm.Name))
}

// Pick selects the mesh hit by ray, or clears the selection on a miss.
func (s *Session) Pick(ray picking.Ray) bool {
	cm, _, ok := s.Registry.Pick(ray)
	s.Select(cm)
	return ok
}

// Hover moves the brush to where ray hits the meshes. A miss leaves the
// brush where it was.
func (s *Session) Hover(ray picking.Ray) bool {
	_, hit, ok := s.Registry.Pick(ray)
	if !ok {
		return false
	}
	s.Uniforms.MousePos = hit.Point
	s.Uniforms.MouseNormal = hit.Normal
	return true
}

// UpdateBrush sizes the brush from the bounds of everything loaded.
func (s *Session) UpdateBrush() {
	b, ok := s.Registry.Bounds()
	if !ok || s.Uniforms.BrushDivide <= 0 {
		return
	}
	s.Uniforms.BrushSize = b.Size().Length() / s.Uniforms.BrushDivide
}

// Apply executes a state command. It reports whether the command was
// handled here; device-level commands such as CmdOpen are left to the
// caller.
func (s *Session) Apply(cmd Command) bool {
	u := &s.Uniforms
	switch cmd {
	case CmdToggleToon:
		u.Toon = !u.Toon
	case CmdToggleTranslucency:
		if u.DiffTrans == 0 {
			u.DiffTrans = 1
		} else {
			u.DiffTrans = 0
		}
	case CmdTogglePeek:
		u.PeerInside = !u.PeerInside
	case CmdCycleShading:
		u.Shading = (u.Shading + 1) % shadingCount
	case CmdShininessUp:
		u.Shininess = min(u.Shininess+ShininessStep, MaxShininess)
	case CmdShininessDown:
		u.Shininess = max(u.Shininess-ShininessStep, 0)
	case CmdDarker:
		s.darkness = max(s.darkness-DarknessStep, -128)
		u.Darkness = DarknessFromSlider(s.darkness)
	case CmdLighter:
		s.darkness = min(s.darkness+DarknessStep, 128)
		u.Darkness = DarknessFromSlider(s.darkness)
	case CmdOpacityUp:
		s.adjustOpacity(OpacityStep)
	case CmdOpacityDown:
		s.adjustOpacity(-OpacityStep)
	case CmdCycleColor:
		s.cycleColor()
	case CmdClearSelection:
		s.Select(nil)
	case CmdRemoveSelected:
		s.removeSelected()
	case CmdTogglePause:
		s.Paused = !s.Paused
	default:
		return false
	}
	s.log.Debug("command applied", zap.Int("command", int(cmd)))
	return true
}

func (s *Session) adjustOpacity(delta float32) {
	cm, ok := s.Selected()
	if !ok {
		return
	}
	perceived := min(max(math32.Round(cm.Opacity*100+delta), 0), 100)
	if err := s.Registry.SetOpacity(cm.ID, perceived); err != nil {
		s.log.Warn("set opacity failed", zap.Error(err))
	}
}

func (s *Session) cycleColor() {
	cm, ok := s.Selected()
	if !ok {
		return
	}
	s.colorIndex = (s.colorIndex + 1) % len(Palette)
	if err := s.Registry.SetColor(cm.ID, Palette[s.colorIndex]); err != nil {
		s.log.Warn("set color failed", zap.Error(err))
	}
}

func (s *Session) removeSelected() {
	cm, ok := s.Selected()
	if !ok {
		return
	}
	if err := s.Registry.Remove(cm.ID); err != nil {
		s.log.Warn("remove failed", zap.Error(err))
		return
	}
	s.selected = 0
	s.log.Info("mesh removed", zap.String("name", cm.Name))
}
