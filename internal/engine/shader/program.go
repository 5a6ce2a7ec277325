// Package shader builds GPU shader programs from source files and keeps
// them current while the files are edited.
package shader

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/logger"
)

// Kind is the pipeline stage a shader runs in.
type Kind int

const (
	KindVertex Kind = iota
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Status is the outcome of the most recent link.
type Status int

const (
	StatusUnlinked Status = iota
	StatusLinked
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnlinked:
		return "unlinked"
	case StatusLinked:
		return "linked"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Device is the rendering context programs are compiled on.
type Device interface {
	// Compile compiles one stage and returns its handle. The error carries
	// the compiler log.
	Compile(kind Kind, source string) (uint32, error)
	// Link links compiled stages into a program. The error carries the
	// linker log.
	Link(stages []uint32) (uint32, error)
	DeleteShader(handle uint32)
	DeleteProgram(handle uint32)
}

// Stage is one shader source attached to a program.
type Stage struct {
	Kind   Kind
	Path   string
	Source string
}

// Program is a linked set of stages. A failed link keeps the last working
// program as ID.
type Program struct {
	Stages []*Stage

	dev        Device
	id         uint32
	status     Status
	log        string
	readErrors []error
	zl         *zap.Logger
}

// Build reads the vertex and fragment sources and links them on dev. An
// empty path omits that stage. Read and link failures are recorded on the
// program and logged, never returned.
func Build(dev Device, vertPath, fragPath string) *Program {
	p := &Program{dev: dev, zl: logger.Named("shader")}
	if vertPath != "" {
		p.Stages = append(p.Stages, &Stage{Kind: KindVertex, Path: vertPath})
	}
	if fragPath != "" {
		p.Stages = append(p.Stages, &Stage{Kind: KindFragment, Path: fragPath})
	}
	p.readSources(p.Stages)
	p.link()
	return p
}

// Reload re-reads the given files into the stages of matching kind and
// links again on the same device. An empty path leaves that stage and its
// source alone; a path for a kind the program lacks adds the stage.
func (p *Program) Reload(vertPath, fragPath string) {
	var changed []*Stage
	for _, s := range []*Stage{p.setPath(KindVertex, vertPath), p.setPath(KindFragment, fragPath)} {
		if s != nil {
			changed = append(changed, s)
		}
	}
	p.readSources(changed)
	p.link()
}

// Stage returns the stage of the given kind, or nil.
func (p *Program) Stage(kind Kind) *Stage {
	for _, s := range p.Stages {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

// ID returns the last successfully linked program handle, or 0.
func (p *Program) ID() uint32 { return p.id }

// Status returns the outcome of the most recent link.
func (p *Program) Status() Status { return p.status }

// Log returns the compiler or linker log of the most recent failure.
func (p *Program) Log() string { return p.log }

// ReadErrors returns the file errors of the most recent build.
func (p *Program) ReadErrors() []error { return p.readErrors }

// Delete releases the program on its device.
func (p *Program) Delete() {
	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
		p.id = 0
	}
	p.status = StatusUnlinked
}

func (p *Program) setPath(kind Kind, path string) *Stage {
	if path == "" {
		return nil
	}
	if s := p.Stage(kind); s != nil {
		s.Path = path
		return s
	}
	s := &Stage{Kind: kind, Path: path}
	p.Stages = append(p.Stages, s)
	return s
}

// readSources loads the files of stages. Unreadable files become empty
// sources.
func (p *Program) readSources(stages []*Stage) {
	p.readErrors = nil
	for _, s := range stages {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			err = fmt.Errorf("read %s shader: %w", s.Kind, err)
			p.readErrors = append(p.readErrors, err)
			p.zl.Warn("shader source unreadable", zap.String("path", s.Path), zap.Error(err))
			s.Source = ""
			continue
		}
		s.Source = string(data)
	}
}

func (p *Program) link() {
	handles := make([]uint32, 0, len(p.Stages))
	defer func() {
		for _, h := range handles {
			p.dev.DeleteShader(h)
		}
	}()

	for _, s := range p.Stages {
		h, err := p.dev.Compile(s.Kind, s.Source)
		if err != nil {
			p.fail(err)
			return
		}
		handles = append(handles, h)
	}

	id, err := p.dev.Link(handles)
	if err != nil {
		p.fail(err)
		return
	}

	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
	}
	p.id = id
	p.status = StatusLinked
	p.log = ""
	p.zl.Debug("shader program linked", zap.Uint32("id", id), zap.Int("stages", len(p.Stages)))
}

func (p *Program) fail(err error) {
	p.status = StatusFailed
	p.log = err.Error()
	p.zl.Error("shader has errors", zap.Error(err))
}
