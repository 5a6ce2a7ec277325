// Package importer loads mesh files into the registry.
package importer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/config"
	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
	"github.com/Faultbox/mesh-illustrator/internal/engine/registry"
	"github.com/Faultbox/mesh-illustrator/internal/logger"
	"github.com/Faultbox/mesh-illustrator/pkg/formats"
)

// Options controls how imported shapes are prepared.
type Options struct {
	NormalMode   mesh.NormalMode
	FeatureAngle float32
	Color        [3]float32
	Opacity      float32 // perceived, 0-100
}

// OptionsFromConfig derives import options from the render and mesh
// settings.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	mode, err := mesh.ParseNormalMode(cfg.Render.NormalMode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		NormalMode:   mode,
		FeatureAngle: cfg.Render.FeatureAngle,
		Color:        cfg.Mesh.Color,
		Opacity:      cfg.Mesh.Opacity,
	}, nil
}

// Import reads path and registers one mesh per shape. Each mesh gets
// normals and texture coordinates and is stacked above the entries already
// in the registry.
func Import(path string, reg *registry.Registry, opts Options) ([]*registry.CustomMesh, error) {
	timer := logger.StartTimer("import")
	defer timer.Stop()

	shapes, err := formats.Load(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	added := make([]*registry.CustomMesh, 0, len(shapes))
	for i := range shapes {
		s := &shapes[i]
		m := mesh.ComputeNormals(mesh.FromShape(s), opts.NormalMode, opts.FeatureAngle)
		mesh.GenerateTexCoords(m)

		cm := reg.Add(m, reg.Len(), s.Name, opts.Color, 1)
		if opts.Opacity < 100 {
			if err := reg.SetOpacity(cm.ID, opts.Opacity); err != nil {
				return added, fmt.Errorf("import %s: %w", path, err)
			}
		}
		added = append(added, cm)
	}

	logger.Info("mesh file imported",
		zap.String("path", path),
		zap.Int("shapes", len(added)),
		zap.String("normals", opts.NormalMode.String()))
	return added, nil
}
