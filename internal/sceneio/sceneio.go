// Package sceneio loads editor scenes from YAML files and expands them
// into the flat render volume list the selection engine works on: one
// volume per (instance, part) pair, plus optional auxiliary entries like
// the wipe tower.
package sceneio

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"model-editor/internal/geom"
	"model-editor/internal/model"
)

// Scene is the on-disk shape of a scene file.
type Scene struct {
	Objects   []SceneObject `yaml:"objects"`
	WipeTower *ScenePlace   `yaml:"wipe_tower,omitempty"`
}

// SceneObject is one object: shared parts placed by instances.
type SceneObject struct {
	Name      string       `yaml:"name"`
	Parts     []ScenePart  `yaml:"parts"`
	Instances []ScenePlace `yaml:"instances"`
}

// ScenePart describes one part of an object, in the object frame.
type ScenePart struct {
	Name     string     `yaml:"name"`
	Modifier bool       `yaml:"modifier,omitempty"`
	HullMin  [3]float64 `yaml:"hull_min"`
	HullMax  [3]float64 `yaml:"hull_max"`
	ScenePlace `yaml:",inline"`
}

// ScenePlace is a transform: offset, Euler rotation in radians, per-axis
// scale and mirror. Zero scale/mirror components default to 1.
type ScenePlace struct {
	Offset   [3]float64 `yaml:"offset,omitempty"`
	Rotation [3]float64 `yaml:"rotation,omitempty"`
	Scale    [3]float64 `yaml:"scale,omitempty"`
	Mirror   [3]float64 `yaml:"mirror,omitempty"`
}

func (p ScenePlace) transformation() geom.Transformation {
	t := geom.NewTransformation()
	t.Offset = mgl64.Vec3{p.Offset[0], p.Offset[1], p.Offset[2]}
	t.Rotation = mgl64.Vec3{p.Rotation[0], p.Rotation[1], p.Rotation[2]}
	for i := 0; i < 3; i++ {
		if p.Scale[i] != 0 {
			t.Scale[i] = p.Scale[i]
		}
		if p.Mirror[i] != 0 {
			t.Mirror[i] = p.Mirror[i]
		}
	}
	return t
}

// Load reads and expands a scene file.
func Load(path string) (*model.Model, model.VolumeList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands scene YAML into the model table and the flat volume
// list. Objects must have at least one part and one instance.
func Parse(data []byte) (*model.Model, model.VolumeList, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, nil, fmt.Errorf("parse scene: %w", err)
	}

	m := &model.Model{}
	var volumes model.VolumeList

	for objectIdx, obj := range scene.Objects {
		if len(obj.Parts) == 0 {
			return nil, nil, fmt.Errorf("object %q: no parts", obj.Name)
		}
		if len(obj.Instances) == 0 {
			return nil, nil, fmt.Errorf("object %q: no instances", obj.Name)
		}
		m.Objects = append(m.Objects, &model.Object{
			Name:          obj.Name,
			PartCount:     len(obj.Parts),
			InstanceCount: len(obj.Instances),
		})
		for instanceIdx, place := range obj.Instances {
			for partIdx, part := range obj.Parts {
				v := model.NewVolume(objectIdx, instanceIdx, partIdx)
				v.Name = part.Name
				v.Modifier = part.Modifier
				v.Part = part.transformation()
				v.Instance = place.transformation()
				v.HullBox = geom.NewBoundingBox(
					mgl64.Vec3{part.HullMin[0], part.HullMin[1], part.HullMin[2]},
					mgl64.Vec3{part.HullMax[0], part.HullMax[1], part.HullMax[2]},
				)
				volumes = append(volumes, v)
			}
		}
	}

	if scene.WipeTower != nil {
		v := model.NewVolume(model.AuxObjectIdx, 0, 0)
		v.Name = "wipe tower"
		v.WipeTower = true
		v.Instance = scene.WipeTower.transformation()
		v.HullBox = geom.NewBoundingBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{60, 60, 120})
		volumes = append(volumes, v)
	}

	return m, volumes, nil
}

// Save writes the scene back to disk.
func Save(path string, scene *Scene) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
