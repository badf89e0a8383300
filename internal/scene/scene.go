package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/meshcap/meshcap/internal/geometry"
	"github.com/meshcap/meshcap/internal/logger"
	"github.com/meshcap/meshcap/internal/texture"
	"github.com/meshcap/meshcap/pkg/formats"
	"github.com/meshcap/meshcap/pkg/math"
)

// Object is one mesh instance in the scene. Its transform is fixed
// unless an animation track is attached, in which case SetTime updates
// it per frame.
type Object struct {
	Name    string
	Mesh    *geometry.Mesh
	Texture *texture.Texture // nil when absent or unreadable

	base      math.Mat4
	track     *Track
	transform math.Mat4
}

// Transform returns the object's current local-to-world matrix.
func (o *Object) Transform() math.Mat4 {
	return o.transform
}

// Animated reports whether the object has an animation track.
func (o *Object) Animated() bool {
	return o.track != nil
}

// Scene holds the loaded objects of a capture scene.
type Scene struct {
	objects []*Object
}

// NewObject builds a scene object programmatically, with a fixed
// transform. Used by tools and tests that do not load a scene file.
func NewObject(name string, mesh *geometry.Mesh, transform math.Mat4, tex *texture.Texture) *Object {
	return &Object{
		Name:      name,
		Mesh:      mesh,
		Texture:   tex,
		base:      transform,
		transform: transform,
	}
}

// Add appends an object to the scene.
func (s *Scene) Add(o *Object) {
	s.objects = append(s.objects, o)
}

// Objects returns the scene's objects.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// sceneFile mirrors the YAML scene description.
type sceneFile struct {
	Objects []objectSpec `yaml:"objects"`
}

type objectSpec struct {
	Name      string    `yaml:"name"`
	Mesh      string    `yaml:"mesh"`
	Texture   string    `yaml:"texture"`
	Position  []float32 `yaml:"position"` // x y z
	Rotation  []float32 `yaml:"rotation"` // euler degrees x y z
	Scale     []float32 `yaml:"scale"`
	Animation []keySpec `yaml:"animation"`
}

type keySpec struct {
	Time     float64   `yaml:"time"`
	Position []float32 `yaml:"position"`
	Rotation []float32 `yaml:"rotation"`
	Scale    []float32 `yaml:"scale"`
}

// Load reads a YAML scene description and loads the meshes and
// textures it references, resolved relative to the scene file's
// directory. A missing or undecodable texture is a warning, not an
// error: the object falls back to white. A mesh that fails to load or
// validate is an error, since the scene would silently lose geometry
// otherwise.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}

	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	if len(sf.Objects) == 0 {
		return nil, fmt.Errorf("scene %s declares no objects", path)
	}

	baseDir := filepath.Dir(path)
	s := &Scene{}

	for i, spec := range sf.Objects {
		if spec.Name == "" {
			return nil, fmt.Errorf("scene object %d has no name", i)
		}
		if spec.Mesh == "" {
			return nil, fmt.Errorf("scene object %q has no mesh", spec.Name)
		}

		obj, err := loadObject(baseDir, spec)
		if err != nil {
			return nil, err
		}
		s.Add(obj)
	}

	s.SetTime(0)
	return s, nil
}

func loadObject(baseDir string, spec objectSpec) (*Object, error) {
	meshData, err := os.ReadFile(filepath.Join(baseDir, spec.Mesh))
	if err != nil {
		return nil, fmt.Errorf("object %q: reading mesh: %w", spec.Name, err)
	}
	objMesh, err := formats.ParseOBJ(meshData)
	if err != nil {
		return nil, fmt.Errorf("object %q: parsing %s: %w", spec.Name, spec.Mesh, err)
	}

	mesh := geometry.FromOBJ(objMesh, spec.Name)
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("object %q: %w", spec.Name, err)
	}
	if mesh.IsEmpty() {
		logger.Info("scene object has no geometry, it will contribute no points",
			zap.String("object", spec.Name))
	}

	obj := &Object{
		Name: spec.Name,
		Mesh: mesh,
		base: math.TRS(vec3Or(spec.Position, math.Vec3{}),
			eulerOr(spec.Rotation),
			vec3Or(spec.Scale, math.Vec3{X: 1, Y: 1, Z: 1})),
	}
	obj.transform = obj.base

	if spec.Texture != "" {
		tex, err := texture.LoadFile(filepath.Join(baseDir, spec.Texture))
		if err != nil {
			logger.Warn("texture unreadable, falling back to white",
				zap.String("object", spec.Name),
				zap.String("texture", spec.Texture),
				zap.Error(err))
		} else {
			obj.Texture = tex
		}
	}

	if len(spec.Animation) > 0 {
		track := &Track{}
		for _, k := range spec.Animation {
			track.Keys = append(track.Keys, Keyframe{
				Time:     k.Time,
				Position: vec3Or(k.Position, math.Vec3{}),
				Rotation: eulerOr(k.Rotation),
				Scale:    vec3Or(k.Scale, math.Vec3{X: 1, Y: 1, Z: 1}),
			})
		}
		obj.track = track
	}

	return obj, nil
}

// SetTime poses every animated object for time t (seconds). This is
// the frame-advance signal the capture orchestrator invokes before
// sampling dynamic objects.
func (s *Scene) SetTime(t float64) {
	for _, obj := range s.objects {
		if obj.track != nil {
			obj.transform = obj.track.Evaluate(t)
		}
	}
}

func vec3Or(v []float32, fallback math.Vec3) math.Vec3 {
	if len(v) < 3 {
		return fallback
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func eulerOr(v []float32) math.Quat {
	if len(v) < 3 {
		return math.QuatIdentity()
	}
	return math.QuatFromEuler(v[0], v[1], v[2])
}
