package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

type yamlFile struct {
	Camera          yamlCamera              `yaml:"camera"`
	Lights          []yamlLight             `yaml:"lights"`
	Materials       map[string]yamlMaterial `yaml:"materials"`
	Shapes          []yamlShape             `yaml:"shapes"`
	DivideThreshold *int                    `yaml:"divide_threshold"`
}

type yamlCamera struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	FOV    float64   `yaml:"fov"`
	From   []float64 `yaml:"from"`
	To     []float64 `yaml:"to"`
	Up     []float64 `yaml:"up"`
}

type yamlLight struct {
	Position  []float64 `yaml:"position"`
	Intensity []float64 `yaml:"intensity"`
}

type yamlMaterial struct {
	Color           []float64    `yaml:"color"`
	Pattern         *yamlPattern `yaml:"pattern"`
	Ambient         *float64     `yaml:"ambient"`
	Diffuse         *float64     `yaml:"diffuse"`
	Specular        *float64     `yaml:"specular"`
	Shininess       *float64     `yaml:"shininess"`
	Reflective      *float64     `yaml:"reflective"`
	Transparency    *float64     `yaml:"transparency"`
	RefractiveIndex *float64     `yaml:"refractive_index"`
}

type yamlPattern struct {
	Type      string       `yaml:"type"`
	Colors    [][]float64  `yaml:"colors"`
	A         *yamlPattern `yaml:"a"`
	B         *yamlPattern `yaml:"b"`
	Pattern   *yamlPattern `yaml:"pattern"` // perturbed delegate
	Scale     float64      `yaml:"scale"`   // perturbed jitter
	Transform [][]string   `yaml:"transform"`
}

type yamlShape struct {
	Type      string      `yaml:"type"`
	Material  yaml.Node   `yaml:"material"`
	Transform [][]string  `yaml:"transform"`
	Shadow    *bool       `yaml:"shadow"`
	Min       *float64    `yaml:"min"`
	Max       *float64    `yaml:"max"`
	Closed    bool        `yaml:"closed"`
	Points    [][]float64 `yaml:"points"`
	Normals   [][]float64 `yaml:"normals"`
	Children  []yamlShape `yaml:"children"`
	Operation string      `yaml:"operation"`
	Left      *yamlShape  `yaml:"left"`
	Right     *yamlShape  `yaml:"right"`
	File      string      `yaml:"file"`
}

// LoadYAML reads a scene file. Mesh paths inside it are resolved relative to the file.
func LoadYAML(path string, opts Options) (*Scene, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "read scene file")
	}

	s, err := ParseYAML(data, filepath.Dir(expanded), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	s.Name = titleCase(strings.TrimSuffix(filepath.Base(expanded), filepath.Ext(expanded)))
	return s, nil
}

// ParseYAML builds a scene from YAML text. baseDir anchors relative mesh paths.
func ParseYAML(data []byte, baseDir string, opts Options) (*Scene, error) {
	var file yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	b := &yamlBuilder{file: &file, baseDir: baseDir, named: make(map[string]material.Material)}

	camera, err := b.camera(opts)
	if err != nil {
		return nil, errors.Wrap(err, "camera")
	}

	world := NewWorld()
	for i, l := range file.Lights {
		light, err := parseLight(l)
		if err != nil {
			return nil, errors.Wrapf(err, "light %d", i)
		}
		world.AddLights(light)
	}

	for name, m := range file.Materials {
		mat, err := b.material(m)
		if err != nil {
			return nil, errors.Wrapf(err, "material %q", name)
		}
		b.named[name] = mat
	}

	for i := range file.Shapes {
		shape, err := b.shape(&file.Shapes[i], inherited{})
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d", i)
		}
		world.AddShapes(shape)
	}

	threshold := DefaultDivideThreshold
	if file.DivideThreshold != nil {
		threshold = *file.DivideThreshold
	}
	return &Scene{World: world, Camera: camera, DivideThreshold: threshold}, nil
}

type yamlBuilder struct {
	file    *yamlFile
	baseDir string
	named   map[string]material.Material
}

func (b *yamlBuilder) camera(opts Options) (*renderer.Camera, error) {
	c := b.file.Camera
	opts = opts.withDefaults(c.Width, c.Height)
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	if c.FOV <= 0 {
		return nil, errors.Errorf("fov must be positive, got %g", c.FOV)
	}
	from, err := vec3("from", c.From)
	if err != nil {
		return nil, err
	}
	to, err := vec3("to", c.To)
	if err != nil {
		return nil, err
	}
	up, err := vec3("up", c.Up)
	if err != nil {
		return nil, err
	}

	camera := renderer.NewCamera(opts.Width, opts.Height, c.FOV)
	if err := camera.SetTransform(core.ViewTransform(from, to, up)); err != nil {
		return nil, err
	}
	return camera, nil
}

func parseLight(l yamlLight) (lights.PointLight, error) {
	pos, err := vec3("position", l.Position)
	if err != nil {
		return lights.PointLight{}, err
	}
	intensity, err := vec3("intensity", l.Intensity)
	if err != nil {
		return lights.PointLight{}, err
	}
	return lights.NewPointLight(pos, intensity), nil
}

func (b *yamlBuilder) material(m yamlMaterial) (material.Material, error) {
	var opts []material.PhongOption
	if m.Color != nil {
		c, err := vec3("color", m.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithColor(c))
	}
	if m.Pattern != nil {
		p, err := parsePattern(m.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, "pattern")
		}
		opts = append(opts, material.WithPattern(p))
	}

	scalars := []struct {
		value *float64
		with  func(float64) material.PhongOption
	}{
		{m.Ambient, material.WithAmbient},
		{m.Diffuse, material.WithDiffuse},
		{m.Specular, material.WithSpecular},
		{m.Shininess, material.WithShininess},
		{m.Reflective, material.WithReflective},
		{m.Transparency, material.WithTransparency},
		{m.RefractiveIndex, material.WithRefractiveIndex},
	}
	for _, s := range scalars {
		if s.value != nil {
			opts = append(opts, s.with(*s.value))
		}
	}
	return material.NewPhong(opts...), nil
}

// shapeMaterial resolves a material field that is either a name or an inline mapping.
// An absent field returns nil.
func (b *yamlBuilder) shapeMaterial(node *yaml.Node) (material.Material, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		m, ok := b.named[node.Value]
		if !ok {
			return nil, errors.Errorf("line %d: unknown material %q", node.Line, node.Value)
		}
		return m, nil
	case yaml.MappingNode:
		var m yamlMaterial
		if err := node.Decode(&m); err != nil {
			return nil, errors.Wrap(err, "inline material")
		}
		return b.material(m)
	default:
		return nil, errors.Errorf("line %d: material must be a name or a mapping", node.Line)
	}
}

// inherited carries a composite's material and shadow flag down to children that set none
type inherited struct {
	material material.Material
	shadow   *bool
}

func (b *yamlBuilder) shape(s *yamlShape, parent inherited) (geometry.Shape, error) {
	own, err := b.shapeMaterial(&s.Material)
	if err != nil {
		return nil, err
	}
	attrs := parent
	if own != nil {
		attrs.material = own
	}
	if s.Shadow != nil {
		attrs.shadow = s.Shadow
	}

	shape, err := b.newShape(s, attrs)
	if err != nil {
		return nil, err
	}

	transform, err := parseTransform(s.Transform)
	if err != nil {
		return nil, err
	}
	if err := shape.(transformable).SetTransform(transform); err != nil {
		return nil, errors.Wrap(err, "transform")
	}
	return shape, nil
}

// primitive applies the inherited attributes to a leaf shape
func primitive[T interface {
	geometry.Shape
	SetMaterial(material.Material)
	SetCastsShadow(bool)
}](shape T, attrs inherited) T {
	if attrs.material != nil {
		shape.SetMaterial(attrs.material)
	}
	if attrs.shadow != nil {
		shape.SetCastsShadow(*attrs.shadow)
	}
	return shape
}

func (b *yamlBuilder) newShape(s *yamlShape, attrs inherited) (geometry.Shape, error) {
	switch strings.ToLower(s.Type) {
	case "sphere":
		return primitive(geometry.NewSphere(), attrs), nil
	case "plane":
		return primitive(geometry.NewPlane(), attrs), nil
	case "cube":
		return primitive(geometry.NewCube(), attrs), nil
	case "cylinder":
		c := geometry.NewCylinder()
		c.Minimum, c.Maximum, c.Closed = bound(s.Min, c.Minimum), bound(s.Max, c.Maximum), s.Closed
		return primitive(c, attrs), nil
	case "cone":
		c := geometry.NewCone()
		c.Minimum, c.Maximum, c.Closed = bound(s.Min, c.Minimum), bound(s.Max, c.Maximum), s.Closed
		return primitive(c, attrs), nil
	case "triangle":
		p, err := vec3s("points", s.Points, 3)
		if err != nil {
			return nil, err
		}
		return primitive(geometry.NewTriangle(p[0], p[1], p[2]), attrs), nil
	case "smooth_triangle":
		p, err := vec3s("points", s.Points, 3)
		if err != nil {
			return nil, err
		}
		n, err := vec3s("normals", s.Normals, 3)
		if err != nil {
			return nil, err
		}
		return primitive(geometry.NewSmoothTriangle(p[0], p[1], p[2], n[0], n[1], n[2]), attrs), nil
	case "group":
		g := geometry.NewGroup()
		for i := range s.Children {
			child, err := b.shape(&s.Children[i], attrs)
			if err != nil {
				return nil, errors.Wrapf(err, "child %d", i)
			}
			g.AddChild(child)
		}
		return g, nil
	case "csg":
		op, err := geometry.ParseOperation(s.Operation)
		if err != nil {
			return nil, err
		}
		if s.Left == nil || s.Right == nil {
			return nil, errors.New("csg needs left and right")
		}
		left, err := b.shape(s.Left, attrs)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}
		right, err := b.shape(s.Right, attrs)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}
		return geometry.NewCSG(op, left, right), nil
	case "obj", "ply":
		return b.mesh(s, attrs)
	default:
		return nil, errors.Errorf("unknown shape type %q", s.Type)
	}
}

// mesh loads an OBJ or PLY file, handing the material and shadow flag to the loader
func (b *yamlBuilder) mesh(s *yamlShape, attrs inherited) (geometry.Shape, error) {
	if s.File == "" {
		return nil, errors.Errorf("%s shape needs a file", s.Type)
	}
	path, err := homedir.Expand(s.File)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", s.File)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.baseDir, path)
	}

	opts := loaders.DefaultMeshOptions()
	opts.Material = attrs.material
	if attrs.shadow != nil {
		opts.CastsShadow = *attrs.shadow
	}

	var mesh *loaders.Mesh
	if strings.EqualFold(s.Type, "obj") {
		mesh, err = loaders.LoadOBJ(path, opts)
	} else {
		mesh, err = loaders.LoadPLY(path, opts)
	}
	if err != nil {
		return nil, err
	}
	return mesh.ToGroup(), nil
}

func bound(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// transformArity is the argument count of each transform operation
var transformArity = map[string]int{
	"translate": 3, "scale": 3, "rotate_x": 1, "rotate_y": 1, "rotate_z": 1, "shear": 6,
}

// parseTransform composes a list such as [[translate, 0, 1, 0], [scale, 2, 2, 2]] in order:
// the first entry is applied to the shape first
func parseTransform(steps [][]string) (core.Matrix, error) {
	m := core.Identity()
	for i, step := range steps {
		if len(step) == 0 {
			return core.Matrix{}, errors.Errorf("transform %d is empty", i)
		}
		args := make([]float64, len(step)-1)
		for j, s := range step[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return core.Matrix{}, errors.Wrapf(err, "transform %d argument %d", i, j)
			}
			args[j] = v
		}

		op := strings.ToLower(step[0])
		n, ok := transformArity[op]
		if !ok {
			return core.Matrix{}, errors.Errorf("transform %d: unknown operation %q", i, step[0])
		}
		if len(args) != n {
			return core.Matrix{}, errors.Errorf("transform %d: %s takes %d arguments, got %d", i, op, n, len(args))
		}

		var next core.Matrix
		switch op {
		case "translate":
			next = core.Translation(args[0], args[1], args[2])
		case "scale":
			next = core.Scaling(args[0], args[1], args[2])
		case "rotate_x":
			next = core.RotationX(args[0])
		case "rotate_y":
			next = core.RotationY(args[0])
		case "rotate_z":
			next = core.RotationZ(args[0])
		case "shear":
			next = core.Shearing(args[0], args[1], args[2], args[3], args[4], args[5])
		}
		m = m.Then(next)
	}
	return m, nil
}

func parsePattern(p *yamlPattern) (material.Pattern, error) {
	var pattern interface {
		material.Pattern
		transformable
	}

	switch strings.ToLower(p.Type) {
	case "solid":
		colors, err := vec3s("colors", p.Colors, 1)
		if err != nil {
			return nil, err
		}
		pattern = material.NewSolidColor(colors[0])
	case "perturbed":
		if p.Pattern == nil {
			return nil, errors.New("perturbed pattern needs a nested pattern")
		}
		delegate, err := parsePattern(p.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, "perturbed")
		}
		pattern = material.NewPerturbed(delegate, p.Scale)
	case "stripe", "striped", "gradient", "ring", "checker", "checkers", "blended":
		a, bb, err := patternPair(p)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(p.Type) {
		case "stripe", "striped":
			pattern = material.NewStriped(a, bb)
		case "gradient":
			pattern = material.NewGradient(a, bb)
		case "ring":
			pattern = material.NewRing(a, bb)
		case "checker", "checkers":
			pattern = material.NewChecker(a, bb)
		default:
			pattern = material.NewBlended(a, bb)
		}
	default:
		return nil, errors.Errorf("unknown pattern type %q", p.Type)
	}

	transform, err := parseTransform(p.Transform)
	if err != nil {
		return nil, err
	}
	if err := pattern.SetTransform(transform); err != nil {
		return nil, err
	}
	return pattern, nil
}

// patternPair reads the two sub-patterns of a two-way pattern, from colors or from a and b
func patternPair(p *yamlPattern) (material.Pattern, material.Pattern, error) {
	if p.A != nil && p.B != nil {
		a, err := parsePattern(p.A)
		if err != nil {
			return nil, nil, errors.Wrap(err, "a")
		}
		b, err := parsePattern(p.B)
		if err != nil {
			return nil, nil, errors.Wrap(err, "b")
		}
		return a, b, nil
	}
	colors, err := vec3s("colors", p.Colors, 2)
	if err != nil {
		return nil, nil, err
	}
	return material.NewSolidColor(colors[0]), material.NewSolidColor(colors[1]), nil
}

func vec3(field string, v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, errors.Errorf("%s needs 3 components, got %d", field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func vec3s(field string, vs [][]float64, n int) ([]core.Vec3, error) {
	if len(vs) != n {
		return nil, errors.Errorf("%s needs %d entries, got %d", field, n, len(vs))
	}
	out := make([]core.Vec3, n)
	for i, v := range vs {
		c, err := vec3(field, v)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		out[i] = c
	}
	return out, nil
}
