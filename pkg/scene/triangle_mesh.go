package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// uvSphereOBJ writes a unit sphere as OBJ text with per-vertex normals. Rows next to the
// poles are emitted as quads so the loader's fan triangulation is exercised.
func uvSphereOBJ(stacks, slices int) string {
	var b strings.Builder
	b.WriteString("# uv sphere\n")

	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			x := math.Sin(phi) * math.Cos(theta)
			y := math.Cos(phi)
			z := math.Sin(phi) * math.Sin(theta)
			fmt.Fprintf(&b, "v %.6f %.6f %.6f\n", x, y, z)
			fmt.Fprintf(&b, "vn %.6f %.6f %.6f\n", x, y, z)
		}
	}

	// OBJ indices are one-based
	index := func(i, j int) int { return i*slices + j%slices + 1 }
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, c := index(i, j), index(i+1, j)
			bb, d := index(i, j+1), index(i+1, j+1)
			switch i {
			case 0:
				fmt.Fprintf(&b, "f %d//%d %d//%d %d//%d\n", a, a, c, c, d, d)
			case stacks - 1:
				fmt.Fprintf(&b, "f %d//%d %d//%d %d//%d\n", a, a, c, c, bb, bb)
			default:
				fmt.Fprintf(&b, "f %d//%d %d//%d %d//%d %d//%d\n", a, a, c, c, d, d, bb, bb)
			}
		}
	}
	return b.String()
}

// octahedronOBJ is a flat-shaded octahedron split into two named groups
const octahedronOBJ = `# octahedron
v 0 1 0
v 1 0 0
v 0 0 1
v -1 0 0
v 0 0 -1
v 0 -1 0

g top
f 1 3 2
f 1 4 3
f 1 5 4
f 1 2 5

g bottom
f 6 2 3
f 6 3 4
f 6 4 5
f 6 5 2
`

// NewMeshScene creates a smooth-shaded sphere mesh and a flat octahedron, both parsed from OBJ
func NewMeshScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults(600, 338)

	world := NewWorld()
	world.AddLights(lights.NewPointLight(core.NewVec3(-6, 8, -6), core.White))

	ground := withMaterial(geometry.NewPlane(), material.NewPhong(
		material.WithPattern(withTransform(
			material.NewChecker(solid(0.8, 0.8, 0.8), solid(0.6, 0.6, 0.6)),
			core.Scaling(0.5, 0.5, 0.5))),
		material.WithSpecular(0),
	))
	world.AddShapes(ground)

	sphereOpts := loaders.DefaultMeshOptions()
	sphereOpts.Material = material.NewPhong(
		material.WithColor(core.NewVec3(0.9, 0.5, 0.2)),
		material.WithSpecular(0.6),
		material.WithReflective(0.15),
	)
	sphere, err := loaders.ParseOBJ(strings.NewReader(uvSphereOBJ(16, 24)), sphereOpts)
	if err != nil {
		return nil, errors.Wrap(err, "sphere mesh")
	}
	sphereGroup := sphere.ToGroup()
	sphereGroup.MustSetTransform(core.Translation(-1.2, 1, 0))

	octOpts := loaders.DefaultMeshOptions()
	octOpts.Material = material.NewPhong(
		material.WithColor(core.NewVec3(0.3, 0.6, 0.9)),
		material.WithSpecular(0.3),
	)
	oct, err := loaders.ParseOBJ(strings.NewReader(octahedronOBJ), octOpts)
	if err != nil {
		return nil, errors.Wrap(err, "octahedron mesh")
	}
	octGroup := oct.ToGroup()
	octGroup.MustSetTransform(core.RotationY(math.Pi / 5).Then(core.Translation(1.3, 1, 0.3)))

	world.AddShapes(sphereGroup, octGroup)

	return &Scene{
		World: world,
		Camera: newCamera(opts.Width, opts.Height, 45*math.Pi/180,
			core.NewVec3(0, 2, -6), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)),
		DivideThreshold: DefaultDivideThreshold,
	}, nil
}
