package loaders

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ParseOBJ reads Wavefront OBJ text. Supported statements are v, vn, f and g; faces may use
// the forms i, i/t, i/t/n and i//n with positive or negative (relative) indices. Anything else,
// and any statement that fails to parse, is skipped and counted in Mesh.Ignored.
func ParseOBJ(r io.Reader, opts MeshOptions) (*Mesh, error) {
	mesh := newMesh(opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var ok bool
		switch strings.ToLower(fields[0]) {
		case "v":
			var v core.Vec3
			if v, ok = parseVec3(fields[1:]); ok {
				mesh.Vertices = append(mesh.Vertices, v)
			}
		case "vn":
			var n core.Vec3
			if n, ok = parseVec3(fields[1:]); ok {
				mesh.Normals = append(mesh.Normals, n)
			}
		case "f":
			var corners []faceVertex
			if corners, ok = mesh.parseFace(fields[1:]); ok {
				mesh.fanTriangulate(corners)
			}
		case "g":
			if ok = len(fields) >= 2; ok {
				mesh.selectGroup(strings.Join(fields[1:], " "))
			}
		}
		if !ok {
			mesh.Ignored++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read obj")
	}
	return mesh, nil
}

// LoadOBJ parses an OBJ file from disk
func LoadOBJ(filename string, opts MeshOptions) (*Mesh, error) {
	start := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open obj file")
	}
	defer file.Close()

	mesh, err := ParseOBJ(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}

	slog.Info("loaded obj mesh", "file", filename, "vertices", len(mesh.Vertices),
		"triangles", mesh.TriangleCount(), "groups", len(mesh.Groups),
		"ignored", mesh.Ignored, "elapsed", time.Since(start))
	return mesh, nil
}

func parseVec3(fields []string) (core.Vec3, bool) {
	if len(fields) < 3 {
		return core.Vec3{}, false
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, false
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), true
}

// resolveIndex converts a one-based or negative OBJ index to a zero-based slice index
func resolveIndex(field string, count int) (int, bool) {
	i, err := strconv.Atoi(field)
	if err != nil || i == 0 {
		return 0, false
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	return i, i >= 0 && i < count
}

func (m *Mesh) parseFace(fields []string) ([]faceVertex, bool) {
	if len(fields) < 3 {
		return nil, false
	}

	corners := make([]faceVertex, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) > 3 {
			return nil, false
		}

		v, ok := resolveIndex(parts[0], len(m.Vertices))
		if !ok {
			return nil, false
		}
		corner := faceVertex{vertex: v, normal: -1}

		if len(parts) == 3 && parts[2] != "" {
			n, ok := resolveIndex(parts[2], len(m.Normals))
			if !ok {
				return nil, false
			}
			corner.normal = n
		}
		corners = append(corners, corner)
	}
	return corners, true
}
