package loaders

import (
	"bufio"
	"encoding/binary"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement
}

// PLYElement is one element declaration and its properties, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// index returns the position of the named property, or -1
func (e PLYElement) index(name string) int {
	for i, p := range e.Properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// ParsePLYHeader reads the header through end_header, leaving r at the first body byte
func ParsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("missing ply magic number")
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(err, "read header")
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, errors.New("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, errors.Errorf("invalid format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "element":
			if len(parts) < 3 {
				return nil, errors.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, errors.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, errors.New("property declared before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			el := &header.Elements[len(header.Elements)-1]
			el.Properties = append(el.Properties, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, errors.New("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, errors.New("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// getTypeSize returns the size in bytes of a PLY scalar type
func getTypeSize(dataType string) (int, error) {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1, nil
	case "short", "int16", "ushort", "uint16":
		return 2, nil
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4, nil
	case "double", "float64":
		return 8, nil
	default:
		return 0, errors.Errorf("unsupported data type: %s", dataType)
	}
}

// plyReader yields scalar values from either an ascii or binary body
type plyReader interface {
	next(dataType string) (float64, error)
	endElement() error
}

type asciiPLYReader struct {
	r      *bufio.Reader
	tokens []string
}

func (a *asciiPLYReader) next(string) (float64, error) {
	for len(a.tokens) == 0 {
		line, err := a.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, errors.Wrap(err, "read ascii body")
		}
		a.tokens = strings.Fields(line)
	}
	tok := a.tokens[0]
	a.tokens = a.tokens[1:]
	v, err := strconv.ParseFloat(tok, 64)
	return v, errors.Wrapf(err, "parse value %q", tok)
}

// endElement drops anything left on the current line
func (a *asciiPLYReader) endElement() error {
	a.tokens = nil
	return nil
}

type binaryPLYReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryPLYReader) next(dataType string) (float64, error) {
	size, err := getTypeSize(dataType)
	if err != nil {
		return 0, err
	}
	if _, err := io.ReadFull(b.r, b.buf[:size]); err != nil {
		return 0, errors.Wrap(err, "read binary body")
	}
	data := b.buf[:size]
	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}

func (b *binaryPLYReader) endElement() error { return nil }

// ParsePLY reads a PLY mesh. Vertex x, y, z are required; nx, ny, nz produce smooth triangles.
// Polygonal faces are fan-triangulated; faces with out-of-range indices are counted in Mesh.Ignored.
func ParsePLY(r io.Reader, opts MeshOptions) (*Mesh, error) {
	br := bufio.NewReaderSize(r, 1024*1024)
	header, err := ParsePLYHeader(br)
	if err != nil {
		return nil, errors.Wrap(err, "parse ply header")
	}

	var body plyReader
	switch header.Format {
	case "ascii":
		body = &asciiPLYReader{r: br}
	case "binary_little_endian":
		body = &binaryPLYReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		body = &binaryPLYReader{r: br, order: binary.BigEndian}
	default:
		return nil, errors.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := newMesh(opts)
	var faces [][]int
	for _, el := range header.Elements {
		switch el.Name {
		case "vertex":
			if err := readPLYVertices(body, el, mesh); err != nil {
				return nil, err
			}
		case "face":
			if faces, err = readPLYFaces(body, el); err != nil {
				return nil, err
			}
		default:
			if err := skipPLYElement(body, el); err != nil {
				return nil, errors.Wrapf(err, "skip element %s", el.Name)
			}
		}
	}

	smooth := len(mesh.Normals) == len(mesh.Vertices) && len(mesh.Normals) > 0
	for _, face := range faces {
		corners := make([]faceVertex, 0, len(face))
		valid := len(face) >= 3
		for _, idx := range face {
			if idx < 0 || idx >= len(mesh.Vertices) {
				valid = false
				break
			}
			c := faceVertex{vertex: idx, normal: -1}
			if smooth {
				c.normal = idx
			}
			corners = append(corners, c)
		}
		if !valid {
			mesh.Ignored++
			continue
		}
		mesh.fanTriangulate(corners)
	}
	return mesh, nil
}

func readPLYVertices(body plyReader, el PLYElement, mesh *Mesh) error {
	pos := [3]int{el.index("x"), el.index("y"), el.index("z")}
	if pos[0] < 0 || pos[1] < 0 || pos[2] < 0 {
		return errors.New("vertex element needs x, y and z properties")
	}
	nrm := [3]int{el.index("nx"), el.index("ny"), el.index("nz")}
	hasNormals := nrm[0] >= 0 && nrm[1] >= 0 && nrm[2] >= 0

	values := make([]float64, len(el.Properties))
	for i := 0; i < el.Count; i++ {
		for j, prop := range el.Properties {
			if prop.IsList {
				if err := skipPLYList(body, prop); err != nil {
					return errors.Wrapf(err, "vertex %d", i)
				}
				continue
			}
			v, err := body.next(prop.Type)
			if err != nil {
				return errors.Wrapf(err, "vertex %d property %s", i, prop.Name)
			}
			values[j] = v
		}
		if err := body.endElement(); err != nil {
			return err
		}

		mesh.Vertices = append(mesh.Vertices, core.NewVec3(values[pos[0]], values[pos[1]], values[pos[2]]))
		if hasNormals {
			mesh.Normals = append(mesh.Normals, core.NewVec3(values[nrm[0]], values[nrm[1]], values[nrm[2]]))
		}
	}
	return nil
}

func readPLYFaces(body plyReader, el PLYElement) ([][]int, error) {
	faces := make([][]int, 0, el.Count)
	for i := 0; i < el.Count; i++ {
		var face []int
		for _, prop := range el.Properties {
			if !prop.IsList {
				if _, err := body.next(prop.Type); err != nil {
					return nil, errors.Wrapf(err, "face %d property %s", i, prop.Name)
				}
				continue
			}

			count, err := body.next(prop.ListType)
			if err != nil {
				return nil, errors.Wrapf(err, "face %d list count", i)
			}
			indices := make([]int, int(count))
			for k := range indices {
				v, err := body.next(prop.Type)
				if err != nil {
					return nil, errors.Wrapf(err, "face %d index %d", i, k)
				}
				indices[k] = int(v)
			}
			if prop.Name == "vertex_indices" || prop.Name == "vertex_index" {
				face = indices
			}
		}
		if err := body.endElement(); err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	return faces, nil
}

func skipPLYList(body plyReader, prop PLYProperty) error {
	count, err := body.next(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(count); k++ {
		if _, err := body.next(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

func skipPLYElement(body plyReader, el PLYElement) error {
	for i := 0; i < el.Count; i++ {
		for _, prop := range el.Properties {
			var err error
			if prop.IsList {
				err = skipPLYList(body, prop)
			} else {
				_, err = body.next(prop.Type)
			}
			if err != nil {
				return err
			}
		}
		if err := body.endElement(); err != nil {
			return err
		}
	}
	return nil
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string, opts MeshOptions) (*Mesh, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PLY file")
	}
	defer file.Close()

	mesh, err := ParsePLY(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}

	slog.Info("loaded ply mesh", "file", filename, "vertices", len(mesh.Vertices),
		"triangles", mesh.TriangleCount(), "elapsed", time.Since(startTime))
	return mesh, nil
}
