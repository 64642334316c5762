package gosiedecal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func SavePLYFile(fileName string, m *Mesh) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	if err := SavePLY(file, m); err != nil {
		return fmt.Errorf("error writing PLY file %s: %w", fileName, err)
	}
	return file.Close()
}

// SavePLY writes m as an ascii PLY file. Every soup corner becomes its
// own vertex so per-corner normals and uvs survive.
func SavePLY(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by gosiedecal")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", m.Len())
	for _, prop := range []string{"x", "y", "z", "nx", "ny", "nz", "s", "t"} {
		_, _ = fmt.Fprintf(writer, "property float %s\n", prop)
	}
	_, _ = fmt.Fprintf(writer, "element face %d\n", m.TriangleCount())
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for i := range m.Positions {
		p, n, uv := m.Positions[i], m.Normals[i], m.UVs[i]
		_, _ = fmt.Fprintf(writer, "%g %g %g %g %g %g %g %g\n", p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	for i := 0; i < m.Len(); i += 3 {
		_, _ = fmt.Fprintf(writer, "3 %d %d %d\n", i, i+1, i+2)
	}
	return writer.Flush()
}

func LoadPLYFile(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	m, err := LoadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return m, nil
}

// LoadPLY reads an ascii PLY file into a triangle soup. Polygons are
// triangulated as fans. Vertex normals and uvs are used when the file has
// them; otherwise faces get flat normals and zero uvs.
func LoadPLY(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)

	// nextLine reports a reader failure as itself and a short file as
	// ErrInvalidArgument.
	nextLine := func(what string) (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading from PLY source: %w", err)
		}
		return "", fmt.Errorf("%w: unexpected end of file while reading %s", ErrInvalidArgument, what)
	}

	var elements []plyElement
	vertexProps := map[string]int{}
	numVertexProps := 0
	sawMagic := false

headerLoop:
	for {
		line, err := nextLine("header")
		if err != nil {
			return nil, err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "ply":
			sawMagic = true
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("%w: unsupported PLY format %q", ErrInvalidArgument, strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: malformed element line %q", ErrInvalidArgument, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: bad %s count %q", ErrInvalidArgument, parts[1], parts[2])
			}
			elements = append(elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(elements) > 0 && elements[len(elements)-1].name == "vertex" && len(parts) >= 3 {
				vertexProps[parts[len(parts)-1]] = numVertexProps
				numVertexProps++
			}
		case "end_header":
			break headerLoop
		}
	}
	if !sawMagic {
		return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidArgument)
	}

	px, okX := vertexProps["x"]
	py, okY := vertexProps["y"]
	pz, okZ := vertexProps["z"]
	if !okX || !okY || !okZ {
		return nil, fmt.Errorf("%w: PLY vertices need x, y and z", ErrInvalidArgument)
	}
	nx, hasNX := vertexProps["nx"]
	ny, hasNY := vertexProps["ny"]
	nz, hasNZ := vertexProps["nz"]
	hasNormals := hasNX && hasNY && hasNZ
	us, vs, hasUVs := uvProperties(vertexProps)

	var vertices []Vertex
	mesh := NewMesh(0)
	faceCount := 0

	// element bodies follow the header in declaration order
	for _, el := range elements {
		switch el.name {
		case "vertex":
			for i := 0; i < el.count; i++ {
				line, err := nextLine("vertices")
				if err != nil {
					return nil, err
				}
				parts := strings.Fields(line)
				if len(parts) < numVertexProps {
					return nil, fmt.Errorf("%w: invalid vertex data on line %d", ErrInvalidArgument, i)
				}
				values := make([]float64, len(parts))
				for j, part := range parts {
					v, err := strconv.ParseFloat(part, 64)
					if err != nil {
						return nil, fmt.Errorf("%w: could not parse value '%s' of vertex %d", ErrInvalidArgument, part, i)
					}
					values[j] = v
				}

				v := Vertex{Position: Vector3{X: values[px], Y: values[py], Z: values[pz]}}
				if hasNormals {
					v.Normal = Vector3{X: values[nx], Y: values[ny], Z: values[nz]}
				}
				if hasUVs {
					v.UV = Vector2{X: values[us], Y: values[vs]}
				}
				vertices = append(vertices, v)
			}

		case "face":
			for i := 0; i < el.count; i++ {
				line, err := nextLine("faces")
				if err != nil {
					return nil, err
				}
				parts := strings.Fields(line)
				if len(parts) == 0 {
					return nil, fmt.Errorf("%w: empty face on line %d", ErrInvalidArgument, i)
				}
				numFaceVerts, err := strconv.Atoi(parts[0])
				if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
					return nil, fmt.Errorf("%w: invalid face data on line %d", ErrInvalidArgument, i)
				}

				corners := make([]Vertex, numFaceVerts)
				for j := range corners {
					idx, err := strconv.Atoi(parts[j+1])
					if err != nil || idx < 0 || idx >= len(vertices) {
						return nil, fmt.Errorf("%w: face %d references vertex %q", ErrInvalidArgument, i, parts[j+1])
					}
					corners[j] = vertices[idx]
				}
				addFan(mesh, corners, hasNormals)
			}
			faceCount += el.count

		default:
			for i := 0; i < el.count; i++ {
				if _, err := nextLine(el.name + " elements"); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	log.Debug().Int("vertices", len(vertices)).Int("faces", faceCount).Int("triangles", mesh.TriangleCount()).Msg("PLY loaded")
	return mesh, nil
}

// plyElement is one "element" header line.
type plyElement struct {
	name  string
	count int
}

func uvProperties(props map[string]int) (u, v int, ok bool) {
	for _, names := range [][2]string{{"s", "t"}, {"u", "v"}, {"texture_u", "texture_v"}} {
		u, okU := props[names[0]]
		v, okV := props[names[1]]
		if okU && okV {
			return u, v, true
		}
	}
	return 0, 0, false
}

// addFan triangulates a convex polygon around its first corner. Without
// vertex normals every triangle gets its own flat normal.
func addFan(m *Mesh, corners []Vertex, hasNormals bool) {
	for j := 1; j+1 < len(corners); j++ {
		tri := [3]Vertex{corners[0], corners[j], corners[j+1]}
		if !hasNormals {
			n := faceNormal(tri[0].Position, tri[1].Position, tri[2].Position)
			for k := range tri {
				tri[k].Normal = n
			}
		}
		for _, v := range tri {
			m.AddVertex(v.Position, v.Normal, v.UV)
		}
	}
}

// faceNormal is the unit normal of a counter-clockwise triangle. A
// degenerate triangle gets +Z.
func faceNormal(a, b, c Vector3) Vector3 {
	n := b.Subtract(a).Cross(c.Subtract(b))
	if n.Length() == 0 {
		return UnitZ
	}
	return n.Normalize()
}
