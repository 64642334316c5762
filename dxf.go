package gosiedecal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func LoadDXFFile(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	m, err := LoadDXF(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return m, nil
}

// LoadDXF reads the 3DFACE entities of a simplified ascii DXF file. Each
// face has four corners; a face whose fourth corner repeats the third is a
// triangle, anything else is split into two triangles.
func LoadDXF(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	mesh := NewMesh(0)

	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: could not parse float value '%s'", ErrInvalidArgument, scanner.Text())
		}
		return val, nil
	}

	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("%w: unexpected end of file while parsing 3DFACE header", ErrInvalidArgument)
			}
		}

		var corners [4]Vector3
		for c := range corners {
			var coords [3]float64
			for axis := range coords {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("error reading coordinate %d of vertex %d: %w", axis, c, err)
				}
				coords[axis] = v
				scanner.Scan() // group code of the next value
			}
			corners[c] = Vector3{X: coords[0], Y: coords[1], Z: coords[2]}
		}

		addDXFTriangle(mesh, corners[0], corners[1], corners[2])
		if corners[3] != corners[2] {
			addDXFTriangle(mesh, corners[0], corners[2], corners[3])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	return mesh, nil
}

func addDXFTriangle(m *Mesh, a, b, c Vector3) {
	n := faceNormal(a, b, c)
	m.AddVertex(a, n, Vector2{})
	m.AddVertex(b, n, Vector2{})
	m.AddVertex(c, n, Vector2{})
}

// LoadMeshFile loads a PLY or DXF file, chosen by extension.
func LoadMeshFile(fileName string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		return LoadPLYFile(fileName)
	case ".dxf":
		return LoadDXFFile(fileName)
	default:
		return nil, fmt.Errorf("%w: unknown mesh format %q", ErrInvalidArgument, filepath.Ext(fileName))
	}
}
