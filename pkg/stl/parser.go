package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader reads an ASCII or binary STL model from r
func ParseReader(r io.Reader) (*Model, error) {
	reader := bufio.NewReader(r)

	// Binary headers may also start with "solid", so also look for a facet
	header, err := reader.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", io.ErrUnexpectedEOF)
	}

	if bytes.HasPrefix(header, []byte("solid")) && bytes.Contains(header, []byte("facet")) {
		return parseASCII(reader)
	}
	return parseBinary(reader)
}

func parsePoint(fields []string, line int) (geometry.Point3d, error) {
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Point3d{}, fmt.Errorf("line %d: invalid coordinate %q: %w", line, fields[i], err)
		}
		xyz[i] = v
	}
	return geometry.NewPoint3d(xyz[0], xyz[1], xyz[2]), nil
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3d
	var vertices []geometry.Point3d

	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parsePoint(fields[2:5], line)
				if err != nil {
					return nil, err
				}
				currentNormal = n.Vector()
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", line)
			}
			v, err := parsePoint(fields[1:4], line)
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, len(vertices))
			}
			model.AddFacet(Facet{
				Normal:   currentNormal,
				Vertices: [3]geometry.Point3d{vertices[0], vertices[1], vertices[2]},
			})
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

// binaryFacet is the on-disk layout of one binary facet
type binaryFacet struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Extract name from header (if present)
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var facetCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &facetCount); err != nil {
		return nil, fmt.Errorf("failed to read facet count: %w", err)
	}

	for i := uint32(0); i < facetCount; i++ {
		var raw binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("failed to read facet %d: %w", i, err)
		}

		facet := Facet{
			Normal: geometry.NewVector3d(float64(raw.Normal[0]), float64(raw.Normal[1]), float64(raw.Normal[2])),
		}
		for j, v := range raw.Vertices {
			facet.Vertices[j] = geometry.NewPoint3d(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		model.AddFacet(facet)
	}

	return model, nil
}
