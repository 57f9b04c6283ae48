package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/log"
)

var logger = log.New("loaders")

// ErrInvalidPLY is returned for malformed PLY input
var ErrInvalidPLY = errors.New("loaders: invalid PLY data")

const (
	// maxPreallocElements bounds slice capacity taken from header counts;
	// larger bodies grow by append as values are actually read
	maxPreallocElements = 1 << 20
	// maxListLength bounds the length of a single list property, such as a face
	maxListLength = 1 << 16
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty

	HasNormals   bool
	HasColors    bool
	HasTexCoords bool
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the raw data loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     [][3]int    // Triangle indices; polygons are fan-triangulated
	Normals   []core.Vec3 // Per-vertex normals (nx, ny, nz) - empty if not present
	Colors    []core.Vec3 // Per-vertex colors normalized to [0,1] - empty if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates (u, v) - empty if not present
}

// LoadPLY loads a PLY file and returns the raw vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	plyData, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded PLY data: %d vertices, %d triangles in %v",
		len(plyData.Vertices), len(plyData.Faces), time.Since(startTime))

	return plyData, nil
}

// ReadPLY parses ASCII or binary PLY data from r
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var source valueSource
	switch header.Format {
	case "ascii":
		source = &asciiSource{reader: reader}
	case "binary_little_endian":
		source = &binarySource{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		source = &binarySource{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	plyData, err := readPLYBody(source, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return plyData, nil
}

// parsePLYHeader parses the PLY header, leaving reader positioned at the body
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
	}

	var currentElement string
	for {
		rawLine, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrInvalidPLY)
		}
		line := strings.TrimSpace(rawLine)

		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("%w: unsupported element %q", ErrInvalidPLY, currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
				switch prop.Name {
				case "nx", "ny", "nz":
					header.HasNormals = true
				case "red", "green", "blue":
					header.HasColors = true
				case "u", "v", "s", "t", "texture_u", "texture_v":
					header.HasTexCoords = true
				}
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}

	if getTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: unsupported property type %q", ErrInvalidPLY, parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// readPLYBody reads vertex and face elements in header order
func readPLYBody(source valueSource, header *PLYHeader) (*PLYData, error) {
	data := &PLYData{
		Vertices: make([]core.Vec3, 0, min(header.VertexCount, maxPreallocElements)),
		Faces:    make([][3]int, 0, min(header.FaceCount, maxPreallocElements)),
	}

	values := make(map[string]float64, len(header.VertexProps))
	for i := 0; i < header.VertexCount; i++ {
		for _, prop := range header.VertexProps {
			if prop.IsList {
				if err := skipList(source, prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			value, err := source.next(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			values[prop.Name] = value
		}

		data.Vertices = append(data.Vertices, core.NewVec3(values["x"], values["y"], values["z"]))
		if header.HasNormals {
			data.Normals = append(data.Normals, core.NewVec3(values["nx"], values["ny"], values["nz"]))
		}
		if header.HasColors {
			data.Colors = append(data.Colors, core.NewVec3(values["red"]/255, values["green"]/255, values["blue"]/255))
		}
		if header.HasTexCoords {
			data.TexCoords = append(data.TexCoords, texCoordFrom(values))
		}
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := source.next(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				if err := skipList(source, prop); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := readListLength(source, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d vertex count: %w", i, err)
			}
			if count < 3 {
				return nil, fmt.Errorf("%w: face %d has %d vertices", ErrInvalidPLY, i, count)
			}

			polygon := make([]int, count)
			for j := range polygon {
				index, err := source.next(prop.DataType)
				if err != nil {
					return nil, fmt.Errorf("face %d index %d: %w", i, j, err)
				}
				polygon[j] = int(index)
			}

			// Fan triangulation keeps the polygon winding
			for j := 1; j+1 < len(polygon); j++ {
				data.Faces = append(data.Faces, [3]int{polygon[0], polygon[j], polygon[j+1]})
			}
		}
	}

	return data, nil
}

func texCoordFrom(values map[string]float64) core.Vec2 {
	for _, names := range [][2]string{{"u", "v"}, {"s", "t"}, {"texture_u", "texture_v"}} {
		if u, ok := values[names[0]]; ok {
			return core.NewVec2(u, values[names[1]])
		}
	}
	return core.Vec2{}
}

// readListLength reads a list length prefix and checks it is a sane count
func readListLength(source valueSource, prop PLYProperty) (int, error) {
	count, err := source.next(prop.ListType)
	if err != nil {
		return 0, err
	}
	if count < 0 || count > maxListLength || count != math.Trunc(count) {
		return 0, fmt.Errorf("%w: invalid list length %v for %s", ErrInvalidPLY, count, prop.Name)
	}
	return int(count), nil
}

func skipList(source valueSource, prop PLYProperty) error {
	count, err := readListLength(source, prop)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if _, err := source.next(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// valueSource yields successive scalar values from a PLY body
type valueSource interface {
	next(dataType string) (float64, error)
}

// asciiSource reads whitespace separated values
type asciiSource struct {
	reader *bufio.Reader
	fields []string
}

func (s *asciiSource) next(dataType string) (float64, error) {
	for len(s.fields) == 0 {
		line, err := s.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, fmt.Errorf("%w: unexpected end of data", ErrInvalidPLY)
		}
		s.fields = strings.Fields(line)
	}

	field := s.fields[0]
	s.fields = s.fields[1:]

	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q", ErrInvalidPLY, dataType, field)
	}
	return value, nil
}

// binarySource reads fixed-size values in the given byte order
type binarySource struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (s *binarySource) next(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unsupported data type %q", ErrInvalidPLY, dataType)
	}

	buf := s.buf[:size]
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return 0, fmt.Errorf("%w: unexpected end of data", ErrInvalidPLY)
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(s.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(s.order.Uint64(buf)), nil
	case "int", "int32":
		return float64(int32(s.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(s.order.Uint32(buf)), nil
	case "short", "int16":
		return float64(int16(s.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(s.order.Uint16(buf)), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default: // uchar, uint8
		return float64(buf[0]), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
