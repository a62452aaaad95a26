package geometry

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
)

// MeshImporter loads meshes from external model files. Returned meshes are
// owned by the caller and never alias an importer cache.
type MeshImporter interface {
	LoadMeshComponent(path string) (*Mesh, error)
}

/**
 * @brief Imports Wavefront OBJ files (v, vt, vn and f records). Polygons
 * are triangulated as fans. Parsed meshes are cached per path and every
 * call returns a detached copy.
 */
type OBJImporter struct {
	dataSource fs.FS

	mu    sync.Mutex
	cache map[string]*Mesh
}

func NewOBJImporter(dataSource fs.FS) *OBJImporter {
	return &OBJImporter{
		dataSource: dataSource,
		cache:      make(map[string]*Mesh),
	}
}

func (o *OBJImporter) LoadMeshComponent(path string) (*Mesh, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if mesh, ok := o.cache[path]; ok {
		return mesh.Clone(), nil
	}
	f, err := o.dataSource.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open mesh '%s': %w", path, err)
	}
	defer f.Close()

	mesh, err := DecodeOBJ(f, path)
	if err != nil {
		return nil, err
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	o.cache[path] = mesh
	return mesh.Clone(), nil
}

// Forget drops a cached mesh so the next load reads the file again.
func (o *OBJImporter) Forget(path string) {
	o.mu.Lock()
	delete(o.cache, path)
	o.mu.Unlock()
}

type objDecoder struct {
	name      string
	line      int
	positions []math.Vec3
	uvs       []math.Vec2
	normals   []math.Vec3
	// OBJ vertices are (position, uv, normal) triples; identical triples share a vertex.
	lookup   map[[3]int]uint32
	mesh     *Mesh
	hasNorms bool
}

// DecodeOBJ parses an OBJ stream into a single mesh named name.
func DecodeOBJ(r io.Reader, name string) (*Mesh, error) {
	dec := &objDecoder{
		name:   name,
		lookup: make(map[[3]int]uint32),
		mesh:   &Mesh{Name: name},
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		dec.line++
		line := strings.TrimSpace(scanner.Text())
		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := dec.parseLine(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading '%s': %w", name, err)
	}
	if !dec.hasNorms {
		GenerateNormals(dec.mesh.Vertices, dec.mesh.Indices)
	}
	dec.mesh.RecalculateExtents()
	return dec.mesh, nil
}

func (dec *objDecoder) formatError(msg string) error {
	return fmt.Errorf("%s:%d: %s: %w", dec.name, dec.line, msg, core.ErrInvalidMesh)
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	ltype, fields := fields[0], fields[1:]
	switch ltype {
	case "v":
		f, err := dec.parseFloats(fields, 3)
		if err != nil {
			return err
		}
		dec.positions = append(dec.positions, math.Vec3FromSlice(f))
	case "vn":
		f, err := dec.parseFloats(fields, 3)
		if err != nil {
			return err
		}
		dec.normals = append(dec.normals, math.Vec3FromSlice(f))
	case "vt":
		f, err := dec.parseFloats(fields, 2)
		if err != nil {
			return err
		}
		dec.uvs = append(dec.uvs, math.Vec2FromSlice(f))
	case "f":
		return dec.parseFace(fields)
	default:
		// o, g, s, usemtl and mtllib carry no geometry.
	}
	return nil
}

func (dec *objDecoder) parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.formatError(fmt.Sprintf("expected %d values", n))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, dec.formatError(err.Error())
		}
		out[i] = float32(v)
	}
	return out, nil
}

// resolveIndex turns a 1-based or negative (relative) OBJ index into a
// 0-based one. Empty parts return -1.
func (dec *objDecoder) resolveIndex(part string, count int) (int, error) {
	if part == "" {
		return -1, nil
	}
	val, err := strconv.Atoi(part)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	var idx int
	switch {
	case val > 0:
		idx = val - 1
	case val < 0:
		idx = count + val
	default:
		return 0, dec.formatError("index value equal to 0")
	}
	if idx < 0 || idx >= count {
		return 0, dec.formatError(fmt.Sprintf("index %d out of range", val))
	}
	return idx, nil
}

func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 fields")
	}
	corners := make([]uint32, len(fields))
	for pos, f := range fields {
		parts := strings.Split(f, "/")
		key := [3]int{-1, -1, -1}
		counts := [3]int{len(dec.positions), len(dec.uvs), len(dec.normals)}
		for i := 0; i < len(parts) && i < 3; i++ {
			idx, err := dec.resolveIndex(parts[i], counts[i])
			if err != nil {
				return err
			}
			key[i] = idx
		}
		if key[0] < 0 {
			return dec.formatError("face vertex without position")
		}
		corners[pos] = dec.vertex(key)
	}
	for i := 1; i+1 < len(corners); i++ {
		dec.mesh.Indices = append(dec.mesh.Indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (dec *objDecoder) vertex(key [3]int) uint32 {
	if idx, ok := dec.lookup[key]; ok {
		return idx
	}
	v := math.Vertex3D{Position: dec.positions[key[0]]}
	if key[1] >= 0 {
		v.Texcoord = dec.uvs[key[1]]
	}
	if key[2] >= 0 {
		v.Normal = dec.normals[key[2]]
		dec.hasNorms = true
	}
	idx := uint32(len(dec.mesh.Vertices))
	dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	dec.lookup[key] = idx
	return idx
}
