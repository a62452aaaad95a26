package geometry

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
)

/**
 * @brief Indexed triangle geometry. Every three indices form a triangle.
 */
type Mesh struct {
	Name     string
	Vertices []math.Vertex3D
	Indices  []uint32
	/** @brief The extents of the mesh in local coordinates. */
	Extents math.Extents3D
	/** @brief The center of the mesh in local coordinates. */
	Center math.Vec3
}

// Clone returns a copy that shares no storage with m.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = append([]math.Vertex3D(nil), m.Vertices...)
	clone.Indices = append([]uint32(nil), m.Indices...)
	return &clone
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) IsValid() bool {
	return m.Validate() == nil
}

/**
 * @brief Checks that the mesh is geometrically well formed: it has
 * vertices, whole triangles, in-range indices, finite positions and no
 * triangle that collapses to a point or a line.
 */
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("mesh is empty: %w", core.ErrInvalidMesh)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh '%s' has %d indices, not a multiple of 3: %w", m.Name, len(m.Indices), core.ErrInvalidMesh)
	}
	for i, v := range m.Vertices {
		if !v.Position.IsFinite() {
			return fmt.Errorf("mesh '%s' vertex %d is not finite: %w", m.Name, i, core.ErrInvalidMesh)
		}
	}
	count := uint32(len(m.Vertices))
	for t := 0; t < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		if a >= count || b >= count || c >= count {
			return fmt.Errorf("mesh '%s' triangle %d references a missing vertex: %w", m.Name, t/3, core.ErrInvalidMesh)
		}
		pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		if pb.Sub(pa).Cross(pc.Sub(pa)).LengthSquared() <= math.KFloatEpsilon*math.KFloatEpsilon {
			return fmt.Errorf("mesh '%s' triangle %d is degenerate: %w", m.Name, t/3, core.ErrInvalidMesh)
		}
	}
	return nil
}

// RecalculateExtents recomputes Extents and Center from the vertex positions.
func (m *Mesh) RecalculateExtents() {
	if len(m.Vertices) == 0 {
		m.Extents = math.Extents3D{}
		m.Center = math.NewVec3Zero()
		return
	}
	min := m.Vertices[0].Position
	max := min
	for _, v := range m.Vertices[1:] {
		p := v.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	m.Extents = math.Extents3D{Min: min, Max: max}
	m.Center = min.Add(max).MulScalar(0.5)
}

/**
 * @brief Computes smooth per-vertex normals by accumulating the face normal
 * of every triangle a vertex belongs to.
 */
func GenerateNormals(vertices []math.Vertex3D, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = math.NewVec3Zero()
	}
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		p0, p1, p2 := vertices[a].Position, vertices[b].Position, vertices[c].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		vertices[a].Normal = vertices[a].Normal.Add(n)
		vertices[b].Normal = vertices[b].Normal.Add(n)
		vertices[c].Normal = vertices[c].Normal.Add(n)
	}
	for i := range vertices {
		vertices[i].Normal = vertices[i].Normal.Normalized()
	}
}
