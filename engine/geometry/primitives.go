package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
)

const (
	PrimitiveCube        = "cube"
	PrimitiveSphere      = "sphere"
	PrimitiveTetrahedron = "tetrahedron"
	PrimitivePlane       = "plane"
)

// DefaultSphereSubdivisions is used when the sphere primitive is requested by name.
const DefaultSphereSubdivisions uint32 = 2

/**
 * @brief Generates one of the named primitives with unit dimensions.
 *
 * @param name One of cube, sphere, tetrahedron or plane.
 * @param subdivisions The icosphere subdivision level; ignored by the other primitives.
 * @return The mesh or an error if the name is unknown.
 */
func Primitive(name string, subdivisions uint32) (*Mesh, error) {
	switch name {
	case PrimitiveCube:
		return GenerateCube(1, 1, 1, 1, 1, name), nil
	case PrimitiveSphere:
		return GenerateICOSphere(subdivisions, name), nil
	case PrimitiveTetrahedron:
		return GenerateTetrahedron(name), nil
	case PrimitivePlane:
		return GeneratePlane(2, 2, 1, 1, 1, 1, name), nil
	}
	return nil, fmt.Errorf("unknown mesh primitive '%s': %w", name, core.ErrNotFound)
}

/**
 * @brief Generates a plane in the XZ plane facing +Y.
 *
 * @param width The overall width of the plane. Must be non-zero.
 * @param depth The overall depth of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis. Must be non-zero.
 * @param zSegmentCount The number of segments along the z-axis. Must be non-zero.
 * @param tileX The number of times the texture should tile across the x-axis. Must be non-zero.
 * @param tileY The number of times the texture should tile across the z-axis. Must be non-zero.
 * @param name The name of the generated mesh.
 */
func GeneratePlane(width, depth float32, xSegmentCount, zSegmentCount uint32, tileX, tileY float32, name string) *Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if zSegmentCount < 1 {
		core.LogWarn("zSegmentCount must be a positive number. Defaulting to one.")
		zSegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	mesh := &Mesh{
		Name:     name,
		Vertices: make([]math.Vertex3D, xSegmentCount*zSegmentCount*4), // 4 verts per segment
		Indices:  make([]uint32, xSegmentCount*zSegmentCount*6),        // 6 indices per segment
	}

	segWidth := width / float32(xSegmentCount)
	segDepth := depth / float32(zSegmentCount)
	halfWidth := width * 0.5
	halfDepth := depth * 0.5
	up := math.NewVec3(0, 1, 0)
	for z := uint32(0); z < zSegmentCount; z++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minZ := (float32(z) * segDepth) - halfDepth
			maxX := minX + segWidth
			maxZ := minZ + segDepth
			minUVX := (float32(x) / float32(xSegmentCount)) * tileX
			minUVY := (float32(z) / float32(zSegmentCount)) * tileY
			maxUVX := (float32(x+1) / float32(xSegmentCount)) * tileX
			maxUVY := (float32(z+1) / float32(zSegmentCount)) * tileY

			vOffset := ((z * xSegmentCount) + x) * 4
			v := mesh.Vertices[vOffset : vOffset+4]
			v[0] = math.Vertex3D{Position: math.NewVec3(minX, 0, maxZ), Normal: up, Texcoord: math.NewVec2(minUVX, minUVY)}
			v[1] = math.Vertex3D{Position: math.NewVec3(maxX, 0, minZ), Normal: up, Texcoord: math.NewVec2(maxUVX, maxUVY)}
			v[2] = math.Vertex3D{Position: math.NewVec3(minX, 0, minZ), Normal: up, Texcoord: math.NewVec2(minUVX, maxUVY)}
			v[3] = math.Vertex3D{Position: math.NewVec3(maxX, 0, maxZ), Normal: up, Texcoord: math.NewVec2(maxUVX, minUVY)}

			iOffset := ((z * xSegmentCount) + x) * 6
			mesh.Indices[iOffset+0] = vOffset + 0
			mesh.Indices[iOffset+1] = vOffset + 1
			mesh.Indices[iOffset+2] = vOffset + 2
			mesh.Indices[iOffset+3] = vOffset + 0
			mesh.Indices[iOffset+4] = vOffset + 3
			mesh.Indices[iOffset+5] = vOffset + 1
		}
	}
	mesh.RecalculateExtents()
	return mesh
}

// GenerateCube generates an axis aligned box centered on the origin with
// four vertices per face so every face has flat normals.
func GenerateCube(width, height, depth, tileX, tileY float32, name string) *Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	hw, hh, hd := width*0.5, height*0.5, depth*0.5
	minX, minY, minZ := -hw, -hh, -hd
	maxX, maxY, maxZ := hw, hh, hd

	// Four corners per face, wound counter-clockwise when seen from outside.
	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		// Front
		{math.NewVec3(0, 0, 1), [4]math.Vec3{
			math.NewVec3(minX, minY, maxZ), math.NewVec3(maxX, maxY, maxZ), math.NewVec3(minX, maxY, maxZ), math.NewVec3(maxX, minY, maxZ)}},
		// Back
		{math.NewVec3(0, 0, -1), [4]math.Vec3{
			math.NewVec3(maxX, minY, minZ), math.NewVec3(minX, maxY, minZ), math.NewVec3(maxX, maxY, minZ), math.NewVec3(minX, minY, minZ)}},
		// Left
		{math.NewVec3(-1, 0, 0), [4]math.Vec3{
			math.NewVec3(minX, minY, minZ), math.NewVec3(minX, maxY, maxZ), math.NewVec3(minX, maxY, minZ), math.NewVec3(minX, minY, maxZ)}},
		// Right
		{math.NewVec3(1, 0, 0), [4]math.Vec3{
			math.NewVec3(maxX, minY, maxZ), math.NewVec3(maxX, maxY, minZ), math.NewVec3(maxX, maxY, maxZ), math.NewVec3(maxX, minY, minZ)}},
		// Bottom
		{math.NewVec3(0, -1, 0), [4]math.Vec3{
			math.NewVec3(maxX, minY, maxZ), math.NewVec3(minX, minY, minZ), math.NewVec3(maxX, minY, minZ), math.NewVec3(minX, minY, maxZ)}},
		// Top
		{math.NewVec3(0, 1, 0), [4]math.Vec3{
			math.NewVec3(minX, maxY, maxZ), math.NewVec3(maxX, maxY, minZ), math.NewVec3(minX, maxY, minZ), math.NewVec3(maxX, maxY, maxZ)}},
	}
	uvs := [4]math.Vec2{
		math.NewVec2(0, 0), math.NewVec2(tileX, tileY), math.NewVec2(0, tileY), math.NewVec2(tileX, 0),
	}

	mesh := &Mesh{
		Name:     name,
		Vertices: make([]math.Vertex3D, 0, 4*6), // 4 verts per side, 6 sides
		Indices:  make([]uint32, 0, 6*6),        // 6 indices per side, 6 sides
	}
	for i, f := range faces {
		for c := 0; c < 4; c++ {
			mesh.Vertices = append(mesh.Vertices, math.Vertex3D{Position: f.corners[c], Normal: f.normal, Texcoord: uvs[c]})
		}
		o := uint32(i * 4)
		mesh.Indices = append(mesh.Indices, o+0, o+1, o+2, o+0, o+3, o+1)
	}
	mesh.RecalculateExtents()
	return mesh
}

// GenerateTetrahedron generates a regular tetrahedron inscribed in the unit sphere.
func GenerateTetrahedron(name string) *Mesh {
	s := 1 / math32.Sqrt(3)
	corners := [4]math.Vec3{
		math.NewVec3(s, s, s),
		math.NewVec3(-s, -s, s),
		math.NewVec3(-s, s, -s),
		math.NewVec3(s, -s, -s),
	}
	faces := [4][3]int{{0, 1, 3}, {0, 2, 1}, {0, 3, 2}, {1, 2, 3}}

	mesh := &Mesh{
		Name:     name,
		Vertices: make([]math.Vertex3D, 0, 12),
		Indices:  make([]uint32, 0, 12),
	}
	uvs := [3]math.Vec2{math.NewVec2(0, 0), math.NewVec2(1, 0), math.NewVec2(0.5, 1)}
	for _, f := range faces {
		a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a)).Normalized()
		base := uint32(len(mesh.Vertices))
		for i, p := range [3]math.Vec3{a, b, c} {
			mesh.Vertices = append(mesh.Vertices, math.Vertex3D{Position: p, Normal: normal, Texcoord: uvs[i]})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2)
	}
	mesh.RecalculateExtents()
	return mesh
}

/**
 * @brief Generates a unit sphere by subdividing an icosahedron.
 *
 * @param subdivisions Every level splits each triangle into four. Clamped to [0, 6].
 * @param name The name of the generated mesh.
 */
func GenerateICOSphere(subdivisions uint32, name string) *Mesh {
	subdivisions = math.Clamp(subdivisions, 0, 6)

	t := (1 + math32.Sqrt(5)) / 2
	positions := []math.Vec3{
		math.NewVec3(-1, t, 0), math.NewVec3(1, t, 0), math.NewVec3(-1, -t, 0), math.NewVec3(1, -t, 0),
		math.NewVec3(0, -1, t), math.NewVec3(0, 1, t), math.NewVec3(0, -1, -t), math.NewVec3(0, 1, -t),
		math.NewVec3(t, 0, -1), math.NewVec3(t, 0, 1), math.NewVec3(-t, 0, -1), math.NewVec3(-t, 0, 1),
	}
	for i := range positions {
		positions[i] = positions[i].Normalized()
	}
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for level := uint32(0); level < subdivisions; level++ {
		midpoints := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if a > b {
				key = [2]uint32{b, a}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			p := positions[a].Add(positions[b]).MulScalar(0.5).Normalized()
			positions = append(positions, p)
			idx := uint32(len(positions) - 1)
			midpoints[key] = idx
			return idx
		}
		next := make([]uint32, 0, len(indices)*4)
		for i := 0; i < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca)
		}
		indices = next
	}

	mesh := &Mesh{
		Name:     name,
		Vertices: make([]math.Vertex3D, len(positions)),
		Indices:  indices,
	}
	for i, p := range positions {
		mesh.Vertices[i] = math.Vertex3D{
			Position: p,
			Normal:   p,
			Texcoord: math.NewVec2(
				0.5+math32.Atan2(p.Z, p.X)/(2*math.KPi),
				0.5-math32.Asin(math.Clamp(p.Y, -1, 1))/math.KPi,
			),
		}
	}
	mesh.RecalculateExtents()
	return mesh
}
