package math

import "github.com/chewxy/math32"

const (
	KPi float32 = math32.Pi
	/** @brief A multiplier used to convert degrees to radians. */
	KDeg2RadMultiplier float32 = KPi / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	KRad2DegMultiplier float32 = 180.0 / KPi
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	KFloatEpsilon float32 = 1.192092896e-07
)

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Vec2FromSlice fills a vector from up to two components; missing components are zero.
func Vec2FromSlice(f []float32) Vec2 {
	var a [2]float32
	copy(a[:], f)
	return Vec2{a[0], a[1]}
}

// Vec3FromSlice fills a vector from up to three components; missing components are zero.
func Vec3FromSlice(f []float32) Vec3 {
	var a [3]float32
	copy(a[:], f)
	return Vec3{a[0], a[1], a[2]}
}

// Vec4FromSlice fills a vector from up to four components; missing components are zero.
func Vec4FromSlice(f []float32) Vec4 {
	var a [4]float32
	copy(a[:], f)
	return Vec4{a[0], a[1], a[2], a[3]}
}

func (v Vec2) Elements() [4]float32 {
	return [4]float32{v.X, v.Y, 0, 0}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalized returns a unit-length copy of v. The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1.0 / l)
}

func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Compare reports whether every component of v is within tolerance of other.
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	return math32.Abs(v.X-other.X) <= tolerance &&
		math32.Abs(v.Y-other.Y) <= tolerance &&
		math32.Abs(v.Z-other.Z) <= tolerance
}

func (v Vec3) IsFinite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsNaN(v.Z) &&
		!math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0) && !math32.IsInf(v.Z, 0)
}

func (v Vec3) Elements() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, 0}
}

func (v Vec4) Elements() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * KDeg2RadMultiplier
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * KRad2DegMultiplier
}
