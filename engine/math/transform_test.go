package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, KPi, DegToRad(180), 1e-6)
	assert.InDelta(t, 90, RadToDeg(KPi/2), 1e-4)
}

func TestVecFromSlice(t *testing.T) {
	assert.Equal(t, Vec3{1, 2, 0}, Vec3FromSlice([]float32{1, 2}))
	assert.Equal(t, Vec3{1, 2, 3}, Vec3FromSlice([]float32{1, 2, 3, 4}))
	assert.Equal(t, Vec4{}, Vec4FromSlice(nil))
	assert.Equal(t, Vec2{5, 6}, Vec2FromSlice([]float32{5, 6, 7}))
}

func TestTransformLocalAppliesScaleRotationTranslation(t *testing.T) {
	tr := TransformFromPositionRotationScale(NewVec3(10, 0, 0), NewVec3(0, 0, DegToRad(90)), NewVec3(2, 2, 2))

	p := tr.GetLocal().TransformPoint(NewVec3(1, 0, 0))
	// scaled to (2,0,0), rotated about z to (0,2,0), moved by +10 on x
	assert.True(t, p.Compare(NewVec3(10, 2, 0), 1e-5), "got %v", p)
}

func TestTransformWorldComposesParent(t *testing.T) {
	parent := TransformFromPositionRotationScale(NewVec3(0, 5, 0), NewVec3Zero(), NewVec3One())
	child := TransformFromPositionRotationScale(NewVec3(1, 0, 0), NewVec3Zero(), NewVec3One())
	child.Parent = parent

	p := child.GetWorld().TransformPoint(NewVec3Zero())
	assert.True(t, p.Compare(NewVec3(1, 5, 0), 1e-6), "got %v", p)

	// the child's local transform is untouched by the parent
	assert.Equal(t, NewVec3(1, 0, 0), child.Position)
}

func TestTransformDirtyFlag(t *testing.T) {
	tr := TransformCreate()
	assert.True(t, tr.IsDirty)
	tr.GetLocal()
	assert.False(t, tr.IsDirty)
	tr.Translate(NewVec3(1, 1, 1))
	assert.True(t, tr.IsDirty)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(-1), Clamp(float32(-4), -1, 1))
}

func TestCross(t *testing.T) {
	assert.Equal(t, NewVec3(0, 0, 1), NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)))
}

func TestMat4Inverse(t *testing.T) {
	tr := TransformFromPositionRotationScale(NewVec3(3, -2, 7), NewVec3(DegToRad(30), DegToRad(45), 0), NewVec3(2, 1, 0.5))
	m := tr.GetLocal()

	inv, ok := m.Inverse()
	assert.True(t, ok)
	assert.True(t, m.Mul(inv).Compare(NewMat4Identity(), 1e-5))

	_, ok = Mat4{}.Inverse()
	assert.False(t, ok)
}
