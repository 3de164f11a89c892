package types

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4x4 matrix.
type Mat4 = mgl32.Mat4

// Return the 4x4 identity matrix.
func Ident4() Mat4 {
	return mgl32.Ident4()
}

// Build a perspective projection matrix; fovY is expressed in degrees.
func Perspective4(fovY, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far)
}

// Build a view matrix looking from eye towards center.
func LookAtV(eye, center, up Vec3) Mat4 {
	return mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(center), mgl32.Vec3(up))
}

// Build a translation matrix.
func Translate4(v Vec3) Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

// Build a scale matrix.
func Scale4(v Vec3) Mat4 {
	return mgl32.Scale3D(v[0], v[1], v[2])
}

// Transform a point (w=1) by m.
func TransformPoint(m Mat4, v Vec3) Vec4 {
	return Vec4(m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 1}))
}

// Transform a direction (w=0) by m.
func TransformDir(m Mat4, v Vec3) Vec3 {
	return Vec4(m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 0})).Vec3()
}
