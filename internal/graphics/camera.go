package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the projection matrix and frustum culling. The view
// matrix comes from the player.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	planes [6]plane
}

func NewCamera(width, height int, fov float32) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         fov,
		NearPlane:   0.1,
		FarPlane:    500.0,
	}
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Resize updates the aspect ratio after a framebuffer size change.
func (c *Camera) Resize(width, height int) {
	if height == 0 {
		height = 1
	}
	c.AspectRatio = float32(width) / float32(height)
}

type plane struct {
	a, b, c, d float32
}

// UpdateFrustum extracts the six clip planes from the combined
// projection*view matrix. Call once per frame before culling.
func (c *Camera) UpdateFrustum(projection, view mgl32.Mat4) {
	clip := projection.Mul4(view)

	// mgl32 matrices are column-major.
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	c.planes[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}) // left
	c.planes[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}) // right
	c.planes[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}) // bottom
	c.planes[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}) // top
	c.planes[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}) // near
	c.planes[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}) // far
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IsBoxVisible tests an AABB against the current frustum planes using
// the positive-vertex test.
func (c *Camera) IsBoxVisible(min, max mgl32.Vec3) bool {
	for i := 0; i < 6; i++ {
		p := c.planes[i]
		px := max.X()
		if p.a < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.b < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.c < 0 {
			pz = min.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
