// Package camera provides the viewer camera and interchangeable camera
// controllers.
package camera

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is an eye/center/up triple. Front and up must never be parallel;
// Corrected fixes a camera that violates this before it is used.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
}

// Front returns the unit view direction.
func (c Camera) Front() mgl32.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Left returns the unit left axis (up cross front).
func (c Camera) Left() mgl32.Vec3 {
	return c.Up.Cross(c.Front()).Normalize()
}

// UpAxis returns the unit up axis of the orthonormal basis, re-derived
// from front and left so it is exactly perpendicular to both.
func (c Camera) UpAxis() mgl32.Vec3 {
	return c.Front().Cross(c.Left())
}

// Distance returns the eye-to-center distance.
func (c Camera) Distance() float32 {
	return c.Center.Sub(c.Eye).Len()
}

// ViewMatrix returns the world-to-view transform.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

const parallelEpsilon = 1e-5

// Valid reports whether the camera defines a usable basis: eye and center
// distinct, up non-zero and not parallel to the view direction.
func (c Camera) Valid() bool {
	dir := c.Center.Sub(c.Eye)
	if dir.Len() < parallelEpsilon || c.Up.Len() < parallelEpsilon {
		return false
	}
	front := dir.Normalize()
	up := c.Up.Normalize()
	return front.Cross(up).Len() >= parallelEpsilon
}

// Corrected returns an orthonormalized copy of the camera. Degenerate
// cameras are repaired instead of rejected: a zero view direction gets a
// -Z front, an up parallel to front is replaced with the least-aligned
// world axis.
func (c Camera) Corrected() Camera {
	if c.Center.Sub(c.Eye).Len() < parallelEpsilon {
		c.Center = c.Eye.Add(mgl32.Vec3{0, 0, -1})
	}
	front := c.Front()
	if c.Up.Len() < parallelEpsilon || front.Cross(c.Up.Normalize()).Len() < parallelEpsilon {
		c.Up = mgl32.Vec3{0, 1, 0}
		if front.Cross(c.Up).Len() < parallelEpsilon {
			c.Up = mgl32.Vec3{1, 0, 0}
		}
	}
	c.Up = c.UpAxis()
	return c
}

// ParseLookAt parses an "ex,ey,ez,cx,cy,cz,ux,uy,uz" command-line triple.
func ParseLookAt(s string) (Camera, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 9 {
		return Camera{}, fmt.Errorf("lookat: want 9 comma-separated values, got %d", len(parts))
	}
	var v [9]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return Camera{}, fmt.Errorf("lookat value %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	cam := Camera{
		Eye:    mgl32.Vec3{v[0], v[1], v[2]},
		Center: mgl32.Vec3{v[3], v[4], v[5]},
		Up:     mgl32.Vec3{v[6], v[7], v[8]},
	}
	if !cam.Valid() {
		return Camera{}, fmt.Errorf("lookat: degenerate camera basis")
	}
	return cam, nil
}

// FormatLookAt renders a camera as a --lookat argument value.
func FormatLookAt(c Camera) string {
	return fmt.Sprintf("%g,%g,%g,%g,%g,%g,%g,%g,%g",
		c.Eye[0], c.Eye[1], c.Eye[2],
		c.Center[0], c.Center[1], c.Center[2],
		c.Up[0], c.Up[1], c.Up[2])
}
