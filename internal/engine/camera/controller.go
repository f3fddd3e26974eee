package camera

import "github.com/go-gl/mathgl/mgl32"

// Input is one frame's worth of pointer and key state, sampled by the
// frame driver between draws.
type Input struct {
	// CursorDelta is the pointer movement since the previous frame, in
	// pixels, +Y downward.
	CursorDelta mgl32.Vec2
	// Wheel is the scroll amount since the previous frame, +1 per notch
	// toward the scene.
	Wheel float32

	RotateDown bool // primary button held
	PanDown    bool // secondary/middle button held
	Shift      bool
	Ctrl       bool

	MoveForward, MoveBackward bool
	MoveLeft, MoveRight       bool
	MoveUp, MoveDown          bool
}

// Source supplies input snapshots to a controller. The frame driver's
// input bridge implements it; tests substitute a fixed snapshot.
type Source interface {
	Snapshot() Input
}

// Controller turns input and elapsed time into camera motion. Update is
// called once per rendered frame, after that frame was drawn with the
// previous camera state. Implementations must keep the camera basis
// orthonormal and non-degenerate after every update.
type Controller interface {
	Camera() Camera
	SetCamera(Camera)
	Update(dt float64)
}

// rotate applies a rotation of angle radians about axis to v.
func rotate(v mgl32.Vec3, angle float32, axis mgl32.Vec3) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, axis).Rotate(v)
}
