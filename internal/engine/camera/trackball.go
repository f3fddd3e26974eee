package camera

// Trackball orbits the camera around its center point: primary-button drag
// rotates, shift+drag or the secondary button trucks the center laterally,
// ctrl+drag or the wheel dollies toward the center. The eye never reaches
// the center, so the basis cannot collapse.
type Trackball struct {
	src Source
	cam Camera

	// RotationSpeed is the orbit sensitivity in radians per pixel.
	RotationSpeed float32
	// PanRatio scales lateral motion relative to the orbit distance.
	PanRatio float32
	// MinDistance is the closest the eye may dolly toward the center.
	MinDistance float32
}

// NewTrackball creates a trackball controller orbiting the origin.
func NewTrackball(src Source) *Trackball {
	return &Trackball{
		src:           src,
		cam:           Camera{}.Corrected(),
		RotationSpeed: 0.01,
		PanRatio:      0.001,
		MinDistance:   0.01,
	}
}

// Camera returns the current camera snapshot.
func (tb *Trackball) Camera() Camera { return tb.cam }

// SetCamera overrides the controller state, correcting a degenerate basis.
func (tb *Trackball) SetCamera(c Camera) { tb.cam = c.Corrected() }

// Update consumes the pending input snapshot and advances the camera.
func (tb *Trackball) Update(dt float64) {
	_ = dt // pointer deltas are already per-frame displacements

	in := tb.src.Snapshot()

	left := tb.cam.Left()
	up := tb.cam.UpAxis()
	dist := tb.cam.Distance()

	pan := in.PanDown || (in.RotateDown && in.Shift)
	dollyDrag := in.RotateDown && in.Ctrl && !pan

	switch {
	case pan:
		move := left.Mul(in.CursorDelta[0] * dist * tb.PanRatio).
			Add(up.Mul(in.CursorDelta[1] * dist * tb.PanRatio))
		tb.cam.Eye = tb.cam.Eye.Add(move)
		tb.cam.Center = tb.cam.Center.Add(move)
	case dollyDrag:
		tb.dolly(-in.CursorDelta[1] * dist * 0.01)
	case in.RotateDown:
		// Orbit: rotate the center-to-eye vector and the up axis by the
		// same quaternions, longitude about up then latitude about left.
		longitude := -in.CursorDelta[0] * tb.RotationSpeed
		latitude := -in.CursorDelta[1] * tb.RotationSpeed
		toEye := tb.cam.Eye.Sub(tb.cam.Center)
		toEye = rotate(toEye, longitude, up)
		left = rotate(left, longitude, up)
		toEye = rotate(toEye, latitude, left)
		up = rotate(up, latitude, left)
		tb.cam.Eye = tb.cam.Center.Add(toEye)
		tb.cam.Up = up
	}

	if in.Wheel != 0 {
		tb.dolly(in.Wheel * tb.cam.Distance() * 0.1)
	}
}

// dolly moves the eye toward the center by amount, clamped so the eye
// stays at least MinDistance away.
func (tb *Trackball) dolly(amount float32) {
	front := tb.cam.Front()
	dist := tb.cam.Distance()
	if amount > dist-tb.MinDistance {
		amount = dist - tb.MinDistance
	}
	tb.cam.Eye = tb.cam.Eye.Add(front.Mul(amount))
}
