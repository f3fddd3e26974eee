package camera

// FirstPerson is a fly-through controller: movement keys translate the
// camera along its own basis, a primary-button drag pans and tilts the
// view direction, the wheel dollies along it. All translation speeds scale
// with dt so motion is frame-rate independent.
type FirstPerson struct {
	src Source
	cam Camera

	// Speed is the translation speed in world units per second.
	Speed float32
	// RotationSpeed is the drag sensitivity in radians per pixel.
	RotationSpeed float32
}

// NewFirstPerson creates a first-person controller. speed should be on
// the order of half the scene extent per second.
func NewFirstPerson(src Source, speed float32) *FirstPerson {
	return &FirstPerson{
		src:           src,
		cam:           Camera{}.Corrected(),
		Speed:         speed,
		RotationSpeed: 0.005,
	}
}

// Camera returns the current camera snapshot.
func (fp *FirstPerson) Camera() Camera { return fp.cam }

// SetCamera overrides the controller state, correcting a degenerate basis.
func (fp *FirstPerson) SetCamera(c Camera) { fp.cam = c.Corrected() }

// Update consumes the pending input snapshot and advances the camera.
func (fp *FirstPerson) Update(dt float64) {
	in := fp.src.Snapshot()

	front := fp.cam.Front()
	left := fp.cam.Left()
	up := fp.cam.UpAxis()
	dist := fp.cam.Distance()

	step := fp.Speed * float32(dt)
	var dolly, truck, pedestal float32
	if in.MoveForward {
		dolly += step
	}
	if in.MoveBackward {
		dolly -= step
	}
	if in.MoveLeft {
		truck += step
	}
	if in.MoveRight {
		truck -= step
	}
	if in.MoveUp {
		pedestal += step
	}
	if in.MoveDown {
		pedestal -= step
	}
	dolly += in.Wheel * fp.Speed * 0.1

	move := front.Mul(dolly).Add(left.Mul(truck)).Add(up.Mul(pedestal))
	fp.cam.Eye = fp.cam.Eye.Add(move)

	if in.RotateDown {
		// Yaw about the camera up axis leaves up untouched; pitch about
		// the left axis rotates front and up together, so the basis
		// stays orthonormal without re-derivation.
		yaw := -in.CursorDelta[0] * fp.RotationSpeed
		pitch := -in.CursorDelta[1] * fp.RotationSpeed
		front = rotate(front, yaw, up)
		left = rotate(left, yaw, up)
		front = rotate(front, pitch, left)
		up = rotate(up, pitch, left)
		fp.cam.Up = up
	}

	fp.cam.Center = fp.cam.Eye.Add(front.Mul(dist))
}
