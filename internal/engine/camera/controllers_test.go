package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// stubSource feeds a fixed input snapshot to a controller.
type stubSource struct {
	in Input
}

func (s *stubSource) Snapshot() Input { return s.in }

// checkOrthonormal fails the test when the camera basis has drifted.
func checkOrthonormal(t *testing.T, cam Camera) {
	t.Helper()
	if !cam.Valid() {
		t.Fatalf("camera degenerate: %+v", cam)
	}
	front := cam.Front()
	left := cam.Left()
	up := cam.Up.Normalize()
	if d := front.Dot(up); math.Abs(float64(d)) > 1e-4 {
		t.Errorf("front.up = %g, want 0", d)
	}
	if d := front.Dot(left); math.Abs(float64(d)) > 1e-4 {
		t.Errorf("front.left = %g, want 0", d)
	}
	if d := left.Dot(up); math.Abs(float64(d)) > 1e-4 {
		t.Errorf("left.up = %g, want 0", d)
	}
}

func controllers(src Source) map[string]Controller {
	return map[string]Controller{
		"first-person": NewFirstPerson(src, 2),
		"trackball":    NewTrackball(src),
	}
}

func TestSetCameraRoundTrip(t *testing.T) {
	src := &stubSource{}
	for name, ctl := range controllers(src) {
		t.Run(name, func(t *testing.T) {
			want := testCamera()
			ctl.SetCamera(want)
			got := ctl.Camera()
			approxVec(t, "Eye", got.Eye, want.Eye)
			approxVec(t, "Center", got.Center, want.Center)
			approxVec(t, "Up", got.Up, want.Up)
		})
	}
}

func TestZeroInputKeepsCamera(t *testing.T) {
	src := &stubSource{}
	for name, ctl := range controllers(src) {
		t.Run(name, func(t *testing.T) {
			want := testCamera()
			ctl.SetCamera(want)
			for _, dt := range []float64{0, 1e-3, 0.16, 3.5} {
				ctl.Update(dt)
			}
			got := ctl.Camera()
			approxVec(t, "Eye", got.Eye, want.Eye)
			approxVec(t, "Center", got.Center, want.Center)
			approxVec(t, "Up", got.Up, want.Up)
			checkOrthonormal(t, got)
		})
	}
}

func TestBasisStaysOrthonormalUnderDrag(t *testing.T) {
	src := &stubSource{in: Input{
		RotateDown:  true,
		CursorDelta: mgl32.Vec2{13, -7},
	}}
	for name, ctl := range controllers(src) {
		t.Run(name, func(t *testing.T) {
			ctl.SetCamera(testCamera())
			for i := 0; i < 200; i++ {
				ctl.Update(0.016)
				checkOrthonormal(t, ctl.Camera())
			}
		})
	}
}

func TestFirstPersonForwardMotionScalesWithDt(t *testing.T) {
	src := &stubSource{in: Input{MoveForward: true}}
	fp := NewFirstPerson(src, 2)
	fp.SetCamera(testCamera())

	fp.Update(0.5)
	cam := fp.Camera()
	// Speed 2 over half a second moves one unit along front (-Z).
	approxVec(t, "Eye", cam.Eye, mgl32.Vec3{0, 0, 4})
	// The center keeps its distance ahead of the eye.
	approxVec(t, "Center", cam.Center, mgl32.Vec3{0, 0, -1})
	checkOrthonormal(t, cam)
}

func TestFirstPersonYawKeepsUp(t *testing.T) {
	src := &stubSource{in: Input{
		RotateDown:  true,
		CursorDelta: mgl32.Vec2{40, 0},
	}}
	fp := NewFirstPerson(src, 2)
	fp.SetCamera(testCamera())
	fp.Update(0.016)

	cam := fp.Camera()
	approxVec(t, "Up", cam.Up, mgl32.Vec3{0, 1, 0})
	approxVec(t, "Eye", cam.Eye, mgl32.Vec3{0, 0, 5})
	if cam.Front().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Error("yaw drag should change the view direction")
	}
	checkOrthonormal(t, cam)
}

func TestTrackballOrbitPreservesDistanceAndCenter(t *testing.T) {
	src := &stubSource{in: Input{
		RotateDown:  true,
		CursorDelta: mgl32.Vec2{25, 10},
	}}
	tb := NewTrackball(src)
	tb.SetCamera(testCamera())

	for i := 0; i < 50; i++ {
		tb.Update(0.016)
	}
	cam := tb.Camera()
	approxVec(t, "Center", cam.Center, mgl32.Vec3{})
	if d := cam.Distance(); math.Abs(float64(d-5)) > 1e-3 {
		t.Errorf("orbit changed distance to %f, want 5", d)
	}
	checkOrthonormal(t, cam)
}

func TestTrackballPanMovesEyeAndCenterTogether(t *testing.T) {
	src := &stubSource{in: Input{
		PanDown:     true,
		CursorDelta: mgl32.Vec2{100, 0},
	}}
	tb := NewTrackball(src)
	tb.SetCamera(testCamera())
	before := tb.Camera()
	tb.Update(0.016)
	after := tb.Camera()

	moved := after.Eye.Sub(before.Eye)
	if moved.Len() == 0 {
		t.Fatal("pan did not move the camera")
	}
	approxVec(t, "center shift", after.Center.Sub(before.Center), moved)
	approxVec(t, "front", after.Front(), before.Front())
	checkOrthonormal(t, after)
}

func TestTrackballWheelDollyClamped(t *testing.T) {
	src := &stubSource{in: Input{Wheel: 5}}
	tb := NewTrackball(src)
	tb.SetCamera(testCamera())

	for i := 0; i < 500; i++ {
		tb.Update(0.016)
	}
	cam := tb.Camera()
	approxVec(t, "Center", cam.Center, mgl32.Vec3{})
	if d := cam.Distance(); d < tb.MinDistance-1e-6 {
		t.Errorf("dolly passed the minimum distance: %f < %f", d, tb.MinDistance)
	}
	checkOrthonormal(t, cam)
}

func TestTrackballShiftDragPans(t *testing.T) {
	src := &stubSource{in: Input{
		RotateDown:  true,
		Shift:       true,
		CursorDelta: mgl32.Vec2{0, 60},
	}}
	tb := NewTrackball(src)
	tb.SetCamera(testCamera())
	before := tb.Camera()
	tb.Update(0.016)
	after := tb.Camera()

	if d := after.Distance(); math.Abs(float64(d-before.Distance())) > 1e-4 {
		t.Errorf("shift-drag should pan, not dolly: distance %f -> %f", before.Distance(), d)
	}
	if after.Center.ApproxEqualThreshold(before.Center, 1e-6) {
		t.Error("shift-drag should move the center")
	}
}
