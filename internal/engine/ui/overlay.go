package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
)

// OverlayState is the data the overlay displays for one frame.
type OverlayState struct {
	FPS       float64
	DrawCalls int
	Camera    camera.Camera
	Trackball bool
}

// OverlayActions reports the widgets the user activated this frame.
type OverlayActions struct {
	ToggleController bool
	ResetView        bool
}

// Overlay renders the viewer control panel and returns the requested
// actions. Camera values are read-only display; controller switches and
// view resets are applied by the caller on the next update.
type Overlay struct{}

// Render draws the overlay window.
func (Overlay) Render(state OverlayState) OverlayActions {
	var actions OverlayActions

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowBgAlpha(0.75)

	if imgui.BeginV("Viewer", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Text(fmt.Sprintf("FPS: %.0f", state.FPS))
		imgui.Text(fmt.Sprintf("Draw calls: %d", state.DrawCalls))
		imgui.Separator()

		cam := state.Camera
		imgui.Text(fmt.Sprintf("eye:    %.3f %.3f %.3f", cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z()))
		imgui.Text(fmt.Sprintf("center: %.3f %.3f %.3f", cam.Center.X(), cam.Center.Y(), cam.Center.Z()))
		imgui.Text(fmt.Sprintf("up:     %.3f %.3f %.3f", cam.Up.X(), cam.Up.Y(), cam.Up.Z()))
		front := cam.Front()
		left := cam.Left()
		imgui.Text(fmt.Sprintf("front:  %.3f %.3f %.3f", front.X(), front.Y(), front.Z()))
		imgui.Text(fmt.Sprintf("left:   %.3f %.3f %.3f", left.X(), left.Y(), left.Z()))
		imgui.Separator()

		trackball := state.Trackball
		if imgui.Checkbox("Trackball mode", &trackball) {
			actions.ToggleController = true
		}
		if state.Trackball {
			imgui.TextDisabled("(Drag to orbit, middle-drag to pan, scroll to dolly)")
		} else {
			imgui.TextDisabled("(WASD to move, drag to look, scroll to dolly)")
		}

		if imgui.Button("Copy camera args") {
			imgui.SetClipboardText("--lookat=" + camera.FormatLookAt(cam))
		}
		imgui.SameLine()
		if imgui.Button("Reset View") {
			actions.ResetView = true
		}
	}
	imgui.End()

	return actions
}
