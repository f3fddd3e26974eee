// Package input bridges ImGui's input state to the camera controllers.
package input

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
)

// ImGuiSource reads mouse and keyboard state from the active ImGui
// context. The backend pumps SDL events into ImGui each frame, so a
// snapshot taken after NewFrame reflects the events of the previous
// frame.
type ImGuiSource struct{}

// NewImGuiSource returns a camera input source backed by ImGui IO.
func NewImGuiSource() *ImGuiSource {
	return &ImGuiSource{}
}

// Snapshot captures the current frame's input state.
func (s *ImGuiSource) Snapshot() camera.Input {
	io := imgui.CurrentIO()
	delta := io.MouseDelta()

	return camera.Input{
		CursorDelta: mgl32.Vec2{delta.X, delta.Y},
		Wheel:       io.MouseWheel(),
		RotateDown:  imgui.IsMouseDown(imgui.MouseButtonLeft),
		PanDown:     imgui.IsMouseDown(imgui.MouseButtonMiddle),
		Shift:       imgui.IsKeyDown(imgui.KeyLeftShift) || imgui.IsKeyDown(imgui.KeyRightShift),
		Ctrl:        imgui.IsKeyDown(imgui.KeyLeftCtrl) || imgui.IsKeyDown(imgui.KeyRightCtrl),

		MoveForward:  imgui.IsKeyDown(imgui.KeyW) || imgui.IsKeyDown(imgui.KeyUpArrow),
		MoveBackward: imgui.IsKeyDown(imgui.KeyS) || imgui.IsKeyDown(imgui.KeyDownArrow),
		MoveLeft:     imgui.IsKeyDown(imgui.KeyA) || imgui.IsKeyDown(imgui.KeyLeftArrow),
		MoveRight:    imgui.IsKeyDown(imgui.KeyD) || imgui.IsKeyDown(imgui.KeyRightArrow),
		MoveUp:       imgui.IsKeyDown(imgui.KeyE),
		MoveDown:     imgui.IsKeyDown(imgui.KeyQ),
	}
}
