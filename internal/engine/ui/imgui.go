// Package ui provides the ImGui window backend and the viewer overlay.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend. It owns the window, the OpenGL
// context and the event loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the window and OpenGL context.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop. The callback runs once per frame
// between event polling and buffer swap.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// RequestClose asks the backend to leave the render loop after the
// current frame.
func (b *Backend) RequestClose() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// DisplaySize returns the current framebuffer size.
func (b *Backend) DisplaySize() (int32, int32) {
	size := imgui.CurrentIO().DisplaySize()
	if size.X > 0 && size.Y > 0 {
		return int32(size.X), int32(size.Y)
	}
	return b.width, b.height
}

// Focused reports whether ImGui wants the mouse or keyboard, meaning an
// overlay widget has focus and camera input should pause.
func Focused() bool {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse() || io.WantCaptureKeyboard()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
