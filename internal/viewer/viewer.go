// Package viewer drives the frame loop: it owns the loaded model, the
// renderer, the camera controller and the overlay, in both interactive
// and offline mode.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/config"
	"github.com/Faultbox/gltf-viewer/internal/engine/camera"
	"github.com/Faultbox/gltf-viewer/internal/engine/capture"
	"github.com/Faultbox/gltf-viewer/internal/engine/input"
	"github.com/Faultbox/gltf-viewer/internal/engine/loader"
	"github.com/Faultbox/gltf-viewer/internal/engine/model"
	"github.com/Faultbox/gltf-viewer/internal/engine/renderer"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/engine/shader"
	"github.com/Faultbox/gltf-viewer/internal/engine/ui"
	"github.com/Faultbox/gltf-viewer/internal/engine/window"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// Viewer ties the loaded model to a renderer and a camera controller.
type Viewer struct {
	cfg       *config.Config
	model     *model.Model
	sceneName string

	// Scene framing, derived from the bounds once at load time.
	defaultCamera camera.Camera
	maxDistance   float32

	renderer   *renderer.Renderer
	controller camera.Controller
	trackball  bool
	overlay    ui.Overlay

	vertexSource   string
	fragmentSource string

	lastFrame time.Time
	fps       float64

	width, height int
}

// New loads the scene file and seeds the camera. GL resources are not
// created until Run, which owns the window and context.
func New(cfg *config.Config, scenePath string) (*Viewer, error) {
	m, err := loader.Load(scenePath)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:       cfg,
		model:     m,
		sceneName: filepath.Base(scenePath),
		trackball: cfg.Camera.Controller == "trackball",
		width:     cfg.Graphics.Width,
		height:    cfg.Graphics.Height,
	}
	v.frameScene()

	if cfg.Camera.LookAt != "" {
		cam, err := camera.ParseLookAt(cfg.Camera.LookAt)
		if err != nil {
			return nil, fmt.Errorf("parsing lookat: %w", err)
		}
		v.defaultCamera = cam
	}

	return v, nil
}

// frameScene derives the default camera and the frustum scale from the
// scene bounds. Scenes without position bounds get a unit framing.
func (v *Viewer) frameScene() {
	v.maxDistance = 100
	v.defaultCamera = camera.Camera{
		Eye:    mgl32.Vec3{0, 0, 0},
		Center: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}

	bounds, ok := scene.ComputeBounds(v.model)
	if !ok {
		logger.Log.Warn("scene has no position bounds, using default framing")
		return
	}

	center := bounds.Center()
	dist := bounds.Diagonal()
	if dist == 0 {
		dist = 1
	}
	v.maxDistance = dist

	// Back off along the diagonal direction so the whole extent stays in
	// view; flat scenes fall back to the Z axis.
	dir := bounds.Max.Sub(bounds.Min)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 0, 1}
	} else {
		dir = dir.Normalize()
	}
	eye := center.Add(dir.Mul(dist))
	v.defaultCamera = camera.Camera{
		Eye:    eye,
		Center: center,
		Up:     mgl32.Vec3{0, 1, 0},
	}.Corrected()

	logger.Log.Info("scene framed",
		zap.Any("center", center),
		zap.Float32("distance", dist),
	)
}

// makeController builds the configured controller around the current
// camera so switching preserves the view.
func (v *Viewer) makeController(src camera.Source, cam camera.Camera) camera.Controller {
	if v.trackball {
		c := camera.NewTrackball(src)
		c.SetCamera(cam)
		return c
	}
	c := camera.NewFirstPerson(src, 0.5*v.maxDistance)
	c.SetCamera(cam)
	return c
}

func (v *Viewer) rendererConfig() renderer.Config {
	return renderer.Config{
		Width:          v.width,
		Height:         v.height,
		VertexSource:   v.vertexSource,
		FragmentSource: v.fragmentSource,
		FOV:            mgl32.DegToRad(v.cfg.Graphics.FOV),
		Near:           0.001 * v.maxDistance,
		Far:            1.5 * v.maxDistance,
	}
}

// Run renders until the window closes, or renders a single frame to the
// configured output file.
func (v *Viewer) Run() error {
	if err := v.loadShaderOverrides(); err != nil {
		return err
	}
	if v.cfg.Output.Path != "" {
		return v.runOffline()
	}
	return v.runInteractive()
}

// runOffline renders one frame into a hidden window and writes it out.
func (v *Viewer) runOffline() error {
	win, err := window.New(window.Config{
		Title:  "gltf-viewer",
		Width:  v.width,
		Height: v.height,
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := renderer.New(v.model, v.rendererConfig())
	if err != nil {
		return err
	}
	defer r.Close()

	r.Render(v.model, v.defaultCamera.ViewMatrix())

	if err := capture.Snapshot(v.cfg.Output.Path, v.width, v.height); err != nil {
		return err
	}
	logger.Log.Info("frame written",
		zap.String("path", v.cfg.Output.Path),
		zap.Int("draw_calls", r.DrawCalls),
	)
	return nil
}

// runInteractive opens the window and hands the frame callback to the
// ImGui backend, which owns event polling and buffer swaps.
func (v *Viewer) runInteractive() error {
	backend, err := ui.NewBackend("gltf-viewer", int32(v.width), int32(v.height))
	if err != nil {
		return err
	}
	backend.SetWindowTitle(fmt.Sprintf("glTF Viewer - %s", v.sceneName))

	v.renderer, err = renderer.New(v.model, v.rendererConfig())
	if err != nil {
		return err
	}
	defer func() {
		v.renderer.Close()
		v.renderer = nil
	}()

	v.controller = v.makeController(input.NewImGuiSource(), v.defaultCamera)
	v.lastFrame = time.Now()

	backend.Run(func() { v.frame(backend) })

	// Persist a controller switch made from the overlay.
	if v.trackball != (v.cfg.Camera.Controller == "trackball") {
		v.cfg.Camera.Controller = "first-person"
		if v.trackball {
			v.cfg.Camera.Controller = "trackball"
		}
		if err := v.cfg.Save(); err != nil {
			logger.Log.Warn("persisting settings", zap.Error(err))
		}
	}

	logger.Log.Info("window closed")
	return nil
}

// frame runs once per interactive frame: draw the scene with the camera
// as it stood at the start of the frame, draw the overlay, then advance
// the controller. Controller updates pause while an overlay widget has
// focus, and input polled this frame takes effect on the next.
func (v *Viewer) frame(backend *ui.Backend) {
	if w, h := backend.DisplaySize(); int(w) != v.width || int(h) != v.height {
		v.width, v.height = int(w), int(h)
		v.renderer.Resize(v.width, v.height)
	}

	cam := v.controller.Camera()
	v.renderer.Render(v.model, cam.ViewMatrix())

	actions := v.overlay.Render(ui.OverlayState{
		FPS:       v.fps,
		DrawCalls: v.renderer.DrawCalls,
		Camera:    cam,
		Trackball: v.trackball,
	})
	if actions.ToggleController {
		v.trackball = !v.trackball
		v.controller = v.makeController(input.NewImGuiSource(), cam)
	}
	if actions.ResetView {
		v.controller.SetCamera(v.defaultCamera)
	}

	if ui.IsKeyPressed(imgui.KeyEscape) {
		backend.RequestClose()
	}

	now := time.Now()
	dt := now.Sub(v.lastFrame).Seconds()
	v.lastFrame = now
	if dt > 0 {
		v.fps = 0.9*v.fps + 0.1/dt
	}

	if !ui.Focused() {
		v.controller.Update(dt)
	}
}

// loadShaderOverrides resolves the configured GLSL override paths into
// sources, so a bad path fails before any window opens. Unset paths
// leave the embedded defaults in place.
func (v *Viewer) loadShaderOverrides() error {
	vs, fs, err := shader.LoadSources(v.cfg.Shaders.Vertex, v.cfg.Shaders.Fragment)
	if err != nil {
		return err
	}
	v.vertexSource = vs
	v.fragmentSource = fs
	return nil
}
