// Package renderer owns all GPU resources for a loaded model and executes
// the per-frame draw list.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
	"github.com/Faultbox/gltf-viewer/internal/engine/renderer/shaders"
	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/engine/shader"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// Config holds renderer configuration. Empty shader sources select the
// embedded defaults.
type Config struct {
	Width  int
	Height int

	VertexSource   string
	FragmentSource string

	// FOV is the vertical field of view in radians.
	FOV float32
	// Near and Far bound the view frustum depth.
	Near float32
	Far  float32
}

// Renderer holds the shader program, the uploaded buffers and the vertex
// arrays for one model. All resources are created in New, before the
// frame loop, and released by Close on every exit path.
type Renderer struct {
	config Config

	program   uint32
	locMVP    int32
	locMV     int32
	locNormal int32

	bufferObjects []uint32
	vaos          []uint32
	ranges        []VaoRange
	plans         [][]PrimitivePlan

	proj mgl32.Mat4

	// DrawCalls is the number of draws issued by the last Render.
	DrawCalls int
}

// New uploads the model and compiles the shader program.
// Must be called after an OpenGL context exists.
func New(m *model.Model, cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if cfg.VertexSource == "" {
		cfg.VertexSource = shaders.ForwardVertexShader
	}
	if cfg.FragmentSource == "" {
		cfg.FragmentSource = shaders.ForwardFragmentShader
	}
	if cfg.FOV == 0 {
		cfg.FOV = mgl32.DegToRad(70)
	}

	r := &Renderer{config: cfg}

	var err error
	r.program, err = shader.CompileProgram(cfg.VertexSource, cfg.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("shader program: %w", err)
	}
	if err := r.verifyAttribSlots(); err != nil {
		r.Close()
		return nil, err
	}

	r.locMVP = shader.GetUniform(r.program, "uModelViewProjMatrix")
	r.locMV = shader.GetUniform(r.program, "uModelViewMatrix")
	r.locNormal = shader.GetUniform(r.program, "uNormalMatrix")

	r.plans, err = PlanModel(m)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("planning vertex layout: %w", err)
	}
	r.ranges = ComputeVaoRanges(m)
	r.bufferObjects = createBufferObjects(m)
	r.vaos = createVertexArrayObjects(m, r.bufferObjects, r.plans, r.ranges)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.12, 1.0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// verifyAttribSlots checks the semantic-to-slot contract against the
// linked program. An attribute the compiler eliminated reports -1 and is
// accepted; an active attribute at the wrong location is a defect in the
// supplied shader.
func (r *Renderer) verifyAttribSlots() error {
	for _, sem := range model.Semantics {
		loc := gl.GetAttribLocation(r.program, gl.Str(attribName(sem)+"\x00"))
		if loc >= 0 && uint32(loc) != sem.Slot() {
			return fmt.Errorf("shader binds %s at location %d, pipeline requires %d",
				attribName(sem), loc, sem.Slot())
		}
	}
	return nil
}

// attribName maps a semantic to its vertex shader input name.
func attribName(sem model.Semantic) string {
	switch sem {
	case model.Position:
		return "aPosition"
	case model.Normal:
		return "aNormal"
	case model.TexCoord0:
		return "aTexCoord"
	}
	return ""
}

// SetDepthRange rebuilds the projection for new near/far planes, typically
// derived from the scene bounds.
func (r *Renderer) SetDepthRange(near, far float32) {
	r.config.Near = near
	r.config.Far = far
	r.updateProjection()
}

// Resize updates the viewport and the projection aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.updateProjection()
}

func (r *Renderer) updateProjection() {
	near, far := r.config.Near, r.config.Far
	if near <= 0 || far <= near {
		near, far = 0.1, 1000
	}
	aspect := float32(r.config.Width) / float32(r.config.Height)
	r.proj = mgl32.Perspective(r.config.FOV, aspect, near, far)
}

// Render draws one frame of the model with the given view matrix: clear,
// bind program, then walk the scene draw list setting the matrix uniforms
// per primitive and issuing the indexed or non-indexed call.
func (r *Renderer) Render(m *model.Model, view mgl32.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)

	r.DrawCalls = 0
	for _, cmd := range scene.BuildDrawList(m) {
		plan := r.plans[cmd.Mesh][cmd.Primitive]
		if plan.Index == nil && plan.VertexCount == 0 {
			continue
		}

		mv := view.Mul4(cmd.World)
		mvp := r.proj.Mul4(mv)
		normal := mv.Mat3().Inv().Transpose()
		if normal == (mgl32.Mat3{}) {
			normal = mv.Mat3()
		}

		gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
		gl.UniformMatrix4fv(r.locMV, 1, false, &mv[0])
		gl.UniformMatrix3fv(r.locNormal, 1, false, &normal[0])

		gl.BindVertexArray(r.vaos[r.ranges[cmd.Mesh].Begin+cmd.Primitive])
		if plan.Index != nil {
			gl.DrawElementsWithOffset(plan.Mode, plan.Index.Count, plan.Index.ComponentType, uintptr(plan.Index.Offset))
		} else {
			gl.DrawArrays(plan.Mode, 0, plan.VertexCount)
		}
		r.DrawCalls++
	}
	gl.BindVertexArray(0)
}

// Close releases every GL resource the renderer owns. Safe to call on a
// partially constructed renderer and more than once.
func (r *Renderer) Close() {
	deleteVertexArrayObjects(r.vaos)
	r.vaos = nil
	deleteBufferObjects(r.bufferObjects)
	r.bufferObjects = nil
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	logger.Log.Debug("renderer closed")
}
