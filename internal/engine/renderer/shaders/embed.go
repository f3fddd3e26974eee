// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ForwardVertexShader is the default vertex shader for model rendering.
//
//go:embed forward.vert
var ForwardVertexShader string

// ForwardFragmentShader is the default fragment shader for model rendering.
//
//go:embed forward.frag
var ForwardFragmentShader string
