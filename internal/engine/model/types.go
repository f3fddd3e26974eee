// Package model defines the in-memory scene description produced by the
// glTF loader and consumed by the rendering pipeline.
package model

import "github.com/go-gl/mathgl/mgl32"

// ComponentType identifies the numeric type of a single accessor component.
// Values match the glTF (and OpenGL) enumerants so they can be handed to the
// GL directly.
type ComponentType uint32

const (
	ComponentByte   ComponentType = 5120
	ComponentUbyte  ComponentType = 5121
	ComponentShort  ComponentType = 5122
	ComponentUshort ComponentType = 5123
	ComponentUint   ComponentType = 5125
	ComponentFloat  ComponentType = 5126
)

// ByteSize returns the size of one component in bytes. Unknown types report 0.
func (c ComponentType) ByteSize() int {
	switch c {
	case ComponentByte, ComponentUbyte:
		return 1
	case ComponentShort, ComponentUshort:
		return 2
	case ComponentUint, ComponentFloat:
		return 4
	}
	return 0
}

// AccessorType is the element cardinality of an accessor.
type AccessorType int

const (
	TypeScalar AccessorType = iota
	TypeVec2
	TypeVec3
	TypeVec4
)

// Components returns the number of components per element.
func (t AccessorType) Components() int {
	switch t {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	}
	return 0
}

// Topology is the primitive draw mode. Values match the glTF/GL enumerants.
type Topology uint32

const (
	Points        Topology = 0
	Lines         Topology = 1
	LineLoop      Topology = 2
	LineStrip     Topology = 3
	Triangles     Topology = 4
	TriangleStrip Topology = 5
	TriangleFan   Topology = 6
)

// Buffer holds one raw binary payload.
type Buffer struct {
	Data []byte
}

// BufferView is a byte range inside a Buffer. ByteStride 0 means the
// elements are tightly packed.
type BufferView struct {
	Buffer     int
	ByteOffset int
	ByteLength int
	ByteStride int
}

// Accessor describes how to interpret a slice of a BufferView as typed
// vertex or index data. Min and Max carry the per-component bounds of
// POSITION accessors when the source file declares them.
type Accessor struct {
	BufferView    int
	ByteOffset    int
	ComponentType ComponentType
	Type          AccessorType
	Count         int
	Min           []float32
	Max           []float32
}

// ElementSize returns the packed size in bytes of one accessor element.
func (a Accessor) ElementSize() int {
	return a.ComponentType.ByteSize() * a.Type.Components()
}

// Primitive is one drawable unit of a Mesh: attribute accessors keyed by
// semantic, an optional index accessor (Indices < 0 means a non-indexed
// draw) and a topology.
type Primitive struct {
	Attributes map[Semantic]int
	Indices    int
	Mode       Topology
}

// Indexed reports whether the primitive uses an index accessor.
func (p Primitive) Indexed() bool { return p.Indices >= 0 }

// Mesh is an ordered sequence of primitives.
type Mesh struct {
	Primitives []Primitive
}

// Node is one element of the scene hierarchy. Mesh is -1 when the node
// carries no geometry. Exactly one of Matrix or the TRS triple describes
// the local transform; when Matrix is nil the transform is T*R*S.
type Node struct {
	Mesh     int
	Children []int

	Matrix      *mgl32.Mat4
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// LocalTransform returns the node's local-to-parent matrix.
func (n Node) LocalTransform() mgl32.Mat4 {
	if n.Matrix != nil {
		return *n.Matrix
	}
	t := mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	r := n.Rotation.Mat4()
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// Scene is a list of root node indices.
type Scene struct {
	Nodes []int
}

// Model is the immutable, loader-owned scene description. DefaultScene is
// -1 when the source file declares no default scene.
type Model struct {
	Buffers      []Buffer
	BufferViews  []BufferView
	Accessors    []Accessor
	Meshes       []Mesh
	Nodes        []Node
	Scenes       []Scene
	DefaultScene int
}

// DefaultRoots returns the root node list of the default scene, or nil when
// there is nothing to render.
func (m *Model) DefaultRoots() []int {
	if m.DefaultScene < 0 || m.DefaultScene >= len(m.Scenes) {
		return nil
	}
	return m.Scenes[m.DefaultScene].Nodes
}

// PrimitiveCount returns the total number of primitives across all meshes.
func (m *Model) PrimitiveCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += len(mesh.Primitives)
	}
	return n
}
