// Package scene turns the node hierarchy of a model into an ordered draw
// list with accumulated world transforms.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
)

// DrawCommand is one primitive draw: which mesh primitive to bind and the
// local-to-world transform to draw it with.
type DrawCommand struct {
	Mesh      int
	Primitive int
	World     mgl32.Mat4
}

// BuildDrawList walks the default scene's node tree and emits one
// DrawCommand per primitive of every mesh-carrying node, parents before
// children, siblings and primitives in declaration order. A model without
// a default scene yields an empty list.
//
// The walk uses an explicit worklist rather than recursion, so scene depth
// is bounded by memory, not the goroutine stack.
func BuildDrawList(m *model.Model) []DrawCommand {
	roots := m.DefaultRoots()
	if len(roots) == 0 {
		return nil
	}

	type item struct {
		node   int
		parent mgl32.Mat4
	}

	var out []DrawCommand
	stack := make([]item, 0, len(m.Nodes))
	// Push in reverse so the pop order matches declaration order.
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: roots[i], parent: mgl32.Ident4()})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := m.Nodes[it.node]
		world := it.parent.Mul4(node.LocalTransform())

		if node.Mesh >= 0 {
			for p := range m.Meshes[node.Mesh].Primitives {
				out = append(out, DrawCommand{Mesh: node.Mesh, Primitive: p, World: world})
			}
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: node.Children[i], parent: world})
		}
	}

	return out
}
