package model

import "fmt"

// Validate checks the cross-index integrity of a Model so that the
// rendering stages can assume well-formed input. It verifies that every
// buffer view fits its buffer, every accessor fits its view, every
// primitive and node reference is in range, index accessors use a
// component type the GL can draw with, and the node graph reachable from
// each scene is a tree.
func Validate(m *Model) error {
	for i, view := range m.BufferViews {
		if view.Buffer < 0 || view.Buffer >= len(m.Buffers) {
			return fmt.Errorf("bufferView %d: buffer index %d out of range", i, view.Buffer)
		}
		if view.ByteOffset < 0 || view.ByteLength < 0 ||
			view.ByteOffset+view.ByteLength > len(m.Buffers[view.Buffer].Data) {
			return fmt.Errorf("bufferView %d: range [%d,%d) exceeds buffer %d size %d",
				i, view.ByteOffset, view.ByteOffset+view.ByteLength, view.Buffer, len(m.Buffers[view.Buffer].Data))
		}
	}

	for i, acc := range m.Accessors {
		if acc.BufferView < 0 || acc.BufferView >= len(m.BufferViews) {
			return fmt.Errorf("accessor %d: bufferView index %d out of range", i, acc.BufferView)
		}
		if acc.ComponentType.ByteSize() == 0 {
			return fmt.Errorf("accessor %d: unknown component type %d", i, acc.ComponentType)
		}
		if acc.Count < 0 {
			return fmt.Errorf("accessor %d: negative count %d", i, acc.Count)
		}
		view := m.BufferViews[acc.BufferView]
		stride := view.ByteStride
		if stride == 0 {
			stride = acc.ElementSize()
		}
		if acc.Count > 0 {
			last := acc.ByteOffset + (acc.Count-1)*stride + acc.ElementSize()
			if last > view.ByteLength {
				return fmt.Errorf("accessor %d: %d elements end at byte %d, past view length %d",
					i, acc.Count, last, view.ByteLength)
			}
		}
	}

	for i, mesh := range m.Meshes {
		for k, prim := range mesh.Primitives {
			for sem, accIdx := range prim.Attributes {
				if accIdx < 0 || accIdx >= len(m.Accessors) {
					return fmt.Errorf("mesh %d primitive %d: %s accessor %d out of range", i, k, sem, accIdx)
				}
			}
			if prim.Indexed() {
				if prim.Indices >= len(m.Accessors) {
					return fmt.Errorf("mesh %d primitive %d: index accessor %d out of range", i, k, prim.Indices)
				}
				switch m.Accessors[prim.Indices].ComponentType {
				case ComponentUbyte, ComponentUshort, ComponentUint:
				default:
					return fmt.Errorf("mesh %d primitive %d: index accessor %d has non-index component type %d",
						i, k, prim.Indices, m.Accessors[prim.Indices].ComponentType)
				}
			}
		}
	}

	for i, node := range m.Nodes {
		if node.Mesh >= len(m.Meshes) {
			return fmt.Errorf("node %d: mesh index %d out of range", i, node.Mesh)
		}
		for _, child := range node.Children {
			if child < 0 || child >= len(m.Nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
	}

	if m.DefaultScene >= len(m.Scenes) {
		return fmt.Errorf("default scene %d out of range (%d scenes)", m.DefaultScene, len(m.Scenes))
	}
	for i, sc := range m.Scenes {
		for _, root := range sc.Nodes {
			if root < 0 || root >= len(m.Nodes) {
				return fmt.Errorf("scene %d: root node %d out of range", i, root)
			}
		}
		if err := checkTree(m, sc.Nodes); err != nil {
			return fmt.Errorf("scene %d: %w", i, err)
		}
	}

	return nil
}

// checkTree walks the graph reachable from roots and rejects any node that
// is reachable twice, which covers both cycles and diamond-shaped sharing.
func checkTree(m *Model, roots []int) error {
	seen := make(map[int]bool)
	stack := make([]int, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[idx] {
			return fmt.Errorf("node %d reachable more than once; node graph must be a tree", idx)
		}
		seen[idx] = true
		stack = append(stack, m.Nodes[idx].Children...)
	}
	return nil
}
