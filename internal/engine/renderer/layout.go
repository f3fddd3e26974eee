package renderer

import (
	"fmt"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
)

// VaoRange maps one mesh to the contiguous range of vertex array handles
// generated for its primitives: [Begin, Begin+Count).
type VaoRange struct {
	Begin int
	Count int
}

// ComputeVaoRanges assigns each mesh a contiguous handle range, in mesh
// order. Range i has Count equal to mesh i's primitive count and ranges
// never overlap.
func ComputeVaoRanges(m *model.Model) []VaoRange {
	ranges := make([]VaoRange, len(m.Meshes))
	next := 0
	for i, mesh := range m.Meshes {
		ranges[i] = VaoRange{Begin: next, Count: len(mesh.Primitives)}
		next += len(mesh.Primitives)
	}
	return ranges
}

// AttributeBinding describes one enabled vertex attribute: which model
// buffer backs it and how the GL should read it. Values are ready to hand
// to glVertexAttribPointer unchanged; a zero Stride means tightly packed
// and is passed through literally, which the GL defines as exactly that.
type AttributeBinding struct {
	Slot          uint32
	Buffer        int
	Components    int32
	ComponentType uint32
	Stride        int32
	Offset        int
}

// IndexBinding describes the element array source of an indexed primitive.
// Offset is the absolute byte offset to pass to glDrawElements.
type IndexBinding struct {
	Buffer        int
	ComponentType uint32
	Count         int32
	Offset        int
}

// PrimitivePlan is the complete GL binding recipe for one primitive.
// Index is nil for non-indexed draws, which use VertexCount instead.
type PrimitivePlan struct {
	Attributes  []AttributeBinding
	Index       *IndexBinding
	VertexCount int32
	Mode        uint32
}

// PlanPrimitive resolves a primitive's accessors into a binding plan.
// Attributes are emitted in slot order; semantics absent from the
// primitive simply produce no binding, leaving their slot disabled.
func PlanPrimitive(m *model.Model, prim model.Primitive) (PrimitivePlan, error) {
	plan := PrimitivePlan{Mode: uint32(prim.Mode)}

	for _, sem := range model.Semantics {
		accIdx, ok := prim.Attributes[sem]
		if !ok {
			continue
		}
		acc := m.Accessors[accIdx]
		view := m.BufferViews[acc.BufferView]
		plan.Attributes = append(plan.Attributes, AttributeBinding{
			Slot:          sem.Slot(),
			Buffer:        view.Buffer,
			Components:    int32(acc.Type.Components()),
			ComponentType: uint32(acc.ComponentType),
			Stride:        int32(view.ByteStride),
			Offset:        view.ByteOffset + acc.ByteOffset,
		})
		if sem == model.Position {
			plan.VertexCount = int32(acc.Count)
		}
	}

	if prim.Indexed() {
		acc := m.Accessors[prim.Indices]
		switch acc.ComponentType {
		case model.ComponentUbyte, model.ComponentUshort, model.ComponentUint:
		default:
			return PrimitivePlan{}, fmt.Errorf("index accessor %d: component type %d is not drawable",
				prim.Indices, acc.ComponentType)
		}
		view := m.BufferViews[acc.BufferView]
		plan.Index = &IndexBinding{
			Buffer:        view.Buffer,
			ComponentType: uint32(acc.ComponentType),
			Count:         int32(acc.Count),
			Offset:        view.ByteOffset + acc.ByteOffset,
		}
	}

	return plan, nil
}

// PlanModel builds the per-mesh, per-primitive plans for a whole model,
// in VaoRange order.
func PlanModel(m *model.Model) ([][]PrimitivePlan, error) {
	plans := make([][]PrimitivePlan, len(m.Meshes))
	for i, mesh := range m.Meshes {
		plans[i] = make([]PrimitivePlan, len(mesh.Primitives))
		for k, prim := range mesh.Primitives {
			plan, err := PlanPrimitive(m, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", i, k, err)
			}
			plans[i][k] = plan
		}
	}
	return plans, nil
}
