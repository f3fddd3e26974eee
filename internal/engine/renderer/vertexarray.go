package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// createVertexArrayObjects builds one VAO per primitive from the binding
// plans, grouped contiguously per mesh as described by the ranges from
// ComputeVaoRanges. VAO ranges[i].Begin+k belongs to mesh i, primitive k.
func createVertexArrayObjects(m *model.Model, bufferObjects []uint32, plans [][]PrimitivePlan, ranges []VaoRange) []uint32 {
	total := m.PrimitiveCount()
	vaos := make([]uint32, total)
	if total == 0 {
		return vaos
	}
	gl.GenVertexArrays(int32(total), &vaos[0])

	for meshIdx := range m.Meshes {
		r := ranges[meshIdx]
		for k := 0; k < r.Count; k++ {
			plan := plans[meshIdx][k]
			gl.BindVertexArray(vaos[r.Begin+k])

			for _, attr := range plan.Attributes {
				gl.EnableVertexAttribArray(attr.Slot)
				gl.BindBuffer(gl.ARRAY_BUFFER, bufferObjects[attr.Buffer])
				gl.VertexAttribPointerWithOffset(
					attr.Slot,
					attr.Components,
					attr.ComponentType,
					false, // normalization is always disabled
					attr.Stride,
					uintptr(attr.Offset),
				)
			}

			if plan.Index != nil {
				// The element array binding is VAO state; it must happen
				// while this VAO is bound.
				gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, bufferObjects[plan.Index.Buffer])
			}

			if len(plan.Attributes) < len(model.Semantics) {
				logger.Log.Debug("primitive missing optional attributes",
					zap.Int("mesh", meshIdx), zap.Int("primitive", k),
					zap.Int("bound", len(plan.Attributes)))
			}
		}
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Log.Debug("vertex arrays created", zap.Int("count", total))
	return vaos
}

// deleteVertexArrayObjects releases the VAOs created by
// createVertexArrayObjects.
func deleteVertexArrayObjects(vaos []uint32) {
	if len(vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(vaos)), &vaos[0])
	}
}
