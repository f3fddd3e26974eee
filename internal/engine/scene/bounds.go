package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
)

// Bounds is a world-space axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the box midpoint.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the corner-to-corner extent.
func (b Bounds) Diagonal() float32 {
	return b.Max.Sub(b.Min).Len()
}

// ComputeBounds returns the world-space bounds of the default scene,
// derived from the POSITION accessor min/max declared in the file and the
// accumulated node transforms. ok is false when no drawn primitive carries
// position bounds.
func ComputeBounds(m *model.Model) (Bounds, bool) {
	b := Bounds{
		Min: mgl32.Vec3{1e30, 1e30, 1e30},
		Max: mgl32.Vec3{-1e30, -1e30, -1e30},
	}
	found := false

	for _, cmd := range BuildDrawList(m) {
		prim := m.Meshes[cmd.Mesh].Primitives[cmd.Primitive]
		accIdx, ok := prim.Attributes[model.Position]
		if !ok {
			continue
		}
		acc := m.Accessors[accIdx]
		if len(acc.Min) < 3 || len(acc.Max) < 3 {
			continue
		}
		found = true

		// Transform all eight corners of the local box; an AABB is not
		// preserved under rotation, its corners are.
		for corner := 0; corner < 8; corner++ {
			local := mgl32.Vec3{
				pick(corner&1 != 0, acc.Max[0], acc.Min[0]),
				pick(corner&2 != 0, acc.Max[1], acc.Min[1]),
				pick(corner&4 != 0, acc.Max[2], acc.Min[2]),
			}
			world := mgl32.TransformCoordinate(local, cmd.World)
			for i := 0; i < 3; i++ {
				if world[i] < b.Min[i] {
					b.Min[i] = world[i]
				}
				if world[i] > b.Max[i] {
					b.Max[i] = world[i]
				}
			}
		}
	}

	return b, found
}

func pick(hi bool, a, b float32) float32 {
	if hi {
		return a
	}
	return b
}
