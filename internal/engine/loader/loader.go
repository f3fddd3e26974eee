// Package loader reads glTF files into the viewer's model representation.
package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// Load parses a .gltf or .glb file, converts it to a model.Model and
// validates it. Parse and validation failures are fatal; oddities the
// viewer can render around (unknown attributes, non-triangle topologies)
// are logged as warnings and do not abort loading.
func Load(path string) (*model.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	m, err := convert(doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}

	if err := model.Validate(m); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	logger.Log.Info("scene loaded",
		zap.String("path", path),
		zap.Int("buffers", len(m.Buffers)),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("nodes", len(m.Nodes)),
		zap.Int("primitives", m.PrimitiveCount()),
	)
	return m, nil
}

// convert maps a parsed glTF document onto the model types. The document is
// not retained; buffer payloads are referenced, not copied.
func convert(doc *gltf.Document) (*model.Model, error) {
	m := &model.Model{DefaultScene: -1}
	if doc.Scene != nil {
		m.DefaultScene = *doc.Scene
	}

	m.Buffers = make([]model.Buffer, len(doc.Buffers))
	for i, buf := range doc.Buffers {
		if len(buf.Data) < buf.ByteLength {
			return nil, fmt.Errorf("buffer %d: %d of %d bytes resolved", i, len(buf.Data), buf.ByteLength)
		}
		m.Buffers[i] = model.Buffer{Data: buf.Data}
	}

	m.BufferViews = make([]model.BufferView, len(doc.BufferViews))
	for i, view := range doc.BufferViews {
		m.BufferViews[i] = model.BufferView{
			Buffer:     view.Buffer,
			ByteOffset: view.ByteOffset,
			ByteLength: view.ByteLength,
			ByteStride: view.ByteStride,
		}
	}

	m.Accessors = make([]model.Accessor, len(doc.Accessors))
	for i, acc := range doc.Accessors {
		if acc.BufferView == nil {
			return nil, fmt.Errorf("accessor %d: sparse or bufferless accessors are not supported", i)
		}
		compType, err := convertComponentType(acc.ComponentType)
		if err != nil {
			return nil, fmt.Errorf("accessor %d: %w", i, err)
		}
		accType, err := convertAccessorType(acc.Type)
		if err != nil {
			return nil, fmt.Errorf("accessor %d: %w", i, err)
		}
		m.Accessors[i] = model.Accessor{
			BufferView:    *acc.BufferView,
			ByteOffset:    acc.ByteOffset,
			ComponentType: compType,
			Type:          accType,
			Count:         acc.Count,
			Min:           toFloat32(acc.Min),
			Max:           toFloat32(acc.Max),
		}
	}

	m.Meshes = make([]model.Mesh, len(doc.Meshes))
	for i, mesh := range doc.Meshes {
		prims := make([]model.Primitive, 0, len(mesh.Primitives))
		for k, prim := range mesh.Primitives {
			p := model.Primitive{
				Attributes: make(map[model.Semantic]int, len(prim.Attributes)),
				Indices:    -1,
				Mode:       convertTopology(prim.Mode),
			}
			if p.Mode != model.Triangles {
				logger.Log.Warn("primitive uses a non-triangle topology",
					zap.Int("mesh", i), zap.Int("primitive", k), zap.Uint32("mode", uint32(p.Mode)))
			}
			for name, accIdx := range prim.Attributes {
				sem, ok := model.SemanticFromName(name)
				if !ok {
					logger.Log.Debug("ignoring unrecognized attribute",
						zap.Int("mesh", i), zap.Int("primitive", k), zap.String("attribute", name))
					continue
				}
				p.Attributes[sem] = accIdx
			}
			if prim.Indices != nil {
				p.Indices = *prim.Indices
			}
			prims = append(prims, p)
		}
		m.Meshes[i] = model.Mesh{Primitives: prims}
	}

	m.Nodes = make([]model.Node, len(doc.Nodes))
	for i, node := range doc.Nodes {
		m.Nodes[i] = convertNode(node)
	}

	m.Scenes = make([]model.Scene, len(doc.Scenes))
	for i, sc := range doc.Scenes {
		m.Scenes[i] = model.Scene{Nodes: sc.Nodes}
	}

	return m, nil
}

var identityMatrix = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func convertNode(node *gltf.Node) model.Node {
	out := model.Node{
		Mesh:     -1,
		Children: node.Children,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	if node.Mesh != nil {
		out.Mesh = *node.Mesh
	}

	// glTF declares matrix and TRS as mutually exclusive. Both the zero
	// value and the explicit identity mean "no matrix"; composing default
	// TRS yields the identity either way.
	if node.Matrix != identityMatrix && node.Matrix != [16]float64{} {
		var mat mgl32.Mat4
		for k, v := range node.Matrix {
			mat[k] = float32(v)
		}
		out.Matrix = &mat
		return out
	}

	out.Translation = mgl32.Vec3{
		float32(node.Translation[0]),
		float32(node.Translation[1]),
		float32(node.Translation[2]),
	}
	if node.Rotation != [4]float64{} {
		out.Rotation = mgl32.Quat{
			W: float32(node.Rotation[3]),
			V: mgl32.Vec3{
				float32(node.Rotation[0]),
				float32(node.Rotation[1]),
				float32(node.Rotation[2]),
			},
		}
	}
	if node.Scale != [3]float64{} {
		out.Scale = mgl32.Vec3{
			float32(node.Scale[0]),
			float32(node.Scale[1]),
			float32(node.Scale[2]),
		}
	}
	return out
}

func toFloat32(v []float64) []float32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

func convertComponentType(c gltf.ComponentType) (model.ComponentType, error) {
	switch c {
	case gltf.ComponentByte:
		return model.ComponentByte, nil
	case gltf.ComponentUbyte:
		return model.ComponentUbyte, nil
	case gltf.ComponentShort:
		return model.ComponentShort, nil
	case gltf.ComponentUshort:
		return model.ComponentUshort, nil
	case gltf.ComponentUint:
		return model.ComponentUint, nil
	case gltf.ComponentFloat:
		return model.ComponentFloat, nil
	}
	return 0, fmt.Errorf("unsupported component type %v", c)
}

func convertAccessorType(t gltf.AccessorType) (model.AccessorType, error) {
	switch t {
	case gltf.AccessorScalar:
		return model.TypeScalar, nil
	case gltf.AccessorVec2:
		return model.TypeVec2, nil
	case gltf.AccessorVec3:
		return model.TypeVec3, nil
	case gltf.AccessorVec4:
		return model.TypeVec4, nil
	}
	return 0, fmt.Errorf("unsupported accessor type %v", t)
}

func convertTopology(mode gltf.PrimitiveMode) model.Topology {
	switch mode {
	case gltf.PrimitivePoints:
		return model.Points
	case gltf.PrimitiveLines:
		return model.Lines
	case gltf.PrimitiveLineLoop:
		return model.LineLoop
	case gltf.PrimitiveLineStrip:
		return model.LineStrip
	case gltf.PrimitiveTriangleStrip:
		return model.TriangleStrip
	case gltf.PrimitiveTriangleFan:
		return model.TriangleFan
	default:
		return model.Triangles
	}
}
