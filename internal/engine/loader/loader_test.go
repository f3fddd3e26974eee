package loader

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
)

func idx(i int) *int { return &i }

// triangleDoc builds an in-memory document with one indexed triangle.
func triangleDoc() *gltf.Document {
	return &gltf.Document{
		Scene: idx(0),
		Buffers: []*gltf.Buffer{{
			ByteLength: 42,
			Data:       make([]byte, 42),
		}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
		},
		Accessors: []*gltf.Accessor{
			{
				BufferView:    idx(0),
				ComponentType: gltf.ComponentFloat,
				Type:          gltf.AccessorVec3,
				Count:         3,
				Min:           []float64{-1, -1, 0},
				Max:           []float64{1, 1, 0},
			},
			{
				BufferView:    idx(1),
				ComponentType: gltf.ComponentUshort,
				Type:          gltf.AccessorScalar,
				Count:         3,
			},
		},
		Meshes: []*gltf.Mesh{{
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{"POSITION": 0},
				Indices:    idx(1),
			}},
		}},
		Nodes: []*gltf.Node{{
			Mesh: idx(0),
		}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
}

func TestConvertTriangle(t *testing.T) {
	m, err := convert(triangleDoc())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if err := model.Validate(m); err != nil {
		t.Fatalf("converted model invalid: %v", err)
	}

	if m.DefaultScene != 0 {
		t.Errorf("default scene = %d, want 0", m.DefaultScene)
	}
	if len(m.Buffers) != 1 || len(m.Buffers[0].Data) != 42 {
		t.Errorf("buffers not carried over")
	}
	if m.BufferViews[1].ByteOffset != 36 || m.BufferViews[1].ByteLength != 6 {
		t.Errorf("bufferView 1 = %+v", m.BufferViews[1])
	}

	acc := m.Accessors[0]
	if acc.ComponentType != model.ComponentFloat || acc.Type != model.TypeVec3 || acc.Count != 3 {
		t.Errorf("accessor 0 = %+v", acc)
	}
	if len(acc.Min) != 3 || acc.Min[0] != -1 || len(acc.Max) != 3 || acc.Max[0] != 1 {
		t.Errorf("accessor bounds not carried over: %v %v", acc.Min, acc.Max)
	}

	prim := m.Meshes[0].Primitives[0]
	if prim.Attributes[model.Position] != 0 {
		t.Errorf("position accessor = %d, want 0", prim.Attributes[model.Position])
	}
	if prim.Indices != 1 {
		t.Errorf("indices = %d, want 1", prim.Indices)
	}
	if prim.Mode != model.Triangles {
		t.Errorf("mode = %d, want triangles", prim.Mode)
	}

	if m.Nodes[0].Mesh != 0 {
		t.Errorf("node mesh = %d, want 0", m.Nodes[0].Mesh)
	}
}

func TestConvertDefaults(t *testing.T) {
	doc := triangleDoc()
	doc.Scene = nil
	doc.Meshes[0].Primitives[0].Indices = nil
	doc.Nodes[0].Mesh = nil

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if m.DefaultScene != -1 {
		t.Errorf("missing scene should map to -1, got %d", m.DefaultScene)
	}
	if m.Meshes[0].Primitives[0].Indexed() {
		t.Error("missing indices should map to a non-indexed primitive")
	}
	if m.Nodes[0].Mesh != -1 {
		t.Errorf("missing mesh should map to -1, got %d", m.Nodes[0].Mesh)
	}

	// A default node composes to the identity transform.
	local := m.Nodes[0].LocalTransform()
	if !local.ApproxEqualThreshold(mgl32.Ident4(), 1e-6) {
		t.Errorf("default node transform = %v, want identity", local)
	}
}

func TestConvertAccessorBounds(t *testing.T) {
	doc := triangleDoc()
	doc.Accessors[0].Min = []float64{-0.5, -2.25, 0.125}
	doc.Accessors[0].Max = []float64{0.5, 2.25, 0.125}

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := []float32{-0.5, -2.25, 0.125}
	got := m.Accessors[0].Min
	if len(got) != len(want) {
		t.Fatalf("min = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("min[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if m.Accessors[0].Max[1] != 2.25 {
		t.Errorf("max[1] = %v, want 2.25", m.Accessors[0].Max[1])
	}

	// Accessors without bounds stay unbounded.
	if min := m.Accessors[1].Min; min != nil {
		t.Errorf("index accessor min = %v, want nil", min)
	}
}

func TestConvertIgnoresUnknownAttributes(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives[0].Attributes["TANGENT"] = 0
	doc.Meshes[0].Primitives[0].Attributes["COLOR_0"] = 0

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := len(m.Meshes[0].Primitives[0].Attributes); got != 1 {
		t.Errorf("got %d recognized attributes, want 1", got)
	}
}

func TestConvertNodeTRS(t *testing.T) {
	doc := triangleDoc()
	doc.Nodes[0].Translation = [3]float64{1, 2, 3}
	doc.Nodes[0].Rotation = [4]float64{0, 0.7071068, 0, 0.7071068} // 90 deg about Y, xyzw
	doc.Nodes[0].Scale = [3]float64{2, 2, 2}

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	n := m.Nodes[0]
	if n.Matrix != nil {
		t.Fatal("TRS node should not carry a matrix")
	}

	// (1,0,0) scales to (2,0,0), rotates to (0,0,-2), translates to (1,2,1).
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, n.LocalTransform())
	want := mgl32.Vec3{1, 2, 1}
	if !got.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("transformed point = %v, want %v", got, want)
	}
}

func TestConvertNodeMatrix(t *testing.T) {
	doc := triangleDoc()
	doc.Nodes[0].Matrix = [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		4, 5, 6, 1,
	}

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	n := m.Nodes[0]
	if n.Matrix == nil {
		t.Fatal("expected explicit matrix")
	}
	got := mgl32.TransformCoordinate(mgl32.Vec3{}, n.LocalTransform())
	if !got.ApproxEqualThreshold(mgl32.Vec3{4, 5, 6}, 1e-5) {
		t.Errorf("matrix translation = %v, want (4,5,6)", got)
	}
}

func TestConvertIdentityMatrixTreatedAsTRS(t *testing.T) {
	doc := triangleDoc()
	doc.Nodes[0].Matrix = [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if m.Nodes[0].Matrix != nil {
		t.Error("identity matrix should not be retained")
	}
}

func TestConvertRejectsSparseAccessor(t *testing.T) {
	doc := triangleDoc()
	doc.Accessors[0].BufferView = nil

	_, err := convert(doc)
	if err == nil {
		t.Fatal("expected error for bufferless accessor")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("unexpected error %q", err)
	}
}

func TestConvertRejectsUnresolvedBuffer(t *testing.T) {
	doc := triangleDoc()
	doc.Buffers[0].Data = doc.Buffers[0].Data[:10]

	_, err := convert(doc)
	if err == nil {
		t.Fatal("expected error for short buffer payload")
	}
}

func TestConvertNonTriangleTopology(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLineStrip

	m, err := convert(doc)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if m.Meshes[0].Primitives[0].Mode != model.LineStrip {
		t.Errorf("mode = %d, want line strip", m.Meshes[0].Primitives[0].Mode)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.gltf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
