package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
)

func meshWithPrimitives(n int) model.Mesh {
	prims := make([]model.Primitive, n)
	for i := range prims {
		prims[i] = model.Primitive{
			Attributes: map[model.Semantic]int{model.Position: 0},
			Indices:    -1,
			Mode:       model.Triangles,
		}
	}
	return model.Mesh{Primitives: prims}
}

func identityNode(mesh int, children ...int) model.Node {
	return model.Node{
		Mesh:     mesh,
		Children: children,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func TestBuildDrawListAccumulatesTransforms(t *testing.T) {
	// Identity parent with a translated child carrying the mesh: one
	// draw with the child's translation as the world transform.
	child := identityNode(0)
	child.Translation = mgl32.Vec3{1, 0, 0}
	m := &model.Model{
		Meshes:       []model.Mesh{meshWithPrimitives(1)},
		Nodes:        []model.Node{identityNode(-1, 1), child},
		Scenes:       []model.Scene{{Nodes: []int{0}}},
		DefaultScene: 0,
	}

	cmds := BuildDrawList(m)
	if len(cmds) != 1 {
		t.Fatalf("got %d draw commands, want 1", len(cmds))
	}
	got := mgl32.TransformCoordinate(mgl32.Vec3{}, cmds[0].World)
	if !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("world origin = %v, want (1,0,0)", got)
	}
}

func TestBuildDrawListNestedTransforms(t *testing.T) {
	// Parent scales by 2, child translates by (1,0,0): the child's
	// origin lands at (2,0,0) because the parent transform applies to
	// the child's translation.
	parent := identityNode(-1, 1)
	parent.Scale = mgl32.Vec3{2, 2, 2}
	child := identityNode(0)
	child.Translation = mgl32.Vec3{1, 0, 0}
	m := &model.Model{
		Meshes:       []model.Mesh{meshWithPrimitives(1)},
		Nodes:        []model.Node{parent, child},
		Scenes:       []model.Scene{{Nodes: []int{0}}},
		DefaultScene: 0,
	}

	cmds := BuildDrawList(m)
	if len(cmds) != 1 {
		t.Fatalf("got %d draw commands, want 1", len(cmds))
	}
	got := mgl32.TransformCoordinate(mgl32.Vec3{}, cmds[0].World)
	if !got.ApproxEqualThreshold(mgl32.Vec3{2, 0, 0}, 1e-5) {
		t.Errorf("world origin = %v, want (2,0,0)", got)
	}
}

func TestBuildDrawListReachability(t *testing.T) {
	// Scene roots [0, 2]: node 1 is not referenced and must not draw.
	m := &model.Model{
		Meshes: []model.Mesh{meshWithPrimitives(1)},
		Nodes: []model.Node{
			identityNode(0),
			identityNode(0),
			identityNode(0),
		},
		Scenes:       []model.Scene{{Nodes: []int{0, 2}}},
		DefaultScene: 0,
	}

	cmds := BuildDrawList(m)
	if len(cmds) != 2 {
		t.Fatalf("got %d draw commands, want 2", len(cmds))
	}
}

func TestBuildDrawListOrder(t *testing.T) {
	// Parents draw before children, siblings in declaration order, and
	// each primitive of a mesh gets its own command in order.
	m := &model.Model{
		Meshes: []model.Mesh{
			meshWithPrimitives(1),
			meshWithPrimitives(2),
		},
		Nodes: []model.Node{
			identityNode(0, 1, 2), // root, mesh 0
			identityNode(1),       // first child, mesh 1 (two primitives)
			identityNode(0),       // second child, mesh 0
		},
		Scenes:       []model.Scene{{Nodes: []int{0}}},
		DefaultScene: 0,
	}

	cmds := BuildDrawList(m)
	want := []struct{ mesh, prim int }{
		{0, 0},
		{1, 0},
		{1, 1},
		{0, 0},
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d draw commands, want %d", len(cmds), len(want))
	}
	for i, w := range want {
		if cmds[i].Mesh != w.mesh || cmds[i].Primitive != w.prim {
			t.Errorf("command %d = mesh %d prim %d, want mesh %d prim %d",
				i, cmds[i].Mesh, cmds[i].Primitive, w.mesh, w.prim)
		}
	}
}

func TestBuildDrawListNoDefaultScene(t *testing.T) {
	m := &model.Model{
		Meshes:       []model.Mesh{meshWithPrimitives(1)},
		Nodes:        []model.Node{identityNode(0)},
		Scenes:       []model.Scene{{Nodes: []int{0}}},
		DefaultScene: -1,
	}
	if cmds := BuildDrawList(m); len(cmds) != 0 {
		t.Errorf("no default scene should yield no draws, got %d", len(cmds))
	}
}

func TestBuildDrawListDeepChain(t *testing.T) {
	// A chain far deeper than any recursion limit would tolerate.
	const depth = 200000
	nodes := make([]model.Node, depth)
	for i := range nodes {
		nodes[i] = identityNode(-1)
		if i+1 < depth {
			nodes[i].Children = []int{i + 1}
		}
	}
	nodes[depth-1].Mesh = 0

	m := &model.Model{
		Meshes:       []model.Mesh{meshWithPrimitives(1)},
		Nodes:        nodes,
		Scenes:       []model.Scene{{Nodes: []int{0}}},
		DefaultScene: 0,
	}

	cmds := BuildDrawList(m)
	if len(cmds) != 1 {
		t.Fatalf("got %d draw commands, want 1", len(cmds))
	}
}
