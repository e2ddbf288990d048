package geometry

import (
	"testing"

	"github.com/blackfen/darkmesh/pkg/formats"
	"github.com/blackfen/darkmesh/pkg/math"
)

// jointedModel returns a two-object chain: a rotating base whose joint
// sits at (10,0,0) and a rotating child whose joint sits at (0,5,0)
// relative to the base.
func jointedModel() *formats.Model {
	identity := formats.Transform{
		AxisX: [3]float32{1, 0, 0},
		AxisY: [3]float32{0, 1, 0},
		AxisZ: [3]float32{0, 0, 1},
	}

	base := identity
	base.Kind = formats.JointRotate
	base.Center = [3]float32{10, 0, 0}
	child := identity
	child.Kind = formats.JointRotate
	child.Joint = 1
	child.Center = [3]float32{0, 5, 0}

	m := &formats.Model{
		Objects: []formats.SubObject{
			{Name: "base", Child: 1, Sibling: -1, Transform: base},
			{Name: "arm", Child: -1, Sibling: -1, Transform: child},
		},
	}
	m.BuildHierarchy()
	return m
}

func TestBuildObject_LocalTransform(t *testing.T) {
	m := jointedModel()

	geo := BuildObject(m, 0)
	if geo.Local == nil {
		t.Fatal("jointed sub-object should carry a local transform")
	}

	// Identity axes with a translated origin
	if got := geo.Local.TransformPoint([3]float32{0, 0, 0}); got != [3]float32{10, 0, 0} {
		t.Errorf("origin maps to %v, want (10,0,0)", got)
	}
	if got := geo.Local.TransformPoint([3]float32{1, 2, 3}); got != [3]float32{11, 2, 3} {
		t.Errorf("(1,2,3) maps to %v, want (11,2,3)", got)
	}
}

func TestBuildObject_RotatedAxes(t *testing.T) {
	m := jointedModel()
	// Swap the X and Y axes on the base joint
	m.Objects[0].Transform.AxisX = [3]float32{0, 1, 0}
	m.Objects[0].Transform.AxisY = [3]float32{1, 0, 0}

	geo := BuildObject(m, 0)
	if geo.Local == nil {
		t.Fatal("local transform missing")
	}
	if got := geo.Local.TransformPoint([3]float32{1, 0, 0}); got != [3]float32{10, 1, 0} {
		t.Errorf("(1,0,0) maps to %v, want (10,1,0)", got)
	}
}

func TestBuildObject_RigidHasNoTransform(t *testing.T) {
	m := &formats.Model{
		Objects: []formats.SubObject{
			{Name: "crate", Child: -1, Sibling: -1},
		},
	}

	if geo := BuildObject(m, 0); geo.Local != nil {
		t.Errorf("Local = %+v, want nil for joint kind None", geo.Local)
	}
}

func TestWorldTransforms_RigidIdentity(t *testing.T) {
	m := &formats.Model{
		Objects: []formats.SubObject{
			{Name: "a", Child: 1, Sibling: -1},
			{Name: "b", Child: -1, Sibling: -1},
		},
	}
	m.BuildHierarchy()
	geoms := Build(m)

	world := WorldTransforms(m, geoms)
	id := math.Identity()
	for i := range world {
		if world[i] != id {
			t.Errorf("world[%d] = %v, want identity", i, world[i])
		}
	}
}

func TestWorldTransforms_ParentChain(t *testing.T) {
	m := jointedModel()
	geoms := Build(m)

	world := WorldTransforms(m, geoms)
	if len(world) != 2 {
		t.Fatalf("transform count = %d, want 2", len(world))
	}

	// The child accumulates its parent: origin lands at base+child offset
	if got := world[1].TransformPoint([3]float32{0, 0, 0}); got != [3]float32{10, 5, 0} {
		t.Errorf("child origin maps to %v, want (10,5,0)", got)
	}
	if got := world[0].TransformPoint([3]float32{0, 0, 0}); got != [3]float32{10, 0, 0} {
		t.Errorf("base origin maps to %v, want (10,0,0)", got)
	}
}

func TestWorldTransforms_CycleTerminates(t *testing.T) {
	m := jointedModel()
	// Force mutual parents, which BuildHierarchy cannot produce from a
	// well-formed chain
	m.Objects[0].Parent = 1
	m.Objects[1].Parent = 0

	world := WorldTransforms(m, Build(m)) // must terminate

	if len(world) != 2 {
		t.Fatalf("transform count = %d, want 2", len(world))
	}
}
