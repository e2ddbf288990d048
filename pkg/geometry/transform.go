package geometry

import (
	"github.com/blackfen/darkmesh/pkg/formats"
	"github.com/blackfen/darkmesh/pkg/math"
)

// localTransform returns the sub-object's joint matrix, axis columns
// plus center translation. Rigid sub-objects have none.
func localTransform(o *formats.SubObject) *math.Mat4 {
	if o.Transform.Kind == formats.JointNone {
		return nil
	}
	mat := math.FromAxes(
		o.Transform.AxisX,
		o.Transform.AxisY,
		o.Transform.AxisZ,
		o.Transform.Center,
	)
	return &mat
}

// WorldTransforms resolves each sub-object's accumulated parent-chain
// matrix, pairing geoms as returned by Build with the hierarchy on m.
// Sub-objects without a joint contribute identity, so a rigid model
// resolves to identity throughout. A visited set bounds malformed
// parent chains.
func WorldTransforms(m *formats.Model, geoms []ObjectGeometry) []math.Mat4 {
	world := make([]math.Mat4, len(geoms))
	resolved := make([]bool, len(geoms))
	for i := range geoms {
		resolveWorld(m, geoms, i, world, resolved, make(map[int]bool))
	}
	return world
}

func resolveWorld(m *formats.Model, geoms []ObjectGeometry, i int, world []math.Mat4, resolved []bool, visited map[int]bool) math.Mat4 {
	if resolved[i] {
		return world[i]
	}
	if visited[i] {
		return math.Identity()
	}
	visited[i] = true

	result := math.Identity()
	if geoms[i].Local != nil {
		result = *geoms[i].Local
	}

	if i < len(m.Objects) {
		if parent := m.Objects[i].Parent; parent >= 0 && parent < len(geoms) {
			result = resolveWorld(m, geoms, parent, world, resolved, visited).Mul(result)
		}
	}

	world[i] = result
	resolved[i] = true
	return result
}
