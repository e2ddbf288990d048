package geometry

import "github.com/blackfen/darkmesh/pkg/formats"

// Build derives geometry for every sub-object of a model. Run it after
// SanitizePolygons and BuildHierarchy so each sub-object knows which
// polygons it owns.
func Build(m *formats.Model) []ObjectGeometry {
	geoms := make([]ObjectGeometry, len(m.Objects))
	for i := range m.Objects {
		geoms[i] = BuildObject(m, i)
	}
	return geoms
}

// BuildObject derives the triangle mesh and local transform of one
// sub-object.
func BuildObject(m *formats.Model, i int) ObjectGeometry {
	obj := &m.Objects[i]
	return ObjectGeometry{
		Name:  obj.Name,
		Mesh:  buildMesh(m, obj.Polygons),
		Local: localTransform(obj),
	}
}

func buildMesh(m *formats.Model, polygons []int) *Mesh {
	var vertices []Vertex
	var groups []MaterialGroup

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for _, pi := range polygons {
		p := &m.Polygons[pi]
		n := len(p.PointIndices)
		if n < 3 {
			continue
		}

		// Bounds check point indices
		valid := true
		for _, id := range p.PointIndices {
			if int(id) >= len(m.Points) {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		// Storage order is clockwise, emission counter-clockwise. A
		// triangle reverses outright, larger polygons fan around the
		// first corner.
		start := len(vertices)
		if n == 3 {
			vertices = append(vertices,
				cornerVertex(m, p, 2),
				cornerVertex(m, p, 1),
				cornerVertex(m, p, 0))
		} else {
			for j := 1; j < n-1; j++ {
				vertices = append(vertices,
					cornerVertex(m, p, 0),
					cornerVertex(m, p, j+1),
					cornerVertex(m, p, j))
			}
		}

		for _, v := range vertices[start:] {
			updateBounds(&bounds, v.Position)
		}

		// Adjacent polygons with the same material share a group
		count := len(vertices) - start
		if ng := len(groups); ng > 0 && groups[ng-1].MatIndex == p.MatIndex {
			groups[ng-1].Count += count
		} else {
			groups = append(groups, MaterialGroup{
				MatIndex: p.MatIndex,
				Start:    start,
				Count:    count,
			})
		}
	}

	if len(vertices) == 0 {
		return nil
	}

	return &Mesh{
		Vertices: vertices,
		Groups:   groups,
		Bounds:   bounds,
	}
}

// cornerVertex assembles the attributes of polygon corner j: position
// from the point table, normal from the corner's light entry, UV with
// the V axis flipped for textured polygons.
func cornerVertex(m *formats.Model, p *formats.Polygon, j int) Vertex {
	v := Vertex{Position: m.Points[p.PointIndices[j]]}

	if j < len(p.LightIndices) {
		if li := int(p.LightIndices[j]); li < len(m.Lights) {
			v.Normal = m.Lights[li].Normal
		}
	}

	if p.Type == formats.PolygonTextured && j < len(p.UVIndices) {
		if ui := int(p.UVIndices[j]); ui < len(m.UVs) {
			uv := m.UVs[ui]
			v.TexCoord = [2]float32{uv[0], 1 - uv[1]}
		}
	}

	return v
}

func updateBounds(b *Bounds, p [3]float32) {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] {
			b.Min[axis] = p[axis]
		}
		if p[axis] > b.Max[axis] {
			b.Max[axis] = p[axis]
		}
	}
}
