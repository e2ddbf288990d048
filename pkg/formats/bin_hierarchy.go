package formats

// BuildHierarchy derives the explicit object tree from the on-disk
// child/sibling chains and partitions the polygon collection across
// sub-objects by point range. Run it after SanitizePolygons so dropped
// polygons never land in an owner list. Every walk carries a visited
// set, so malformed chains that loop back on themselves terminate
// instead of chasing pointers forever.
func (m *Model) BuildHierarchy() {
	for i := range m.Objects {
		o := &m.Objects[i]
		o.Parent = -1
		o.Children = nil
		o.Polygons = nil
	}

	for i := range m.Objects {
		visited := make(map[int16]bool)
		child := m.Objects[i].Child
		for child >= 0 && int(child) < len(m.Objects) && !visited[child] {
			visited[child] = true
			m.Objects[child].Parent = i
			m.Objects[i].Children = append(m.Objects[i].Children, int(child))
			child = m.Objects[child].Sibling
		}
	}

	for pi := range m.Polygons {
		if owner := m.polygonOwner(&m.Polygons[pi]); owner >= 0 {
			m.Objects[owner].Polygons = append(m.Objects[owner].Polygons, pi)
		}
	}
}

// polygonOwner returns the index of the first sub-object whose point
// range contains any of the polygon's vertices, or -1. Point ranges are
// disjoint by format convention, so first match is the only match.
func (m *Model) polygonOwner(p *Polygon) int {
	for oi := range m.Objects {
		lo := int(m.Objects[oi].PointStart)
		hi := lo + int(m.Objects[oi].PointCount)
		for _, pi := range p.PointIndices {
			if int(pi) >= lo && int(pi) < hi {
				return oi
			}
		}
	}
	return -1
}

// ObjectByName returns the sub-object with the given name, or nil.
func (m *Model) ObjectByName(name string) *SubObject {
	for i := range m.Objects {
		if m.Objects[i].Name == name {
			return &m.Objects[i]
		}
	}
	return nil
}

// Roots returns the indices of sub-objects left without a parent by
// BuildHierarchy.
func (m *Model) Roots() []int {
	var roots []int
	for i := range m.Objects {
		if m.Objects[i].Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// HasJoints reports whether any sub-object carries an articulated
// transform.
func (m *Model) HasJoints() bool {
	for i := range m.Objects {
		if m.Objects[i].Transform.Kind != JointNone {
			return true
		}
	}
	return false
}

// VhotsOf returns the vhot records owned by sub-object i, clipped to
// the decoded table.
func (m *Model) VhotsOf(i int) []Vhot {
	if i < 0 || i >= len(m.Objects) {
		return nil
	}
	lo := int(m.Objects[i].VhotStart)
	n := int(m.Objects[i].VhotCount)
	if lo >= len(m.Vhots) || n <= 0 {
		return nil
	}
	if lo+n > len(m.Vhots) {
		n = len(m.Vhots) - lo
	}
	return m.Vhots[lo : lo+n]
}
