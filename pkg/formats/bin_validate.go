package formats

// SanitizePolygons filters Model.Polygons in place, dropping every
// record whose type is unrecognized or whose indices point outside the
// decoded tables, and stamps each survivor with its normalized MatIndex.
// No other collection is touched and dropped records are not reported.
func (m *Model) SanitizePolygons() {
	kept := m.Polygons[:0]
	for i := range m.Polygons {
		p := &m.Polygons[i]
		if !m.polygonValid(p) {
			continue
		}
		p.MatIndex = m.normalizedMatIndex(p)
		kept = append(kept, *p)
	}
	m.Polygons = kept
}

// polygonValid checks one polygon against the tables of its own model:
// recognized type, at least a triangle, every point/light/normal/UV
// index in range, and exactly one light (plus one UV when textured)
// per vertex.
func (m *Model) polygonValid(p *Polygon) bool {
	switch p.Type {
	case PolygonTextured, PolygonPaletted, PolygonFlatRGB:
	default:
		return false
	}

	nv := len(p.PointIndices)
	if nv < 3 {
		return false
	}
	if int(p.NormalIndex) >= len(m.Normals) {
		return false
	}
	for _, pi := range p.PointIndices {
		if int(pi) >= len(m.Points) {
			return false
		}
	}

	if len(p.LightIndices) != nv {
		return false
	}
	for _, li := range p.LightIndices {
		if int(li) >= len(m.Lights) {
			return false
		}
	}

	if p.Type == PolygonTextured {
		if len(m.UVs) == 0 || len(p.UVIndices) != nv {
			return false
		}
		for _, ui := range p.UVIndices {
			if int(ui) >= len(m.UVs) {
				return false
			}
		}
	}

	return true
}

// normalizedMatIndex resolves the zero-based material index downstream
// consumers use: the version-4 trailing byte when present, otherwise
// the one-based MatRef shifted down, clamped into the material table
// (floored at 0 even when the table is empty).
func (m *Model) normalizedMatIndex(p *Polygon) int {
	idx := int(p.MatRef) - 1
	if p.AuxMat >= 0 {
		idx = int(p.AuxMat)
	}
	if last := len(m.Materials) - 1; idx > last {
		idx = last
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
