// Package formats provides parsers for Dark Engine file formats.
// LGMD object-model (.bin) parser for 3D models.
package formats

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Bin format errors.
var (
	ErrInvalidBinMagic  = errors.New("invalid bin magic: expected 'LGMD'")
	ErrTruncatedBinData = errors.New("truncated bin data")
)

// binMagic is the "LGMD" container signature read as a little-endian word.
const binMagic = 0x444D474C

// binVersionExtended marks the model revision that carries the extended
// material block and per-polygon material bytes.
const binVersionExtended = 4

// Material type bytes as stored on disk.
const (
	matTypeTextured  = 0
	matTypeFlatColor = 1
)

// PolygonType is the polygon record's shading discriminant.
type PolygonType uint8

const (
	PolygonTextured PolygonType = 0x1B // texture-mapped
	PolygonPaletted PolygonType = 0x39 // solid palette color
	PolygonFlatRGB  PolygonType = 0x59 // solid packed-RGB color
)

// String returns a human-readable polygon type name.
func (t PolygonType) String() string {
	switch t {
	case PolygonTextured:
		return "Textured"
	case PolygonPaletted:
		return "Paletted"
	case PolygonFlatRGB:
		return "FlatRGB"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
	}
}

// MaterialKind classifies a material after decoding.
type MaterialKind uint8

const (
	MaterialTextured MaterialKind = iota
	MaterialFlatColor
	MaterialReplacer
)

// String returns a human-readable material kind name.
func (k MaterialKind) String() string {
	switch k {
	case MaterialTextured:
		return "Textured"
	case MaterialFlatColor:
		return "FlatColor"
	case MaterialReplacer:
		return "Replacer"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// JointKind classifies a sub-object's articulation.
type JointKind uint8

const (
	JointNone   JointKind = 0 // static part, no own transform
	JointRotate JointKind = 1 // rotates about its axis within [Min, Max]
	JointSlide  JointKind = 2 // slides along its axis within [Min, Max]
)

// String returns a human-readable joint kind name.
func (k JointKind) String() string {
	switch k {
	case JointNone:
		return "None"
	case JointRotate:
		return "Rotate"
	case JointSlide:
		return "Slide"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// TableOffsets holds the header's byte offsets of each record table.
type TableOffsets struct {
	Objects   uint32
	Materials uint32
	UVs       uint32
	Vhots     uint32
	Points    uint32
	Lights    uint32
	Normals   uint32
	Polygons  uint32
	Nodes     uint32
}

// AuxHeader describes the version-4 extended material block.
type AuxHeader struct {
	Flags      uint32
	Offset     uint32
	RecordSize uint32

	// Capabilities derived from Flags bits 0 and 1.
	Transparency bool
	Illumination bool
}

// ExtendedMaterial carries the per-material pair decoded from the
// version-4 extended block.
type ExtendedMaterial struct {
	Transparency float32
	Illumination float32
}

// Material is one entry of the material table. Kind decides which field
// group is meaningful: Handle/UVScale for textured, R/G/B/Palette for
// flat color, ReplacerSlot for replacer placeholders.
type Material struct {
	Name string
	Slot int8
	Kind MaterialKind

	Handle  uint32
	UVScale float32

	R, G, B uint8
	Palette uint32

	ReplacerSlot int

	Extended *ExtendedMaterial
}

// Light is one light-table entry: a vertex normal packed into a single
// word, bound to its owning object and point.
type Light struct {
	Object uint16
	Point  uint16
	Packed uint32
	Normal [3]float32
}

// Vhot is a named attachment point local to a sub-object.
type Vhot struct {
	ID       int32
	Position [3]float32
}

// Polygon is one face record. UVIndices is nil for non-textured types.
// AuxMat holds the version-4 trailing material byte, -1 when absent.
// MatIndex stays -1 until SanitizePolygons writes the normalized index.
type Polygon struct {
	ID           int16
	MatRef       int16
	Type         PolygonType
	NormalIndex  uint16
	PlaneDist    float32
	PointIndices []uint16
	LightIndices []uint16
	UVIndices    []uint16
	AuxMat       int16
	Offset       uint32
	MatIndex     int
}

// Transform is a sub-object's joint description. A Kind of JointNone
// means the object has no transform of its own; otherwise the three
// axis vectors and the center assemble into a rigid local matrix.
type Transform struct {
	Kind   JointKind
	Joint  int32
	Min    float32
	Max    float32
	AxisX  [3]float32
	AxisY  [3]float32
	AxisZ  [3]float32
	Center [3]float32
}

// SubObject is one rigid part of the model. Child and Sibling carry the
// on-disk linked-list encoding (-1 for none); Parent, Children and
// Polygons are derived by BuildHierarchy. NodeStart is a byte offset
// into the node table, not a record index.
type SubObject struct {
	Name      string
	Transform Transform
	Child     int16
	Sibling   int16

	VhotStart  uint16
	VhotCount  uint16
	PointStart uint16
	PointCount uint16
	LightStart uint16
	LightCount uint16
	NormStart  uint16
	NormCount  uint16
	NodeStart  uint16
	NodeCount  uint16

	Parent   int
	Children []int
	Polygons []int
}

// Model is a parsed LGMD object model. It is immutable after decode
// except for the in-place polygon pass of SanitizePolygons.
type Model struct {
	Version       uint32
	Name          string
	Radius        float32
	MaxPolyRadius float32
	BBoxMax       [3]float32
	BBoxMin       [3]float32
	Center        [3]float32
	NumParms      uint16
	NumVCalls     uint8
	Size          uint32
	Offsets       TableOffsets
	Aux           *AuxHeader

	Points    [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Lights    []Light
	Vhots     []Vhot
	Materials []Material
	Polygons  []Polygon
	Objects   []SubObject

	TotalNodes int
}

// ParseBin parses LGMD model data from a byte slice. Only a wrong magic
// or a read past the end of the buffer fail the decode; zero table
// counts simply leave their collection empty, and any other malformed
// content is left for SanitizePolygons to drop.
func ParseBin(data []byte) (*Model, error) {
	r := newBinReader(data)

	magic := r.u32()
	if r.err != nil {
		return nil, r.err
	}
	if magic != binMagic {
		return nil, ErrInvalidBinMagic
	}

	m := &Model{}
	m.Version = r.u32()
	m.Name = r.fixedString(8)
	m.Radius = r.f32()
	m.MaxPolyRadius = r.f32()
	m.BBoxMax = r.vec3()
	m.BBoxMin = r.vec3()
	m.Center = r.vec3()
	numPgons := r.u16()
	numVerts := r.u16()
	m.NumParms = r.u16()
	numMats := r.u8()
	m.NumVCalls = r.u8()
	numVhots := r.u8()
	numObjs := r.u8()
	m.Offsets.Objects = r.u32()
	m.Offsets.Materials = r.u32()
	m.Offsets.UVs = r.u32()
	m.Offsets.Vhots = r.u32()
	m.Offsets.Points = r.u32()
	m.Offsets.Lights = r.u32()
	m.Offsets.Normals = r.u32()
	m.Offsets.Polygons = r.u32()
	m.Offsets.Nodes = r.u32()
	m.Size = r.u32()

	if m.Version == binVersionExtended {
		aux := &AuxHeader{
			Flags:      r.u32(),
			Offset:     r.u32(),
			RecordSize: r.u32(),
		}
		aux.Transparency = aux.Flags&0x1 != 0
		aux.Illumination = aux.Flags&0x2 != 0
		m.Aux = aux
	}
	if r.err != nil {
		return nil, r.err
	}

	// UV, light and normal counts are not stored; they fall out of the
	// deltas between adjacent table offsets. Tables laid out in another
	// order yield nonsense counts, which is accepted legacy behavior.
	uvCount := deriveCount(m.Offsets.Vhots, m.Offsets.UVs, 8)
	lightCount := deriveCount(m.Offsets.Normals, m.Offsets.Lights, 8)
	normCount := deriveCount(m.Offsets.Polygons, m.Offsets.Normals, 12)

	if numVerts > 0 {
		r.seek(int(m.Offsets.Points))
		m.Points = readVec3s(r, int(numVerts))
	}
	if normCount > 0 {
		r.seek(int(m.Offsets.Normals))
		m.Normals = readVec3s(r, normCount)
	}

	if uvCount > 0 {
		r.seek(int(m.Offsets.UVs))
		if r.reserve(uvCount * 8) {
			m.UVs = make([][2]float32, uvCount)
			for i := range m.UVs {
				m.UVs[i] = r.vec2()
			}
		}
	}

	if lightCount > 0 {
		r.seek(int(m.Offsets.Lights))
		if r.reserve(lightCount * 8) {
			m.Lights = make([]Light, lightCount)
			for i := range m.Lights {
				l := &m.Lights[i]
				l.Object = r.u16()
				l.Point = r.u16()
				l.Packed = r.u32()
				l.Normal = UnpackLightNormal(l.Packed)
			}
		}
	}

	if numVhots > 0 {
		r.seek(int(m.Offsets.Vhots))
		if r.reserve(int(numVhots) * 16) {
			m.Vhots = make([]Vhot, numVhots)
			for i := range m.Vhots {
				m.Vhots[i].ID = r.i32()
				m.Vhots[i].Position = r.vec3()
			}
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	if numMats > 0 {
		r.seek(int(m.Offsets.Materials))
		if r.reserve(int(numMats) * 26) {
			m.Materials = make([]Material, numMats)
			for i := range m.Materials {
				parseMaterial(r, &m.Materials[i])
			}
		}
	}

	// Version-4 extended block: one float pair per material. Records may
	// declare more than 8 bytes; the tail is consumed to stay aligned.
	if m.Aux != nil && m.Aux.Offset != 0 && len(m.Materials) > 0 {
		recSize := int(m.Aux.RecordSize)
		if recSize < 8 {
			recSize = 8
		}
		r.seek(int(m.Aux.Offset))
		for i := range m.Materials {
			ext := &ExtendedMaterial{
				Transparency: r.f32(),
				Illumination: r.f32(),
			}
			r.skip(recSize - 8)
			m.Materials[i].Extended = ext
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	if numPgons > 0 {
		r.seek(int(m.Offsets.Polygons))
		m.Polygons = make([]Polygon, 0, int(numPgons))
		for i := 0; i < int(numPgons); i++ {
			var p Polygon
			p.Offset = uint32(r.pos()) - m.Offsets.Polygons
			p.ID = r.i16()
			p.MatRef = r.i16()
			p.Type = PolygonType(r.u8())
			nv := int(r.u8())
			p.NormalIndex = r.u16()
			p.PlaneDist = r.f32()
			p.PointIndices = readU16s(r, nv)
			p.LightIndices = readU16s(r, nv)
			if p.Type == PolygonTextured {
				p.UVIndices = readU16s(r, nv)
			}
			p.AuxMat = -1
			if m.Version == binVersionExtended {
				p.AuxMat = int16(r.u8())
			}
			p.MatIndex = -1
			if r.err != nil {
				return nil, r.err
			}
			m.Polygons = append(m.Polygons, p)
		}
	}

	if numObjs > 0 {
		r.seek(int(m.Offsets.Objects))
		if r.reserve(int(numObjs) * 93) {
			m.Objects = make([]SubObject, numObjs)
			for i := range m.Objects {
				o := &m.Objects[i]
				o.Name = r.fixedString(8)
				o.Transform.Kind = JointKind(r.u8())
				o.Transform.Joint = r.i32()
				o.Transform.Min = r.f32()
				o.Transform.Max = r.f32()
				o.Transform.AxisX = r.vec3()
				o.Transform.AxisY = r.vec3()
				o.Transform.AxisZ = r.vec3()
				o.Transform.Center = r.vec3()
				o.Child = r.i16()
				o.Sibling = r.i16()
				o.VhotStart = r.u16()
				o.VhotCount = r.u16()
				o.PointStart = r.u16()
				o.PointCount = r.u16()
				o.LightStart = r.u16()
				o.LightCount = r.u16()
				o.NormStart = r.u16()
				o.NormCount = r.u16()
				o.NodeStart = r.u16()
				o.NodeCount = r.u16()
				o.Parent = -1
				m.TotalNodes += int(o.NodeCount)
			}
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	return m, nil
}

// ParseBinFile parses an LGMD model file from disk.
func ParseBinFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bin file: %w", err)
	}
	return ParseBin(data)
}

// parseMaterial decodes one 26-byte material record. The 8-byte tail
// depends on the stored type byte; the replacer reclassification runs
// regardless of it.
func parseMaterial(r *binReader, mat *Material) {
	mat.Name = r.fixedString(16)
	rawType := r.u8()
	mat.Slot = r.i8()
	if rawType == matTypeFlatColor {
		mat.Kind = MaterialFlatColor
		mat.B = r.u8()
		mat.G = r.u8()
		mat.R = r.u8()
		r.skip(1)
		mat.Palette = r.u32()
	} else {
		mat.Kind = MaterialTextured
		mat.Handle = r.u32()
		mat.UVScale = r.f32()
	}
	if slot, ok := replacerSlot(mat.Name); ok {
		mat.Kind = MaterialReplacer
		mat.ReplacerSlot = slot
	}
}

// replacerSlot reports whether name denotes one of the four reserved
// replace<N> placeholder materials: case-insensitive, any padding
// trimmed, with either no extension or a ".gif" one.
func replacerSlot(name string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if dot := strings.LastIndex(s, "."); dot >= 0 {
		if s[dot+1:] != "gif" {
			return 0, false
		}
		s = s[:dot]
	}
	if len(s) == 8 && strings.HasPrefix(s, "replace") {
		if d := s[7]; d >= '0' && d <= '3' {
			return int(d - '0'), true
		}
	}
	return 0, false
}

// UnpackLightNormal decodes the packed vertex normal used by light
// records: three 10-bit fields at bits 22, 12 and 2, each reinterpreted
// as the top of a signed 16-bit value and scaled by 1/16384. The layout
// matches the original authoring tools bit for bit; do not change it
// without re-checking against reference-decoded output.
func UnpackLightNormal(packed uint32) [3]float32 {
	x := int16(uint16(packed>>16) & 0xFFC0)
	y := int16(uint16(packed>>6) & 0xFFC0)
	z := int16(uint16(packed<<4) & 0xFFC0)
	return [3]float32{
		float32(x) / 16384.0,
		float32(y) / 16384.0,
		float32(z) / 16384.0,
	}
}

// deriveCount turns the byte span between two table offsets into a
// record count, clamping inverted spans to zero.
func deriveCount(end, start uint32, recordSize int) int {
	if end <= start {
		return 0
	}
	return int(end-start) / recordSize
}

func readVec3s(r *binReader, count int) [][3]float32 {
	if count <= 0 || !r.reserve(count*12) {
		return nil
	}
	out := make([][3]float32, count)
	for i := range out {
		out[i] = r.vec3()
	}
	return out
}

func readU16s(r *binReader, count int) []uint16 {
	if count <= 0 || !r.reserve(count*2) {
		return nil
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = r.u16()
	}
	return out
}
