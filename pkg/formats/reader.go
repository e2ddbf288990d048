package formats

import (
	"encoding/binary"
	"math"
)

// binReader is a little-endian cursor over a fixed byte buffer. A read
// that would run past the end returns a zero value, pins the cursor at
// the end and latches the first overrun in err; decode stages check err
// at their boundaries instead of after every call. The *At variants
// reposition the cursor to an explicit offset before reading, matching
// the absolute addressing the original container layout was written for.
type binReader struct {
	data []byte
	off  int
	err  error
}

func newBinReader(data []byte) *binReader {
	return &binReader{data: data}
}

func (r *binReader) fail() {
	if r.err == nil {
		r.err = ErrTruncatedBinData
	}
	r.off = len(r.data)
}

// reserve reports whether n more bytes exist at the cursor, latching
// the truncation error when they do not. Table decoders call it before
// allocating, so a garbage count never turns into a giant allocation.
func (r *binReader) reserve(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.off+n > len(r.data) {
		r.fail()
		return false
	}
	return true
}

func (r *binReader) pos() int {
	return r.off
}

func (r *binReader) seek(off int) {
	if off < 0 || off > len(r.data) {
		r.fail()
		return
	}
	r.off = off
}

func (r *binReader) skip(n int) {
	if !r.reserve(n) {
		return
	}
	r.off += n
}

func (r *binReader) u8() uint8 {
	if !r.reserve(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

func (r *binReader) i8() int8 {
	return int8(r.u8())
}

func (r *binReader) u16() uint16 {
	if !r.reserve(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *binReader) i16() int16 {
	return int16(r.u16())
}

func (r *binReader) u32() uint32 {
	if !r.reserve(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *binReader) i32() int32 {
	return int32(r.u32())
}

func (r *binReader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *binReader) f64() float64 {
	if !r.reserve(8) {
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v
}

func (r *binReader) vec2() [2]float32 {
	return [2]float32{r.f32(), r.f32()}
}

func (r *binReader) vec3() [3]float32 {
	return [3]float32{r.f32(), r.f32(), r.f32()}
}

func (r *binReader) bytes(n int) []byte {
	if !r.reserve(n) {
		return nil
	}
	v := r.data[r.off : r.off+n]
	r.off += n
	return v
}

// fixedString consumes exactly n bytes and returns the text up to the
// first NUL; the remainder of the span is padding.
func (r *binReader) fixedString(n int) string {
	buf := r.bytes(n)
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func (r *binReader) u16At(off int) uint16 {
	r.seek(off)
	return r.u16()
}

func (r *binReader) u32At(off int) uint32 {
	r.seek(off)
	return r.u32()
}

func (r *binReader) f32At(off int) float32 {
	r.seek(off)
	return r.f32()
}
