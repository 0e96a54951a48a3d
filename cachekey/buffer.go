// Package cachekey builds deterministic content-addressed cache keys for
// curve specs, grounded on original_source/parser/curve_cache_key.h's
// CanonicalBuffer/CurveKeyBuilder. Produces "yc:v1:<sha256hex>".
package cachekey

import (
	"encoding/binary"
	"math"
)

// CanonicalBuffer accumulates bytes for deterministic hashing. All
// multi-byte values are little-endian; floats are IEEE-754 bytes with -0.0
// normalized to +0.0, so the same calibration inputs always hash to the
// same key regardless of platform.
type CanonicalBuffer struct {
	buf []byte
}

func (b *CanonicalBuffer) WriteU8(v uint8) { b.buf = append(b.buf, v) }

func (b *CanonicalBuffer) WriteI32(v int32) { b.WriteU32(uint32(v)) }

func (b *CanonicalBuffer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *CanonicalBuffer) WriteDouble(v float64) {
	if v == 0 {
		v = 0 // normalize -0.0 to +0.0
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf = append(b.buf, tmp[:]...)
}

func (b *CanonicalBuffer) WriteBool(v bool) {
	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
}

func (b *CanonicalBuffer) WriteString(s string) {
	b.WriteU32(uint32(len(s)))
	b.buf = append(b.buf, s...)
}

// WriteTag writes a bare section separator with no length prefix. It is
// never ambiguous with WriteString's output because every tag used is a
// fixed literal.
func (b *CanonicalBuffer) WriteTag(tag string) {
	b.buf = append(b.buf, tag...)
}

func (b *CanonicalBuffer) Bytes() []byte { return b.buf }
