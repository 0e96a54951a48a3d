package cachekey

import (
	"bytes"
	"math"
	"testing"
)

func TestCanonicalBuffer_WriteStringLengthPrefixed(t *testing.T) {
	var b CanonicalBuffer
	b.WriteString("abc")
	want := []byte{3, 0, 0, 0, 'a', 'b', 'c'}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("WriteString(\"abc\") = %v, want %v", b.Bytes(), want)
	}
}

func TestCanonicalBuffer_WriteU32LittleEndian(t *testing.T) {
	var b CanonicalBuffer
	b.WriteU32(1)
	want := []byte{1, 0, 0, 0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("WriteU32(1) = %v, want %v", b.Bytes(), want)
	}
}

func TestCanonicalBuffer_WriteDoubleNormalizesNegativeZero(t *testing.T) {
	var pos, neg CanonicalBuffer
	pos.WriteDouble(0.0)
	neg.WriteDouble(negZero())
	if !bytes.Equal(pos.Bytes(), neg.Bytes()) {
		t.Fatalf("WriteDouble should normalize -0.0 to +0.0: %v vs %v", pos.Bytes(), neg.Bytes())
	}
}

func negZero() float64 {
	return math.Copysign(0, -1)
}

func TestCanonicalBuffer_WriteBool(t *testing.T) {
	var b CanonicalBuffer
	b.WriteBool(true)
	b.WriteBool(false)
	want := []byte{1, 0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("WriteBool(true), WriteBool(false) = %v, want %v", b.Bytes(), want)
	}
}

func TestCanonicalBuffer_WriteTagHasNoLengthPrefix(t *testing.T) {
	var b CanonicalBuffer
	b.WriteTag("HDR")
	if !bytes.Equal(b.Bytes(), []byte("HDR")) {
		t.Fatalf("WriteTag should append the literal bytes with no length prefix, got %v", b.Bytes())
	}
}
