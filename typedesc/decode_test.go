// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
)

// buildBytes concatenates byte slices. Analogous to saferwall/pe's
// getAbsoluteFilePath helper, except the "fixture" here is the byte
// stream itself rather than a file on disk.
func buildBytes(parts ...[]byte) []byte {
	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	return buf.Bytes()
}

func u16b(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32b(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func i32b(v int32) []byte {
	return u32b(uint32(v))
}

func lpString(s string) []byte {
	return buildBytes(u32b(uint32(len(s))), []byte(s))
}

func uuidBytes(id uuid.UUID) []byte {
	b := id[:]
	out := make([]byte, 16)
	copy(out, b)
	return out
}

func TestDecodeSingleBaseScalar(t *testing.T) {
	u := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	input := buildBytes([]byte{tagBaseScalar}, uuidBytes(u))

	set, err := Decode(u, CurrentProtocolVersion(), input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(set.Array) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(set.Array))
	}
	if set.Array[0].Tag != tagBaseScalar || set.Array[0].BaseScalar.ID != u {
		t.Fatalf("unexpected descriptor: %+v", set.Array[0])
	}
	if set.RootPos == nil || *set.RootPos != 0 {
		t.Fatalf("expected root pos 0, got %+v", set.RootPos)
	}
}

func TestDecodeTupleOfTwoScalars(t *testing.T) {
	u1 := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	u2 := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	u3 := uuid.MustParse("00000000-0000-0000-0000-000000000003")

	input := buildBytes(
		[]byte{tagBaseScalar}, uuidBytes(u1),
		[]byte{tagBaseScalar}, uuidBytes(u2),
		[]byte{tagTuple}, uuidBytes(u3), u16b(2), u16b(0), u16b(1),
	)

	set, err := Decode(u3, NewProtocolVersion(1, 0), input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(set.Array) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(set.Array))
	}
	if set.RootPos == nil || *set.RootPos != 2 {
		t.Fatalf("expected root pos 2, got %+v", set.RootPos)
	}
	tup := set.Array[2].Tuple
	if len(tup.ElementTypes) != 2 || tup.ElementTypes[0] != 0 || tup.ElementTypes[1] != 1 {
		t.Fatalf("unexpected tuple elements: %+v", tup.ElementTypes)
	}
}

func TestDecodeAnnotationDropped(t *testing.T) {
	u1 := uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	u2 := uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	u3 := uuid.MustParse("00000000-0000-0000-0000-0000000000a3")

	input := buildBytes(
		[]byte{tagBaseScalar}, uuidBytes(u1),
		[]byte{0x7F}, uuidBytes(u2), lpString("foo"),
		[]byte{tagBaseScalar}, uuidBytes(u3),
	)

	set, err := Decode(u3, CurrentProtocolVersion(), input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(set.Array) != 2 {
		t.Fatalf("expected 2 descriptors (annotation dropped), got %d", len(set.Array))
	}
	if set.RootPos == nil || *set.RootPos != 1 {
		t.Fatalf("expected root pos 1, got %+v", set.RootPos)
	}
}

func TestDecodeShapeElementVersionGate(t *testing.T) {
	u := uuid.MustParse("00000000-0000-0000-0000-0000000000b1")

	t.Run("pre-0.11 is one flag byte, no cardinality", func(t *testing.T) {
		input := buildBytes(
			[]byte{tagObjectShape}, uuidBytes(u), u16b(1),
			[]byte{0x03}, lpString("x"), u16b(0),
		)
		d, err := decodeObjectShapeForTest(input, NewProtocolVersion(0, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		el := d.ObjectShape.Elements[0]
		if !el.Implicit || !el.LinkProperty || el.Link {
			t.Fatalf("unexpected flags: %+v", el)
		}
		if el.Cardinality != nil {
			t.Fatalf("expected no cardinality, got %v", *el.Cardinality)
		}
	})

	t.Run("0.11+ is four flag bytes plus cardinality", func(t *testing.T) {
		input := buildBytes(
			[]byte{tagObjectShape}, uuidBytes(u), u16b(1),
			u32b(0x00000003), []byte{7}, lpString("x"), u16b(0),
		)
		set, err := decodeObjectShapeForTest(input, NewProtocolVersion(0, 11))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		el := set.ObjectShape.Elements[0]
		if !el.Implicit || !el.LinkProperty || el.Link {
			t.Fatalf("unexpected flags: %+v", el)
		}
		if el.Cardinality == nil || *el.Cardinality != 7 {
			t.Fatalf("expected cardinality 7, got %+v", el.Cardinality)
		}
	})
}

func decodeObjectShapeForTest(input []byte, proto ProtocolVersion) (Descriptor, error) {
	c := newCursor(input, proto)
	return decodeObjectShape(c)
}

func TestDecodeInvalidTag(t *testing.T) {
	for _, tag := range []byte{10, 0x7E} {
		t.Run("", func(t *testing.T) {
			_, err := Decode(uuid.Nil, CurrentProtocolVersion(), []byte{tag})
			if err == nil {
				t.Fatalf("expected error for tag 0x%02x", tag)
			}
			if e, ok := err.(*InvalidTypeDescriptorError); !ok || e.Tag != tag {
				t.Fatalf("expected InvalidTypeDescriptorError{%d}, got %v (%T)", tag, err, err)
			}
		})
	}
}

func TestDecodeArrayDimensions(t *testing.T) {
	u := uuid.MustParse("00000000-0000-0000-0000-0000000000c1")

	cases := []struct {
		name    string
		dim     int32
		wantErr bool
		wantNil bool
	}{
		{"unbounded", -1, false, true},
		{"positive size", 5, false, false},
		{"zero invalid", 0, true, false},
		{"int32 min invalid", -2147483648, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := buildBytes(
				[]byte{tagArray}, uuidBytes(u), u16b(0), u16b(1), i32b(tc.dim),
			)
			set, err := Decode(uuid.Nil, CurrentProtocolVersion(), input)
			if tc.wantErr {
				if err != ErrInvalidArrayShape {
					t.Fatalf("expected ErrInvalidArrayShape, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			dim := set.Array[0].Array.Dimensions[0]
			if tc.wantNil && dim != nil {
				t.Fatalf("expected unbounded (nil) dimension, got %v", *dim)
			}
			if !tc.wantNil && (dim == nil || int32(*dim) != tc.dim) {
				t.Fatalf("expected dimension %d, got %v", tc.dim, dim)
			}
		})
	}
}

func TestDecodeEmptyBuffer(t *testing.T) {
	t.Run("zero root uuid succeeds empty", func(t *testing.T) {
		set, err := Decode(uuid.Nil, CurrentProtocolVersion(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(set.Array) != 0 || set.RootPos != nil {
			t.Fatalf("expected empty set with no root, got %+v", set)
		}
	})

	t.Run("non-zero root uuid fails", func(t *testing.T) {
		u := uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
		_, err := Decode(u, CurrentProtocolVersion(), nil)
		if _, ok := err.(*UUIDNotFoundError); !ok {
			t.Fatalf("expected UUIDNotFoundError, got %v", err)
		}
	})
}

func TestDecodeUnderflow(t *testing.T) {
	_, err := Decode(uuid.Nil, CurrentProtocolVersion(), []byte{tagBaseScalar, 0x01, 0x02})
	if err != ErrUnderflow {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
}

func TestSetGetRootIsEmptyTuple(t *testing.T) {
	empty := emptyTupleID
	input := buildBytes([]byte{tagTuple}, uuidBytes(empty), u16b(0))

	set, err := Decode(empty, CurrentProtocolVersion(), input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !set.IsEmptyTuple() {
		t.Fatalf("expected IsEmptyTuple true")
	}

	if _, err := set.Get(TypePos(99)); err == nil {
		t.Fatalf("expected out-of-range Get to fail")
	}

	d, ok := set.Root()
	if !ok || d.Tag != tagTuple {
		t.Fatalf("expected root descriptor, got ok=%v d=%+v", ok, d)
	}
}
