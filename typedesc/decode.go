// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// decodeOne dispatches on the leading tag byte and decodes exactly one
// descriptor record. This is the table from spec.md §3.3 compiled into a
// switch: every branch asserts its own minimum length before touching the
// buffer, consumes the tag, reads the id, then reads its variable payload.
func decodeOne(c *cursor) (Descriptor, error) {
	tag, err := c.peekByte()
	if err != nil {
		return Descriptor{}, err
	}

	switch {
	case tag == tagSet:
		return decodeSet(c)
	case tag == tagObjectShape:
		return decodeObjectShape(c)
	case tag == tagBaseScalar:
		return decodeBaseScalar(c)
	case tag == tagScalar:
		return decodeScalar(c)
	case tag == tagTuple:
		return decodeTuple(c)
	case tag == tagNamedTuple:
		return decodeNamedTuple(c)
	case tag == tagArray:
		return decodeArray(c)
	case tag == tagEnumeration:
		return decodeEnumeration(c)
	case tag == tagInputShape:
		return decodeInputShape(c)
	case tag == tagRange:
		return decodeRange(c)
	case tag >= tagAnnotationLow:
		return decodeTypeAnnotation(c)
	default:
		return Descriptor{}, &InvalidTypeDescriptorError{Tag: tag}
	}
}

func consumeTag(c *cursor, want byte) error {
	got, err := c.readUint8()
	if err != nil {
		return err
	}
	if got != want {
		// Unreachable by construction: decodeOne already peeked this byte
		// and dispatched on its exact value.
		return errors.Errorf("typedesc: internal dispatch mismatch, expected tag 0x%02x got 0x%02x", want, got)
	}
	return nil
}

func decodeSet(c *cursor) (Descriptor, error) {
	if err := c.require(19); err != nil { // tag + 16-byte id + u16 type_pos
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagSet); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: set id")
	}
	typePos, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: set type_pos")
	}
	return Descriptor{Tag: tagSet, Set: SetDescriptor{ID: id, TypePos: TypePos(typePos)}}, nil
}

func decodeBaseScalar(c *cursor) (Descriptor, error) {
	if err := c.require(17); err != nil { // tag + 16-byte id
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagBaseScalar); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: base scalar id")
	}
	return Descriptor{Tag: tagBaseScalar, BaseScalar: BaseScalarDescriptor{ID: id}}, nil
}

func decodeScalar(c *cursor) (Descriptor, error) {
	if err := c.require(19); err != nil {
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagScalar); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: scalar id")
	}
	typePos, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: scalar type_pos")
	}
	return Descriptor{Tag: tagScalar, Scalar: ScalarDescriptor{ID: id, TypePos: TypePos(typePos)}}, nil
}

func decodeRange(c *cursor) (Descriptor, error) {
	if err := c.require(19); err != nil {
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagRange); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: range id")
	}
	typePos, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: range type_pos")
	}
	return Descriptor{Tag: tagRange, Range: RangeDescriptor{ID: id, TypePos: TypePos(typePos)}}, nil
}

func decodeTuple(c *cursor) (Descriptor, error) {
	if err := c.require(19); err != nil { // tag + id + u16 count
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagTuple); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: tuple id")
	}
	count, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: tuple count")
	}
	if err := c.require(int(count) * 2); err != nil {
		return Descriptor{}, err
	}
	elems := make([]TypePos, count)
	for i := range elems {
		v, err := c.readUint16()
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "typedesc: tuple element")
		}
		elems[i] = TypePos(v)
	}
	return Descriptor{Tag: tagTuple, Tuple: TupleDescriptor{ID: id, ElementTypes: elems}}, nil
}

func decodeNamedTuple(c *cursor) (Descriptor, error) {
	if err := c.require(19); err != nil {
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagNamedTuple); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: named tuple id")
	}
	count, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: named tuple count")
	}
	elems := make([]NamedTupleElement, count)
	for i := range elems {
		name, err := c.readString()
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "typedesc: named tuple element name")
		}
		if err := c.require(2); err != nil {
			return Descriptor{}, err
		}
		pos, err := c.readUint16()
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "typedesc: named tuple element type_pos")
		}
		elems[i] = NamedTupleElement{Name: name, TypePos: TypePos(pos)}
	}
	return Descriptor{Tag: tagNamedTuple, NamedTuple: NamedTupleDescriptor{ID: id, Elements: elems}}, nil
}

func decodeArray(c *cursor) (Descriptor, error) {
	if err := c.require(21); err != nil { // tag + id + type_pos + u16 dim_count
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagArray); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: array id")
	}
	typePos, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: array type_pos")
	}
	dimCount, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: array dim_count")
	}
	if err := c.require(int(dimCount) * 4); err != nil {
		return Descriptor{}, err
	}
	dims := make([]*uint32, dimCount)
	for i := range dims {
		raw, err := c.readInt32()
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "typedesc: array dimension")
		}
		switch {
		case raw == -1:
			dims[i] = nil
		case raw > 0:
			v := uint32(raw)
			dims[i] = &v
		default:
			return Descriptor{}, ErrInvalidArrayShape
		}
	}
	return Descriptor{Tag: tagArray, Array: ArrayDescriptor{ID: id, TypePos: TypePos(typePos), Dimensions: dims}}, nil
}

func decodeEnumeration(c *cursor) (Descriptor, error) {
	if err := c.require(19); err != nil {
		return Descriptor{}, err
	}
	if err := consumeTag(c, tagEnumeration); err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: enumeration id")
	}
	count, err := c.readUint16()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: enumeration count")
	}
	members := make([]string, count)
	for i := range members {
		s, err := c.readString()
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "typedesc: enumeration member")
		}
		members[i] = s
	}
	return Descriptor{Tag: tagEnumeration, Enumeration: EnumerationDescriptor{ID: id, Members: members}}, nil
}

func decodeObjectShape(c *cursor) (Descriptor, error) {
	elems, id, err := decodeShapeBody(c, tagObjectShape)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Tag: tagObjectShape, ObjectShape: ObjectShapeDescriptor{ID: id, Elements: elems}}, nil
}

func decodeInputShape(c *cursor) (Descriptor, error) {
	elems, id, err := decodeShapeBody(c, tagInputShape)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Tag: tagInputShape, InputShape: InputShapeDescriptor{ID: id, Elements: elems}}, nil
}

// decodeShapeBody implements the shared layout of ObjectShape and
// InputShape: id, u16 element count, that many ShapeElements. The two
// variants differ only in the tag byte and which field of Descriptor they
// populate.
func decodeShapeBody(c *cursor, tag byte) ([]ShapeElement, uuid.UUID, error) {
	if err := c.require(19); err != nil {
		return nil, uuid.Nil, err
	}
	if err := consumeTag(c, tag); err != nil {
		return nil, uuid.Nil, err
	}
	id, err := c.readUUID()
	if err != nil {
		return nil, uuid.Nil, errors.Wrap(err, "typedesc: shape id")
	}
	count, err := c.readUint16()
	if err != nil {
		return nil, uuid.Nil, errors.Wrap(err, "typedesc: shape element count")
	}
	elems := make([]ShapeElement, count)
	for i := range elems {
		el, err := decodeShapeElement(c)
		if err != nil {
			return nil, uuid.Nil, errors.Wrap(err, "typedesc: shape element")
		}
		elems[i] = el
	}
	return elems, id, nil
}

// decodeShapeElement reads one ShapeElement. The header is 5 bytes
// (u32 flags + u8 cardinality) for protocol >= (0,11), otherwise 1 byte
// (u8 flags only, no cardinality) — spec.md §3.3.
func decodeShapeElement(c *cursor) (ShapeElement, error) {
	var flags uint32
	var cardinality *uint8

	if c.proto.IsAtLeast(0, 11) {
		if err := c.require(5); err != nil {
			return ShapeElement{}, err
		}
		f, err := c.readUint32()
		if err != nil {
			return ShapeElement{}, err
		}
		flags = f
		card, err := c.readUint8()
		if err != nil {
			return ShapeElement{}, err
		}
		cardinality = &card
	} else {
		if err := c.require(1); err != nil {
			return ShapeElement{}, err
		}
		f, err := c.readUint8()
		if err != nil {
			return ShapeElement{}, err
		}
		flags = uint32(f)
	}

	name, err := c.readString()
	if err != nil {
		return ShapeElement{}, errors.Wrap(err, "shape element name")
	}
	if err := c.require(2); err != nil {
		return ShapeElement{}, err
	}
	typePos, err := c.readUint16()
	if err != nil {
		return ShapeElement{}, err
	}

	return ShapeElement{
		Implicit:     flags&0b001 != 0,
		LinkProperty: flags&0b010 != 0,
		Link:         flags&0b100 != 0,
		Cardinality:  cardinality,
		Name:         name,
		TypePos:      TypePos(typePos),
	}, nil
}

// decodeTypeAnnotation reads and discards a TypeAnnotation record. Tag
// bytes in [0x7F, 0xFF] are all valid annotation tags. The returned value
// carries only the tag, which Decode uses to skip it: annotations occupy
// no position in the output array, so the descriptors after one are
// numbered as if it were not there.
func decodeTypeAnnotation(c *cursor) (Descriptor, error) {
	if err := c.require(21); err != nil { // tag + id + u32 string length
		return Descriptor{}, err
	}
	tag, err := c.readUint8()
	if err != nil {
		return Descriptor{}, err
	}
	id, err := c.readUUID()
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: annotation id")
	}
	if _, err := c.readString(); err != nil {
		return Descriptor{}, errors.Wrap(err, "typedesc: annotation text")
	}
	logger.Debugf("typedesc: discarding type annotation id=%s", id)
	return Descriptor{Tag: tag}, nil
}

func isAnnotationTag(tag byte) bool {
	return tag >= tagAnnotationLow
}
