// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import "github.com/google/uuid"

// TypePos is a u16 index into a descriptor Set's Array. Descriptors
// reference one another positionally; there are no ownership pointers.
// Any dereference of a TypePos is an array bounds check (Set.Get).
type TypePos uint16

// Descriptor tag bytes, one per variant in the tagged union. Values in
// [10, 0x7E] are not assigned to any variant and fail decoding with
// InvalidTypeDescriptorError.
const (
	tagSet            byte = 0
	tagObjectShape    byte = 1
	tagBaseScalar     byte = 2
	tagScalar         byte = 3
	tagTuple          byte = 4
	tagNamedTuple     byte = 5
	tagArray          byte = 6
	tagEnumeration    byte = 7
	tagInputShape     byte = 8
	tagRange          byte = 9
	tagAnnotationLow  byte = 0x7F
	tagAnnotationHigh byte = 0xFF
)

// Descriptor is the closed, compile-time-known sum of the eleven wire
// variants. Exactly one of the typed accessors below is meaningful for any
// given value; ID always is. This is intentionally not a key-value map:
// the variant set is closed, so a tag field plus a discriminated struct
// gives callers exhaustive-switch safety that a map cannot.
type Descriptor struct {
	Tag byte

	Set         SetDescriptor
	ObjectShape ObjectShapeDescriptor
	BaseScalar  BaseScalarDescriptor
	Scalar      ScalarDescriptor
	Tuple       TupleDescriptor
	NamedTuple  NamedTupleDescriptor
	Array       ArrayDescriptor
	Enumeration EnumerationDescriptor
	InputShape  InputShapeDescriptor
	Range       RangeDescriptor
}

// ID returns the descriptor's own UUID, the field every variant carries.
func (d Descriptor) ID() uuid.UUID {
	switch d.Tag {
	case tagSet:
		return d.Set.ID
	case tagObjectShape:
		return d.ObjectShape.ID
	case tagBaseScalar:
		return d.BaseScalar.ID
	case tagScalar:
		return d.Scalar.ID
	case tagTuple:
		return d.Tuple.ID
	case tagNamedTuple:
		return d.NamedTuple.ID
	case tagArray:
		return d.Array.ID
	case tagEnumeration:
		return d.Enumeration.ID
	case tagInputShape:
		return d.InputShape.ID
	case tagRange:
		return d.Range.ID
	default:
		return uuid.Nil
	}
}

// SetDescriptor describes a set of some element type.
type SetDescriptor struct {
	ID      uuid.UUID
	TypePos TypePos
}

// ObjectShapeDescriptor describes the shape of an object returned from a
// query: a named, ordered list of fields.
type ObjectShapeDescriptor struct {
	ID       uuid.UUID
	Elements []ShapeElement
}

// InputShapeDescriptor describes the shape of a free object used as query
// input. Layout is identical to ObjectShapeDescriptor; it is a distinct
// variant because it occupies a distinct tag and a distinct semantic role.
type InputShapeDescriptor struct {
	ID       uuid.UUID
	Elements []ShapeElement
}

// ShapeElement is one named field of an object or input shape.
type ShapeElement struct {
	Implicit     bool
	LinkProperty bool
	Link         bool
	Cardinality  *uint8
	Name         string
	TypePos      TypePos
}

// BaseScalarDescriptor describes a scalar with no further structure
// (e.g. std::int64). It carries nothing but its own id.
type BaseScalarDescriptor struct {
	ID uuid.UUID
}

// ScalarDescriptor describes a scalar derived from another type, such as a
// custom scalar extending a base scalar.
type ScalarDescriptor struct {
	ID      uuid.UUID
	TypePos TypePos
}

// TupleDescriptor describes an unnamed tuple's element types, in order.
type TupleDescriptor struct {
	ID           uuid.UUID
	ElementTypes []TypePos
}

// NamedTupleDescriptor describes a tuple whose elements carry names.
type NamedTupleDescriptor struct {
	ID       uuid.UUID
	Elements []NamedTupleElement
}

// NamedTupleElement is one named, positioned element of a NamedTuple.
type NamedTupleElement struct {
	Name    string
	TypePos TypePos
}

// ArrayDescriptor describes an array of some element type with a fixed
// number of dimensions. Each dimension is either a known size or
// unbounded (nil).
type ArrayDescriptor struct {
	ID         uuid.UUID
	TypePos    TypePos
	Dimensions []*uint32
}

// EnumerationDescriptor describes an enum type by its ordered member names.
type EnumerationDescriptor struct {
	ID      uuid.UUID
	Members []string
}

// RangeDescriptor describes a range over some element type.
type RangeDescriptor struct {
	ID      uuid.UUID
	TypePos TypePos
}
