// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package typedesc decodes the tagged, position-referential descriptor
// stream a database returns alongside prepared-query results into an
// in-memory descriptor set that downstream codec builders walk.
package typedesc

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// emptyTupleID is the well-known id of the empty tuple type, used by
// IsEmptyTuple. Restored from original_source's InputTypedesc::is_empty_tuple.
var emptyTupleID = uuid.MustParse("00000000-0000-0000-0000-0000000000ff")

// Set is the decoded, ordered sequence of descriptors plus an optional
// root position, as produced by Decode. It is immutable once returned:
// nothing in this package mutates a Set after construction.
type Set struct {
	Proto   ProtocolVersion
	Array   []Descriptor
	RootPos *TypePos
}

// Get resolves a TypePos to its Descriptor, bounds-checked. This is the
// only "dereference" operation the position-referential graph supports
// (spec.md §9): every cross-reference is an array index, never a pointer.
func (s *Set) Get(pos TypePos) (Descriptor, error) {
	if int(pos) >= len(s.Array) {
		return Descriptor{}, errors.Errorf("typedesc: type position %d out of range (len=%d)", pos, len(s.Array))
	}
	return s.Array[pos], nil
}

// Root returns the root descriptor, if any. ok is false when RootPos is
// nil (the root UUID supplied to Decode was the zero UUID).
func (s *Set) Root() (Descriptor, bool) {
	if s.RootPos == nil {
		return Descriptor{}, false
	}
	d, err := s.Get(*s.RootPos)
	if err != nil {
		return Descriptor{}, false
	}
	return d, true
}

// IsEmptyTuple reports whether the root descriptor is the well-known
// empty tuple type. Restored from original_source (InputTypedesc); it is
// a pure read over the decoded graph and exercises no codec machinery.
func (s *Set) IsEmptyTuple() bool {
	d, ok := s.Root()
	if !ok || d.Tag != tagTuple {
		return false
	}
	return d.Tuple.ID == emptyTupleID && len(d.Tuple.ElementTypes) == 0
}

// DescriptorContext bundles a decoded Set with the protocol-derived flags
// downstream row/argument codec builders need alongside it. It holds no
// state of its own beyond what Set and ProtocolVersion already expose.
type DescriptorContext struct {
	Array          []Descriptor
	RootPos        *TypePos
	HasImplicitTID bool
}

// NewDescriptorContext derives a DescriptorContext from a decoded Set.
func NewDescriptorContext(s *Set) DescriptorContext {
	return DescriptorContext{
		Array:          s.Array,
		RootPos:        s.RootPos,
		HasImplicitTID: s.Proto.HasImplicitTID(),
	}
}

// Decode parses a complete descriptor blob. rootUUID identifies which
// descriptor (if any) is the root of the shape; the zero UUID means "no
// root". input is consumed in full — every byte must belong to some
// descriptor record, TypeAnnotations included, or decoding fails.
func Decode(rootUUID uuid.UUID, proto ProtocolVersion, input []byte) (*Set, error) {
	c := newCursor(input, proto)

	var array []Descriptor
	for c.remaining() > 0 {
		d, err := decodeOne(c)
		if err != nil {
			return nil, err
		}
		if isAnnotationTag(d.Tag) {
			continue
		}
		logger.Debugf("typedesc: decoded descriptor tag=0x%02x id=%s at position %d", d.Tag, d.ID(), len(array))
		array = append(array, d)
	}

	var rootPos *TypePos
	if rootUUID != uuid.Nil {
		idx := -1
		for i, d := range array {
			if d.ID() == rootUUID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &UUIDNotFoundError{UUID: rootUUID}
		}
		if idx > 0xFFFF {
			return nil, &TooManyDescriptorsError{Index: idx}
		}
		pos := TypePos(idx)
		rootPos = &pos
	}

	return &Set{Proto: proto, Array: array, RootPos: rootPos}, nil
}
