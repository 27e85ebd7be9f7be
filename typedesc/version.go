// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import "fmt"

// ProtocolVersion is a (major, minor) pair identifying the wire protocol
// revision a descriptor blob was produced under. A small number of
// on-wire layout decisions are gated on it; see ShapeElement decoding.
type ProtocolVersion struct {
	Major uint16
	Minor uint16
}

// CurrentProtocolVersion is the protocol revision this package targets
// by default when a caller has not negotiated one of its own.
func CurrentProtocolVersion() ProtocolVersion {
	return ProtocolVersion{Major: 1, Minor: 0}
}

// NewProtocolVersion builds a ProtocolVersion from its components.
func NewProtocolVersion(major, minor uint16) ProtocolVersion {
	return ProtocolVersion{Major: major, Minor: minor}
}

// String renders "major.minor".
func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Is1 reports whether the major version is at least 1.
func (v ProtocolVersion) Is1() bool {
	return v.Major >= 1
}

// IsAtLeast reports whether v is >= (major, minor) under lexicographic order.
func (v ProtocolVersion) IsAtLeast(major, minor uint16) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// IsAtMost reports whether v is <= (major, minor) under lexicographic order.
func (v ProtocolVersion) IsAtMost(major, minor uint16) bool {
	return v.Major < major || (v.Major == major && v.Minor <= minor)
}

// SupportsInlineTypenames reports whether this protocol revision surfaces
// type names inline in descriptor records. The descriptor decoder itself
// does not branch on this (no variant layout depends on it), but callers
// building a DescriptorContext need it alongside HasImplicitTID.
func (v ProtocolVersion) SupportsInlineTypenames() bool {
	return v.IsAtLeast(0, 9)
}

// HasImplicitTID reports whether rows of this protocol revision carry an
// implicit type-id column that downstream row decoding must skip.
func (v ProtocolVersion) HasImplicitTID() bool {
	return v.IsAtMost(0, 8)
}
