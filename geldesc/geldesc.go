// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package geldesc is the single import a caller needs for both halves of
// the type-descriptor subsystem: the wire-format descriptor decoder and
// the credentials document reconciler. Both live in their own leaf
// packages (typedesc, credentials); this package only re-exports their
// entry points, the way saferwall/pe's root package is the one import
// callers use even though parsing is split across many concern-specific
// files internally.
package geldesc

import (
	"github.com/google/uuid"

	"github.com/geldata/gel-go-typedesc/credentials"
	"github.com/geldata/gel-go-typedesc/typedesc"
)

type (
	// ProtocolVersion re-exports typedesc.ProtocolVersion.
	ProtocolVersion = typedesc.ProtocolVersion
	// Set re-exports typedesc.Set.
	Set = typedesc.Set
	// DescriptorContext re-exports typedesc.DescriptorContext.
	DescriptorContext = typedesc.DescriptorContext
	// Credentials re-exports credentials.Credentials.
	Credentials = credentials.Credentials
	// CloudCredentials re-exports credentials.CloudCredentials.
	CloudCredentials = credentials.CloudCredentials
	// TLSSecurity re-exports credentials.TLSSecurity.
	TLSSecurity = credentials.TLSSecurity
)

// DecodeTypedesc parses a descriptor blob into a Set.
func DecodeTypedesc(rootUUID uuid.UUID, proto ProtocolVersion, input []byte) (*Set, error) {
	return typedesc.Decode(rootUUID, proto, input)
}

// ParseCredentials reconciles a credentials document into its normalised
// record.
func ParseCredentials(data []byte) (*Credentials, error) {
	return credentials.Parse(data)
}
