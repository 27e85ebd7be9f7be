// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package credentials reconciles a client's on-disk credentials document
// across the renamed and overloaded fields it has accumulated through
// several historical tool versions, producing a normalised in-memory
// record without silently discarding user intent.
package credentials

// DefaultPort is the connection port assumed when a document omits one.
const DefaultPort uint16 = 5656

// DefaultUser is the connection user DefaultCredentials fills in. A
// document that omits user fails to parse with ErrMissingUser.
const DefaultUser = "edgedb"

// Credentials is the normalised, reconciled view of a credentials
// document. It is the superset shape: it carries the two cloud fields
// (cloud_instance_id, cloud_original_dsn) alongside the fields of
// original_source/edgedb-tokio/src/credentials.rs. Lifecycle: created by
// Parse or by DefaultCredentials; mutated only by callers; serialised on
// demand via Marshal. New optional fields may be added in the future without
// breaking older serialisers, since the wire representation is the
// separate, versioned compatShape.
type Credentials struct {
	Host             *string
	Port             uint16
	User             string
	Password         *string
	Database         *string
	TLSCA            *string
	TLSSecurity      TLSSecurity
	CloudInstanceID  *string
	CloudOriginalDSN *string

	// FileOutdated is computed only during Parse: true iff the source
	// document used the deprecated tls_verify_hostname field and did not
	// also carry the current tls_security field. It tells the host
	// program that rewriting the file would upgrade its format.
	FileOutdated bool
}

// CloudCredentials is the name for the cloud-aware dialect (mirrors
// original_source/edgedb-client/src/credentials.rs). It is a type alias of
// Credentials, not a distinct type: both names denote the same struct,
// cloud fields included. Parse, ParseCloud and Marshal all go through the
// same compatShape.
type CloudCredentials = Credentials

// DefaultCredentials returns a Credentials populated with the defaulting
// rules spec.md §3.4 describes: no host, DefaultPort, DefaultUser, and
// TLSSecurityDefault. Restored from original_source's
// impl Default for Credentials; every idempotence property this package
// guarantees is stated in terms of records "constructible by the
// defaulted or parsed path," so this path must exist as code.
func DefaultCredentials() *Credentials {
	return &Credentials{
		Port:        DefaultPort,
		User:        DefaultUser,
		TLSSecurity: TLSSecurityDefault,
	}
}

// DefaultCloudCredentials is DefaultCredentials for callers working with
// the cloud dialect. CloudCredentials is a type alias of Credentials, so
// the two cloud fields start nil exactly as the non-cloud defaulting path
// leaves them.
func DefaultCloudCredentials() *CloudCredentials {
	return DefaultCredentials()
}
