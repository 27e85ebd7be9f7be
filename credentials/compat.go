// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package credentials

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// compatShape is the wire concern: every field optional except User,
// matching whatever a historical sibling tool version happened to write.
// It is kept distinct from Credentials (the API concern) per the
// two-phase-read design: (i) unmarshal into compatShape, (ii) apply
// reconcile to produce the normalised record. Mirrors CredentialsCompat
// in original_source/edgedb-tokio/src/credentials.rs.
type compatShape struct {
	Host               *string      `json:"host,omitempty"`
	Port               *uint16      `json:"port,omitempty"`
	User               string       `json:"user"`
	Password           *string      `json:"password,omitempty"`
	Database           *string      `json:"database,omitempty"`
	TLSCertData        *string      `json:"tls_cert_data,omitempty"` // deprecated alias for tls_ca
	TLSCA              *string      `json:"tls_ca,omitempty"`
	TLSVerifyHostname  *bool        `json:"tls_verify_hostname,omitempty"` // deprecated
	TLSSecurity        *TLSSecurity `json:"tls_security,omitempty"`
	CloudInstanceID    *string      `json:"cloud_instance_id,omitempty"`
	CloudOriginalDSN   *string      `json:"cloud_original_dsn,omitempty"`
}

// expectedVerifyHostname derives the verify-hostname flag the current tls_security
// field implies, or nil when tls_security doesn't pin one down. Spec.md
// §4.2 step 1.
func expectedVerifyHostname(s *TLSSecurity) *bool {
	if s == nil {
		return nil
	}
	switch *s {
	case TLSSecurityStrict:
		v := true
		return &v
	case TLSSecurityNoHostVerification:
		v := false
		return &v
	default:
		return nil
	}
}

// reconcile applies spec.md §4.2's conflict detection and defaulting to a
// parsed compatShape, producing the normalised Credentials fields shared
// by both dialects.
func reconcile(c compatShape) (*Credentials, error) {
	if c.User == "" {
		return nil, ErrMissingUser
	}

	expected := expectedVerifyHostname(c.TLSSecurity)

	// Conflict A: this fires when the deprecated and current fields
	// *agree*, not when they disagree. spec.md §9 flags this as a likely
	// source bug in the format this package must stay compatible with;
	// DESIGN.md records the decision to replicate it faithfully rather
	// than invert it.
	if c.TLSVerifyHostname != nil && c.TLSSecurity != nil &&
		expected != nil && *expected == *c.TLSVerifyHostname {
		return nil, &ConflictError{
			Current:         "tls_security",
			CurrentValue:    c.TLSSecurity.String(),
			Deprecated:      "tls_verify_hostname",
			DeprecatedValue: boolString(*c.TLSVerifyHostname),
		}
	}

	// Conflict B: tls_ca and its deprecated alias both present and
	// disagree.
	if c.TLSCA != nil && c.TLSCertData != nil && *c.TLSCA != *c.TLSCertData {
		return nil, &ConflictError{
			Current:         "tls_ca",
			CurrentValue:    *c.TLSCA,
			Deprecated:      "tls_cert_data",
			DeprecatedValue: *c.TLSCertData,
		}
	}

	tlsCA := c.TLSCA
	if tlsCA == nil {
		tlsCA = c.TLSCertData
	}

	tlsSecurity := TLSSecurityDefault
	switch {
	case c.TLSSecurity != nil:
		tlsSecurity = *c.TLSSecurity
	case c.TLSVerifyHostname != nil && *c.TLSVerifyHostname:
		tlsSecurity = TLSSecurityStrict
	case c.TLSVerifyHostname != nil && !*c.TLSVerifyHostname:
		tlsSecurity = TLSSecurityNoHostVerification
	}

	port := DefaultPort
	if c.Port != nil {
		port = *c.Port
	}

	fileOutdated := c.TLSVerifyHostname != nil && c.TLSSecurity == nil
	if fileOutdated {
		logger.Debugf("credentials: document uses only deprecated tls_verify_hostname; rewriting would upgrade it")
	}

	return &Credentials{
		Host:             c.Host,
		Port:             port,
		User:             c.User,
		Password:         c.Password,
		Database:         c.Database,
		TLSCA:            tlsCA,
		TLSSecurity:      tlsSecurity,
		CloudInstanceID:  c.CloudInstanceID,
		CloudOriginalDSN: c.CloudOriginalDSN,
		FileOutdated:     fileOutdated,
	}, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// toCompatShape implements the serialisation policy of spec.md §4.2:
// always emit both tls_ca and tls_cert_data with the same value, always
// emit tls_security, and emit a tls_verify_hostname mirror derived from
// tls_security (omitted for TLSSecurityDefault). Fields whose in-memory
// value is absent are omitted.
func toCompatShape(c *Credentials) compatShape {
	security := c.TLSSecurity
	shape := compatShape{
		Host:             c.Host,
		Port:             &c.Port,
		User:             c.User,
		Password:         c.Password,
		Database:         c.Database,
		TLSCA:            c.TLSCA,
		TLSCertData:      c.TLSCA,
		TLSSecurity:      &security,
		CloudInstanceID:  c.CloudInstanceID,
		CloudOriginalDSN: c.CloudOriginalDSN,
	}
	switch c.TLSSecurity {
	case TLSSecurityStrict:
		v := true
		shape.TLSVerifyHostname = &v
	case TLSSecurityNoHostVerification, TLSSecurityInsecure:
		v := false
		shape.TLSVerifyHostname = &v
	case TLSSecurityDefault:
		shape.TLSVerifyHostname = nil
	}
	return shape
}

// Parse reads a credentials document into a Credentials record. The
// cloud_instance_id/cloud_original_dsn fields are carried through as well.
func Parse(data []byte) (*Credentials, error) {
	var shape compatShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, errors.Wrap(err, "credentials: unreadable document")
	}
	return reconcile(shape)
}

// ParseCloud reads a credentials document into the cloud dialect,
// passing cloud_instance_id/cloud_original_dsn through untouched.
func ParseCloud(data []byte) (*CloudCredentials, error) {
	return Parse(data)
}

// Marshal serialises c back into the compatibility shape, legible to both
// current and legacy readers.
func (c *Credentials) Marshal() ([]byte, error) {
	shape := toCompatShape(c)
	out, err := json.Marshal(shape)
	if err != nil {
		return nil, errors.Wrap(err, "credentials: marshal")
	}
	return out, nil
}
