// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package credentials

import "fmt"

// InvalidTLSSecurityError is returned when tls_security names a value
// outside the four recognized spellings.
type InvalidTLSSecurityError struct {
	Value string
}

func (e *InvalidTLSSecurityError) Error() string {
	return fmt.Sprintf("credentials: invalid tls_security value %q", e.Value)
}

// ConflictError is returned when a document carries both a deprecated
// field and its current replacement in a way the reconciliation policy
// treats as unresolvable. Both offending values are included, per the
// error-message requirement this package's rules are built against.
type ConflictError struct {
	Deprecated      string
	DeprecatedValue string
	Current         string
	CurrentValue    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"credentials: conflicting settings: %s=%s but %s=%s",
		e.Current, e.CurrentValue, e.Deprecated, e.DeprecatedValue,
	)
}

// ErrMissingUser is returned when a credentials document omits the
// required user field.
var ErrMissingUser = fmt.Errorf("credentials: missing required field \"user\"")
