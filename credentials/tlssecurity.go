// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package credentials

// TLSSecurity selects one of four client-side certificate and hostname
// verification policies. The snake_case wire spellings are handled here:
// String and MarshalJSON emit them, and UnmarshalJSON accepts exactly the
// same four, so both directions agree on vocabulary.
type TLSSecurity int

const (
	// TLSSecurityInsecure allows any certificate for the TLS connection.
	TLSSecurityInsecure TLSSecurity = iota
	// TLSSecurityNoHostVerification verifies the certificate chain but
	// allows any host name — useful for localhost, or when a specific
	// server certificate is pinned in the credentials document.
	TLSSecurityNoHostVerification
	// TLSSecurityStrict performs the normal check: trusted chain and
	// matching host name.
	TLSSecurityStrict
	// TLSSecurityDefault defers to Strict unless a specific certificate is
	// present in the credentials document, in which case host name
	// checking is skipped.
	TLSSecurityDefault
)

func (s TLSSecurity) String() string {
	switch s {
	case TLSSecurityInsecure:
		return "insecure"
	case TLSSecurityNoHostVerification:
		return "no_host_verification"
	case TLSSecurityStrict:
		return "strict"
	case TLSSecurityDefault:
		return "default"
	default:
		return "unknown"
	}
}

func (s TLSSecurity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *TLSSecurity) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	switch str {
	case "insecure":
		*s = TLSSecurityInsecure
	case "no_host_verification":
		*s = TLSSecurityNoHostVerification
	case "strict":
		*s = TLSSecurityStrict
	case "default":
		*s = TLSSecurityDefault
	default:
		return &InvalidTLSSecurityError{Value: str}
	}
	return nil
}
