// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
)

// ErrInvalidPasscode is returned when a passcode does not match. Its text is
// what players and admins see, so keep it human-readable.
var ErrInvalidPasscode = errors.New("invalid passcode")

// ValidatePasscode compares a supplied passcode against the configured one
// in constant time. Validation happens only here, on the backend side; the
// presentation layer forwards passcodes unchanged.
func ValidatePasscode(got, want string) error {
	if want == "" || !hmac.Equal([]byte(got), []byte(want)) {
		return ErrInvalidPasscode
	}
	return nil
}
