package magiclink

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRequest indicates the incoming request carried exactly one
	// of the token/key query parameters. This is a caller wiring bug, not a
	// user error: the redemption URL was constructed incorrectly.
	ErrMalformedRequest = errors.New("magiclink: malformed request")

	ErrMissingToken = fmt.Errorf("%w: key parameter present without token", ErrMalformedRequest)
	ErrMissingKey   = fmt.Errorf("%w: token parameter present without key", ErrMalformedRequest)

	// ErrInvalidForm indicates the issuance request body could not be decoded
	// as form data.
	ErrInvalidForm = errors.New("magiclink: request body is not form-encoded")

	// ErrAuthenticationFailed covers every verification failure: bad
	// signature, wrong key, expired, not yet valid, malformed token. It is
	// deliberately undifferentiated so error content cannot be used as an
	// oracle to distinguish a tampered token from an expired one.
	ErrAuthenticationFailed = errors.New("magiclink: authentication failed")
)
