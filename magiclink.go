package magiclink

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Authenticate is the single entry point for both halves of the magic link
// protocol. The operating mode is selected by the shape of the request:
//
//   - neither "token" nor "key" query parameter present: issuer mode. The
//     request body is decoded as form data, a fresh verification key is
//     generated, a signed expiring token is minted over the form fields, and
//     the callback receives Issued{Form, Token, Key}.
//   - both present: verifier mode. The token's signature and temporal claims
//     are checked against the supplied key and the callback receives
//     Verified{Form, Token} on success.
//   - exactly one present: the redemption URL was constructed incorrectly and
//     the call fails with an error wrapping ErrMalformedRequest.
//
// The callback's result and error are returned unchanged; Authenticate itself
// has no side effects and stores nothing between calls. The two modes are
// correlated only by the key the caller persists between them.
func Authenticate[T any](r *http.Request, cb Callback[T], opts ...Option) (T, error) {
	var zero T
	s := newSettings(opts)

	query := r.URL.Query()
	hasToken, hasKey := query.Has("token"), query.Has("key")

	switch {
	case !hasToken && !hasKey:
		return issue(r, cb, s)
	case hasToken && hasKey:
		return verify(r, cb, s, query.Get("token"), query.Get("key"))
	case hasToken:
		return zero, ErrMissingKey
	default:
		return zero, ErrMissingToken
	}
}

func issue[T any](r *http.Request, cb Callback[T], s *settings) (T, error) {
	var zero T

	form, err := decodeForm(r)
	if err != nil {
		return zero, err
	}

	raw, encoded, err := newKey()
	if err != nil {
		return zero, fmt.Errorf("magiclink: generate key: %w", err)
	}

	now := s.now()
	token, err := signToken(form, raw, now, s.expiresIn)
	if err != nil {
		return zero, fmt.Errorf("magiclink: sign token: %w", err)
	}

	s.logger.DebugContext(r.Context(), "magic link token issued",
		slog.Time("expires_at", now.Add(s.expiresIn)),
	)

	return cb(r.Context(), Issued{Form: form, Token: token, Key: encoded})
}

func verify[T any](r *http.Request, cb Callback[T], s *settings, token, key string) (T, error) {
	var zero T

	raw, err := decodeKey(key)
	if err != nil {
		s.logger.DebugContext(r.Context(), "magic link rejected",
			slog.String("reason", "key is not base64url"),
		)
		return zero, ErrAuthenticationFailed
	}

	form, err := verifyToken(token, raw, s)
	if err != nil {
		// Detail stays in the log; the returned error never distinguishes
		// which check failed.
		s.logger.DebugContext(r.Context(), "magic link rejected",
			slog.String("reason", err.Error()),
		)
		return zero, ErrAuthenticationFailed
	}

	return cb(r.Context(), Verified{Form: form, Token: token})
}
