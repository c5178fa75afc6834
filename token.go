package magiclink

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Registered timing claims are stripped from the payload when the form is
// reconstituted at verification; the callback only sees identity fields.
var timingClaims = map[string]struct{}{
	"iat": {},
	"exp": {},
	"nbf": {},
}

var errMissingIssuedAt = errors.New("token has no issued-at claim")

// signToken builds an HS256 token whose claims are the form fields plus
// issued-at and expiry. Form fields named after timing claims are dropped:
// a string "nbf" would fail claim validation at parse time, and identity
// data must never pose as a timing claim anyway.
func signToken(form Form, key []byte, now time.Time, expiresIn time.Duration) (string, error) {
	claims := make(jwt.MapClaims, len(form)+2)
	for name, value := range form {
		if _, reserved := timingClaims[name]; reserved {
			continue
		}
		claims[name] = value
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(expiresIn))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// verifyToken checks signature and temporal claims and returns the embedded
// form fields. The returned error carries the failure detail for debug
// logging only; callers collapse it to ErrAuthenticationFailed.
func verifyToken(token string, key []byte, s *settings) (Form, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkewTolerance),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil {
		return nil, err
	}
	if issuedAt == nil {
		return nil, errMissingIssuedAt
	}

	// The verifier's own expiresIn bounds token age, so an oversized embedded
	// expiry cannot stretch the acceptance window.
	if s.now().After(issuedAt.Add(s.expiresIn).Add(clockSkewTolerance)) {
		return nil, jwt.ErrTokenExpired
	}

	form := make(Form, len(claims))
	for name, value := range claims {
		if _, reserved := timingClaims[name]; reserved {
			continue
		}
		if str, ok := value.(string); ok {
			form[name] = str
		}
	}
	return form, nil
}
