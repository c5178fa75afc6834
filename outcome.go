package magiclink

import "context"

// Form is the identity data submitted by the user, decoded from the request
// body at issuance and reconstituted from the verified token at redemption.
// Both branches present the same shape to the callback.
type Form map[string]string

// Outcome is the value passed to the verification callback. It is a sealed
// union of exactly two shapes: Issued in issuer mode and Verified in verifier
// mode. Verified has no Key field on purpose - by the time a token has been
// validated the key's job is done and the caller should be discarding it, so
// the type system simply does not offer it back.
type Outcome interface {
	outcome()
}

// Issued is the issuer-mode outcome: the decoded form, the signed token to
// embed in the link sent to the user, and the verification key the caller
// must persist server-side. The key must never be exposed to the client or
// placed inside the link.
type Issued struct {
	Form  Form
	Token string
	Key   string
}

// Verified is the verifier-mode outcome: the form fields recovered from the
// validated token, plus the token itself.
type Verified struct {
	Form  Form
	Token string
}

func (Issued) outcome()   {}
func (Verified) outcome() {}

// Callback receives the outcome of an authentication attempt and runs all
// business logic: persisting the key and sending the link in the issuance
// branch, looking up or creating the user in the validation branch. Its
// result and error are returned by Authenticate unchanged.
type Callback[T any] func(ctx context.Context, outcome Outcome) (T, error)
