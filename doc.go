// Package magiclink implements stateless, passwordless "magic link"
// authentication: a user submits a contact identifier, receives a
// time-limited single-use link, and is authenticated on return without a
// stored password or server-side session table.
//
// The protocol is deliberately split in two halves that only make sense
// together. At issuance a fresh random key signs a compact expiring token
// over the submitted form fields; the token goes to the user inside the link
// while the key stays server-side with the caller. At redemption the caller
// recovers the key, attaches it to the request, and the token is verified
// against it. The token alone proves nothing - whoever intercepts the link
// still lacks the key, and the key never travels to the client.
//
// # Usage
//
// One generic entry point serves both modes; a caller-supplied callback is
// the only place business logic lives:
//
//	result, err := magiclink.Authenticate(r, func(ctx context.Context, outcome magiclink.Outcome) (string, error) {
//	    switch o := outcome.(type) {
//	    case magiclink.Issued:
//	        // Persist o.Key server-side, email a link carrying o.Token.
//	        return "link sent", store.Save(ctx, sessionID, o.Key, 5*time.Minute)
//	    case magiclink.Verified:
//	        // o.Form holds the fields submitted at issuance; no key here.
//	        return o.Form["email"], nil
//	    }
//	    return "", errors.New("unreachable")
//	})
//
// Issuer mode runs when the request carries neither a "token" nor a "key"
// query parameter; verifier mode when it carries both; anything else fails
// with ErrMalformedRequest. Every verification problem - bad signature,
// wrong key, expired, malformed - surfaces as the single
// ErrAuthenticationFailed so error content cannot be used as an oracle.
//
// The package stores nothing and sends nothing. Key persistence between the
// two halves lives in the keystore subpackage, link delivery in the mailer
// subpackage, and single-use enforcement is the caller invalidating the key
// after its first successful verification (keystore.Store.Consume does this
// in one step).
package magiclink
