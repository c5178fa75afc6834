package mailer

import (
	"context"
	"regexp"
)

// Sender delivers a magic link to its recipient. Implementations must treat
// the link as the credential it is: deliver it to the addressed mailbox and
// nowhere else. The verification key is never part of the link and never
// reaches this package.
type Sender interface {
	SendLink(ctx context.Context, email, link string) error
}

// emailRegex is intentionally loose; real validation happens when the
// recipient follows the link. It only rejects obvious garbage early.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
