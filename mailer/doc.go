// Package mailer delivers magic links to their recipients.
//
// It covers the out-of-band transport half of the protocol: the issuance
// callback builds a redemption URL carrying only the token and hands it to a
// Sender. Two implementations are provided: a Postmark-backed sender for
// production and a file-writing DevSender for local development.
//
// Link tracking is deliberately disabled on the Postmark sender because
// tracked links are rewritten through a redirect domain, and a rewritten
// magic link is a broken magic link.
package mailer
