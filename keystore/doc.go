// Package keystore persists magic link verification keys between issuance
// and redemption.
//
// The key handed to the issuance callback is the only piece of state
// correlating the two halves of an authentication attempt. This package
// stores it server-side under an opaque identifier (typically carried in a
// short-lived cookie) and hands it back exactly once: Consume is
// get-and-delete, which is what makes a magic link single-use.
//
// Three implementations are provided:
//
//   - Memory: mutex-guarded map with an optional janitor goroutine, for
//     tests and single-process deployments.
//   - Redis: TTL-based expiry and GETDEL consumption, safe across multiple
//     application instances.
//   - Postgres: a small table with DELETE ... RETURNING consumption, for
//     deployments that already run PostgreSQL and want no extra moving parts.
//
// All implementations report missing, expired and already-consumed keys as
// the same ErrNotFound.
package keystore
