// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered ledger identity. Name is the account identifier
// used everywhere else (mail indices, contacts, balances).
type Account struct {
	Name      string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}

// Call carries the implicit inputs of a ledger operation: the resolved
// caller and the value attached to the call.
type Call struct {
	Caller string
	Value  int64
}
