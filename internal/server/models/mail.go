package models

import "github.com/dmitrijs2005/amail/internal/mask"

// MailRole tells which side of a mail an index entry belongs to.
type MailRole string

const (
	RoleSent     MailRole = "sent"
	RoleReceived MailRole = "received"
)

// MailRecord is everything the ledger keeps about a mail id. It is written
// once by a send and never changes.
type MailRecord struct {
	ID         string          `json:"mail_id"`
	Timestamp  int64           `json:"timestamp"` // block timestamp, Unix milliseconds
	Classifier mask.Classifier `json:"classifier"`
	Mask       string          `json:"mask"`
}

// MailSecret is the part of a MailRecord revealed to sender and recipient.
type MailSecret struct {
	Mask       string
	Classifier mask.Classifier
}

// IndexEntry is one row of a sent or received index.
type IndexEntry struct {
	Account string   `json:"account"`
	Role    MailRole `json:"role"`
	Seq     int64    `json:"seq"`
	MailID  string   `json:"mail_id"`
}

// ContactEntry is one row of a contact list.
type ContactEntry struct {
	Owner   string `json:"owner"`
	Seq     int64  `json:"seq"`
	Contact string `json:"contact"`
}
