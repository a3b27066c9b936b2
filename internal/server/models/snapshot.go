package models

import (
	"time"

	"github.com/dmitrijs2005/amail/internal/mask"
)

// Snapshot is a consistent copy of the ledger tables taken for backup.
// Balances and credentials belong to the host and are not included.
//
// Masks and the rolling state are raw bytes and need not be valid UTF-8,
// so they are carried as []byte (base64 in JSON).
type Snapshot struct {
	TakenAt      time.Time      `json:"taken_at"`
	RollingState []byte         `json:"rolling_state"`
	Mails        []SnapshotMail `json:"mails"`
	Index        []IndexEntry   `json:"index"`
	Contacts     []ContactEntry `json:"contacts"`
}

// SnapshotMail is the backup form of a MailRecord.
type SnapshotMail struct {
	ID         string          `json:"mail_id"`
	Timestamp  int64           `json:"timestamp"`
	Classifier mask.Classifier `json:"classifier"`
	Mask       []byte          `json:"mask"`
}

func NewSnapshotMail(r *MailRecord) SnapshotMail {
	return SnapshotMail{ID: r.ID, Timestamp: r.Timestamp, Classifier: r.Classifier, Mask: []byte(r.Mask)}
}
