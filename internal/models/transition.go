package models

import "time"

// ChequeTransition is one row of the append-only cheque status history.
// (cheque_id, request_id) carries a unique index for idempotent retries.
type ChequeTransition struct {
	TransitionID string        `db:"transition_id"`
	ChequeID     string        `db:"cheque_id"`
	FromStatus   *ChequeStatus `db:"from_status"` // NULL for the creation entry
	ToStatus     ChequeStatus  `db:"to_status"`
	Notes        string        `db:"notes"`
	RequestID    string        `db:"request_id"`
	CreatedAt    time.Time     `db:"created_at"`
	CreatedBy    string        `db:"created_by"`
}
