package domain

import "time"

// ChequeTransition is one entry of a cheque's append-only status history.
// Rows are never updated or deleted; replayed in order they form the full audit
// trail for the instrument.
type ChequeTransition struct {
	TransitionID string        `json:"transitionID"` // Primary key (UUID)
	ChequeID     string        `json:"chequeID"`     // FK -> cheques.cheque_id
	FromStatus   *ChequeStatus `json:"fromStatus"`   // Nil for the creation entry
	ToStatus     ChequeStatus  `json:"toStatus"`
	Notes        string        `json:"notes"`     // Free text, e.g. bounce reason
	RequestID    string        `json:"requestID"` // Caller idempotency key, unique per cheque
	CreatedAt    time.Time     `json:"createdAt"`
	CreatedBy    string        `json:"createdBy"` // Acting user, or the sweep's system actor
}

// SweepActorID attributes transitions written by the due-window sweep rather than
// a staff action.
const SweepActorID = "system:due-sweep"
