package domain

import "time"

// AllowedTransitions is the single authority on transition legality. Guard data
// requirements (bank account for deposit, reason for bounce, ...) are enforced by
// the cheque service on top of this table.
var AllowedTransitions = map[ChequeStatus][]ChequeStatus{
	StatusReceived:  {StatusDue, StatusCancelled, StatusWithdrawn},
	StatusDue:       {StatusDeposited, StatusWithdrawn},
	StatusDeposited: {StatusCleared, StatusBounced},
	StatusBounced:   {StatusReplaced},
	// CLEARED, CANCELLED, REPLACED, WITHDRAWN are terminal.
	StatusCleared:   {},
	StatusCancelled: {},
	StatusReplaced:  {},
	StatusWithdrawn: {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ChequeStatus) bool {
	for _, allowed := range AllowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is legal from the status.
func IsTerminal(s ChequeStatus) bool {
	return len(AllowedTransitions[s]) == 0
}

// IsValidStatus reports whether s is one of the eight enumerated statuses.
func IsValidStatus(s ChequeStatus) bool {
	_, ok := AllowedTransitions[s]
	return ok
}

// InitialStatus computes the status a cheque is created in: DUE when its date is
// already inside the due window as of now, RECEIVED otherwise.
func InitialStatus(chequeDate, now time.Time, dueWindowDays int) ChequeStatus {
	if WithinDueWindow(chequeDate, now, dueWindowDays) {
		return StatusDue
	}
	return StatusReceived
}

// WithinDueWindow reports whether chequeDate falls on or before now+dueWindowDays,
// compared on calendar dates in UTC.
func WithinDueWindow(chequeDate, now time.Time, dueWindowDays int) bool {
	boundary := truncateToDate(now).AddDate(0, 0, dueWindowDays)
	return !truncateToDate(chequeDate).After(boundary)
}

// DaysUntilDue is cheque date minus today in calendar days. Negative values flag
// instruments overdue for deposit.
func DaysUntilDue(chequeDate, now time.Time) int {
	return int(truncateToDate(chequeDate).Sub(truncateToDate(now)).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
