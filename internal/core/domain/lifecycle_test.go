package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propera/pdc_backend/internal/core/domain"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.ChequeStatus
		to      domain.ChequeStatus
		allowed bool
	}{
		{"received to due", domain.StatusReceived, domain.StatusDue, true},
		{"received to cancelled", domain.StatusReceived, domain.StatusCancelled, true},
		{"received to withdrawn", domain.StatusReceived, domain.StatusWithdrawn, true},
		{"received cannot deposit directly", domain.StatusReceived, domain.StatusDeposited, false},
		{"due to deposited", domain.StatusDue, domain.StatusDeposited, true},
		{"due to withdrawn", domain.StatusDue, domain.StatusWithdrawn, true},
		{"due cannot cancel", domain.StatusDue, domain.StatusCancelled, false},
		{"deposited to cleared", domain.StatusDeposited, domain.StatusCleared, true},
		{"deposited to bounced", domain.StatusDeposited, domain.StatusBounced, true},
		{"deposited cannot withdraw", domain.StatusDeposited, domain.StatusWithdrawn, false},
		{"bounced to replaced", domain.StatusBounced, domain.StatusReplaced, true},
		{"bounced cannot re-deposit", domain.StatusBounced, domain.StatusDeposited, false},
		{"cleared is terminal", domain.StatusCleared, domain.StatusDue, false},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusReceived, false},
		{"replaced is terminal", domain.StatusReplaced, domain.StatusDeposited, false},
		{"withdrawn is terminal", domain.StatusWithdrawn, domain.StatusReceived, false},
		{"no self transition", domain.StatusDue, domain.StatusDue, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, domain.CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []domain.ChequeStatus{
		domain.StatusCleared, domain.StatusCancelled, domain.StatusReplaced, domain.StatusWithdrawn,
	}
	for _, s := range terminal {
		assert.True(t, domain.IsTerminal(s), "%s should be terminal", s)
	}

	live := []domain.ChequeStatus{
		domain.StatusReceived, domain.StatusDue, domain.StatusDeposited, domain.StatusBounced,
	}
	for _, s := range live {
		assert.False(t, domain.IsTerminal(s), "%s should not be terminal", s)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, domain.IsValidStatus(domain.StatusReceived))
	assert.True(t, domain.IsValidStatus(domain.StatusWithdrawn))
	assert.False(t, domain.IsValidStatus(domain.ChequeStatus("PENDING")))
	assert.False(t, domain.IsValidStatus(domain.ChequeStatus("")))
}

func TestInitialStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		chequeDate time.Time
		expected   domain.ChequeStatus
	}{
		{"far future date", now.AddDate(0, 2, 0), domain.StatusReceived},
		{"just outside window", now.AddDate(0, 0, 8), domain.StatusReceived},
		{"on window boundary", now.AddDate(0, 0, 7), domain.StatusDue},
		{"inside window", now.AddDate(0, 0, 2), domain.StatusDue},
		{"today", now, domain.StatusDue},
		{"already past", now.AddDate(0, 0, -3), domain.StatusDue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.InitialStatus(tc.chequeDate, now, 7))
		})
	}
}

func TestWithinDueWindowComparesCalendarDates(t *testing.T) {
	// Late evening vs early morning must not shift the boundary.
	now := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	boundaryDay := time.Date(2025, 3, 17, 0, 1, 0, 0, time.UTC)

	assert.True(t, domain.WithinDueWindow(boundaryDay, now, 7))
	assert.False(t, domain.WithinDueWindow(boundaryDay.AddDate(0, 0, 1), now, 7))
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, domain.DaysUntilDue(now, now))
	assert.Equal(t, 5, domain.DaysUntilDue(now.AddDate(0, 0, 5), now))
	assert.Equal(t, -4, domain.DaysUntilDue(now.AddDate(0, 0, -4), now))
	// Time-of-day differences must not change the calendar distance.
	assert.Equal(t, 1, domain.DaysUntilDue(time.Date(2025, 3, 11, 0, 30, 0, 0, time.UTC), now))
}
