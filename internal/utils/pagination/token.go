package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from a cheque date and creation time.
// This is the cursor for cheque-date-ordered listings.
func EncodeToken(chequeDate time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", chequeDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into cheque date and creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	tokenStr := string(decodedBytes)
	parts := strings.SplitN(tokenStr, "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	chequeDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (cheque date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return chequeDate, createdAt, nil
}

// EncodeAmountToken creates a cursor for amount-ordered listings. The creation
// time breaks ties between equal amounts.
func EncodeAmountToken(amount decimal.Decimal, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", amount.String(), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeAmountToken parses an amount-ordered cursor back into its fields.
func DecodeAmountToken(token string) (decimal.Decimal, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid pagination token format (amount parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return amount, createdAt, nil
}
