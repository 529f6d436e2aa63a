package domain

// BankAccountStatus indicates whether an account may receive deposits.
type BankAccountStatus string

const (
	BankAccountActive   BankAccountStatus = "ACTIVE"
	BankAccountInactive BankAccountStatus = "INACTIVE"
)

// BankAccount is a company account cheques are deposited into. Deposit transitions
// must resolve the referenced account to ACTIVE.
type BankAccount struct {
	BankAccountID string            `json:"bankAccountID"` // Primary key (UUID)
	BankName      string            `json:"bankName"`
	AccountNumber string            `json:"accountNumber"` // Stored in full, exposed masked
	Status        BankAccountStatus `json:"status"`
	AuditFields
}

// MaskedNumber returns the account number with all but the last four digits hidden.
func (a BankAccount) MaskedNumber() string {
	if len(a.AccountNumber) <= 4 {
		return a.AccountNumber
	}
	masked := make([]byte, len(a.AccountNumber))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], a.AccountNumber[len(a.AccountNumber)-4:])
	return string(masked)
}
