package models

// BankAccount is the DB representation of a company deposit account.
type BankAccount struct {
	BankAccountID string `db:"bank_account_id"`
	BankName      string `db:"bank_name"`
	AccountNumber string `db:"account_number"`
	Status        string `db:"status"` // ACTIVE or INACTIVE
	AuditFields
}

// Tenant is the read-only tenant identity row consumed for display enrichment.
type Tenant struct {
	TenantID    string `db:"tenant_id"`
	DisplayName string `db:"display_name"`
	LeaseID     string `db:"lease_id"` // Nullable
	AuditFields
}
