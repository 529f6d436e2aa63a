package dto

import (
	"time"

	"github.com/propera/pdc_backend/internal/core/domain"
)

// CreateBankAccountRequest defines the data needed to register a deposit account.
type CreateBankAccountRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required,min=6"`
}

// UpdateBankAccountStatusRequest flips an account between ACTIVE and INACTIVE.
type UpdateBankAccountStatusRequest struct {
	Status domain.BankAccountStatus `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

// BankAccountResponse exposes an account with its number masked.
type BankAccountResponse struct {
	BankAccountID string                   `json:"bankAccountID"`
	BankName      string                   `json:"bankName"`
	AccountNumber string                   `json:"accountNumber"` // Masked
	Status        domain.BankAccountStatus `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// TenantResponse exposes the read-only tenant identity projection.
type TenantResponse struct {
	TenantID    string `json:"tenantID"`
	DisplayName string `json:"displayName"`
	LeaseID     string `json:"leaseID,omitempty"`
}

// ToBankAccountResponse converts a domain account, masking its number.
func ToBankAccountResponse(a domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		BankName:      a.BankName,
		AccountNumber: a.MaskedNumber(),
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}

// ToTenantResponse converts a domain tenant to its API representation.
func ToTenantResponse(t domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:    t.TenantID,
		DisplayName: t.DisplayName,
		LeaseID:     t.LeaseID,
	}
}
