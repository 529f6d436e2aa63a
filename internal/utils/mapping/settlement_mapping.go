package mapping

import (
	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/propera/pdc_backend/internal/models"
)

// ToModelSettlement converts a domain WithdrawalSettlement to its DB model.
func ToModelSettlement(d domain.WithdrawalSettlement) models.WithdrawalSettlement {
	return models.WithdrawalSettlement{
		SettlementID: d.SettlementID,
		ChequeID:     d.ChequeID,
		TenantID:     d.TenantID,
		Method:       string(d.Method),
		Amount:       d.Amount,
		Status:       string(d.Status),
		TxnReference: d.TxnReference,
		NewChequeID:  d.NewChequeID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettlement converts a DB model WithdrawalSettlement to its domain form.
func ToDomainSettlement(m models.WithdrawalSettlement) domain.WithdrawalSettlement {
	return domain.WithdrawalSettlement{
		SettlementID: m.SettlementID,
		ChequeID:     m.ChequeID,
		TenantID:     m.TenantID,
		Method:       domain.SettlementMethod(m.Method),
		Amount:       m.Amount,
		Status:       domain.SettlementStatus(m.Status),
		TxnReference: m.TxnReference,
		NewChequeID:  m.NewChequeID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccount converts a domain BankAccount to its DB model.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a DB model BankAccount to its domain form.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		Status:        domain.BankAccountStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTenant converts a DB model Tenant to its domain form.
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:    m.TenantID,
		DisplayName: m.DisplayName,
		LeaseID:     m.LeaseID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
