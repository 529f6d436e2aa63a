package mapping

import (
	"github.com/propera/pdc_backend/internal/core/domain"
	"github.com/propera/pdc_backend/internal/models"
)

// ToModelCheque converts a domain Cheque to its DB model.
func ToModelCheque(d domain.Cheque) models.Cheque {
	return models.Cheque{
		ChequeID:            d.ChequeID,
		ChequeNumber:        d.ChequeNumber,
		BankName:            d.BankName,
		Amount:              d.Amount,
		ChequeDate:          d.ChequeDate,
		TenantID:            d.TenantID,
		LeaseID:             d.LeaseID,
		InvoiceID:           d.InvoiceID,
		Status:              models.ChequeStatus(d.Status),
		BankAccountID:       d.BankAccountID,
		DepositDate:         d.DepositDate,
		ClearedDate:         d.ClearedDate,
		BouncedDate:         d.BouncedDate,
		BounceReason:        d.BounceReason,
		WithdrawalDate:      d.WithdrawalDate,
		WithdrawReason:      d.WithdrawReason,
		ReplacementChequeID: d.ReplacementChequeID,
		OriginalChequeID:    d.OriginalChequeID,
		Version:             d.Version,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheque converts a DB model Cheque to its domain representation.
func ToDomainCheque(m models.Cheque) domain.Cheque {
	return domain.Cheque{
		ChequeID:            m.ChequeID,
		ChequeNumber:        m.ChequeNumber,
		BankName:            m.BankName,
		Amount:              m.Amount,
		ChequeDate:          m.ChequeDate,
		TenantID:            m.TenantID,
		LeaseID:             m.LeaseID,
		InvoiceID:           m.InvoiceID,
		Status:              domain.ChequeStatus(m.Status),
		BankAccountID:       m.BankAccountID,
		DepositDate:         m.DepositDate,
		ClearedDate:         m.ClearedDate,
		BouncedDate:         m.BouncedDate,
		BounceReason:        m.BounceReason,
		WithdrawalDate:      m.WithdrawalDate,
		WithdrawReason:      m.WithdrawReason,
		ReplacementChequeID: m.ReplacementChequeID,
		OriginalChequeID:    m.OriginalChequeID,
		Version:             m.Version,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChequeSlice converts a slice of model cheques.
func ToDomainChequeSlice(ms []models.Cheque) []domain.Cheque {
	out := make([]domain.Cheque, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCheque(m)
	}
	return out
}

// ToModelTransition converts a domain ChequeTransition to its DB model.
func ToModelTransition(d domain.ChequeTransition) models.ChequeTransition {
	var from *models.ChequeStatus
	if d.FromStatus != nil {
		f := models.ChequeStatus(*d.FromStatus)
		from = &f
	}
	return models.ChequeTransition{
		TransitionID: d.TransitionID,
		ChequeID:     d.ChequeID,
		FromStatus:   from,
		ToStatus:     models.ChequeStatus(d.ToStatus),
		Notes:        d.Notes,
		RequestID:    d.RequestID,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDomainTransition converts a DB model ChequeTransition to its domain form.
func ToDomainTransition(m models.ChequeTransition) domain.ChequeTransition {
	var from *domain.ChequeStatus
	if m.FromStatus != nil {
		f := domain.ChequeStatus(*m.FromStatus)
		from = &f
	}
	return domain.ChequeTransition{
		TransitionID: m.TransitionID,
		ChequeID:     m.ChequeID,
		FromStatus:   from,
		ToStatus:     domain.ChequeStatus(m.ToStatus),
		Notes:        m.Notes,
		RequestID:    m.RequestID,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToDomainTransitionSlice converts a slice of model transitions.
func ToDomainTransitionSlice(ms []models.ChequeTransition) []domain.ChequeTransition {
	out := make([]domain.ChequeTransition, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransition(m)
	}
	return out
}
