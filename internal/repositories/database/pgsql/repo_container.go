package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	chequeRepo := newPgxChequeRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool)
	bankAccountRepo := newPgxBankAccountRepository(dbPool)
	tenantRepo := newPgxTenantRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ChequeRepo:      chequeRepo,
		SettlementRepo:  settlementRepo,
		BankAccountRepo: bankAccountRepo,
		TenantRepo:      tenantRepo,
		ReportingRepo:   reportingRepo,
	}
}
