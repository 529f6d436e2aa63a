package services

import (
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Tenant and bank account services first since the lifecycle engine guards
	// against them.
	container.Tenant = NewTenantService(repos.TenantRepo)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo)

	// Chain service before the cheque service: replacement and withdrawal flows
	// consult it mid-transition.
	container.Chain = NewChainService(repos.ChequeRepo, repos.SettlementRepo)

	container.Cheque = NewChequeService(
		repos.ChequeRepo,
		container.BankAccount,
		container.Tenant,
		container.Chain,
		cfg.DueWindowDays,
		cfg.DepositGraceDays,
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.SettlementRepo, container.Tenant)

	return container
}
