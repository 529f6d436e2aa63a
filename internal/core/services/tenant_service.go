package services

import (
	"context"
	"errors"

	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
)

// tenantService exposes the read-only tenant projection maintained by the
// tenant/lease collaborator.
type tenantService struct {
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tenantRepo}
}

// Ensure tenantService implements the portssvc.TenantSvcFacade interface
var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// GetTenantByID retrieves a tenant by its unique identifier.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// EnsureExists verifies a tenant id resolves.
func (s *tenantService) EnsureExists(ctx context.Context, tenantID string) error {
	_, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFieldError("tenantID", "tenant "+tenantID+" does not exist")
		}
		return err
	}
	return nil
}
