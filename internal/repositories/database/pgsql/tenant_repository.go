package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	"github.com/propera/pdc_backend/internal/models"
	"github.com/propera/pdc_backend/internal/utils/mapping"
)

// PgxTenantRepository reads tenant identity rows maintained by the tenant/lease
// service. The PDC core never writes this table.
type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new read-only repository for tenant lookups.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// FindTenantByID retrieves a tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, display_name, lease_id, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	var leaseID sql.NullString
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&m.TenantID,
		&m.DisplayName,
		&leaseID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tenant by ID "+tenantID, err)
	}

	m.LeaseID = leaseID.String
	domainTenant := mapping.ToDomainTenant(m)
	return &domainTenant, nil
}
