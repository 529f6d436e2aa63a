package domain

// Tenant is the read-only identity projection consumed from the tenant/lease
// service. The PDC core never writes tenants.
type Tenant struct {
	TenantID    string `json:"tenantID"`
	DisplayName string `json:"displayName"`
	LeaseID     string `json:"leaseID"` // Nullable current lease linkage
	AuditFields
}
