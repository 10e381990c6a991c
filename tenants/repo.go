package tenants

// Repo stores assemblies by ID.
type Repo interface {
	Upsert(assembly *Tenant) error
	// Get returns ErrTenantNotFound for an unknown assembly.
	Get(assemblyID string) (*Tenant, error)
	// List pages through assemblies ordered by ID; a limit <= 0 returns the rest.
	List(offset, limit int) ([]*Tenant, error)
}
