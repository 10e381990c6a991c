package backend

import (
	"fmt"
	"time"

	"github.com/jrsteele09/billing-console/billing"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/jrsteele09/billing-console/users"
	"github.com/rs/zerolog/log"
)

const SuperAdminEmail = "root@billing.local"

// DefaultAssemblies are seeded on start-up.
var DefaultAssemblies = []tenants.Tenant{
	{ID: "demo", Name: "Demo Municipal Assembly", Region: "Greater Accra", Currency: billing.DefaultCurrency, Active: true},
	{ID: "tema", Name: "Tema Metropolitan Assembly", Region: "Greater Accra", Currency: billing.DefaultCurrency, Active: true},
}

// AdminEmail is the seeded administrator login of an assembly.
func AdminEmail(assemblyID string) string {
	return "admin@" + assemblyID + ".gov.gh"
}

// Bootstrap seeds assemblies, staff and ledger data. Every seeded account shares the configured
// seed password.
func Bootstrap(cfg config.BackendConfig, deps Deps, now time.Time) error {
	hash, err := users.HashPassword(cfg.GetSeedPassword())
	if err != nil {
		return fmt.Errorf("[backend Bootstrap] failed to hash seed password: %w", err)
	}

	assemblies := append([]tenants.Tenant(nil), DefaultAssemblies...)
	if _, err := findAssembly(assemblies, cfg.GetDefaultTenantID()); err != nil {
		assemblies = append(assemblies, tenants.Tenant{
			ID:       cfg.GetDefaultTenantID(),
			Name:     cfg.GetDefaultTenantID(),
			Currency: billing.DefaultCurrency,
			Active:   true,
		})
	}

	if err := deps.Users.Upsert(&users.User{
		ID:           "super-admin",
		Name:         "System Administrator",
		Email:        SuperAdminEmail,
		Role:         users.RoleSuperAdmin,
		Active:       true,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("[backend Bootstrap] super admin: %w", err)
	}

	for i := range assemblies {
		a := assemblies[i]
		if err := deps.Tenants.Upsert(&a); err != nil {
			return fmt.Errorf("[backend Bootstrap] assembly %s: %w", a.ID, err)
		}
		for _, u := range seedStaff(a.ID, hash) {
			if err := deps.Users.Upsert(u); err != nil {
				return fmt.Errorf("[backend Bootstrap] user %s: %w", u.ID, err)
			}
		}
		if err := billing.Seed(deps.Ledger, a.ID, now); err != nil {
			return fmt.Errorf("[backend Bootstrap] ledger %s: %w", a.ID, err)
		}
		log.Info().Str("assembly", a.ID).Str("admin", AdminEmail(a.ID)).Msg("seeded assembly")
	}
	return nil
}

func seedStaff(assemblyID, hash string) []*users.User {
	collectors := billing.SeedCollectors(assemblyID)
	return []*users.User{
		{ID: assemblyID + "-admin", Name: "Assembly Administrator", Phone: "+233200000001", Email: AdminEmail(assemblyID), Role: users.RoleAdmin, AssemblyID: assemblyID, Active: true, PasswordHash: hash},
		{ID: assemblyID + "-finance", Name: "Finance Officer", Phone: "+233200000002", Email: "finance@" + assemblyID + ".gov.gh", Role: users.RoleFinance, AssemblyID: assemblyID, Active: true, PasswordHash: hash},
		{ID: collectors[0], Name: "Kwame Owusu", Phone: "+233200000003", Role: users.RoleCollector, AssemblyID: assemblyID, ZoneID: assemblyID + "-zone-north", Active: true, PasswordHash: hash},
		{ID: collectors[1], Name: "Efua Addo", Phone: "+233200000004", Role: users.RoleCollector, AssemblyID: assemblyID, ZoneID: assemblyID + "-zone-south", Active: true, PasswordHash: hash},
	}
}

func findAssembly(list []tenants.Tenant, id string) (tenants.Tenant, error) {
	for _, t := range list {
		if t.ID == id {
			return t, nil
		}
	}
	return tenants.Tenant{}, fmt.Errorf("assembly %q not seeded", id)
}
