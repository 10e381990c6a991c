package tenantrepofakes

import (
	"fmt"
	"sort"
	"sync"

	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

type FakeTenantRepo struct {
	tenants map[string]tenants.Tenant
	lock    sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		tenants: make(map[string]tenants.Tenant),
	}
}

func (tr *FakeTenantRepo) Upsert(tenantData *tenants.Tenant) error {
	if tenantData == nil || tenantData.ID == "" {
		return fmt.Errorf("[FakeTenantRepo Upsert] tenant id required: %w", cerrors.ErrMissingArgument)
	}
	tr.lock.Lock()
	defer tr.lock.Unlock()
	tr.tenants[tenantData.ID] = *tenantData
	return nil
}

func (tr *FakeTenantRepo) Get(tenantID string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	t, ok := tr.tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("[FakeTenantRepo Get] %q: %w", tenantID, cerrors.ErrTenantNotFound)
	}
	return &t, nil
}

// List pages through tenants ordered by ID. A non-positive limit returns everything after offset.
func (tr *FakeTenantRepo) List(offset, limit int) ([]*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	all := make([]*tenants.Tenant, 0, len(tr.tenants))
	for _, t := range tr.tenants {
		t := t
		all = append(all, &t)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*tenants.Tenant{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}
