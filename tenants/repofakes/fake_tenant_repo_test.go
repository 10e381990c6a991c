package tenantrepofakes_test

import (
	"testing"

	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/tenants"
	tenantrepofakes "github.com/jrsteele09/billing-console/tenants/repofakes"
	"github.com/stretchr/testify/require"
)

func TestFakeTenantRepo(t *testing.T) {
	repo := tenantrepofakes.NewFakeTenantRepo()
	for _, id := range []string{"tema", "accra", "kumasi"} {
		require.NoError(t, repo.Upsert(&tenants.Tenant{ID: id, Name: id, Active: true}))
	}
	require.Error(t, repo.Upsert(&tenants.Tenant{}))

	got, err := repo.Get("accra")
	require.NoError(t, err)
	require.Equal(t, "accra", got.Name)

	got.Name = "changed"
	again, err := repo.Get("accra")
	require.NoError(t, err)
	require.Equal(t, "accra", again.Name)

	_, err = repo.Get("nope")
	require.ErrorIs(t, err, cerrors.ErrTenantNotFound)

	tests := []struct {
		name          string
		offset, limit int
		want          []string
	}{
		{name: "all", limit: 0, want: []string{"accra", "kumasi", "tema"}},
		{name: "first page", limit: 2, want: []string{"accra", "kumasi"}},
		{name: "second page", offset: 2, limit: 2, want: []string{"tema"}},
		{name: "past the end", offset: 5, limit: 2, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(tt.offset, tt.limit)
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, tn := range list {
				ids = append(ids, tn.ID)
			}
			require.Equal(t, tt.want, ids)
		})
	}
}
