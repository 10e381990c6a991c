package users_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/billing-console/users"
	fakeuserrepo "github.com/jrsteele09/billing-console/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("s3cret-Pass")
	require.NoError(t, err)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("s3cret-Pass"))
	require.False(t, u.CheckPassword("wrong"))
}

func TestUser_JSONNeverCarriesPasswordHash(t *testing.T) {
	data, err := json.Marshal(users.User{ID: "u1", Name: "Ama", PasswordHash: "hash", Active: true})
	require.NoError(t, err)
	require.NotContains(t, string(data), "hash")
	require.Contains(t, string(data), `"active":true`)
}

func TestUser_Roles(t *testing.T) {
	admin := &users.User{Role: users.RoleAdmin, AssemblyID: "demo"}
	collector := &users.User{Role: users.RoleCollector, AssemblyID: "demo"}
	super := &users.User{Role: users.RoleSuperAdmin}

	require.True(t, admin.IsAdmin())
	require.False(t, collector.IsAdmin())
	require.True(t, collector.InAssembly("demo"))
	require.False(t, collector.InAssembly("other"))
	require.True(t, super.InAssembly("other"))
}

func TestFakeUserRepo(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.Upsert(&users.User{ID: "u2", Email: "Kofi@Demo.gov", AssemblyID: "demo", Active: true}))
	require.NoError(t, repo.Upsert(&users.User{ID: "u1", Email: "esi@other.gov", AssemblyID: "other", Active: true}))

	u, err := repo.GetByEmail("kofi@demo.gov")
	require.NoError(t, err)
	require.Equal(t, "u2", u.ID)

	require.NoError(t, repo.SetActive("u2", false))
	u, err = repo.GetByID("u2")
	require.NoError(t, err)
	require.False(t, u.Active)

	list, err := repo.List("demo")
	require.NoError(t, err)
	require.Len(t, list, 1)

	all, err := repo.List("")
	require.NoError(t, err)
	require.Equal(t, "u1", all[0].ID)

	_, err = repo.GetByID("missing")
	require.Error(t, err)
	require.Error(t, repo.SetActive("missing", true))
}
