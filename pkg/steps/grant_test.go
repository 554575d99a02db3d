// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

func TestGrantPrivilegeRendersToTableGrant(t *testing.T) {
	s := GrantPrivilege{
		Grantee:     "reporting",
		GranteeType: "role",
		Privilege:   "SELECT",
		Object:      catalog.Table("public", "orders"),
	}
	rendered := s.ToSQL()
	require.Len(t, rendered, 1)
	assert.Equal(t, `GRANT SELECT ON TABLE "public"."orders" TO "reporting"`, rendered[0].SQL)
	assert.True(t, s.IsCreate())
	assert.False(t, s.IsDrop())
}

func TestGrantPrivilegeWithGrantOption(t *testing.T) {
	s := GrantPrivilege{
		Grantee:     "reporting",
		GranteeType: "role",
		Privilege:   "SELECT",
		Object:      catalog.Table("public", "orders"),
		GrantOption: true,
	}
	rendered := s.ToSQL()
	require.Len(t, rendered, 1)
	assert.Equal(t, `GRANT SELECT ON TABLE "public"."orders" TO "reporting" WITH GRANT OPTION`, rendered[0].SQL)
}

func TestGrantPrivilegeToPublic(t *testing.T) {
	s := GrantPrivilege{
		GranteeType: "public",
		Privilege:   "SELECT",
		Object:      catalog.Table("public", "orders"),
	}
	rendered := s.ToSQL()
	require.Len(t, rendered, 1)
	assert.Contains(t, rendered[0].SQL, "TO PUBLIC")
}

func TestGrantOnFunctionIncludesArgSignature(t *testing.T) {
	s := GrantPrivilege{
		Grantee:     "app",
		GranteeType: "role",
		Privilege:   "EXECUTE",
		Object:      catalog.Function("public", "compute_total", "integer, integer"),
	}
	rendered := s.ToSQL()
	require.Len(t, rendered, 1)
	assert.Equal(t, `GRANT EXECUTE ON FUNCTION "public"."compute_total"(integer, integer) TO "app"`, rendered[0].SQL)
}

func TestRevokePrivilegeRenders(t *testing.T) {
	s := RevokePrivilege{
		Grantee:     "reporting",
		GranteeType: "role",
		Privilege:   "SELECT",
		Object:      catalog.Table("public", "orders"),
	}
	rendered := s.ToSQL()
	require.Len(t, rendered, 1)
	assert.Equal(t, `REVOKE SELECT ON TABLE "public"."orders" FROM "reporting"`, rendered[0].SQL)
	assert.True(t, s.IsDrop())
	assert.False(t, s.IsCreate())
}

func TestGrantAndRevokeIDMatchForSameTuple(t *testing.T) {
	grant := GrantPrivilege{Grantee: "app", GranteeType: "role", Privilege: "SELECT", Object: catalog.Table("public", "orders")}
	revoke := RevokePrivilege{Grantee: "app", GranteeType: "role", Privilege: "SELECT", Object: catalog.Table("public", "orders")}
	assert.Equal(t, grant.ID(), revoke.ID())
}
