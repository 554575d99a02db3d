// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func grantEntity(grantee, privilege string, grantOption bool) *catalog.GrantEntity {
	return &catalog.GrantEntity{
		Grantee: grantee, GranteeType: "role", Privilege: privilege,
		Object: catalog.Table("public", "orders"), GrantOption: grantOption,
	}
}

func TestDiffGrantsAddedAndRevoked(t *testing.T) {
	keep := grantEntity("app", "SELECT", false)
	revoked := grantEntity("reporting", "SELECT", false)
	added := grantEntity("billing", "SELECT", false)

	old := map[catalog.ObjectId]*catalog.GrantEntity{
		keep.ID():    keep,
		revoked.ID(): revoked,
	}
	newGrants := map[catalog.ObjectId]*catalog.GrantEntity{
		keep.ID():  keep,
		added.ID(): added,
	}

	result := diffGrants(old, newGrants)
	require.Len(t, result, 2)

	var sawRevoke, sawGrant bool
	for _, s := range result {
		switch st := s.(type) {
		case steps.RevokePrivilege:
			sawRevoke = true
			assert.Equal(t, "reporting", st.Grantee)
		case steps.GrantPrivilege:
			sawGrant = true
			assert.Equal(t, "billing", st.Grantee)
		}
	}
	assert.True(t, sawRevoke)
	assert.True(t, sawGrant)
}

func TestDiffGrantsGrantOptionChangeRevokesAndRegrants(t *testing.T) {
	old := grantEntity("app", "SELECT", false)
	newG := grantEntity("app", "SELECT", true)

	oldMap := map[catalog.ObjectId]*catalog.GrantEntity{old.ID(): old}
	newMap := map[catalog.ObjectId]*catalog.GrantEntity{newG.ID(): newG}

	result := diffGrants(oldMap, newMap)
	require.Len(t, result, 2)
	_, ok := result[0].(steps.RevokePrivilege)
	assert.True(t, ok)
	grant, ok := result[1].(steps.GrantPrivilege)
	require.True(t, ok)
	assert.True(t, grant.GrantOption)
}

func TestDiffGrantsIdempotent(t *testing.T) {
	g := grantEntity("app", "SELECT", false)
	m := map[catalog.ObjectId]*catalog.GrantEntity{g.ID(): g}
	assert.Empty(t, diffGrants(m, m))
}

func TestDiffExtensionVersionChangeForcesDropRecreate(t *testing.T) {
	old := &catalog.ExtensionEntity{Name: "pgcrypto", Version: "1.2", SchemaName: "public"}
	newE := &catalog.ExtensionEntity{Name: "pgcrypto", Version: "1.3", SchemaName: "public"}

	result := diffExtension(old, newE)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}

func TestDiffExtensionIdempotent(t *testing.T) {
	e := &catalog.ExtensionEntity{Name: "pgcrypto", Version: "1.3", SchemaName: "public"}
	assert.Empty(t, diffExtension(e, e))
}

func TestDiffExtensionCreateAndDrop(t *testing.T) {
	e := &catalog.ExtensionEntity{Name: "pgcrypto", Version: "1.3", SchemaName: "public"}

	created := diffExtension(nil, e)
	require.Len(t, created, 1)
	assert.True(t, created[0].IsCreate())

	dropped := diffExtension(e, nil)
	require.Len(t, dropped, 1)
	assert.True(t, dropped[0].IsDrop())
}
