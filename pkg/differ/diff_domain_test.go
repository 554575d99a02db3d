// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func baseDomain() *catalog.DomainEntity {
	return &catalog.DomainEntity{
		SchemaName: "public",
		Name:       "positive_int",
		BaseType:   "integer",
		CheckConstraints: []catalog.DomainCheck{
			{Name: "positive_int_check", Expression: "VALUE > 0"},
		},
	}
}

func TestDiffDomainBaseTypeChangeForcesDropRecreate(t *testing.T) {
	old := baseDomain()
	newD := baseDomain()
	newD.BaseType = "bigint"

	result := diffDomain(old, newD)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}

func TestDiffDomainAddCheckConstraintAltersInPlace(t *testing.T) {
	old := baseDomain()
	newD := baseDomain()
	newD.CheckConstraints = append(newD.CheckConstraints, catalog.DomainCheck{Name: "under_max", Expression: "VALUE < 1000"})

	result := diffDomain(old, newD)
	require.Len(t, result, 1)
	alter, ok := result[0].(steps.AlterDomain)
	require.True(t, ok)
	require.Len(t, alter.AddChecks, 1)
	assert.Equal(t, "under_max", alter.AddChecks[0].Name)
	assert.Empty(t, alter.DropChecks)
}

func TestDiffDomainChangedCheckExpressionIsDropAndAdd(t *testing.T) {
	old := baseDomain()
	newD := baseDomain()
	newD.CheckConstraints = []catalog.DomainCheck{{Name: "positive_int_check", Expression: "VALUE >= 0"}}

	result := diffDomain(old, newD)
	require.Len(t, result, 1)
	alter, ok := result[0].(steps.AlterDomain)
	require.True(t, ok)
	assert.Equal(t, []string{"positive_int_check"}, alter.DropChecks)
	require.Len(t, alter.AddChecks, 1)
	assert.Equal(t, "VALUE >= 0", alter.AddChecks[0].Expression)
}

func TestDiffDomainNotNullToggle(t *testing.T) {
	old := baseDomain()
	newD := baseDomain()
	newD.NotNull = true

	result := diffDomain(old, newD)
	require.Len(t, result, 1)
	alter, ok := result[0].(steps.AlterDomain)
	require.True(t, ok)
	assert.True(t, alter.SetNotNull)
	assert.False(t, alter.DropNotNull)
}

func TestDiffDomainIdempotent(t *testing.T) {
	d := baseDomain()
	assert.Empty(t, diffDomain(d, d))
}
