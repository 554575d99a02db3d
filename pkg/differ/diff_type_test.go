// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func enumType(values ...string) *catalog.TypeEntity {
	return &catalog.TypeEntity{
		SchemaName: "public",
		Name:       "status",
		Kind:       catalog.TypeKindEnum,
		EnumValues: values,
	}
}

// Adding a single enum value.
func TestDiffTypeEnumAddSingleValue(t *testing.T) {
	old := enumType("active", "inactive")
	newT := enumType("active", "inactive", "pending")

	result := diffType(old, newT)
	require.Len(t, result, 1)

	add, ok := result[0].(steps.AddEnumValue)
	require.True(t, ok)
	assert.Equal(t, "pending", add.Value)
	assert.Equal(t, "inactive", add.After)

	rendered := add.ToSQL()
	require.Len(t, rendered, 1)
	assert.Equal(t, `ALTER TYPE "public"."status" ADD VALUE 'pending' AFTER 'inactive'`, rendered[0].SQL)
}

// Adding two enum values in one diff, each its own statement.
func TestDiffTypeEnumAddTwoValues(t *testing.T) {
	old := enumType("active")
	newT := enumType("active", "inactive", "pending")

	result := diffType(old, newT)
	require.Len(t, result, 2)

	first, ok := result[0].(steps.AddEnumValue)
	require.True(t, ok)
	assert.Equal(t, "inactive", first.Value)
	assert.Equal(t, "active", first.After)

	second, ok := result[1].(steps.AddEnumValue)
	require.True(t, ok)
	assert.Equal(t, "pending", second.Value)
	assert.Equal(t, "inactive", second.After)
}

func TestDiffTypeEnumRemovalForcesDropRecreate(t *testing.T) {
	old := enumType("active", "inactive", "pending")
	newT := enumType("active", "pending")

	result := diffType(old, newT)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}

func TestDiffTypeEnumReorderForcesDropRecreate(t *testing.T) {
	old := enumType("active", "inactive")
	newT := enumType("inactive", "active")

	result := diffType(old, newT)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}

func TestDiffTypeIdempotent(t *testing.T) {
	same := enumType("active", "inactive")
	assert.Empty(t, diffType(same, same))
}

func TestDiffTypeCreateAndDrop(t *testing.T) {
	newT := enumType("active")
	created := diffType(nil, newT)
	require.Len(t, created, 1)
	assert.True(t, created[0].IsCreate())

	dropped := diffType(newT, nil)
	require.Len(t, dropped, 1)
	assert.True(t, dropped[0].IsDrop())
}

func TestDiffTypeNewValueBeforeAnySurvivorForcesDropRecreate(t *testing.T) {
	old := enumType("active", "inactive")
	newT := enumType("pending", "active", "inactive")

	result := diffType(old, newT)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}
