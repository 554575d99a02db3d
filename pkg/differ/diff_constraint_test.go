// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func fkConstraint(onDelete string) *catalog.ConstraintEntity {
	return &catalog.ConstraintEntity{
		SchemaName: "public",
		Table:      "orders",
		Name:       "orders_account_id_fkey",
		Kind:       catalog.ConstraintKindForeignKey,
		Columns:    []string{"account_id"},
		Definition: "FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE " + onDelete,
		FK: &catalog.ForeignKeyBody{
			ReferencedSchema: "public", ReferencedTable: "accounts", ReferencedColumns: []string{"id"},
			OnDelete: onDelete,
		},
	}
}

// Changing a foreign key's ON DELETE behavior is a body change and
// forces drop + recreate, since constraints have no in-place alter path.
func TestDiffConstraintOnDeleteChangeForcesDropRecreate(t *testing.T) {
	old := fkConstraint("RESTRICT")
	newC := fkConstraint("CASCADE")

	result := diffConstraint(old, newC)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())

	drop, ok := result[0].(steps.DropConstraint)
	require.True(t, ok)
	assert.Equal(t, "orders_account_id_fkey", drop.Name)

	create, ok := result[1].(steps.CreateConstraint)
	require.True(t, ok)
	assert.Contains(t, create.Definition, "ON DELETE CASCADE")
}

func TestDiffConstraintIdempotent(t *testing.T) {
	c := fkConstraint("CASCADE")
	assert.Empty(t, diffConstraint(c, c))
}

func TestDiffConstraintCommentOnlyChangeDoesNotDropRecreate(t *testing.T) {
	old := fkConstraint("CASCADE")
	newC := fkConstraint("CASCADE")
	comment := "cascades account deletion to orders"
	newC.Comment = &comment

	result := diffConstraint(old, newC)
	require.Len(t, result, 1)
	_, ok := result[0].(steps.AlterConstraintComment)
	assert.True(t, ok)
}

func TestDiffConstraintCreateAndDrop(t *testing.T) {
	c := fkConstraint("CASCADE")

	created := diffConstraint(nil, c)
	require.Len(t, created, 1)
	assert.True(t, created[0].IsCreate())

	dropped := diffConstraint(c, nil)
	require.Len(t, dropped, 1)
	assert.True(t, dropped[0].IsDrop())
}
