// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func ownedSequence(owner string) *catalog.SequenceEntity {
	return &catalog.SequenceEntity{
		SchemaName: "public",
		Name:       "orders_id_seq",
		DataType:   "bigint",
		Start:      1, Min: 1, Max: 9223372036854775807, Increment: 1,
		OwnedBy: &catalog.ColumnRef{SchemaName: "public", Table: owner, Column: "id"},
	}
}

func TestDiffSequenceCreateEmitsOwnershipAsRelationshipStep(t *testing.T) {
	s := ownedSequence("orders")
	result := diffSequence(nil, s)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsCreate())

	own, ok := result[1].(steps.AlterSequenceOwnership)
	require.True(t, ok)
	assert.True(t, own.IsRelationship())
	assert.Equal(t, "orders", own.OwnerTable)
	assert.Equal(t, "id", own.OwnerColumn)
}

func TestDiffSequenceBodyChangeForcesDropRecreate(t *testing.T) {
	old := ownedSequence("orders")
	newS := ownedSequence("orders")
	newS.Increment = 2

	result := diffSequence(old, newS)
	require.Len(t, result, 3)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
	assert.True(t, result[2].IsRelationship())
}

func TestDiffSequenceOwnershipChangeAloneIsRelationshipOnly(t *testing.T) {
	old := ownedSequence("orders")
	newS := ownedSequence("archived_orders")

	result := diffSequence(old, newS)
	require.Len(t, result, 1)
	own, ok := result[0].(steps.AlterSequenceOwnership)
	require.True(t, ok)
	assert.Equal(t, "archived_orders", own.OwnerTable)
}

func TestDiffSequenceIdempotent(t *testing.T) {
	s := ownedSequence("orders")
	assert.Empty(t, diffSequence(s, s))
}

// A plan that creates a sequence and the table it belongs to must order
// the ownership step (relationship phase) after both primary creates,
// per the two-phase split in orderSteps.
func TestDiffSequenceOwnershipOrdersAfterTableAndSequenceCreation(t *testing.T) {
	b := catalog.NewBuilder()
	tbl := &catalog.TableEntity{
		SchemaName: "public", Name: "orders",
		Columns: []catalog.ColumnEntity{{Name: "id", DataType: "bigint", NotNull: true}},
	}
	b.AddTable(tbl)
	seq := ownedSequence("orders")
	b.AddSequence(seq)
	newCat := b.Build()

	old := catalog.NewBuilder().Build()

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	tableIdx, seqIdx, ownIdx := -1, -1, -1
	for i, s := range plan {
		switch st := s.(type) {
		case steps.CreateTable:
			tableIdx = i
		case steps.CreateSequence:
			seqIdx = i
		case steps.AlterSequenceOwnership:
			_ = st
			ownIdx = i
		}
	}
	require.NotEqual(t, -1, tableIdx)
	require.NotEqual(t, -1, seqIdx)
	require.NotEqual(t, -1, ownIdx)
	assert.Greater(t, ownIdx, tableIdx)
	assert.Greater(t, ownIdx, seqIdx)
}
