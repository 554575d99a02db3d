// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func tableWithView(t *testing.T, tableCols []catalog.ColumnEntity, viewDef string) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	tbl := &catalog.TableEntity{SchemaName: "public", Name: "accounts", Columns: tableCols}
	b.AddTable(tbl)
	if viewDef != "" {
		v := &catalog.ViewEntity{SchemaName: "public", Name: "active_accounts", Definition: viewDef}
		b.AddView(v)
		b.AddDependency(v.ID(), tbl.ID())
	}
	return b.Build()
}

// Adding a column to a table with a dependent view must not drop
// the view.
func TestDiffAddColumnDoesNotDropDependentView(t *testing.T) {
	oldCols := []catalog.ColumnEntity{{Name: "id", DataType: "integer", NotNull: true}}
	newCols := []catalog.ColumnEntity{
		{Name: "id", DataType: "integer", NotNull: true},
		{Name: "email", DataType: "text"},
	}
	old := tableWithView(t, oldCols, "SELECT id FROM accounts")
	newCat := tableWithView(t, newCols, "SELECT id FROM accounts")

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	var alters, viewDrops, viewCreates int
	for _, s := range plan {
		switch st := s.(type) {
		case steps.AlterTable:
			alters++
			require.Len(t, st.Actions, 1)
			add, ok := st.Actions[0].(steps.AddColumnAction)
			require.True(t, ok)
			assert.Equal(t, "email", add.Column.Name)
		case steps.DropView:
			viewDrops++
		case steps.CreateView:
			viewCreates++
		}
	}
	assert.Equal(t, 1, alters)
	assert.Zero(t, viewDrops)
	assert.Zero(t, viewCreates)
}

// Dropping a table referenced by a view must cascade: the view's
// drop step appears in the plan, ordered before the table's drop.
func TestDiffDropTableCascadesViewDropBeforeTableDrop(t *testing.T) {
	cols := []catalog.ColumnEntity{{Name: "id", DataType: "integer", NotNull: true}}
	old := tableWithView(t, cols, "SELECT id FROM accounts")
	newCat := catalog.NewBuilder().Build() // table and view both removed

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	viewDropIdx, tableDropIdx := -1, -1
	for i, s := range plan {
		switch s.(type) {
		case steps.DropView:
			viewDropIdx = i
		case steps.DropTable:
			tableDropIdx = i
		}
	}
	require.NotEqual(t, -1, viewDropIdx, "expected a cascaded view drop step")
	require.NotEqual(t, -1, tableDropIdx, "expected the table drop step")
	assert.Less(t, viewDropIdx, tableDropIdx, "view must be dropped before the table it depends on")
}

// If the new catalog defines a compatible, same-named view
// on a different table, the differ rewrites it in place (CREATE OR
// REPLACE, not a drop+create pair) and that step still lands after the
// original table's drop, since tables are diffed before views.
func TestDiffDropTableWithReplacementViewOrdersCreateAfterDrop(t *testing.T) {
	cols := []catalog.ColumnEntity{{Name: "id", DataType: "integer", NotNull: true}}
	old := tableWithView(t, cols, "SELECT id FROM accounts")

	b := catalog.NewBuilder()
	other := &catalog.TableEntity{SchemaName: "public", Name: "customers", Columns: cols}
	b.AddTable(other)
	v := &catalog.ViewEntity{SchemaName: "public", Name: "active_accounts", Definition: "SELECT id FROM customers"}
	b.AddView(v)
	b.AddDependency(v.ID(), other.ID())
	newCat := b.Build()

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	tableDropIdx, viewCreateIdx := -1, -1
	for i, s := range plan {
		switch s.(type) {
		case steps.DropTable:
			tableDropIdx = i
		case steps.CreateView:
			viewCreateIdx = i
		}
	}
	require.NotEqual(t, -1, tableDropIdx)
	require.NotEqual(t, -1, viewCreateIdx)
	assert.Less(t, tableDropIdx, viewCreateIdx)
}

// Diffing a catalog against itself must always produce an empty plan,
// regardless of how many interdependent objects it contains.
func TestDiffIdempotentAcrossMultipleKinds(t *testing.T) {
	b := catalog.NewBuilder()
	b.AddSchema(&catalog.SchemaEntity{Name: "public"})
	tbl := &catalog.TableEntity{
		SchemaName: "public", Name: "orders",
		Columns: []catalog.ColumnEntity{{Name: "id", DataType: "integer", NotNull: true}},
	}
	b.AddTable(tbl)
	v := &catalog.ViewEntity{SchemaName: "public", Name: "orders_view", Definition: "SELECT id FROM orders"}
	b.AddView(v)
	b.AddDependency(v.ID(), tbl.ID())
	seq := &catalog.SequenceEntity{SchemaName: "public", Name: "orders_id_seq", DataType: "bigint"}
	b.AddSequence(seq)
	cat := b.Build()

	plan, err := Diff(cat, cat)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

// Dropping a whole catalog down to nothing must never orphan a drop: the
// view must always precede the table it depends on even when every
// object in the graph disappears in one diff.
func TestDiffDropEverythingOrdersDependentsFirst(t *testing.T) {
	b := catalog.NewBuilder()
	tbl := &catalog.TableEntity{
		SchemaName: "public", Name: "orders",
		Columns: []catalog.ColumnEntity{{Name: "id", DataType: "integer", NotNull: true}},
	}
	b.AddTable(tbl)
	v1 := &catalog.ViewEntity{SchemaName: "public", Name: "orders_v1", Definition: "SELECT id FROM orders"}
	b.AddView(v1)
	b.AddDependency(v1.ID(), tbl.ID())
	v2 := &catalog.ViewEntity{SchemaName: "public", Name: "orders_v2", Definition: "SELECT * FROM orders_v1"}
	b.AddView(v2)
	b.AddDependency(v2.ID(), v1.ID())
	old := b.Build()

	newCat := catalog.NewBuilder().Build()

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	pos := map[catalog.ObjectId]int{}
	for i, s := range plan {
		if s.IsDrop() {
			pos[s.ID()] = i
		}
	}
	require.Contains(t, pos, tbl.ID())
	require.Contains(t, pos, v1.ID())
	require.Contains(t, pos, v2.ID())
	assert.Less(t, pos[v2.ID()], pos[v1.ID()])
	assert.Less(t, pos[v1.ID()], pos[tbl.ID()])
}
