// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// Extension creates must precede every non-extension, non-schema create
// in the same phase, even when nothing in the dependency graph forces it.
func TestOrderingExtensionCreatesPrecedeOtherCreates(t *testing.T) {
	b := catalog.NewBuilder()
	b.AddExtension(&catalog.ExtensionEntity{Name: "pgcrypto"})
	b.AddTable(&catalog.TableEntity{
		SchemaName: "public", Name: "secrets",
		Columns: []catalog.ColumnEntity{{Name: "id", DataType: "integer", NotNull: true}},
	})
	newCat := b.Build()
	old := catalog.NewBuilder().Build()

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	extIdx, tableIdx := -1, -1
	for i, s := range plan {
		switch s.(type) {
		case steps.CreateExtension:
			extIdx = i
		case steps.CreateTable:
			tableIdx = i
		}
	}
	require.NotEqual(t, -1, extIdx)
	require.NotEqual(t, -1, tableIdx)
	assert.Less(t, extIdx, tableIdx)
}

// A mutual dependency between two objects being created in the same diff
// is a genuine cycle and must surface as an error rather than silently
// picking an order or looping forever.
func TestOrderingDetectsCycle(t *testing.T) {
	b := catalog.NewBuilder()
	a := &catalog.TableEntity{SchemaName: "public", Name: "a", Columns: []catalog.ColumnEntity{{Name: "id", DataType: "integer"}}}
	c := &catalog.TableEntity{SchemaName: "public", Name: "b", Columns: []catalog.ColumnEntity{{Name: "id", DataType: "integer"}}}
	b.AddTable(a)
	b.AddTable(c)
	b.AddDependency(a.ID(), c.ID())
	b.AddDependency(c.ID(), a.ID())
	newCat := b.Build()
	old := catalog.NewBuilder().Build()

	_, err := Diff(old, newCat)
	require.Error(t, err)
	var cycleErr OrderingCycleError
	assert.ErrorAs(t, err, &cycleErr)
}

// Drop ordering must respect the reverse of create ordering: if a view
// depends on a table, dropping both must drop the view first.
func TestOrderingDropRespectsReverseDependency(t *testing.T) {
	b := catalog.NewBuilder()
	tbl := &catalog.TableEntity{SchemaName: "public", Name: "orders", Columns: []catalog.ColumnEntity{{Name: "id", DataType: "integer"}}}
	b.AddTable(tbl)
	v := &catalog.ViewEntity{SchemaName: "public", Name: "orders_view", Definition: "SELECT id FROM orders"}
	b.AddView(v)
	b.AddDependency(v.ID(), tbl.ID())
	old := b.Build()
	newCat := catalog.NewBuilder().Build()

	plan, err := Diff(old, newCat)
	require.NoError(t, err)

	viewIdx, tableIdx := -1, -1
	for i, s := range plan {
		switch s.(type) {
		case steps.DropView:
			viewIdx = i
		case steps.DropTable:
			tableIdx = i
		}
	}
	require.NotEqual(t, -1, viewIdx)
	require.NotEqual(t, -1, tableIdx)
	assert.Less(t, viewIdx, tableIdx)
}
