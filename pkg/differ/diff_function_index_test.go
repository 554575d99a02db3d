// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func baseFunction(definition string) *catalog.FunctionEntity {
	return &catalog.FunctionEntity{
		SchemaName: "public", Name: "touch_updated_at", ArgSignature: "",
		Language: "plpgsql", Definition: definition, Volatility: "v",
	}
}

func TestDiffFunctionBodyChangeReplacesInPlace(t *testing.T) {
	old := baseFunction("BEGIN NEW.updated_at = now(); RETURN NEW; END;")
	newF := baseFunction("BEGIN NEW.updated_at = clock_timestamp(); RETURN NEW; END;")

	result := diffFunction(old, newF)
	require.Len(t, result, 1)
	_, ok := result[0].(steps.CreateFunction)
	assert.True(t, ok)
	assert.False(t, result[0].IsDrop())
}

func TestDiffFunctionSignatureChangeIsDropAndCreateViaDistinctIds(t *testing.T) {
	old := &catalog.FunctionEntity{SchemaName: "public", Name: "scale", ArgSignature: "integer", Definition: "SELECT $1 * 2"}
	newF := &catalog.FunctionEntity{SchemaName: "public", Name: "scale", ArgSignature: "numeric", Definition: "SELECT $1 * 2"}
	assert.NotEqual(t, old.ID(), newF.ID())

	dropped := diffFunction(old, nil)
	require.Len(t, dropped, 1)
	assert.True(t, dropped[0].IsDrop())

	created := diffFunction(nil, newF)
	require.Len(t, created, 1)
	assert.True(t, created[0].IsCreate())
}

func TestDiffFunctionIdempotent(t *testing.T) {
	f := baseFunction("BEGIN RETURN NEW; END;")
	assert.Empty(t, diffFunction(f, f))
}

func TestDiffFunctionCommentOnlyChange(t *testing.T) {
	old := baseFunction("BEGIN RETURN NEW; END;")
	newF := baseFunction(old.Definition)
	comment := "keeps updated_at current"
	newF.Comment = &comment

	result := diffFunction(old, newF)
	require.Len(t, result, 1)
	_, ok := result[0].(steps.AlterFunctionComment)
	assert.True(t, ok)
}

func TestDiffIndexDefinitionChangeForcesDropRecreate(t *testing.T) {
	old := &catalog.IndexEntity{SchemaName: "public", Name: "orders_account_id_idx", Table: "orders", Definition: "CREATE INDEX orders_account_id_idx ON orders (account_id)"}
	newI := &catalog.IndexEntity{SchemaName: "public", Name: "orders_account_id_idx", Table: "orders", Definition: "CREATE UNIQUE INDEX orders_account_id_idx ON orders (account_id)", Unique: true}

	result := diffIndex(old, newI)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}

func TestDiffIndexIdempotent(t *testing.T) {
	idx := &catalog.IndexEntity{SchemaName: "public", Name: "orders_account_id_idx", Table: "orders", Definition: "CREATE INDEX orders_account_id_idx ON orders (account_id)"}
	assert.Empty(t, diffIndex(idx, idx))
}

func TestDiffAggregateDefinitionChangeForcesDropRecreate(t *testing.T) {
	old := &catalog.AggregateEntity{SchemaName: "public", Name: "median", ArgSignature: "numeric", Definition: "SFUNC = median_transition, STYPE = internal"}
	newA := &catalog.AggregateEntity{SchemaName: "public", Name: "median", ArgSignature: "numeric", Definition: "SFUNC = median_transition_v2, STYPE = internal"}

	result := diffAggregate(old, newA)
	require.Len(t, result, 2)
	assert.True(t, result[0].IsDrop())
	assert.True(t, result[1].IsCreate())
}

func TestDiffAggregateIdempotent(t *testing.T) {
	a := &catalog.AggregateEntity{SchemaName: "public", Name: "median", ArgSignature: "numeric", Definition: "SFUNC = median_transition, STYPE = internal"}
	assert.Empty(t, diffAggregate(a, a))
}
