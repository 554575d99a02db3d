// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectIdLessGivesTotalOrder(t *testing.T) {
	ids := []ObjectId{
		Table("public", "zebra"),
		Table("public", "apple"),
		Schema("public"),
		View("public", "apple"),
		Index("public", "apple_idx"),
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	// Stable, repeatable: sorting twice yields the same order.
	again := make([]ObjectId, len(ids))
	copy(again, ids)
	sort.Slice(again, func(i, j int) bool { return again[i].Less(again[j]) })
	assert.Equal(t, ids, again)

	// Irreflexive.
	for _, id := range ids {
		assert.False(t, id.Less(id))
	}
}

func TestObjectIdUsableAsMapKey(t *testing.T) {
	m := map[ObjectId]int{}
	a := Table("public", "accounts")
	b := Table("public", "accounts")
	c := Table("other", "accounts")

	m[a] = 1
	m[b] = 2 // same identity as a, overwrites
	m[c] = 3

	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[a])
	assert.Equal(t, 3, m[c])
}

func TestObjectIdStringDistinguishesKindAndQualifiers(t *testing.T) {
	assert.NotEqual(t, Table("public", "foo").String(), View("public", "foo").String())
	assert.NotEqual(t, Table("a", "foo").String(), Table("b", "foo").String())
	assert.NotEqual(t,
		Function("public", "f", "integer").String(),
		Function("public", "f", "text").String(),
	)
	assert.NotEqual(t,
		Constraint("public", "orders", "orders_pkey").String(),
		Constraint("public", "customers", "orders_pkey").String(),
	)
}

func TestIsSystemSchema(t *testing.T) {
	assert.True(t, IsSystemSchema("pg_catalog"))
	assert.True(t, IsSystemSchema("information_schema"))
	assert.True(t, IsSystemSchema("pg_toast"))
	assert.True(t, IsSystemSchema("pg_temp_1"))
	assert.True(t, IsSystemSchema("pg_toast_temp_1"))
	assert.False(t, IsSystemSchema("public"))
	assert.False(t, IsSystemSchema("app"))
}

func TestCommentWrapsUnderlyingObjectId(t *testing.T) {
	wrapped := Table("public", "accounts")
	c := Comment(wrapped)
	assert.Equal(t, KindComment, c.Kind)
	assert.Equal(t, wrapped.String(), c.Wrapped)
}
