// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTypeExtensionOwnedType(t *testing.T) {
	pt := PgType{Schema: "public", Name: "hstore", Typtype: "b", IsExtension: true}
	assert.Equal(t, Extension("hstore"), ClassifyType(pt, "hstore"))
}

func TestClassifyTypeSystemSchemaType(t *testing.T) {
	pt := PgType{Schema: "pg_catalog", Name: "int4", Typtype: "b"}
	assert.Equal(t, Type("pg_catalog", "int4"), ClassifyType(pt, ""))
}

func TestClassifyTypeDomain(t *testing.T) {
	pt := PgType{Schema: "public", Name: "positive_int", Typtype: "d"}
	assert.Equal(t, Domain("public", "positive_int"), ClassifyType(pt, ""))
}

func TestClassifyTypeCompositeBackedByTable(t *testing.T) {
	pt := PgType{Schema: "public", Name: "accounts", Typtype: "c", TyprelID: 12345, Relkind: "r"}
	assert.Equal(t, Table("public", "accounts"), ClassifyType(pt, ""))
}

func TestClassifyTypeCompositeBackedByPartitionedTable(t *testing.T) {
	pt := PgType{Schema: "public", Name: "accounts", Typtype: "c", TyprelID: 12345, Relkind: "p"}
	assert.Equal(t, Table("public", "accounts"), ClassifyType(pt, ""))
}

func TestClassifyTypeCompositeBackedByView(t *testing.T) {
	pt := PgType{Schema: "public", Name: "accounts_view", Typtype: "c", TyprelID: 6789, Relkind: "v"}
	assert.Equal(t, View("public", "accounts_view"), ClassifyType(pt, ""))
}

func TestClassifyTypeCompositeBackedByMaterializedView(t *testing.T) {
	pt := PgType{Schema: "public", Name: "accounts_mv", Typtype: "c", TyprelID: 6789, Relkind: "m"}
	assert.Equal(t, View("public", "accounts_mv"), ClassifyType(pt, ""))
}

func TestClassifyTypeStandaloneComposite(t *testing.T) {
	pt := PgType{Schema: "public", Name: "address", Typtype: "c"}
	assert.Equal(t, Type("public", "address"), ClassifyType(pt, ""))
}

func TestClassifyTypeEnumRangeAndBaseFallThroughToType(t *testing.T) {
	for _, typtype := range []string{"e", "r", "m", "b"} {
		pt := PgType{Schema: "public", Name: "thing", Typtype: typtype}
		assert.Equal(t, Type("public", "thing"), ClassifyType(pt, ""))
	}
}
