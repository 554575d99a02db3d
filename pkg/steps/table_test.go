// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

func TestCreateTableRendersQuotedInlinePrimaryKey(t *testing.T) {
	s := CreateTable{
		SchemaName: "public",
		Name:       "orders",
		Columns: []catalog.ColumnEntity{
			{Name: "id", DataType: "integer", NotNull: true},
			{Name: "total", DataType: "numeric"},
		},
		PrimaryKey: []string{"id"},
	}
	rendered := s.ToSQL()
	require.NotEmpty(t, rendered)
	assert.Equal(t,
		"CREATE TABLE \"public\".\"orders\" (\n  \"id\" integer NOT NULL,\n  \"total\" numeric,\n  CONSTRAINT \"orders_pkey\" PRIMARY KEY (\"id\")\n)",
		rendered[0].SQL,
	)
}

func TestCreateTableGeneratedColumnOrdersExpressionBeforeNotNull(t *testing.T) {
	expr := "total * 2"
	s := CreateTable{
		SchemaName: "public",
		Name:       "orders",
		Columns: []catalog.ColumnEntity{
			{Name: "double_total", DataType: "numeric", GeneratedExpr: &expr, NotNull: true},
		},
	}
	rendered := s.ToSQL()
	require.NotEmpty(t, rendered)
	assert.Contains(t, rendered[0].SQL, `"double_total" numeric GENERATED ALWAYS AS (total * 2) STORED NOT NULL`)
}

func TestCreateTableEmitsRLSAndComments(t *testing.T) {
	tableComment := "customer orders"
	colComment := "order total"
	s := CreateTable{
		SchemaName: "public",
		Name:       "orders",
		Columns: []catalog.ColumnEntity{
			{Name: "total", DataType: "numeric", Comment: &colComment},
		},
		RLSEnabled: true,
		RLSForced:  true,
		Comment:    &tableComment,
	}
	rendered := s.ToSQL()

	var sawEnable, sawForce, sawColComment, sawTableComment bool
	for _, r := range rendered {
		switch r.SQL {
		case `ALTER TABLE "public"."orders" ENABLE ROW LEVEL SECURITY`:
			sawEnable = true
		case `ALTER TABLE "public"."orders" FORCE ROW LEVEL SECURITY`:
			sawForce = true
		case `COMMENT ON COLUMN "public"."orders"."total" IS 'order total'`:
			sawColComment = true
		case `COMMENT ON TABLE "public"."orders" IS 'customer orders'`:
			sawTableComment = true
		}
	}
	assert.True(t, sawEnable)
	assert.True(t, sawForce)
	assert.True(t, sawColComment)
	assert.True(t, sawTableComment)
}

func TestDropTableRendersQualifiedIdentifier(t *testing.T) {
	s := DropTable{SchemaName: "public", Name: "orders"}
	rendered := s.ToSQL()
	require.Len(t, rendered, 1)
	assert.Equal(t, `DROP TABLE "public"."orders"`, rendered[0].SQL)
}

func TestColumnActionsRenderAgainstQualifiedTable(t *testing.T) {
	table := qualify("public", "orders")

	add := AddColumnAction{Column: catalog.ColumnEntity{Name: "email", DataType: "text", NotNull: true}}
	assert.Equal(t, `ALTER TABLE "public"."orders" ADD COLUMN "email" text NOT NULL`, add.SQL(table).SQL)

	drop := DropColumnAction{Name: "email"}
	assert.Equal(t, `ALTER TABLE "public"."orders" DROP COLUMN "email"`, drop.SQL(table).SQL)

	setDefault := SetColumnDefaultAction{Name: "status", Default: "'pending'"}
	assert.Equal(t, `ALTER TABLE "public"."orders" ALTER COLUMN "status" SET DEFAULT 'pending'`, setDefault.SQL(table).SQL)

	dropDefault := DropColumnDefaultAction{Name: "status"}
	assert.Equal(t, `ALTER TABLE "public"."orders" ALTER COLUMN "status" DROP DEFAULT`, dropDefault.SQL(table).SQL)

	setNotNull := SetColumnNotNullAction{Name: "status"}
	assert.Equal(t, `ALTER TABLE "public"."orders" ALTER COLUMN "status" SET NOT NULL`, setNotNull.SQL(table).SQL)

	addPK := AddPrimaryKeyAction{ConstraintName: "orders_pkey", Columns: []string{"id"}}
	assert.Equal(t, `ALTER TABLE "public"."orders" ADD CONSTRAINT "orders_pkey" PRIMARY KEY ("id")`, addPK.SQL(table).SQL)

	dropPK := DropPrimaryKeyAction{ConstraintName: "orders_pkey"}
	assert.Equal(t, `ALTER TABLE "public"."orders" DROP CONSTRAINT "orders_pkey"`, dropPK.SQL(table).SQL)
}

func TestAlterTableIsNeitherDropNorCreate(t *testing.T) {
	s := AlterTable{SchemaName: "public", Name: "orders", Actions: []ColumnAction{DropColumnAction{Name: "email"}}}
	assert.False(t, s.IsDrop())
	assert.False(t, s.IsCreate())
	assert.False(t, s.IsRelationship())
	assert.Equal(t, catalog.Table("public", "orders"), s.ID())
}
