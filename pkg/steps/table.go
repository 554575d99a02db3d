// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateTable emits columns in declared order, an inline primary-key
// constraint when present, and GENERATED ALWAYS AS (expr) STORED before
// DEFAULT/NOT NULL for generated columns.
type CreateTable struct {
	SchemaName string
	Name       string
	Columns    []catalog.ColumnEntity
	PrimaryKey []string
	RLSEnabled bool
	RLSForced  bool
	Comment    *string
}

func (s CreateTable) ID() catalog.ObjectId { return catalog.Table(s.SchemaName, s.Name) }
func (s CreateTable) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateTable) IsDrop() bool         { return false }
func (s CreateTable) IsCreate() bool       { return true }
func (s CreateTable) IsRelationship() bool { return false }

func columnDefSQL(c catalog.ColumnEntity) string {
	def := fmt.Sprintf("%s %s", pq.QuoteIdentifier(c.Name), c.DataType)
	if c.GeneratedExpr != nil {
		def += fmt.Sprintf(" GENERATED ALWAYS AS (%s) STORED", *c.GeneratedExpr)
	} else if c.Default != nil {
		def += fmt.Sprintf(" DEFAULT %s", *c.Default)
	}
	if c.NotNull {
		def += " NOT NULL"
	}
	return def
}

func (s CreateTable) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	parts := make([]string, 0, len(s.Columns)+1)
	for _, c := range s.Columns {
		parts = append(parts, columnDefSQL(c))
	}
	if len(s.PrimaryKey) > 0 {
		quoted := make([]string, len(s.PrimaryKey))
		for i, col := range s.PrimaryKey {
			quoted[i] = pq.QuoteIdentifier(col)
		}
		pkName := s.Name + "_pkey"
		parts = append(parts, fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", pq.QuoteIdentifier(pkName), strings.Join(quoted, ", ")))
	}

	out := []RenderedSQL{{
		SQL:         fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", qualified, strings.Join(parts, ",\n  ")),
		Description: fmt.Sprintf("create table %s", qualified),
	}}
	if s.RLSEnabled {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", qualified),
			Description: fmt.Sprintf("enable row level security on %s", qualified),
		})
	}
	if s.RLSForced {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", qualified),
			Description: fmt.Sprintf("force row level security on %s", qualified),
		})
	}
	for _, c := range s.Columns {
		if c.Comment != nil {
			out = append(out, commentSQL(fmt.Sprintf("COLUMN %s.%s", qualified, pq.QuoteIdentifier(c.Name)), c.Comment))
		}
	}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("TABLE %s", qualified), s.Comment))
	}
	return out
}

type DropTable struct {
	SchemaName string
	Name       string
}

func (s DropTable) ID() catalog.ObjectId             { return catalog.Table(s.SchemaName, s.Name) }
func (s DropTable) Dependencies() []catalog.ObjectId { return nil }
func (s DropTable) IsDrop() bool                     { return true }
func (s DropTable) IsCreate() bool                   { return false }
func (s DropTable) IsRelationship() bool             { return false }

func (s DropTable) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{SQL: fmt.Sprintf("DROP TABLE %s", qualified), Description: fmt.Sprintf("drop table %s", qualified)}}
}

// ColumnAction is one ordered sub-operation of an AlterTable step. The
// table differ produces these rather than top-level steps because a
// column is not itself a catalog identity.
type ColumnAction interface {
	SQL(tableQualified string) RenderedSQL
}

type AddColumnAction struct{ Column catalog.ColumnEntity }

func (a AddColumnAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, columnDefSQL(a.Column)),
		Description: fmt.Sprintf("add column %q to %s", a.Column.Name, table),
	}
}

type DropColumnAction struct{ Name string }

func (a DropColumnAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, pq.QuoteIdentifier(a.Name)),
		Description: fmt.Sprintf("drop column %q from %s", a.Name, table),
	}
}

type AlterColumnTypeAction struct {
	Name     string
	DataType string
}

func (a AlterColumnTypeAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL: fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s", table, pq.QuoteIdentifier(a.Name), a.DataType),
		Description: fmt.Sprintf("change type of column %q on %s", a.Name, table),
	}
}

type SetColumnDefaultAction struct {
	Name    string
	Default string
}

func (a SetColumnDefaultAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s", table, pq.QuoteIdentifier(a.Name), a.Default),
		Description: fmt.Sprintf("set default on column %q on %s", a.Name, table),
	}
}

type DropColumnDefaultAction struct{ Name string }

func (a DropColumnDefaultAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", table, pq.QuoteIdentifier(a.Name)),
		Description: fmt.Sprintf("drop default on column %q on %s", a.Name, table),
	}
}

type SetColumnNotNullAction struct{ Name string }

func (a SetColumnNotNullAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", table, pq.QuoteIdentifier(a.Name)),
		Description: fmt.Sprintf("set not null on column %q on %s", a.Name, table),
	}
}

type DropColumnNotNullAction struct{ Name string }

func (a DropColumnNotNullAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL", table, pq.QuoteIdentifier(a.Name)),
		Description: fmt.Sprintf("drop not null on column %q on %s", a.Name, table),
	}
}

type AddPrimaryKeyAction struct {
	ConstraintName string
	Columns        []string
}

func (a AddPrimaryKeyAction) SQL(table string) RenderedSQL {
	quoted := make([]string, len(a.Columns))
	for i, c := range a.Columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return RenderedSQL{
		SQL: fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s)",
			table, pq.QuoteIdentifier(a.ConstraintName), strings.Join(quoted, ", ")),
		Description: fmt.Sprintf("add primary key to %s", table),
	}
}

type DropPrimaryKeyAction struct{ ConstraintName string }

func (a DropPrimaryKeyAction) SQL(table string) RenderedSQL {
	return RenderedSQL{
		SQL:         fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, pq.QuoteIdentifier(a.ConstraintName)),
		Description: fmt.Sprintf("drop primary key from %s", table),
	}
}

type SetColumnCommentAction struct {
	Name    string
	Comment *string
}

func (a SetColumnCommentAction) SQL(table string) RenderedSQL {
	return commentSQL(fmt.Sprintf("COLUMN %s.%s", table, pq.QuoteIdentifier(a.Name)), a.Comment)
}

type EnableRLSAction struct{}

func (a EnableRLSAction) SQL(table string) RenderedSQL {
	return RenderedSQL{SQL: fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table), Description: fmt.Sprintf("enable row level security on %s", table)}
}

type DisableRLSAction struct{}

func (a DisableRLSAction) SQL(table string) RenderedSQL {
	return RenderedSQL{SQL: fmt.Sprintf("ALTER TABLE %s DISABLE ROW LEVEL SECURITY", table), Description: fmt.Sprintf("disable row level security on %s", table)}
}

type ForceRLSAction struct{}

func (a ForceRLSAction) SQL(table string) RenderedSQL {
	return RenderedSQL{SQL: fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", table), Description: fmt.Sprintf("force row level security on %s", table)}
}

type NoForceRLSAction struct{}

func (a NoForceRLSAction) SQL(table string) RenderedSQL {
	return RenderedSQL{SQL: fmt.Sprintf("ALTER TABLE %s NO FORCE ROW LEVEL SECURITY", table), Description: fmt.Sprintf("stop forcing row level security on %s", table)}
}

type SetTableCommentAction struct{ Comment *string }

func (a SetTableCommentAction) SQL(table string) RenderedSQL {
	return commentSQL(fmt.Sprintf("TABLE %s", table), a.Comment)
}

// AlterTable bundles the ordered column/table-level actions the table
// differ produced for one table whose body changed.
type AlterTable struct {
	SchemaName string
	Name       string
	Actions    []ColumnAction
}

func (s AlterTable) ID() catalog.ObjectId             { return catalog.Table(s.SchemaName, s.Name) }
func (s AlterTable) Dependencies() []catalog.ObjectId { return nil }
func (s AlterTable) IsDrop() bool                     { return false }
func (s AlterTable) IsCreate() bool                   { return false }
func (s AlterTable) IsRelationship() bool             { return false }

func (s AlterTable) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	out := make([]RenderedSQL, 0, len(s.Actions))
	for _, a := range s.Actions {
		out = append(out, a.SQL(qualified))
	}
	if len(out) == 0 {
		// a table-level comment-only diff still needs at least one
		// statement; callers always populate Actions with at least a
		// SetTableCommentAction in that case, so this branch is dead in
		// practice but keeps ToSQL's "never empty" contract obvious.
		out = append(out, RenderedSQL{SQL: "SELECT 1", Description: fmt.Sprintf("no-op alter on %s", qualified)})
	}
	return out
}
