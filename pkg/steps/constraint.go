// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateConstraint wraps Definition (pg_get_constraintdef's output, the
// constraint body only) in the ADD CONSTRAINT clause needed to apply it.
type CreateConstraint struct {
	SchemaName string
	Table      string
	Name       string
	Definition string
	Comment    *string
}

func (s CreateConstraint) ID() catalog.ObjectId {
	return catalog.Constraint(s.SchemaName, s.Table, s.Name)
}
func (s CreateConstraint) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Table(s.SchemaName, s.Table)}
}
func (s CreateConstraint) IsDrop() bool         { return false }
func (s CreateConstraint) IsCreate() bool       { return true }
func (s CreateConstraint) IsRelationship() bool { return false }

func (s CreateConstraint) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s", table, pq.QuoteIdentifier(s.Name), s.Definition)
	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("add constraint %q to %s", s.Name, table)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("CONSTRAINT %s ON %s", pq.QuoteIdentifier(s.Name), table), s.Comment))
	}
	return out
}

type DropConstraint struct {
	SchemaName string
	Table      string
	Name       string
}

func (s DropConstraint) ID() catalog.ObjectId {
	return catalog.Constraint(s.SchemaName, s.Table, s.Name)
}
func (s DropConstraint) Dependencies() []catalog.ObjectId { return nil }
func (s DropConstraint) IsDrop() bool                     { return true }
func (s DropConstraint) IsCreate() bool                   { return false }
func (s DropConstraint) IsRelationship() bool             { return false }

func (s DropConstraint) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, pq.QuoteIdentifier(s.Name)),
		Description: fmt.Sprintf("drop constraint %q from %s", s.Name, table),
	}}
}

// AlterConstraintComment changes only a constraint's comment.
type AlterConstraintComment struct {
	SchemaName string
	Table      string
	Name       string
	Comment    *string
}

func (s AlterConstraintComment) ID() catalog.ObjectId {
	return catalog.Constraint(s.SchemaName, s.Table, s.Name)
}
func (s AlterConstraintComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterConstraintComment) IsDrop() bool                     { return false }
func (s AlterConstraintComment) IsCreate() bool                   { return false }
func (s AlterConstraintComment) IsRelationship() bool             { return false }

func (s AlterConstraintComment) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	return []RenderedSQL{commentSQL(fmt.Sprintf("CONSTRAINT %s ON %s", pq.QuoteIdentifier(s.Name), table), s.Comment)}
}
