// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateTrigger uses Definition as-is: pg_get_triggerdef already returns a
// full CREATE TRIGGER statement.
type CreateTrigger struct {
	SchemaName string
	Table      string
	Name       string
	Definition string
	Comment    *string
}

func (s CreateTrigger) ID() catalog.ObjectId {
	return catalog.Trigger(s.SchemaName, s.Table, s.Name)
}
func (s CreateTrigger) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Table(s.SchemaName, s.Table)}
}
func (s CreateTrigger) IsDrop() bool         { return false }
func (s CreateTrigger) IsCreate() bool       { return true }
func (s CreateTrigger) IsRelationship() bool { return false }

func (s CreateTrigger) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	out := []RenderedSQL{{SQL: s.Definition, Description: fmt.Sprintf("create trigger %q on %s", s.Name, table)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("TRIGGER %s ON %s", pq.QuoteIdentifier(s.Name), table), s.Comment))
	}
	return out
}

type DropTrigger struct {
	SchemaName string
	Table      string
	Name       string
}

func (s DropTrigger) ID() catalog.ObjectId {
	return catalog.Trigger(s.SchemaName, s.Table, s.Name)
}
func (s DropTrigger) Dependencies() []catalog.ObjectId { return nil }
func (s DropTrigger) IsDrop() bool                     { return true }
func (s DropTrigger) IsCreate() bool                   { return false }
func (s DropTrigger) IsRelationship() bool             { return false }

func (s DropTrigger) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("DROP TRIGGER %s ON %s", pq.QuoteIdentifier(s.Name), table),
		Description: fmt.Sprintf("drop trigger %q from %s", s.Name, table),
	}}
}

// AlterTriggerComment changes only a trigger's comment.
type AlterTriggerComment struct {
	SchemaName string
	Table      string
	Name       string
	Comment    *string
}

func (s AlterTriggerComment) ID() catalog.ObjectId {
	return catalog.Trigger(s.SchemaName, s.Table, s.Name)
}
func (s AlterTriggerComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterTriggerComment) IsDrop() bool                     { return false }
func (s AlterTriggerComment) IsCreate() bool                   { return false }
func (s AlterTriggerComment) IsRelationship() bool             { return false }

func (s AlterTriggerComment) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	return []RenderedSQL{commentSQL(fmt.Sprintf("TRIGGER %s ON %s", pq.QuoteIdentifier(s.Name), table), s.Comment)}
}
