// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateAggregate uses Definition as-is since pg_get_functiondef already
// returns a full, ready-to-run CREATE AGGREGATE statement.
type CreateAggregate struct {
	SchemaName   string
	Name         string
	ArgSignature string
	Definition   string
	Comment      *string
}

func (s CreateAggregate) ID() catalog.ObjectId {
	return catalog.Aggregate(s.SchemaName, s.Name, s.ArgSignature)
}
func (s CreateAggregate) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateAggregate) IsDrop() bool         { return false }
func (s CreateAggregate) IsCreate() bool       { return true }
func (s CreateAggregate) IsRelationship() bool { return false }

func (s CreateAggregate) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	out := []RenderedSQL{{SQL: s.Definition, Description: fmt.Sprintf("create aggregate %s", qualified)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("AGGREGATE %s(%s)", qualified, s.ArgSignature), s.Comment))
	}
	return out
}

type DropAggregate struct {
	SchemaName   string
	Name         string
	ArgSignature string
}

func (s DropAggregate) ID() catalog.ObjectId {
	return catalog.Aggregate(s.SchemaName, s.Name, s.ArgSignature)
}
func (s DropAggregate) Dependencies() []catalog.ObjectId { return nil }
func (s DropAggregate) IsDrop() bool                     { return true }
func (s DropAggregate) IsCreate() bool                   { return false }
func (s DropAggregate) IsRelationship() bool             { return false }

func (s DropAggregate) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("DROP AGGREGATE %s(%s)", qualified, s.ArgSignature),
		Description: fmt.Sprintf("drop aggregate %s(%s)", qualified, s.ArgSignature),
	}}
}
