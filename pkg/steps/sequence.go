// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

type CreateSequence struct {
	SchemaName string
	Name       string
	DataType   string
	Start      int64
	Min        int64
	Max        int64
	Increment  int64
	Cycle      bool
	Comment    *string
}

func (s CreateSequence) ID() catalog.ObjectId { return catalog.Sequence(s.SchemaName, s.Name) }
func (s CreateSequence) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateSequence) IsDrop() bool         { return false }
func (s CreateSequence) IsCreate() bool       { return true }
func (s CreateSequence) IsRelationship() bool { return false }

func (s CreateSequence) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	stmt := fmt.Sprintf("CREATE SEQUENCE %s AS %s INCREMENT BY %d MINVALUE %d MAXVALUE %d START WITH %d",
		qualified, s.DataType, s.Increment, s.Min, s.Max, s.Start)
	if s.Cycle {
		stmt += " CYCLE"
	} else {
		stmt += " NO CYCLE"
	}
	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("create sequence %s", qualified)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("SEQUENCE %s", qualified), s.Comment))
	}
	return out
}

type DropSequence struct {
	SchemaName string
	Name       string
}

func (s DropSequence) ID() catalog.ObjectId             { return catalog.Sequence(s.SchemaName, s.Name) }
func (s DropSequence) Dependencies() []catalog.ObjectId { return nil }
func (s DropSequence) IsDrop() bool                     { return true }
func (s DropSequence) IsCreate() bool                   { return false }
func (s DropSequence) IsRelationship() bool             { return false }

func (s DropSequence) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{SQL: fmt.Sprintf("DROP SEQUENCE %s", qualified), Description: fmt.Sprintf("drop sequence %s", qualified)}}
}

// AlterSequenceOwnership is a relationship step: it requires both the
// sequence and the owning table/column to already exist, so it is always
// deferred to the differ's second (relationship) topological phase -
// this is how the SERIAL-column cycle (column default -> sequence,
// sequence OWNED BY -> column) is broken.
type AlterSequenceOwnership struct {
	SchemaName string
	Name       string
	OwnerTable string
	OwnerColumn string
}

func (s AlterSequenceOwnership) ID() catalog.ObjectId {
	return catalog.Sequence(s.SchemaName, s.Name)
}
func (s AlterSequenceOwnership) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{
		catalog.Sequence(s.SchemaName, s.Name),
		catalog.Table(s.SchemaName, s.OwnerTable),
	}
}
func (s AlterSequenceOwnership) IsDrop() bool         { return false }
func (s AlterSequenceOwnership) IsCreate() bool       { return false }
func (s AlterSequenceOwnership) IsRelationship() bool { return true }

func (s AlterSequenceOwnership) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	owner := qualify(s.SchemaName, s.OwnerTable)
	return []RenderedSQL{{
		SQL: fmt.Sprintf("ALTER SEQUENCE %s OWNED BY %s.%s", qualified, owner, pq.QuoteIdentifier(s.OwnerColumn)),
		Description: fmt.Sprintf("set ownership of sequence %s to %s.%s", qualified, owner, s.OwnerColumn),
	}}
}
