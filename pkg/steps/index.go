// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateIndex uses Definition as-is: pg_get_indexdef already returns a
// full, ready-to-run CREATE INDEX statement.
type CreateIndex struct {
	SchemaName string
	Name       string
	Table      string
	Definition string
	Comment    *string
}

func (s CreateIndex) ID() catalog.ObjectId { return catalog.Index(s.SchemaName, s.Name) }
func (s CreateIndex) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Table(s.SchemaName, s.Table)}
}
func (s CreateIndex) IsDrop() bool         { return false }
func (s CreateIndex) IsCreate() bool       { return true }
func (s CreateIndex) IsRelationship() bool { return false }

func (s CreateIndex) ToSQL() []RenderedSQL {
	out := []RenderedSQL{{SQL: s.Definition, Description: fmt.Sprintf("create index %q", s.Name)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("INDEX %s", qualify(s.SchemaName, s.Name)), s.Comment))
	}
	return out
}

type DropIndex struct {
	SchemaName string
	Name       string
}

func (s DropIndex) ID() catalog.ObjectId             { return catalog.Index(s.SchemaName, s.Name) }
func (s DropIndex) Dependencies() []catalog.ObjectId { return nil }
func (s DropIndex) IsDrop() bool                     { return true }
func (s DropIndex) IsCreate() bool                   { return false }
func (s DropIndex) IsRelationship() bool             { return false }

func (s DropIndex) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{SQL: fmt.Sprintf("DROP INDEX %s", qualified), Description: fmt.Sprintf("drop index %s", qualified)}}
}

// AlterIndexComment changes only an index's comment.
type AlterIndexComment struct {
	SchemaName string
	Name       string
	Comment    *string
}

func (s AlterIndexComment) ID() catalog.ObjectId             { return catalog.Index(s.SchemaName, s.Name) }
func (s AlterIndexComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterIndexComment) IsDrop() bool                     { return false }
func (s AlterIndexComment) IsCreate() bool                   { return false }
func (s AlterIndexComment) IsRelationship() bool             { return false }

func (s AlterIndexComment) ToSQL() []RenderedSQL {
	return []RenderedSQL{commentSQL(fmt.Sprintf("INDEX %s", qualify(s.SchemaName, s.Name)), s.Comment)}
}
