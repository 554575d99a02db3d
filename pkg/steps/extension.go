// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

type CreateExtension struct {
	Name       string
	Version    string
	SchemaName string
	Comment    *string
}

func (s CreateExtension) ID() catalog.ObjectId { return catalog.Extension(s.Name) }
func (s CreateExtension) Dependencies() []catalog.ObjectId {
	if s.SchemaName == "" {
		return nil
	}
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateExtension) IsDrop() bool         { return false }
func (s CreateExtension) IsCreate() bool       { return true }
func (s CreateExtension) IsRelationship() bool { return false }

func (s CreateExtension) ToSQL() []RenderedSQL {
	stmt := fmt.Sprintf("CREATE EXTENSION %s", pq.QuoteIdentifier(s.Name))
	if s.SchemaName != "" {
		stmt += fmt.Sprintf(" SCHEMA %s", pq.QuoteIdentifier(s.SchemaName))
	}
	if s.Version != "" {
		stmt += fmt.Sprintf(" VERSION %s", pq.QuoteLiteral(s.Version))
	}
	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("create extension %q", s.Name)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("EXTENSION %s", pq.QuoteIdentifier(s.Name)), s.Comment))
	}
	return out
}

type DropExtension struct {
	Name string
}

func (s DropExtension) ID() catalog.ObjectId             { return catalog.Extension(s.Name) }
func (s DropExtension) Dependencies() []catalog.ObjectId { return nil }
func (s DropExtension) IsDrop() bool                     { return true }
func (s DropExtension) IsCreate() bool                   { return false }
func (s DropExtension) IsRelationship() bool             { return false }

func (s DropExtension) ToSQL() []RenderedSQL {
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("DROP EXTENSION %s", pq.QuoteIdentifier(s.Name)),
		Description: fmt.Sprintf("drop extension %q", s.Name),
	}}
}
