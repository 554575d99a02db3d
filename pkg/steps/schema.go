// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateSchema creates a schema. The differ never emits this for
// "public".
type CreateSchema struct {
	Name    string
	Comment *string
}

func (s CreateSchema) ID() catalog.ObjectId             { return catalog.Schema(s.Name) }
func (s CreateSchema) Dependencies() []catalog.ObjectId { return nil }
func (s CreateSchema) IsDrop() bool                     { return false }
func (s CreateSchema) IsCreate() bool                   { return true }
func (s CreateSchema) IsRelationship() bool             { return false }

func (s CreateSchema) ToSQL() []RenderedSQL {
	out := []RenderedSQL{{
		SQL:         fmt.Sprintf("CREATE SCHEMA %s", pq.QuoteIdentifier(s.Name)),
		Description: fmt.Sprintf("create schema %q", s.Name),
	}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("SCHEMA %s", pq.QuoteIdentifier(s.Name)), s.Comment))
	}
	return out
}

// DropSchema drops a schema. The differ never emits this for "public".
type DropSchema struct {
	Name string
}

func (s DropSchema) ID() catalog.ObjectId             { return catalog.Schema(s.Name) }
func (s DropSchema) Dependencies() []catalog.ObjectId { return nil }
func (s DropSchema) IsDrop() bool                     { return true }
func (s DropSchema) IsCreate() bool                   { return false }
func (s DropSchema) IsRelationship() bool             { return false }

func (s DropSchema) ToSQL() []RenderedSQL {
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("DROP SCHEMA %s", pq.QuoteIdentifier(s.Name)),
		Description: fmt.Sprintf("drop schema %q", s.Name),
	}}
}

// AlterSchemaComment changes only a schema's comment.
type AlterSchemaComment struct {
	Name    string
	Comment *string
}

func (s AlterSchemaComment) ID() catalog.ObjectId             { return catalog.Schema(s.Name) }
func (s AlterSchemaComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterSchemaComment) IsDrop() bool                     { return false }
func (s AlterSchemaComment) IsCreate() bool                   { return false }
func (s AlterSchemaComment) IsRelationship() bool             { return false }

func (s AlterSchemaComment) ToSQL() []RenderedSQL {
	return []RenderedSQL{commentSQL(fmt.Sprintf("SCHEMA %s", pq.QuoteIdentifier(s.Name)), s.Comment)}
}
