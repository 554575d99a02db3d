// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateType creates a standalone enum, composite, range, or "other"
// type. Which DDL it renders depends on Kind: enums and composites get a
// CREATE TYPE statement; range and other kinds render only a SQL comment
// placeholder, not DDL.
type CreateType struct {
	SchemaName     string
	Name           string
	Kind           catalog.TypeKind
	EnumValues     []string
	CompositeAttrs []catalog.CompositeAttr
	Comment        *string
}

func (s CreateType) ID() catalog.ObjectId { return catalog.Type(s.SchemaName, s.Name) }
func (s CreateType) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateType) IsDrop() bool         { return false }
func (s CreateType) IsCreate() bool       { return true }
func (s CreateType) IsRelationship() bool { return false }

func (s CreateType) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	var stmt string
	switch s.Kind {
	case catalog.TypeKindEnum:
		labels := make([]string, len(s.EnumValues))
		for i, v := range s.EnumValues {
			labels[i] = pq.QuoteLiteral(v)
		}
		stmt = fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", qualified, strings.Join(labels, ", "))
	case catalog.TypeKindComposite:
		attrs := make([]string, len(s.CompositeAttrs))
		for i, a := range s.CompositeAttrs {
			attrs[i] = fmt.Sprintf("%s %s", pq.QuoteIdentifier(a.Name), a.DataType)
		}
		stmt = fmt.Sprintf("CREATE TYPE %s AS (%s)", qualified, strings.Join(attrs, ", "))
	default:
		stmt = fmt.Sprintf("-- unsupported standalone type kind for %s; definition must be supplied by the renderer caller", qualified)
	}
	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("create type %s", qualified)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("TYPE %s", qualified), s.Comment))
	}
	return out
}

// DropType drops a standalone type (drop+recreate path for enums/
// composites/ranges whose body changed in an unsupported way).
type DropType struct {
	SchemaName string
	Name       string
}

func (s DropType) ID() catalog.ObjectId             { return catalog.Type(s.SchemaName, s.Name) }
func (s DropType) Dependencies() []catalog.ObjectId { return nil }
func (s DropType) IsDrop() bool                     { return true }
func (s DropType) IsCreate() bool                   { return false }
func (s DropType) IsRelationship() bool             { return false }

func (s DropType) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{SQL: fmt.Sprintf("DROP TYPE %s", qualified), Description: fmt.Sprintf("drop type %s", qualified)}}
}

// AddEnumValue adds exactly one label to an existing enum, anchored after
// the value that precedes it. PostgreSQL forbids adding more than one
// label per ALTER TYPE statement, so the differ always emits one
// AddEnumValue step per new label, chained via After.
type AddEnumValue struct {
	SchemaName string
	Name       string
	Value      string
	After      string
}

func (s AddEnumValue) ID() catalog.ObjectId             { return catalog.Type(s.SchemaName, s.Name) }
func (s AddEnumValue) Dependencies() []catalog.ObjectId { return nil }
func (s AddEnumValue) IsDrop() bool                     { return false }
func (s AddEnumValue) IsCreate() bool                   { return false }
func (s AddEnumValue) IsRelationship() bool             { return false }

func (s AddEnumValue) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{
		SQL: fmt.Sprintf("ALTER TYPE %s ADD VALUE %s AFTER %s",
			qualified, pq.QuoteLiteral(s.Value), pq.QuoteLiteral(s.After)),
		Description: fmt.Sprintf("add enum value %q to %s", s.Value, qualified),
	}}
}

// AlterTypeComment changes only a type's comment (bodies otherwise
// identical).
type AlterTypeComment struct {
	SchemaName string
	Name       string
	Comment    *string
}

func (s AlterTypeComment) ID() catalog.ObjectId             { return catalog.Type(s.SchemaName, s.Name) }
func (s AlterTypeComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterTypeComment) IsDrop() bool                     { return false }
func (s AlterTypeComment) IsCreate() bool                   { return false }
func (s AlterTypeComment) IsRelationship() bool             { return false }

func (s AlterTypeComment) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{commentSQL(fmt.Sprintf("TYPE %s", qualified), s.Comment)}
}
