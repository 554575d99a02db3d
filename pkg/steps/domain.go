// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

type CreateDomain struct {
	SchemaName       string
	Name             string
	BaseType         string
	Default          *string
	NotNull          bool
	Collation        *string
	CheckConstraints []catalog.DomainCheck
	Comment          *string
}

func (s CreateDomain) ID() catalog.ObjectId { return catalog.Domain(s.SchemaName, s.Name) }
func (s CreateDomain) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateDomain) IsDrop() bool         { return false }
func (s CreateDomain) IsCreate() bool       { return true }
func (s CreateDomain) IsRelationship() bool { return false }

func (s CreateDomain) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	stmt := fmt.Sprintf("CREATE DOMAIN %s AS %s", qualified, s.BaseType)
	if s.Collation != nil {
		stmt += fmt.Sprintf(" COLLATE %s", pq.QuoteIdentifier(*s.Collation))
	}
	if s.Default != nil {
		stmt += fmt.Sprintf(" DEFAULT %s", *s.Default)
	}
	if s.NotNull {
		stmt += " NOT NULL"
	}
	for _, c := range s.CheckConstraints {
		stmt += fmt.Sprintf(" CONSTRAINT %s CHECK (%s)", pq.QuoteIdentifier(c.Name), c.Expression)
	}
	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("create domain %s", qualified)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("DOMAIN %s", qualified), s.Comment))
	}
	return out
}

type DropDomain struct {
	SchemaName string
	Name       string
}

func (s DropDomain) ID() catalog.ObjectId             { return catalog.Domain(s.SchemaName, s.Name) }
func (s DropDomain) Dependencies() []catalog.ObjectId { return nil }
func (s DropDomain) IsDrop() bool                     { return true }
func (s DropDomain) IsCreate() bool                   { return false }
func (s DropDomain) IsRelationship() bool             { return false }

func (s DropDomain) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	return []RenderedSQL{{SQL: fmt.Sprintf("DROP DOMAIN %s", qualified), Description: fmt.Sprintf("drop domain %s", qualified)}}
}

// AlterDomain applies in-place NOT NULL / default / check-constraint
// changes (used when the base type and collation are unchanged).
type AlterDomain struct {
	SchemaName string
	Name       string

	SetDefault   *string // nil means "no change"; explicit drop uses DropDefault
	DropDefault  bool
	SetNotNull   bool
	DropNotNull  bool
	AddChecks    []catalog.DomainCheck
	DropChecks   []string
	SetComment   bool
	Comment      *string
}

func (s AlterDomain) ID() catalog.ObjectId             { return catalog.Domain(s.SchemaName, s.Name) }
func (s AlterDomain) Dependencies() []catalog.ObjectId { return nil }
func (s AlterDomain) IsDrop() bool                     { return false }
func (s AlterDomain) IsCreate() bool                   { return false }
func (s AlterDomain) IsRelationship() bool             { return false }

func (s AlterDomain) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	var out []RenderedSQL
	if s.DropDefault {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER DOMAIN %s DROP DEFAULT", qualified),
			Description: fmt.Sprintf("drop default on domain %s", qualified),
		})
	} else if s.SetDefault != nil {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER DOMAIN %s SET DEFAULT %s", qualified, *s.SetDefault),
			Description: fmt.Sprintf("set default on domain %s", qualified),
		})
	}
	if s.DropNotNull {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER DOMAIN %s DROP NOT NULL", qualified),
			Description: fmt.Sprintf("drop not null on domain %s", qualified),
		})
	} else if s.SetNotNull {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER DOMAIN %s SET NOT NULL", qualified),
			Description: fmt.Sprintf("set not null on domain %s", qualified),
		})
	}
	for _, name := range s.DropChecks {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER DOMAIN %s DROP CONSTRAINT %s", qualified, pq.QuoteIdentifier(name)),
			Description: fmt.Sprintf("drop check %q on domain %s", name, qualified),
		})
	}
	for _, c := range s.AddChecks {
		out = append(out, RenderedSQL{
			SQL:         fmt.Sprintf("ALTER DOMAIN %s ADD CONSTRAINT %s CHECK (%s)", qualified, pq.QuoteIdentifier(c.Name), c.Expression),
			Description: fmt.Sprintf("add check %q on domain %s", c.Name, qualified),
		})
	}
	if s.SetComment {
		out = append(out, commentSQL(fmt.Sprintf("DOMAIN %s", qualified), s.Comment))
	}
	return out
}
