// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"strings"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

type CreateView struct {
	SchemaName      string
	Name            string
	Materialized    bool
	Definition      string
	SecurityInvoker bool
	SecurityBarrier bool
	DependsOn       []catalog.ObjectId
	Comment         *string
}

func (s CreateView) ID() catalog.ObjectId { return catalog.View(s.SchemaName, s.Name) }
func (s CreateView) Dependencies() []catalog.ObjectId {
	deps := append([]catalog.ObjectId{catalog.Schema(s.SchemaName)}, s.DependsOn...)
	return deps
}
func (s CreateView) IsDrop() bool         { return false }
func (s CreateView) IsCreate() bool       { return true }
func (s CreateView) IsRelationship() bool { return false }

func (s CreateView) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	// Ordinary views are always rendered as CREATE OR REPLACE so the same
	// step type serves both the initial create and the "column set
	// unchanged" alter path. Materialized views have no REPLACE form.
	kind := "OR REPLACE VIEW"
	if s.Materialized {
		kind = "MATERIALIZED VIEW"
	}
	var opts []string
	if s.SecurityInvoker {
		opts = append(opts, "security_invoker = true")
	}
	if s.SecurityBarrier {
		opts = append(opts, "security_barrier = true")
	}
	stmt := fmt.Sprintf("CREATE %s %s", kind, qualified)
	if len(opts) > 0 {
		stmt += fmt.Sprintf(" WITH (%s)", strings.Join(opts, ", "))
	}
	stmt += fmt.Sprintf(" AS %s", s.Definition)

	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("create view %s", qualified)}}
	if s.Comment != nil {
		onClause := "VIEW " + qualified
		if s.Materialized {
			onClause = "MATERIALIZED VIEW " + qualified
		}
		out = append(out, commentSQL(onClause, s.Comment))
	}
	return out
}

type DropView struct {
	SchemaName   string
	Name         string
	Materialized bool
}

func (s DropView) ID() catalog.ObjectId             { return catalog.View(s.SchemaName, s.Name) }
func (s DropView) Dependencies() []catalog.ObjectId { return nil }
func (s DropView) IsDrop() bool                     { return true }
func (s DropView) IsCreate() bool                   { return false }
func (s DropView) IsRelationship() bool             { return false }

func (s DropView) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	kind := "VIEW"
	if s.Materialized {
		kind = "MATERIALIZED VIEW"
	}
	return []RenderedSQL{{SQL: fmt.Sprintf("DROP %s %s", kind, qualified), Description: fmt.Sprintf("drop view %s", qualified)}}
}

// AlterViewComment changes only a view's comment.
type AlterViewComment struct {
	SchemaName   string
	Name         string
	Materialized bool
	Comment      *string
}

func (s AlterViewComment) ID() catalog.ObjectId             { return catalog.View(s.SchemaName, s.Name) }
func (s AlterViewComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterViewComment) IsDrop() bool                     { return false }
func (s AlterViewComment) IsCreate() bool                   { return false }
func (s AlterViewComment) IsRelationship() bool             { return false }

func (s AlterViewComment) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	onClause := "VIEW " + qualified
	if s.Materialized {
		onClause = "MATERIALIZED VIEW " + qualified
	}
	return []RenderedSQL{commentSQL(onClause, s.Comment)}
}
