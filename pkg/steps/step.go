// SPDX-License-Identifier: Apache-2.0

// Package steps defines the algebraic MigrationStep type - one concrete
// struct per (object kind, verb) pair - and each step's deterministic SQL
// rendering. Rendering is a pure function of the step: the same step
// value always produces the same RenderedSQL slice, so that two diff runs
// against identical catalogs produce byte-identical migration files.
package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// RenderedSQL is one SQL statement produced by a step, paired with a
// short human-readable description used in progress output and migration
// file comments.
type RenderedSQL struct {
	SQL         string
	Description string
}

// MigrationStep is the central algebraic type: every atomic schema
// change the differ can emit implements this interface. ID and
// Dependencies are total - they never panic and never return a zero
// value that could be confused with "no id"/"no deps" unless that's
// genuinely correct (e.g. a Grant's Dependencies is often empty).
type MigrationStep interface {
	// ID names the object this step affects.
	ID() catalog.ObjectId

	// Dependencies lists step-local dependencies, used by the
	// topological sort as a fallback when ID (or an endpoint implied by
	// the step) has no entry in the catalog's forward_deps - this
	// happens for dynamically generated steps, such as a Comment step
	// synthesized by cascade expansion, that were never themselves
	// catalog entities.
	Dependencies() []catalog.ObjectId

	// IsDrop, IsCreate and IsRelationship classify the step for the
	// differ's two-phase ordering: primary steps (create/drop/alter)
	// sort first, relationship steps sort in a second, independent pass.
	// AlterSequenceOwnership is the only relationship step; constraint
	// steps, foreign keys included, are primary steps.
	IsDrop() bool
	IsCreate() bool
	IsRelationship() bool

	// ToSQL renders the step to one or more SQL statements. Every step
	// renders to at least one statement.
	ToSQL() []RenderedSQL
}

// qualify returns a double-quoted, schema-qualified identifier, or just
// the quoted name when schema is empty (e.g. an Extension, which has no
// schema component in its identity).
func qualify(schema, name string) string {
	if schema == "" {
		return pq.QuoteIdentifier(name)
	}
	return fmt.Sprintf("%s.%s", pq.QuoteIdentifier(schema), pq.QuoteIdentifier(name))
}

// commentSQL renders a COMMENT ON ... IS '...' statement, or IS NULL when
// comment is nil, for any object kind that supports PostgreSQL comments.
func commentSQL(onClause string, comment *string) RenderedSQL {
	if comment == nil {
		return RenderedSQL{
			SQL:         fmt.Sprintf("COMMENT ON %s IS NULL", onClause),
			Description: fmt.Sprintf("clear comment on %s", onClause),
		}
	}
	return RenderedSQL{
		SQL:         fmt.Sprintf("COMMENT ON %s IS %s", onClause, pq.QuoteLiteral(*comment)),
		Description: fmt.Sprintf("set comment on %s", onClause),
	}
}
