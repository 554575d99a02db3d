// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// commentOnClause renders the "<TYPE> <name>" clause COMMENT ON needs for
// a generic ObjectId. It cannot distinguish an ordinary view from a
// materialized view (that bit isn't part of ObjectId), so it always
// renders VIEW; the per-kind Alter*Comment steps used by the normal diff
// path carry that information explicitly and should be preferred whenever
// the concrete kind is known. AlterComment exists for cascade-expansion's
// comment-only steps, which only have an ObjectId.
func commentOnClause(id catalog.ObjectId) string {
	switch id.Kind {
	case catalog.KindSchema:
		return fmt.Sprintf("SCHEMA %s", pq.QuoteIdentifier(id.Name))
	case catalog.KindTable:
		return fmt.Sprintf("TABLE %s", qualify(id.Schema, id.Name))
	case catalog.KindView:
		return fmt.Sprintf("VIEW %s", qualify(id.Schema, id.Name))
	case catalog.KindType:
		return fmt.Sprintf("TYPE %s", qualify(id.Schema, id.Name))
	case catalog.KindDomain:
		return fmt.Sprintf("DOMAIN %s", qualify(id.Schema, id.Name))
	case catalog.KindSequence:
		return fmt.Sprintf("SEQUENCE %s", qualify(id.Schema, id.Name))
	case catalog.KindFunction:
		return fmt.Sprintf("FUNCTION %s(%s)", qualify(id.Schema, id.Name), id.Args)
	case catalog.KindAggregate:
		return fmt.Sprintf("AGGREGATE %s(%s)", qualify(id.Schema, id.Name), id.Args)
	case catalog.KindIndex:
		return fmt.Sprintf("INDEX %s", qualify(id.Schema, id.Name))
	case catalog.KindConstraint:
		return fmt.Sprintf("CONSTRAINT %s ON %s", pq.QuoteIdentifier(id.Name), qualify(id.Schema, id.Table))
	case catalog.KindTrigger:
		return fmt.Sprintf("TRIGGER %s ON %s", pq.QuoteIdentifier(id.Name), qualify(id.Schema, id.Table))
	case catalog.KindPolicy:
		return fmt.Sprintf("POLICY %s ON %s", pq.QuoteIdentifier(id.Name), qualify(id.Schema, id.Table))
	case catalog.KindExtension:
		return fmt.Sprintf("EXTENSION %s", pq.QuoteIdentifier(id.Name))
	case catalog.KindColumn:
		return fmt.Sprintf("COLUMN %s.%s", qualify(id.Schema, id.Table), pq.QuoteIdentifier(id.Column))
	default:
		return fmt.Sprintf("%s %s", id.Kind, qualify(id.Schema, id.Name))
	}
}

// AlterComment changes the comment on an arbitrary catalog object. Cascade
// expansion inserts these when an object's own definition is unchanged but
// a dependent's drop+recreate pulled it along for re-commenting, or when a
// diff detects a comment-only change for a kind not covered by one of the
// dedicated Alter*Comment steps.
type AlterComment struct {
	Target  catalog.ObjectId
	Comment *string
}

func (s AlterComment) ID() catalog.ObjectId             { return catalog.Comment(s.Target) }
func (s AlterComment) Dependencies() []catalog.ObjectId { return []catalog.ObjectId{s.Target} }
func (s AlterComment) IsDrop() bool                     { return false }
func (s AlterComment) IsCreate() bool                   { return false }
func (s AlterComment) IsRelationship() bool             { return false }

func (s AlterComment) ToSQL() []RenderedSQL {
	return []RenderedSQL{commentSQL(commentOnClause(s.Target), s.Comment)}
}
