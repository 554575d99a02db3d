// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreatePolicy uses Definition as-is: it is already a complete CREATE
// POLICY statement, hand-built by the loader from pg_policy.
type CreatePolicy struct {
	SchemaName string
	Table      string
	Name       string
	Definition string
	Comment    *string
}

func (s CreatePolicy) ID() catalog.ObjectId {
	return catalog.Policy(s.SchemaName, s.Table, s.Name)
}
func (s CreatePolicy) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Table(s.SchemaName, s.Table)}
}
func (s CreatePolicy) IsDrop() bool         { return false }
func (s CreatePolicy) IsCreate() bool       { return true }
func (s CreatePolicy) IsRelationship() bool { return false }

func (s CreatePolicy) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	out := []RenderedSQL{{SQL: s.Definition, Description: fmt.Sprintf("create policy %q on %s", s.Name, table)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("POLICY %s ON %s", pq.QuoteIdentifier(s.Name), table), s.Comment))
	}
	return out
}

type DropPolicy struct {
	SchemaName string
	Table      string
	Name       string
}

func (s DropPolicy) ID() catalog.ObjectId {
	return catalog.Policy(s.SchemaName, s.Table, s.Name)
}
func (s DropPolicy) Dependencies() []catalog.ObjectId { return nil }
func (s DropPolicy) IsDrop() bool                     { return true }
func (s DropPolicy) IsCreate() bool                   { return false }
func (s DropPolicy) IsRelationship() bool             { return false }

func (s DropPolicy) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("DROP POLICY %s ON %s", pq.QuoteIdentifier(s.Name), table),
		Description: fmt.Sprintf("drop policy %q from %s", s.Name, table),
	}}
}

// AlterPolicyComment changes only a policy's comment.
type AlterPolicyComment struct {
	SchemaName string
	Table      string
	Name       string
	Comment    *string
}

func (s AlterPolicyComment) ID() catalog.ObjectId {
	return catalog.Policy(s.SchemaName, s.Table, s.Name)
}
func (s AlterPolicyComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterPolicyComment) IsDrop() bool                     { return false }
func (s AlterPolicyComment) IsCreate() bool                   { return false }
func (s AlterPolicyComment) IsRelationship() bool             { return false }

func (s AlterPolicyComment) ToSQL() []RenderedSQL {
	table := qualify(s.SchemaName, s.Table)
	return []RenderedSQL{commentSQL(fmt.Sprintf("POLICY %s ON %s", pq.QuoteIdentifier(s.Name), table), s.Comment)}
}
