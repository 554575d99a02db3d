// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// grantObjectClause renders the "<TYPE> <qualified name>" clause GRANT and
// REVOKE need, dispatching on the object's catalog.Kind. Only the kinds
// PostgreSQL actually allows as GRANT targets are handled; anything else
// is a programmer error in the differ, not a runtime condition.
func grantObjectClause(id catalog.ObjectId) string {
	switch id.Kind {
	case catalog.KindTable:
		return fmt.Sprintf("TABLE %s", qualify(id.Schema, id.Name))
	case catalog.KindView:
		return fmt.Sprintf("TABLE %s", qualify(id.Schema, id.Name))
	case catalog.KindSequence:
		return fmt.Sprintf("SEQUENCE %s", qualify(id.Schema, id.Name))
	case catalog.KindFunction:
		return fmt.Sprintf("FUNCTION %s(%s)", qualify(id.Schema, id.Name), id.Args)
	case catalog.KindSchema:
		return fmt.Sprintf("SCHEMA %s", pq.QuoteIdentifier(id.Name))
	default:
		return fmt.Sprintf("%s %s", id.Kind, qualify(id.Schema, id.Name))
	}
}

func granteeClause(granteeType, grantee string) string {
	if granteeType == "public" {
		return "PUBLIC"
	}
	return pq.QuoteIdentifier(grantee)
}

// GrantPrivilege issues one GRANT statement for a single
// (grantee, privilege, object) tuple. Grants have no body to alter - they
// either exist or don't - so there is no corresponding Alter step.
type GrantPrivilege struct {
	Grantee     string
	GranteeType string
	Privilege   string
	Object      catalog.ObjectId
	GrantOption bool
}

func (s GrantPrivilege) ID() catalog.ObjectId {
	return catalog.Grant((&catalog.GrantEntity{
		Grantee: s.Grantee, GranteeType: s.GranteeType, Privilege: s.Privilege, Object: s.Object,
	}).OpaqueKey())
}
func (s GrantPrivilege) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{s.Object}
}
func (s GrantPrivilege) IsDrop() bool         { return false }
func (s GrantPrivilege) IsCreate() bool       { return true }
func (s GrantPrivilege) IsRelationship() bool { return false }

func (s GrantPrivilege) ToSQL() []RenderedSQL {
	stmt := fmt.Sprintf("GRANT %s ON %s TO %s", s.Privilege, grantObjectClause(s.Object), granteeClause(s.GranteeType, s.Grantee))
	if s.GrantOption {
		stmt += " WITH GRANT OPTION"
	}
	return []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("grant %s on %s to %s", s.Privilege, grantObjectClause(s.Object), s.Grantee)}}
}

// RevokePrivilege removes one (grantee, privilege, object) tuple.
type RevokePrivilege struct {
	Grantee     string
	GranteeType string
	Privilege   string
	Object      catalog.ObjectId
}

func (s RevokePrivilege) ID() catalog.ObjectId {
	return catalog.Grant((&catalog.GrantEntity{
		Grantee: s.Grantee, GranteeType: s.GranteeType, Privilege: s.Privilege, Object: s.Object,
	}).OpaqueKey())
}
func (s RevokePrivilege) Dependencies() []catalog.ObjectId { return nil }
func (s RevokePrivilege) IsDrop() bool                     { return true }
func (s RevokePrivilege) IsCreate() bool                   { return false }
func (s RevokePrivilege) IsRelationship() bool             { return false }

func (s RevokePrivilege) ToSQL() []RenderedSQL {
	stmt := fmt.Sprintf("REVOKE %s ON %s FROM %s", s.Privilege, grantObjectClause(s.Object), granteeClause(s.GranteeType, s.Grantee))
	return []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("revoke %s on %s from %s", s.Privilege, grantObjectClause(s.Object), s.Grantee)}}
}
