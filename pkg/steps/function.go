// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/catalog"
)

// CreateFunction renders a full CREATE [OR REPLACE] FUNCTION/PROCEDURE
// statement from the entity's parsed parts, since Definition only holds
// the function body source (pg_proc.prosrc), not a ready-to-run
// statement.
type CreateFunction struct {
	SchemaName   string
	Name         string
	Parameters   []catalog.Parameter
	ReturnType   *string
	Language     string
	Definition   string
	Volatility   string
	Strict       bool
	SecurityType string
	Kind         catalog.FunctionKind
	Comment      *string
}

func (s CreateFunction) ID() catalog.ObjectId {
	return catalog.Function(s.SchemaName, s.Name, argSignature(s.Parameters))
}
func (s CreateFunction) Dependencies() []catalog.ObjectId {
	return []catalog.ObjectId{catalog.Schema(s.SchemaName)}
}
func (s CreateFunction) IsDrop() bool         { return false }
func (s CreateFunction) IsCreate() bool       { return true }
func (s CreateFunction) IsRelationship() bool { return false }

func argSignature(params []catalog.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Mode == "OUT" {
			continue
		}
		parts = append(parts, p.DataType)
	}
	return strings.Join(parts, ", ")
}

func paramListSQL(params []catalog.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		def := ""
		switch p.Mode {
		case "OUT":
			def = "OUT "
		case "INOUT":
			def = "INOUT "
		case "VARIADIC":
			def = "VARIADIC "
		}
		if p.Name != "" {
			def += pq.QuoteIdentifier(p.Name) + " "
		}
		def += p.DataType
		parts[i] = def
	}
	return strings.Join(parts, ", ")
}

func volatilityKeyword(v string) string {
	switch v {
	case "i":
		return "IMMUTABLE"
	case "s":
		return "STABLE"
	default:
		return "VOLATILE"
	}
}

func (s CreateFunction) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	verb := "FUNCTION"
	if s.Kind == catalog.FunctionKindProcedure {
		verb = "PROCEDURE"
	}
	stmt := fmt.Sprintf("CREATE OR REPLACE %s %s(%s)", verb, qualified, paramListSQL(s.Parameters))
	if s.Kind == catalog.FunctionKindFunction && s.ReturnType != nil {
		stmt += fmt.Sprintf(" RETURNS %s", *s.ReturnType)
	}
	stmt += fmt.Sprintf(" LANGUAGE %s", pq.QuoteIdentifier(s.Language))
	if s.Kind == catalog.FunctionKindFunction {
		stmt += " " + volatilityKeyword(s.Volatility)
		if s.Strict {
			stmt += " STRICT"
		}
	}
	if s.SecurityType == "definer" {
		stmt += " SECURITY DEFINER"
	}
	stmt += fmt.Sprintf(" AS $pgmt$%s$pgmt$", s.Definition)

	out := []RenderedSQL{{SQL: stmt, Description: fmt.Sprintf("create function %s", qualified)}}
	if s.Comment != nil {
		out = append(out, commentSQL(fmt.Sprintf("%s %s(%s)", verb, qualified, argSignature(s.Parameters)), s.Comment))
	}
	return out
}

type DropFunction struct {
	SchemaName   string
	Name         string
	ArgSignature string
	Kind         catalog.FunctionKind
}

func (s DropFunction) ID() catalog.ObjectId {
	return catalog.Function(s.SchemaName, s.Name, s.ArgSignature)
}
func (s DropFunction) Dependencies() []catalog.ObjectId { return nil }
func (s DropFunction) IsDrop() bool                     { return true }
func (s DropFunction) IsCreate() bool                   { return false }
func (s DropFunction) IsRelationship() bool             { return false }

func (s DropFunction) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	verb := "FUNCTION"
	if s.Kind == catalog.FunctionKindProcedure {
		verb = "PROCEDURE"
	}
	return []RenderedSQL{{
		SQL:         fmt.Sprintf("DROP %s %s(%s)", verb, qualified, s.ArgSignature),
		Description: fmt.Sprintf("drop %s %s(%s)", strings.ToLower(verb), qualified, s.ArgSignature),
	}}
}

// AlterFunctionComment changes only a function's comment.
type AlterFunctionComment struct {
	SchemaName   string
	Name         string
	ArgSignature string
	Kind         catalog.FunctionKind
	Comment      *string
}

func (s AlterFunctionComment) ID() catalog.ObjectId {
	return catalog.Function(s.SchemaName, s.Name, s.ArgSignature)
}
func (s AlterFunctionComment) Dependencies() []catalog.ObjectId { return nil }
func (s AlterFunctionComment) IsDrop() bool                     { return false }
func (s AlterFunctionComment) IsCreate() bool                   { return false }
func (s AlterFunctionComment) IsRelationship() bool             { return false }

func (s AlterFunctionComment) ToSQL() []RenderedSQL {
	qualified := qualify(s.SchemaName, s.Name)
	verb := "FUNCTION"
	if s.Kind == catalog.FunctionKindProcedure {
		verb = "PROCEDURE"
	}
	return []RenderedSQL{commentSQL(fmt.Sprintf("%s %s(%s)", verb, qualified, s.ArgSignature), s.Comment)}
}
