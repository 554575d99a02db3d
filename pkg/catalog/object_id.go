// SPDX-License-Identifier: Apache-2.0

package catalog

import "fmt"

// Kind discriminates the variant of an ObjectId.
type Kind int

const (
	KindSchema Kind = iota
	KindTable
	KindView
	KindType
	KindDomain
	KindSequence
	KindFunction
	KindAggregate
	KindIndex
	KindConstraint
	KindTrigger
	KindPolicy
	KindExtension
	KindGrant
	KindComment
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindType:
		return "type"
	case KindDomain:
		return "domain"
	case KindSequence:
		return "sequence"
	case KindFunction:
		return "function"
	case KindAggregate:
		return "aggregate"
	case KindIndex:
		return "index"
	case KindConstraint:
		return "constraint"
	case KindTrigger:
		return "trigger"
	case KindPolicy:
		return "policy"
	case KindExtension:
		return "extension"
	case KindGrant:
		return "grant"
	case KindComment:
		return "comment"
	case KindColumn:
		return "column"
	default:
		return "unknown"
	}
}

// ObjectId is the stable, structural identity of a database object. It is
// the only thing used to match objects across two catalogs. Every field is
// a plain string (or Kind, an int), so ObjectId is comparable and usable
// directly as a map key - no wrapper type needed.
//
// Which fields are meaningful depends on Kind:
//
//	Schema      Name
//	Table       Schema, Name
//	View        Schema, Name
//	Type        Schema, Name
//	Domain      Schema, Name
//	Sequence    Schema, Name
//	Function    Schema, Name, Args (identity-args string)
//	Aggregate   Schema, Name, Args
//	Index       Schema, Name
//	Constraint  Schema, Table, Name
//	Trigger     Schema, Table, Name
//	Policy      Schema, Table, Name
//	Extension   Name
//	Grant       Opaque
//	Comment     Wrapped (String() of the wrapped ObjectId)
//	Column      Schema, Table, Column
type ObjectId struct {
	Kind    Kind
	Schema  string
	Name    string
	Table   string
	Column  string
	Args    string
	Opaque  string
	Wrapped string
}

func Schema(name string) ObjectId {
	return ObjectId{Kind: KindSchema, Name: name}
}

func Table(schema, name string) ObjectId {
	return ObjectId{Kind: KindTable, Schema: schema, Name: name}
}

func View(schema, name string) ObjectId {
	return ObjectId{Kind: KindView, Schema: schema, Name: name}
}

func Type(schema, name string) ObjectId {
	return ObjectId{Kind: KindType, Schema: schema, Name: name}
}

func Domain(schema, name string) ObjectId {
	return ObjectId{Kind: KindDomain, Schema: schema, Name: name}
}

func Sequence(schema, name string) ObjectId {
	return ObjectId{Kind: KindSequence, Schema: schema, Name: name}
}

func Function(schema, name, args string) ObjectId {
	return ObjectId{Kind: KindFunction, Schema: schema, Name: name, Args: args}
}

func Aggregate(schema, name, args string) ObjectId {
	return ObjectId{Kind: KindAggregate, Schema: schema, Name: name, Args: args}
}

func Index(schema, name string) ObjectId {
	return ObjectId{Kind: KindIndex, Schema: schema, Name: name}
}

func Constraint(schema, table, name string) ObjectId {
	return ObjectId{Kind: KindConstraint, Schema: schema, Table: table, Name: name}
}

func Trigger(schema, table, name string) ObjectId {
	return ObjectId{Kind: KindTrigger, Schema: schema, Table: table, Name: name}
}

func Policy(schema, table, name string) ObjectId {
	return ObjectId{Kind: KindPolicy, Schema: schema, Table: table, Name: name}
}

func Extension(name string) ObjectId {
	return ObjectId{Kind: KindExtension, Name: name}
}

func Grant(opaque string) ObjectId {
	return ObjectId{Kind: KindGrant, Opaque: opaque}
}

func Comment(wrapped ObjectId) ObjectId {
	return ObjectId{Kind: KindComment, Wrapped: wrapped.String()}
}

func Column(schema, table, column string) ObjectId {
	return ObjectId{Kind: KindColumn, Schema: schema, Table: table, Column: column}
}

// IsSystemSchema reports whether name is one of the schemas PostgreSQL
// reserves for its own catalog and temp-table bookkeeping.
func IsSystemSchema(name string) bool {
	switch {
	case name == "pg_catalog", name == "information_schema", name == "pg_toast":
		return true
	case len(name) >= len("pg_temp_") && name[:len("pg_temp_")] == "pg_temp_":
		return true
	case len(name) >= len("pg_toast_temp_") && name[:len("pg_toast_temp_")] == "pg_toast_temp_":
		return true
	default:
		return false
	}
}

// String renders a total, stable, sortable key for an ObjectId. Lexical
// ordering of String() values gives ObjectId a total order.
func (o ObjectId) String() string {
	switch o.Kind {
	case KindSchema:
		return fmt.Sprintf("schema:%s", o.Name)
	case KindTable:
		return fmt.Sprintf("table:%s.%s", o.Schema, o.Name)
	case KindView:
		return fmt.Sprintf("view:%s.%s", o.Schema, o.Name)
	case KindType:
		return fmt.Sprintf("type:%s.%s", o.Schema, o.Name)
	case KindDomain:
		return fmt.Sprintf("domain:%s.%s", o.Schema, o.Name)
	case KindSequence:
		return fmt.Sprintf("sequence:%s.%s", o.Schema, o.Name)
	case KindFunction:
		return fmt.Sprintf("function:%s.%s(%s)", o.Schema, o.Name, o.Args)
	case KindAggregate:
		return fmt.Sprintf("aggregate:%s.%s(%s)", o.Schema, o.Name, o.Args)
	case KindIndex:
		return fmt.Sprintf("index:%s.%s", o.Schema, o.Name)
	case KindConstraint:
		return fmt.Sprintf("constraint:%s.%s.%s", o.Schema, o.Table, o.Name)
	case KindTrigger:
		return fmt.Sprintf("trigger:%s.%s.%s", o.Schema, o.Table, o.Name)
	case KindPolicy:
		return fmt.Sprintf("policy:%s.%s.%s", o.Schema, o.Table, o.Name)
	case KindExtension:
		return fmt.Sprintf("extension:%s", o.Name)
	case KindGrant:
		return fmt.Sprintf("grant:%s", o.Opaque)
	case KindComment:
		return fmt.Sprintf("comment:%s", o.Wrapped)
	case KindColumn:
		return fmt.Sprintf("column:%s.%s.%s", o.Schema, o.Table, o.Column)
	default:
		return fmt.Sprintf("unknown:%#v", o)
	}
}

// Less gives ObjectId a total order, primarily for deterministic iteration
// and tie-breaking; it is not meaningful beyond that.
func (o ObjectId) Less(other ObjectId) bool {
	return o.String() < other.String()
}
