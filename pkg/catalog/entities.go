// SPDX-License-Identifier: Apache-2.0

package catalog

// SchemaEntity is a user-visible PostgreSQL schema. The "public" schema is
// never created or dropped by the differ, and PostgreSQL's built-in
// comment on it ("standard public schema") is normalized away during
// loading so it never shows up as a diff.
type SchemaEntity struct {
	Name    string
	Comment *string
}

func (s *SchemaEntity) ID() ObjectId { return Schema(s.Name) }

// TableEntity is a table or partitioned table.
type TableEntity struct {
	SchemaName string
	Name       string
	Columns    []ColumnEntity
	PrimaryKey []string
	RLSEnabled bool
	RLSForced  bool
	Comment    *string
}

func (t *TableEntity) ID() ObjectId { return Table(t.SchemaName, t.Name) }

// ColumnEntity describes one column of a table. Columns are not a
// top-level catalog identity for diffing purposes - the table differ
// produces per-column actions - but they are modeled here because the
// loader must populate them and ColumnID exists for dependency-tracking
// (a column's type, default expression, and generated expression can each
// be a dependency source).
type ColumnEntity struct {
	Name          string
	DataType      string
	Default       *string
	NotNull       bool
	GeneratedExpr *string
	Comment       *string
}

// ViewEntity is an ordinary or materialized view.
type ViewEntity struct {
	SchemaName       string
	Name             string
	Materialized     bool
	Definition       string
	Columns          []string
	SecurityInvoker  bool
	SecurityBarrier  bool
	Comment          *string
	DependsOn        []ObjectId
}

func (v *ViewEntity) ID() ObjectId { return View(v.SchemaName, v.Name) }

// TypeKind classifies a standalone pg_type row. Domains and
// composite-types backed by a table/view get their own ObjectId kinds
// (Domain, Table, View) and are never represented as a TypeEntity; see
// ClassifyType.
type TypeKind int

const (
	TypeKindEnum TypeKind = iota
	TypeKindComposite
	TypeKindRange
	TypeKindOther
)

// CompositeAttr is one attribute of a standalone (non-table/view-backed)
// composite type.
type CompositeAttr struct {
	Name     string
	DataType string
}

// TypeEntity is a standalone enum, free-standing composite, range, or
// other pg_type row (e.g. a base type).
type TypeEntity struct {
	SchemaName     string
	Name           string
	Kind           TypeKind
	EnumValues     []string
	CompositeAttrs []CompositeAttr
	Comment        *string
}

func (t *TypeEntity) ID() ObjectId { return Type(t.SchemaName, t.Name) }

// DomainCheck is one CHECK constraint attached to a domain.
type DomainCheck struct {
	Name       string
	Expression string
}

// DomainEntity is a CREATE DOMAIN.
type DomainEntity struct {
	SchemaName       string
	Name             string
	BaseType         string
	Default          *string
	NotNull          bool
	Collation        *string
	CheckConstraints []DomainCheck
	Comment          *string
}

func (d *DomainEntity) ID() ObjectId { return Domain(d.SchemaName, d.Name) }

// ColumnRef names a single column of a table, used for sequence
// ownership (Sequence.OwnedBy).
type ColumnRef struct {
	SchemaName string
	Table      string
	Column     string
}

// SequenceEntity is a CREATE SEQUENCE. Ownership is deliberately not a
// forward_deps edge - see loadSequences in load_sequences.go - it
// is recorded here as a plain field and surfaced by the differ as a
// relationship step.
type SequenceEntity struct {
	SchemaName string
	Name       string
	DataType   string
	Start      int64
	Min        int64
	Max        int64
	Increment  int64
	Cycle      bool
	OwnedBy    *ColumnRef
	Comment    *string
}

func (s *SequenceEntity) ID() ObjectId { return Sequence(s.SchemaName, s.Name) }

// FunctionKind distinguishes a FUNCTION from a PROCEDURE. Aggregates have
// their own entity and ObjectId kind (AggregateEntity / KindAggregate).
type FunctionKind int

const (
	FunctionKindFunction FunctionKind = iota
	FunctionKindProcedure
)

// Parameter is one formal parameter of a function or procedure.
type Parameter struct {
	Name     string
	DataType string
	Mode     string // "IN", "OUT", "INOUT", "VARIADIC"
}

// FunctionEntity is a CREATE FUNCTION / CREATE PROCEDURE. "Signature" for
// diffing purposes is the ordered list of parameter types and modes plus
// the return type - captured here by ArgSignature (PG's identity-args
// string) together with ReturnType.
type FunctionEntity struct {
	SchemaName   string
	Name         string
	ArgSignature string
	Parameters   []Parameter
	ReturnType   *string
	Language     string
	Definition   string
	Volatility   string // "i"mmutable, "s"table, "v"olatile
	Strict       bool
	SecurityType string // "invoker" or "definer"
	Kind         FunctionKind
	Comment      *string
}

func (f *FunctionEntity) ID() ObjectId {
	return Function(f.SchemaName, f.Name, f.ArgSignature)
}

// AggregateEntity is a CREATE AGGREGATE. Aggregates are treated
// generically: identity, full textual definition, and dependencies; any
// structural change is a drop+create.
type AggregateEntity struct {
	SchemaName   string
	Name         string
	ArgSignature string
	Definition   string
	Comment      *string
}

func (a *AggregateEntity) ID() ObjectId {
	return Aggregate(a.SchemaName, a.Name, a.ArgSignature)
}

// IndexEntity is a CREATE INDEX.
type IndexEntity struct {
	SchemaName string
	Name       string
	Table      string
	Unique     bool
	Definition string
	Comment    *string
}

func (i *IndexEntity) ID() ObjectId { return Index(i.SchemaName, i.Name) }

// ConstraintKind classifies a table constraint.
type ConstraintKind int

const (
	ConstraintKindUnique ConstraintKind = iota
	ConstraintKindForeignKey
	ConstraintKindCheck
	ConstraintKindExclusion
)

// ForeignKeyBody holds the FK-specific attributes of a Constraint.
type ForeignKeyBody struct {
	ReferencedSchema  string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          string
	OnUpdate          string
	MatchType         string
	Deferrable        bool
	InitiallyDeferred bool
}

// ConstraintEntity is a table-level constraint: unique, foreign key,
// check, or exclusion. Any body change forces drop+recreate.
type ConstraintEntity struct {
	SchemaName string
	Table      string
	Name       string
	Kind       ConstraintKind
	Columns    []string
	Definition string
	FK         *ForeignKeyBody
	Comment    *string
}

func (c *ConstraintEntity) ID() ObjectId {
	return Constraint(c.SchemaName, c.Table, c.Name)
}

// TriggerEntity is a CREATE TRIGGER.
type TriggerEntity struct {
	SchemaName string
	Table      string
	Name       string
	Definition string
	Comment    *string
}

func (t *TriggerEntity) ID() ObjectId {
	return Trigger(t.SchemaName, t.Table, t.Name)
}

// PolicyEntity is a row-level-security CREATE POLICY.
type PolicyEntity struct {
	SchemaName string
	Table      string
	Name       string
	Definition string
	Comment    *string
}

func (p *PolicyEntity) ID() ObjectId {
	return Policy(p.SchemaName, p.Table, p.Name)
}

// ExtensionEntity is a CREATE EXTENSION.
type ExtensionEntity struct {
	Name       string
	Version    string
	SchemaName string
	Comment    *string
}

func (e *ExtensionEntity) ID() ObjectId { return Extension(e.Name) }

// GrantEntity is one (grantee, privilege, object) tuple. Grants are pure
// set members, not versioned objects: a grant either exists or doesn't,
// so diffing is a set difference, not a body comparison.
type GrantEntity struct {
	Grantee     string
	GranteeType string // "user", "role", "public"
	Privilege   string
	Object      ObjectId
	GrantOption bool
}

// OpaqueKey derives the Grant ObjectId's opaque component from the
// tuple's fields.
func (g *GrantEntity) OpaqueKey() string {
	return g.GranteeType + ":" + g.Grantee + ":" + g.Privilege + ":" + g.Object.String()
}

func (g *GrantEntity) ID() ObjectId { return Grant(g.OpaqueKey()) }
