// SPDX-License-Identifier: Apache-2.0

// Package catalog models a typed, in-memory snapshot of a PostgreSQL
// schema - the set of user-visible objects plus the dependency graph
// between them - together with the loader that populates one from a live
// connection's pg_catalog/pg_depend tables.
//
// A Catalog is immutable once built: the loader and the shadow-DB reader
// both produce one via Builder.Build, and the differ consumes two of them
// read-only.
package catalog

import "sort"

// Catalog is an immutable bundle of ordered collections keyed by
// ObjectId, one per object kind, plus the forward dependency map.
// Dependencies are edges "X must exist before Y" (equivalently "Y depends
// on X"), computed at load time from pg_depend, column type references,
// view/function rewrite dependencies, and sequence ownership.
type Catalog struct {
	Schemas     map[ObjectId]*SchemaEntity
	Tables      map[ObjectId]*TableEntity
	Views       map[ObjectId]*ViewEntity
	Types       map[ObjectId]*TypeEntity
	Domains     map[ObjectId]*DomainEntity
	Sequences   map[ObjectId]*SequenceEntity
	Functions   map[ObjectId]*FunctionEntity
	Aggregates  map[ObjectId]*AggregateEntity
	Indexes     map[ObjectId]*IndexEntity
	Constraints map[ObjectId]*ConstraintEntity
	Triggers    map[ObjectId]*TriggerEntity
	Policies    map[ObjectId]*PolicyEntity
	Extensions  map[ObjectId]*ExtensionEntity
	Grants      map[ObjectId]*GrantEntity

	// ForwardDeps maps an object to the set of objects it depends on: an
	// edge id -> dep means "dep must exist before id". System-schema
	// targets are never recorded (see AddDependency). A type-reference
	// target that is not an Extension{} reference and is absent from the
	// entity maps above gets a MissingDependency warning during loading;
	// edges from the other loaders (constraints, views, column defaults)
	// are recorded without that check, so their targets are not
	// guaranteed to be present.
	ForwardDeps map[ObjectId][]ObjectId

	// order preserves the sequence objects were added in, for
	// deterministic iteration independent of Go's randomized map order.
	order []ObjectId
}

// Order returns every object identity in the catalog, in load order.
func (c *Catalog) Order() []ObjectId {
	out := make([]ObjectId, len(c.order))
	copy(out, c.order)
	return out
}

// DependsOn returns the (possibly empty) set of objects id depends on.
func (c *Catalog) DependsOn(id ObjectId) []ObjectId {
	return c.ForwardDeps[id]
}

// Exists reports whether id names any object present in this catalog
// (under any kind).
func (c *Catalog) Exists(id ObjectId) bool {
	switch id.Kind {
	case KindSchema:
		_, ok := c.Schemas[id]
		return ok
	case KindTable:
		_, ok := c.Tables[id]
		return ok
	case KindView:
		_, ok := c.Views[id]
		return ok
	case KindType:
		_, ok := c.Types[id]
		return ok
	case KindDomain:
		_, ok := c.Domains[id]
		return ok
	case KindSequence:
		_, ok := c.Sequences[id]
		return ok
	case KindFunction:
		_, ok := c.Functions[id]
		return ok
	case KindAggregate:
		_, ok := c.Aggregates[id]
		return ok
	case KindIndex:
		_, ok := c.Indexes[id]
		return ok
	case KindConstraint:
		_, ok := c.Constraints[id]
		return ok
	case KindTrigger:
		_, ok := c.Triggers[id]
		return ok
	case KindPolicy:
		_, ok := c.Policies[id]
		return ok
	case KindExtension:
		_, ok := c.Extensions[id]
		return ok
	case KindGrant:
		_, ok := c.Grants[id]
		return ok
	default:
		return false
	}
}

// Builder accumulates entities and dependency edges while loading, then
// produces an immutable Catalog. Builder itself is not safe for
// concurrent use.
type Builder struct {
	cat      *Catalog
	depSet   map[ObjectId]map[ObjectId]struct{}
	warnings []MissingDependencyWarning
}

// MissingDependencyWarning records a dependency edge whose target was not
// found among the loaded entities and is not a system-schema or
// extension reference. Warn-level, never fatal - the object filter may
// have legitimately excluded the target.
type MissingDependencyWarning struct {
	From   ObjectId
	Target ObjectId
}

func NewBuilder() *Builder {
	return &Builder{
		cat: &Catalog{
			Schemas:     map[ObjectId]*SchemaEntity{},
			Tables:      map[ObjectId]*TableEntity{},
			Views:       map[ObjectId]*ViewEntity{},
			Types:       map[ObjectId]*TypeEntity{},
			Domains:     map[ObjectId]*DomainEntity{},
			Sequences:   map[ObjectId]*SequenceEntity{},
			Functions:   map[ObjectId]*FunctionEntity{},
			Aggregates:  map[ObjectId]*AggregateEntity{},
			Indexes:     map[ObjectId]*IndexEntity{},
			Constraints: map[ObjectId]*ConstraintEntity{},
			Triggers:    map[ObjectId]*TriggerEntity{},
			Policies:    map[ObjectId]*PolicyEntity{},
			Extensions:  map[ObjectId]*ExtensionEntity{},
			Grants:      map[ObjectId]*GrantEntity{},
			ForwardDeps: map[ObjectId][]ObjectId{},
		},
		depSet: map[ObjectId]map[ObjectId]struct{}{},
	}
}

func (b *Builder) track(id ObjectId) {
	b.cat.order = append(b.cat.order, id)
}

func (b *Builder) AddSchema(s *SchemaEntity) {
	id := s.ID()
	b.cat.Schemas[id] = s
	b.track(id)
}

func (b *Builder) AddTable(t *TableEntity) {
	id := t.ID()
	b.cat.Tables[id] = t
	b.track(id)
}

func (b *Builder) AddView(v *ViewEntity) {
	id := v.ID()
	b.cat.Views[id] = v
	b.track(id)
}

func (b *Builder) AddType(t *TypeEntity) {
	id := t.ID()
	b.cat.Types[id] = t
	b.track(id)
}

func (b *Builder) AddDomain(d *DomainEntity) {
	id := d.ID()
	b.cat.Domains[id] = d
	b.track(id)
}

func (b *Builder) AddSequence(s *SequenceEntity) {
	id := s.ID()
	b.cat.Sequences[id] = s
	b.track(id)
}

func (b *Builder) AddFunction(f *FunctionEntity) {
	id := f.ID()
	b.cat.Functions[id] = f
	b.track(id)
}

func (b *Builder) AddAggregate(a *AggregateEntity) {
	id := a.ID()
	b.cat.Aggregates[id] = a
	b.track(id)
}

func (b *Builder) AddIndex(i *IndexEntity) {
	id := i.ID()
	b.cat.Indexes[id] = i
	b.track(id)
}

func (b *Builder) AddConstraint(c *ConstraintEntity) {
	id := c.ID()
	b.cat.Constraints[id] = c
	b.track(id)
}

func (b *Builder) AddTrigger(t *TriggerEntity) {
	id := t.ID()
	b.cat.Triggers[id] = t
	b.track(id)
}

func (b *Builder) AddPolicy(p *PolicyEntity) {
	id := p.ID()
	b.cat.Policies[id] = p
	b.track(id)
}

func (b *Builder) AddExtension(e *ExtensionEntity) {
	id := e.ID()
	b.cat.Extensions[id] = e
	b.track(id)
}

func (b *Builder) AddGrant(g *GrantEntity) {
	id := g.ID()
	b.cat.Grants[id] = g
	b.track(id)
}

// AddDependency records that `from` depends on `target`: target must
// exist before from. System-schema targets are silently dropped (they
// remain valid dependency targets but are never entities). Duplicate
// edges are collapsed.
func (b *Builder) AddDependency(from, target ObjectId) {
	if IsSystemSchema(target.Schema) {
		return
	}
	if b.depSet[from] == nil {
		b.depSet[from] = map[ObjectId]struct{}{}
	}
	if _, dup := b.depSet[from][target]; dup {
		return
	}
	b.depSet[from][target] = struct{}{}
	b.cat.ForwardDeps[from] = append(b.cat.ForwardDeps[from], target)
}

// Warnf records a non-fatal missing-dependency observation.
func (b *Builder) Warnf(from, target ObjectId) {
	b.warnings = append(b.warnings, MissingDependencyWarning{From: from, Target: target})
}

// Warnings returns every MissingDependency observation recorded so far.
func (b *Builder) Warnings() []MissingDependencyWarning {
	return b.warnings
}

// Build finalizes the catalog: dependency lists are sorted for
// deterministic output, and the load-order slice is returned as-is
// (insertion order is itself deterministic because the loader issues its
// per-kind queries in a fixed sequence).
func (b *Builder) Build() *Catalog {
	for id, deps := range b.cat.ForwardDeps {
		sort.Slice(deps, func(i, j int) bool { return deps[i].Less(deps[j]) })
		b.cat.ForwardDeps[id] = deps
	}
	return b.cat
}
