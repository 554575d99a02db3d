// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is the minimal surface the loader needs from a connection. Both
// *sql.DB and *sql.Conn satisfy it, as does the retrying handle in
// pkg/pgconn - the loader never retries or manages transactions itself,
// it just issues sequential SELECTs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Load produces a Catalog describing every user-visible object visible
// through q, with dependency edges resolved per the rules in ClassifyType
// and the package doc. System schemas are excluded as entities but remain
// valid dependency targets (and are dropped from the edge set, not
// recorded as warnings). Extension-owned objects are excluded as entities;
// dependencies on them resolve to Extension{name}.
//
// The load is one logical transaction's worth of SELECTs: callers that
// need snapshot consistency should pass a *sql.Conn or *sql.Tx-backed
// Querier already inside a transaction; Load itself does not open one, so
// that it composes with the retrying pkg/pgconn wrapper instead of
// fighting it for transaction control.
func Load(ctx context.Context, q Querier, filter ObjectFilter) (*Catalog, []MissingDependencyWarning, error) {
	b := NewBuilder()

	if err := loadSchemas(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "schemas", Err: err}
	}
	if err := loadExtensions(ctx, q, b); err != nil {
		return nil, nil, LoadError{Stage: "extensions", Err: err}
	}
	if err := loadTypes(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "types", Err: err}
	}
	if err := loadDomains(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "domains", Err: err}
	}
	if err := loadSequences(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "sequences", Err: err}
	}
	if err := loadTables(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "tables", Err: err}
	}
	if err := loadViews(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "views", Err: err}
	}
	if err := loadFunctions(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "functions", Err: err}
	}
	if err := loadAggregates(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "aggregates", Err: err}
	}
	if err := loadIndexes(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "indexes", Err: err}
	}
	if err := loadConstraints(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "constraints", Err: err}
	}
	if err := loadTriggers(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "triggers", Err: err}
	}
	if err := loadPolicies(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "policies", Err: err}
	}
	if err := loadGrants(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "grants", Err: err}
	}
	if err := loadDependEdges(ctx, q, filter, b); err != nil {
		return nil, nil, LoadError{Stage: "pg_depend", Err: err}
	}

	return b.Build(), b.Warnings(), nil
}

// recordTypeDependency resolves a pg_type OID to an ObjectId via
// ClassifyType (following typelem for arrays first) and, unless the
// result lands in a system schema, adds it as a dependency of from -
// warning instead when the resolved target isn't actually present in the
// catalog being built (the filter may have excluded it).
func recordTypeDependency(ctx context.Context, q Querier, b *Builder, from ObjectId, typeOID uint32) error {
	pt, extName, err := resolvePgType(ctx, q, typeOID)
	if err != nil {
		return err
	}
	if pt == nil {
		return nil
	}
	target := ClassifyType(*pt, extName)
	if target.Kind == KindType && IsSystemSchema(pt.Schema) {
		return nil
	}
	b.AddDependency(from, target)
	if target.Kind != KindExtension && !b.cat.Exists(target) {
		b.Warnf(from, target)
	}
	return nil
}

// resolvePgType loads the pg_type row for oid, following typelem for
// arrays so callers always classify the element type, never the array
// wrapper. Returns (nil, "", nil) if the OID is zero (no type, e.g. an
// omitted default).
func resolvePgType(ctx context.Context, q Querier, oid uint32) (*PgType, string, error) {
	if oid == 0 {
		return nil, "", nil
	}
	const query = `
SELECT t.oid, n.nspname, t.typname, t.typtype, t.typelem,
       COALESCE(t.typrelid, 0), COALESCE(c.relkind, ''),
       COALESCE(d.deptype = 'e', false), COALESCE(e.extname, '')
FROM pg_type t
JOIN pg_namespace n ON n.oid = t.typnamespace
LEFT JOIN pg_class c ON c.oid = t.typrelid
LEFT JOIN pg_depend d ON d.objid = t.oid AND d.classid = 'pg_type'::regclass AND d.deptype = 'e'
LEFT JOIN pg_extension e ON e.oid = d.refobjid
WHERE t.oid = $1`

	var pt PgType
	var extName string
	row := q.QueryRowContext(ctx, query, oid)
	if err := row.Scan(&pt.OID, &pt.Schema, &pt.Name, &pt.Typtype, &pt.Typelem,
		&pt.TyprelID, &pt.Relkind, &pt.IsExtension, &extName); err != nil {
		return nil, "", fmt.Errorf("resolving type oid %d: %w", oid, err)
	}

	// Array element resolution: never classify the array wrapper itself.
	if pt.Typelem != 0 {
		return resolvePgType(ctx, q, pt.Typelem)
	}

	return &pt, extName, nil
}
