// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

// loadDependEdges adds the forward_deps edges that pg_depend records but
// that the per-kind loaders above don't already derive structurally:
// column-default expressions that reference a function or a sequence via
// nextval(), and view/materialized-view rewrite rules that reference
// other relations or functions. Function *bodies* are not parsed for
// inner references - PG doesn't record those in pg_depend - so this
// intentionally does not attempt to walk pg_proc.prosrc.
func loadDependEdges(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	if err := loadColumnDefaultDeps(ctx, q, filter, b); err != nil {
		return err
	}
	if err := loadViewRewriteDeps(ctx, q, filter, b); err != nil {
		return err
	}
	return nil
}

// loadColumnDefaultDeps walks pg_depend for every pg_attrdef (column
// default) and records the table as depending on whatever function or
// sequence the default expression references - this is how a SERIAL-like
// `DEFAULT nextval('seq')` or `DEFAULT some_func()` column becomes a
// dependency edge without re-parsing the expression text.
func loadColumnDefaultDeps(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT tn.nspname, tc.relname,
       refc.relkind, refn.nspname, refc.relname,
       refp.oid IS NOT NULL, refpn.nspname, refp.proname,
       pg_get_function_identity_arguments(refp.oid)
FROM pg_depend d
JOIN pg_attrdef ad ON ad.oid = d.objid AND d.classid = 'pg_attrdef'::regclass
JOIN pg_class tc ON tc.oid = ad.adrelid
JOIN pg_namespace tn ON tn.oid = tc.relnamespace
LEFT JOIN pg_class refc ON refc.oid = d.refobjid AND d.refclassid = 'pg_class'::regclass
LEFT JOIN pg_namespace refn ON refn.oid = refc.relnamespace
LEFT JOIN pg_proc refp ON refp.oid = d.refobjid AND d.refclassid = 'pg_proc'::regclass
LEFT JOIN pg_namespace refpn ON refpn.oid = refp.pronamespace
WHERE d.deptype = 'n'
  AND tn.nspname NOT LIKE 'pg\_%' AND tn.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableSchema, tableName string
		var refRelkind, refSchema, refRel *string
		var isFunc bool
		var refFnSchema, refFnName, refFnArgs *string
		if err := rows.Scan(&tableSchema, &tableName, &refRelkind, &refSchema, &refRel,
			&isFunc, &refFnSchema, &refFnName, &refFnArgs); err != nil {
			return err
		}
		if !filter.AllowTable(tableSchema, tableName) {
			continue
		}
		tableID := Table(tableSchema, tableName)

		switch {
		case isFunc && refFnSchema != nil:
			b.AddDependency(tableID, Function(*refFnSchema, *refFnName, derefOrEmpty(refFnArgs)))
		case refRelkind != nil && refSchema != nil && refRel != nil:
			switch *refRelkind {
			case "S":
				b.AddDependency(tableID, Sequence(*refSchema, *refRel))
			}
		}
	}
	return rows.Err()
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// loadViewRewriteDeps records a view's dependency on every relation and
// function its defining query references, via the view's pg_rewrite
// rule - the one place PostgreSQL does track a query's table/function
// references structurally (unlike function bodies).
func loadViewRewriteDeps(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT vn.nspname, vc.relname,
       refc.relkind, refn.nspname, refc.relname,
       refp.oid IS NOT NULL, refpn.nspname, refp.proname,
       pg_get_function_identity_arguments(refp.oid)
FROM pg_rewrite r
JOIN pg_class vc ON vc.oid = r.ev_class
JOIN pg_namespace vn ON vn.oid = vc.relnamespace
JOIN pg_depend d ON d.objid = r.oid AND d.classid = 'pg_rewrite'::regclass AND d.deptype = 'n'
LEFT JOIN pg_class refc ON refc.oid = d.refobjid AND d.refclassid = 'pg_class'::regclass AND refc.oid != vc.oid
LEFT JOIN pg_namespace refn ON refn.oid = refc.relnamespace
LEFT JOIN pg_proc refp ON refp.oid = d.refobjid AND d.refclassid = 'pg_proc'::regclass
LEFT JOIN pg_namespace refpn ON refpn.oid = refp.pronamespace
WHERE vc.relkind IN ('v', 'm')
  AND vn.nspname NOT LIKE 'pg\_%' AND vn.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var viewSchema, viewName string
		var refRelkind, refSchema, refRel *string
		var isFunc bool
		var refFnSchema, refFnName, refFnArgs *string
		if err := rows.Scan(&viewSchema, &viewName, &refRelkind, &refSchema, &refRel,
			&isFunc, &refFnSchema, &refFnName, &refFnArgs); err != nil {
			return err
		}
		if !filter.AllowTable(viewSchema, viewName) {
			continue
		}
		viewID := View(viewSchema, viewName)

		switch {
		case isFunc && refFnSchema != nil:
			b.AddDependency(viewID, Function(*refFnSchema, *refFnName, derefOrEmpty(refFnArgs)))
		case refRelkind != nil && refSchema != nil && refRel != nil:
			switch *refRelkind {
			case "r", "p":
				b.AddDependency(viewID, Table(*refSchema, *refRel))
			case "v", "m":
				b.AddDependency(viewID, View(*refSchema, *refRel))
			}
		}
	}
	return rows.Err()
}
