// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadFunctions(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT p.oid, n.nspname, p.proname, pg_get_function_identity_arguments(p.oid),
       pg_get_function_result(p.oid), l.lanname, p.prosrc,
       p.provolatile, p.proisstrict, CASE WHEN p.prosecdef THEN 'definer' ELSE 'invoker' END,
       p.prokind,
       obj_description(p.oid, 'pg_proc')
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
JOIN pg_language l ON l.oid = p.prolang
LEFT JOIN pg_depend d ON d.objid = p.oid AND d.classid = 'pg_proc'::regclass AND d.deptype = 'e'
WHERE p.prokind IN ('f', 'p')
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'
  AND d.objid IS NULL`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type row struct {
		oid          uint32
		schema       string
		name         string
		args         string
		returnType   *string
		language     string
		src          string
		volatility   string
		strict       bool
		security     string
		kind         string
		comment      *string
	}
	var fns []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.oid, &r.schema, &r.name, &r.args, &r.returnType, &r.language,
			&r.src, &r.volatility, &r.strict, &r.security, &r.kind, &r.comment); err != nil {
			return err
		}
		fns = append(fns, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, f := range fns {
		if !filter.AllowSchema(f.schema) {
			continue
		}
		ent := &FunctionEntity{
			SchemaName:   f.schema,
			Name:         f.name,
			ArgSignature: f.args,
			ReturnType:   f.returnType,
			Language:     f.language,
			Definition:   f.src,
			Volatility:   f.volatility,
			Strict:       f.strict,
			SecurityType: f.security,
			Comment:      f.comment,
		}
		if f.kind == "p" {
			ent.Kind = FunctionKindProcedure
		} else {
			ent.Kind = FunctionKindFunction
		}

		params, err := loadParameters(ctx, q, f.oid)
		if err != nil {
			return err
		}
		ent.Parameters = params

		b.AddFunction(ent)
		b.AddDependency(ent.ID(), Schema(f.schema))
	}
	return nil
}

func loadAggregates(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT p.oid, n.nspname, p.proname, pg_get_function_identity_arguments(p.oid),
       pg_get_functiondef(p.oid), obj_description(p.oid, 'pg_proc')
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
LEFT JOIN pg_depend d ON d.objid = p.oid AND d.classid = 'pg_proc'::regclass AND d.deptype = 'e'
WHERE p.prokind = 'a'
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'
  AND d.objid IS NULL`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ent AggregateEntity
		var comment *string
		if err := rows.Scan(&ent.SchemaName, &ent.Name, &ent.ArgSignature, &ent.Definition, &comment); err != nil {
			return err
		}
		if !filter.AllowSchema(ent.SchemaName) {
			continue
		}
		ent.Comment = comment
		b.AddAggregate(&ent)
		b.AddDependency(ent.ID(), Schema(ent.SchemaName))
	}
	return rows.Err()
}

func loadParameters(ctx context.Context, q Querier, funcOID uint32) ([]Parameter, error) {
	const query = `
SELECT unnest(COALESCE(p.proargnames, ARRAY[]::text[])),
       format_type(unnest(p.proallargtypes), NULL),
       unnest(COALESCE(p.proargmodes::text[], ARRAY[]::text[]))
FROM pg_proc p
WHERE p.oid = $1 AND p.proallargtypes IS NOT NULL`

	rows, err := q.QueryContext(ctx, query, funcOID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var params []Parameter
	for rows.Next() {
		var p Parameter
		if err := rows.Scan(&p.Name, &p.DataType, &p.Mode); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, rows.Err()
}
