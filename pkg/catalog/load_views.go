// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadViews(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT c.oid, n.nspname, c.relname, c.relkind = 'm', pg_get_viewdef(c.oid, true),
       COALESCE((c.reloptions @> ARRAY['security_invoker=true']), false),
       COALESCE((c.reloptions @> ARRAY['security_barrier=true']), false),
       obj_description(c.oid, 'pg_class')
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('v', 'm')
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type row struct {
		oid             uint32
		schema          string
		name            string
		materialized    bool
		definition      string
		secInvoker      bool
		secBarrier      bool
		comment         *string
	}
	var views []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.oid, &r.schema, &r.name, &r.materialized, &r.definition,
			&r.secInvoker, &r.secBarrier, &r.comment); err != nil {
			return err
		}
		views = append(views, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, v := range views {
		if !filter.AllowTable(v.schema, v.name) {
			continue
		}
		cols, err := loadViewColumns(ctx, q, v.oid)
		if err != nil {
			return err
		}
		ent := &ViewEntity{
			SchemaName:      v.schema,
			Name:            v.name,
			Materialized:    v.materialized,
			Definition:      v.definition,
			Columns:         cols,
			SecurityInvoker: v.secInvoker,
			SecurityBarrier: v.secBarrier,
			Comment:         v.comment,
		}
		b.AddView(ent)
		b.AddDependency(ent.ID(), Schema(v.schema))
	}
	return nil
}

func loadViewColumns(ctx context.Context, q Querier, viewOID uint32) ([]string, error) {
	const query = `
SELECT a.attname
FROM pg_attribute a
WHERE a.attrelid = $1 AND a.attnum > 0 AND NOT a.attisdropped
ORDER BY a.attnum`

	rows, err := q.QueryContext(ctx, query, viewOID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}
