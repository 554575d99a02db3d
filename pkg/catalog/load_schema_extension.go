// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadSchemas(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT n.nspname, obj_description(n.oid, 'pg_namespace')
FROM pg_namespace n
WHERE n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var comment *string
		if err := rows.Scan(&name, &comment); err != nil {
			return err
		}
		if !filter.AllowSchema(name) {
			continue
		}
		if name == "public" && comment != nil && *comment == "standard public schema" {
			comment = nil
		}
		b.AddSchema(&SchemaEntity{Name: name, Comment: comment})
	}
	return rows.Err()
}

func loadExtensions(ctx context.Context, q Querier, b *Builder) error {
	const query = `
SELECT e.extname, e.extversion, n.nspname, obj_description(e.oid, 'pg_extension')
FROM pg_extension e
JOIN pg_namespace n ON n.oid = e.extnamespace`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ent ExtensionEntity
		var comment *string
		if err := rows.Scan(&ent.Name, &ent.Version, &ent.SchemaName, &comment); err != nil {
			return err
		}
		ent.Comment = comment
		b.AddExtension(&ent)
	}
	return rows.Err()
}
