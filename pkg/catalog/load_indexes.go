// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadIndexes(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT n.nspname, ic.relname, tc.relname, i.indisunique, pg_get_indexdef(i.indexrelid),
       obj_description(ic.oid, 'pg_class')
FROM pg_index i
JOIN pg_class ic ON ic.oid = i.indexrelid
JOIN pg_class tc ON tc.oid = i.indrelid
JOIN pg_namespace n ON n.oid = ic.relnamespace
LEFT JOIN pg_constraint con ON con.conindid = i.indexrelid
WHERE n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'
  AND con.oid IS NULL` // indexes backing a constraint are represented as the Constraint, not a separate Index

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ent IndexEntity
		var comment *string
		if err := rows.Scan(&ent.SchemaName, &ent.Name, &ent.Table, &ent.Unique, &ent.Definition, &comment); err != nil {
			return err
		}
		if !filter.AllowTable(ent.SchemaName, ent.Table) {
			continue
		}
		ent.Comment = comment
		b.AddIndex(&ent)
		b.AddDependency(ent.ID(), Table(ent.SchemaName, ent.Table))
	}
	return rows.Err()
}
