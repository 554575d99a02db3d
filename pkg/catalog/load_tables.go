// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadTables(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT c.oid, n.nspname, c.relname, c.relrowsecurity, c.relforcerowsecurity,
       obj_description(c.oid, 'pg_class')
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN ('r', 'p')
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type row struct {
		oid     uint32
		schema  string
		name    string
		rls     bool
		force   bool
		comment *string
	}
	var tables []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.oid, &r.schema, &r.name, &r.rls, &r.force, &r.comment); err != nil {
			return err
		}
		tables = append(tables, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, t := range tables {
		if !filter.AllowTable(t.schema, t.name) {
			continue
		}
		ent := &TableEntity{
			SchemaName: t.schema,
			Name:       t.name,
			RLSEnabled: t.rls,
			RLSForced:  t.force,
			Comment:    t.comment,
		}
		id := ent.ID()

		cols, colTypeOIDs, err := loadColumns(ctx, q, t.oid)
		if err != nil {
			return err
		}
		ent.Columns = cols

		pk, err := loadPrimaryKey(ctx, q, t.oid)
		if err != nil {
			return err
		}
		ent.PrimaryKey = pk

		b.AddTable(ent)
		b.AddDependency(id, Schema(t.schema))
		for _, oid := range colTypeOIDs {
			if err := recordTypeDependency(ctx, q, b, id, oid); err != nil {
				return err
			}
		}
	}
	return nil
}

func loadColumns(ctx context.Context, q Querier, tableOID uint32) ([]ColumnEntity, []uint32, error) {
	const query = `
SELECT a.attname, format_type(a.atttypid, a.atttypmod), a.atttypid,
       pg_get_expr(ad.adbin, ad.adrelid), a.attnotnull, a.attgenerated,
       col_description(a.attrelid, a.attnum)
FROM pg_attribute a
LEFT JOIN pg_attrdef ad ON ad.adrelid = a.attrelid AND ad.adnum = a.attnum
WHERE a.attrelid = $1 AND a.attnum > 0 AND NOT a.attisdropped
ORDER BY a.attnum`

	rows, err := q.QueryContext(ctx, query, tableOID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var cols []ColumnEntity
	var typeOIDs []uint32
	for rows.Next() {
		var c ColumnEntity
		var typeOID uint32
		var def *string
		var generated string
		var comment *string
		if err := rows.Scan(&c.Name, &c.DataType, &typeOID, &def, &c.NotNull, &generated, &comment); err != nil {
			return nil, nil, err
		}
		if generated == "s" {
			c.GeneratedExpr = def
		} else {
			c.Default = def
		}
		c.Comment = comment
		cols = append(cols, c)
		typeOIDs = append(typeOIDs, typeOID)
	}
	return cols, typeOIDs, rows.Err()
}

func loadPrimaryKey(ctx context.Context, q Querier, tableOID uint32) ([]string, error) {
	const query = `
SELECT a.attname
FROM pg_constraint con
JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = ANY(con.conkey)
WHERE con.conrelid = $1 AND con.contype = 'p'
ORDER BY array_position(con.conkey, a.attnum)`

	rows, err := q.QueryContext(ctx, query, tableOID)
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
