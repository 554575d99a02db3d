// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

// loadTypes populates standalone Type entities: enums, free-standing
// composites (no backing table/view), ranges, and "other" base types
// explicitly declared by the user. Domains are loaded separately by
// loadDomains, and composite types backed by a table or view never
// become TypeEntity rows at all - they're already present as
// TableEntity/ViewEntity and ClassifyType resolves references to them
// accordingly.
func loadTypes(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT t.oid, n.nspname, t.typname, t.typtype, COALESCE(t.typrelid, 0), COALESCE(c.relkind, ''),
       obj_description(t.oid, 'pg_type')
FROM pg_type t
JOIN pg_namespace n ON n.oid = t.typnamespace
LEFT JOIN pg_class c ON c.oid = t.typrelid
LEFT JOIN pg_depend d ON d.objid = t.oid AND d.classid = 'pg_type'::regclass AND d.deptype = 'e'
WHERE t.typtype IN ('e', 'c', 'r', 'm')
  AND t.typelem = 0
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'
  AND d.objid IS NULL
  AND NOT EXISTS (SELECT 1 FROM pg_class c2 WHERE c2.oid = t.typrelid AND c2.relkind IN ('r','p','v','m'))`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type row struct {
		oid      uint32
		schema   string
		name     string
		typtype  string
		relid    uint32
		relkind  string
		comment  *string
	}
	var collected []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.oid, &r.schema, &r.name, &r.typtype, &r.relid, &r.relkind, &r.comment); err != nil {
			return err
		}
		collected = append(collected, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, r := range collected {
		if !filter.AllowSchema(r.schema) {
			continue
		}
		ent := &TypeEntity{SchemaName: r.schema, Name: r.name, Comment: r.comment}
		switch r.typtype {
		case "e":
			ent.Kind = TypeKindEnum
			values, err := loadEnumValues(ctx, q, r.oid)
			if err != nil {
				return err
			}
			ent.EnumValues = values
		case "c":
			ent.Kind = TypeKindComposite
			attrs, err := loadCompositeAttrs(ctx, q, r.relid)
			if err != nil {
				return err
			}
			ent.CompositeAttrs = attrs
		case "r", "m":
			ent.Kind = TypeKindRange
		default:
			ent.Kind = TypeKindOther
		}
		b.AddType(ent)
		b.AddDependency(ent.ID(), Schema(r.schema))
	}
	return nil
}

// loadEnumValues returns an enum's labels ordered by their PostgreSQL
// sort order (pg_enum.enumsortorder), the order ADD VALUE ... AFTER
// anchors must be computed against.
func loadEnumValues(ctx context.Context, q Querier, typeOID uint32) ([]string, error) {
	const query = `
SELECT enumlabel
FROM pg_enum
WHERE enumtypid = $1
ORDER BY enumsortorder`

	rows, err := q.QueryContext(ctx, query, typeOID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func loadCompositeAttrs(ctx context.Context, q Querier, relID uint32) ([]CompositeAttr, error) {
	const query = `
SELECT a.attname, format_type(a.atttypid, a.atttypmod)
FROM pg_attribute a
WHERE a.attrelid = $1 AND a.attnum > 0 AND NOT a.attisdropped
ORDER BY a.attnum`

	rows, err := q.QueryContext(ctx, query, relID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []CompositeAttr
	for rows.Next() {
		var a CompositeAttr
		if err := rows.Scan(&a.Name, &a.DataType); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}
