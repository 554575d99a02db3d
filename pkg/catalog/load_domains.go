// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadDomains(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT t.oid, n.nspname, t.typname, format_type(t.typbasetype, t.typtypmod),
       t.typdefault, t.typnotnull, COALESCE(co.collname, ''),
       obj_description(t.oid, 'pg_type')
FROM pg_type t
JOIN pg_namespace n ON n.oid = t.typnamespace
LEFT JOIN pg_collation co ON co.oid = t.typcollation
WHERE t.typtype = 'd'
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type row struct {
		oid      uint32
		schema   string
		name     string
		baseType string
		def      *string
		notNull  bool
		collName string
		comment  *string
	}
	var collected []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.oid, &r.schema, &r.name, &r.baseType, &r.def, &r.notNull, &r.collName, &r.comment); err != nil {
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
		ent := &DomainEntity{
			SchemaName: r.schema,
			Name:       r.name,
			BaseType:   r.baseType,
			Default:    r.def,
			NotNull:    r.notNull,
			Comment:    r.comment,
		}
		if r.collName != "" && r.collName != "default" {
			ent.Collation = &r.collName
		}
		checks, err := loadDomainChecks(ctx, q, r.oid)
		if err != nil {
			return err
		}
		ent.CheckConstraints = checks

		b.AddDomain(ent)
		b.AddDependency(ent.ID(), Schema(r.schema))
	}
	return nil
}

func loadDomainChecks(ctx context.Context, q Querier, domainOID uint32) ([]DomainCheck, error) {
	const query = `
SELECT conname, pg_get_constraintdef(oid)
FROM pg_constraint
WHERE contypid = $1 AND contype = 'c'
ORDER BY conname`

	rows, err := q.QueryContext(ctx, query, domainOID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []DomainCheck
	for rows.Next() {
		var c DomainCheck
		if err := rows.Scan(&c.Name, &c.Expression); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
