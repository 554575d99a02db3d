// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

func loadConstraints(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT n.nspname, tc.relname, con.conname, con.contype, pg_get_constraintdef(con.oid),
       con.condeferrable, con.condeferred, COALESCE(con.confmatchtype, ''),
       COALESCE(fn.nspname, ''), COALESCE(ftc.relname, ''),
       obj_description(con.oid, 'pg_constraint')
FROM pg_constraint con
JOIN pg_class tc ON tc.oid = con.conrelid
JOIN pg_namespace n ON n.oid = tc.relnamespace
LEFT JOIN pg_class ftc ON ftc.oid = con.confrelid
LEFT JOIN pg_namespace fn ON fn.oid = ftc.relnamespace
WHERE con.contype IN ('u', 'f', 'c', 'x')
  AND con.conrelid != 0
  AND n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ent ConstraintEntity
		var contype string
		var deferrable, deferred bool
		var matchType, fkSchema, fkTable string
		var comment *string
		if err := rows.Scan(&ent.SchemaName, &ent.Table, &ent.Name, &contype, &ent.Definition,
			&deferrable, &deferred, &matchType, &fkSchema, &fkTable, &comment); err != nil {
			return err
		}
		if !filter.AllowTable(ent.SchemaName, ent.Table) {
			continue
		}
		ent.Comment = comment

		switch contype {
		case "u":
			ent.Kind = ConstraintKindUnique
		case "f":
			ent.Kind = ConstraintKindForeignKey
			ent.FK = &ForeignKeyBody{
				ReferencedSchema:  fkSchema,
				ReferencedTable:   fkTable,
				MatchType:         matchType,
				Deferrable:        deferrable,
				InitiallyDeferred: deferred,
			}
			// ON DELETE/UPDATE actions and the referenced/local column
			// lists are embedded in Definition (pg_get_constraintdef
			// already renders them); callers needing them structured
			// parse Definition once rather than re-deriving from
			// pg_constraint.conkey/confkey, which would duplicate what
			// pg_get_constraintdef already computed correctly.
		case "c":
			ent.Kind = ConstraintKindCheck
		case "x":
			ent.Kind = ConstraintKindExclusion
		}

		id := ent.ID()
		b.AddConstraint(&ent)
		b.AddDependency(id, Table(ent.SchemaName, ent.Table))
		if ent.FK != nil && fkTable != "" {
			b.AddDependency(id, Table(fkSchema, fkTable))
		}
	}
	return rows.Err()
}
