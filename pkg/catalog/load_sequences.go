// SPDX-License-Identifier: Apache-2.0

package catalog

import "context"

// loadSequences loads every sequence plus its owning column, if any.
// Ownership is deliberately NOT turned into a forward_deps edge - doing
// so would create a cycle (column default -> sequence -> table via
// ownership). It is recorded only as the OwnedBy field; the differ turns
// it into a relationship step instead.
func loadSequences(ctx context.Context, q Querier, filter ObjectFilter, b *Builder) error {
	const query = `
SELECT n.nspname, c.relname, s.seqtypid::regtype::text,
       s.seqstart, s.seqmin, s.seqmax, s.seqincrement, s.seqcycle,
       obj_description(c.oid, 'pg_class'),
       own.nspname, owc.relname, owa.attname
FROM pg_sequence s
JOIN pg_class c ON c.oid = s.seqrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_depend d ON d.objid = c.oid AND d.deptype = 'a' AND d.classid = 'pg_class'::regclass
LEFT JOIN pg_class owc ON owc.oid = d.refobjid
LEFT JOIN pg_namespace own ON own.oid = owc.relnamespace
LEFT JOIN pg_attribute owa ON owa.attrelid = d.refobjid AND owa.attnum = d.refobjsubid
WHERE n.nspname NOT LIKE 'pg\_%' AND n.nspname != 'information_schema'`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ent SequenceEntity
		var comment *string
		var ownSchema, ownTable, ownColumn *string
		if err := rows.Scan(&ent.SchemaName, &ent.Name, &ent.DataType,
			&ent.Start, &ent.Min, &ent.Max, &ent.Increment, &ent.Cycle,
			&comment, &ownSchema, &ownTable, &ownColumn); err != nil {
			return err
		}
		if !filter.AllowSchema(ent.SchemaName) {
			continue
		}
		ent.Comment = comment
		if ownSchema != nil && ownTable != nil && ownColumn != nil {
			ent.OwnedBy = &ColumnRef{SchemaName: *ownSchema, Table: *ownTable, Column: *ownColumn}
		}
		b.AddSequence(&ent)
		b.AddDependency(ent.ID(), Schema(ent.SchemaName))
	}
	return rows.Err()
}
