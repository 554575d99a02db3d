// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// diffSequence treats any change to the numeric body as a structural
// change: drop+recreate, since there is no dedicated alter-in-place path
// for sequence parameters. Ownership is diffed independently since it is
// a relationship, not part of the body.
func diffSequence(old, new *catalog.SequenceEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateSequence{
			SchemaName: new.SchemaName, Name: new.Name, DataType: new.DataType,
			Start: new.Start, Min: new.Min, Max: new.Max, Increment: new.Increment,
			Cycle: new.Cycle, Comment: new.Comment,
		}}
		if new.OwnedBy != nil {
			out = append(out, steps.AlterSequenceOwnership{
				SchemaName: new.SchemaName, Name: new.Name,
				OwnerTable: new.OwnedBy.Table, OwnerColumn: new.OwnedBy.Column,
			})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropSequence{SchemaName: old.SchemaName, Name: old.Name}}
	default:
		bodyEqual := old.DataType == new.DataType && old.Start == new.Start &&
			old.Min == new.Min && old.Max == new.Max &&
			old.Increment == new.Increment && old.Cycle == new.Cycle

		var out []steps.MigrationStep
		if !bodyEqual {
			out = append(out,
				steps.DropSequence{SchemaName: old.SchemaName, Name: old.Name},
				steps.CreateSequence{
					SchemaName: new.SchemaName, Name: new.Name, DataType: new.DataType,
					Start: new.Start, Min: new.Min, Max: new.Max, Increment: new.Increment,
					Cycle: new.Cycle, Comment: new.Comment,
				},
			)
			if new.OwnedBy != nil {
				out = append(out, steps.AlterSequenceOwnership{
					SchemaName: new.SchemaName, Name: new.Name,
					OwnerTable: new.OwnedBy.Table, OwnerColumn: new.OwnedBy.Column,
				})
			}
			return out
		}

		if !columnRefEqual(old.OwnedBy, new.OwnedBy) && new.OwnedBy != nil {
			out = append(out, steps.AlterSequenceOwnership{
				SchemaName: new.SchemaName, Name: new.Name,
				OwnerTable: new.OwnedBy.Table, OwnerColumn: new.OwnedBy.Column,
			})
		}
		if !stringPtrEqual(old.Comment, new.Comment) {
			out = append(out, steps.AlterComment{Target: new.ID(), Comment: new.Comment})
		}
		return out
	}
}

func columnRefEqual(a, b *catalog.ColumnRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
