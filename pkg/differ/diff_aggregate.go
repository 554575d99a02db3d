// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// diffAggregate treats any definition change as drop+create: PostgreSQL
// has no CREATE OR REPLACE AGGREGATE.
func diffAggregate(old, new *catalog.AggregateEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateAggregate{
			SchemaName: new.SchemaName, Name: new.Name, ArgSignature: new.ArgSignature, Definition: new.Definition,
		}}
		if new.Comment != nil {
			out = append(out, steps.AlterComment{Target: new.ID(), Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropAggregate{SchemaName: old.SchemaName, Name: old.Name, ArgSignature: old.ArgSignature}}
	default:
		if old.Definition != new.Definition {
			out := []steps.MigrationStep{
				steps.DropAggregate{SchemaName: old.SchemaName, Name: old.Name, ArgSignature: old.ArgSignature},
				steps.CreateAggregate{SchemaName: new.SchemaName, Name: new.Name, ArgSignature: new.ArgSignature, Definition: new.Definition},
			}
			if new.Comment != nil {
				out = append(out, steps.AlterComment{Target: new.ID(), Comment: new.Comment})
			}
			return out
		}
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterComment{Target: new.ID(), Comment: new.Comment}}
	}
}
