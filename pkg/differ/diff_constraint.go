// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffConstraint(old, new *catalog.ConstraintEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateConstraint{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Definition: new.Definition}}
		if new.Comment != nil {
			out = append(out, steps.AlterConstraintComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropConstraint{SchemaName: old.SchemaName, Table: old.Table, Name: old.Name}}
	default:
		if old.Definition != new.Definition || old.Kind != new.Kind {
			out := []steps.MigrationStep{
				steps.DropConstraint{SchemaName: old.SchemaName, Table: old.Table, Name: old.Name},
				steps.CreateConstraint{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Definition: new.Definition},
			}
			if new.Comment != nil {
				out = append(out, steps.AlterConstraintComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment})
			}
			return out
		}
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterConstraintComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment}}
	}
}
