// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffTrigger(old, new *catalog.TriggerEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateTrigger{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Definition: new.Definition}}
		if new.Comment != nil {
			out = append(out, steps.AlterTriggerComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropTrigger{SchemaName: old.SchemaName, Table: old.Table, Name: old.Name}}
	default:
		if old.Definition != new.Definition {
			out := []steps.MigrationStep{
				steps.DropTrigger{SchemaName: old.SchemaName, Table: old.Table, Name: old.Name},
				steps.CreateTrigger{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Definition: new.Definition},
			}
			if new.Comment != nil {
				out = append(out, steps.AlterTriggerComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment})
			}
			return out
		}
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterTriggerComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment}}
	}
}
