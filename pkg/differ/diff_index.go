// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffIndex(old, new *catalog.IndexEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateIndex{SchemaName: new.SchemaName, Name: new.Name, Table: new.Table, Definition: new.Definition}}
		if new.Comment != nil {
			out = append(out, steps.AlterIndexComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropIndex{SchemaName: old.SchemaName, Name: old.Name}}
	default:
		if old.Definition != new.Definition || old.Unique != new.Unique || old.Table != new.Table {
			out := []steps.MigrationStep{
				steps.DropIndex{SchemaName: old.SchemaName, Name: old.Name},
				steps.CreateIndex{SchemaName: new.SchemaName, Name: new.Name, Table: new.Table, Definition: new.Definition},
			}
			if new.Comment != nil {
				out = append(out, steps.AlterIndexComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment})
			}
			return out
		}
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterIndexComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment}}
	}
}
