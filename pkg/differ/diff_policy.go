// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffPolicy(old, new *catalog.PolicyEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreatePolicy{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Definition: new.Definition}}
		if new.Comment != nil {
			out = append(out, steps.AlterPolicyComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropPolicy{SchemaName: old.SchemaName, Table: old.Table, Name: old.Name}}
	default:
		if old.Definition != new.Definition {
			out := []steps.MigrationStep{
				steps.DropPolicy{SchemaName: old.SchemaName, Table: old.Table, Name: old.Name},
				steps.CreatePolicy{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Definition: new.Definition},
			}
			if new.Comment != nil {
				out = append(out, steps.AlterPolicyComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment})
			}
			return out
		}
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterPolicyComment{SchemaName: new.SchemaName, Table: new.Table, Name: new.Name, Comment: new.Comment}}
	}
}
