// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffExtension(old, new *catalog.ExtensionEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateExtension{
			Name: new.Name, Version: new.Version, SchemaName: new.SchemaName,
		}}
		if new.Comment != nil {
			out = append(out, steps.AlterComment{Target: new.ID(), Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropExtension{Name: old.Name}}
	default:
		if old.Version != new.Version || old.SchemaName != new.SchemaName {
			out := []steps.MigrationStep{
				steps.DropExtension{Name: old.Name},
				steps.CreateExtension{Name: new.Name, Version: new.Version, SchemaName: new.SchemaName},
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
