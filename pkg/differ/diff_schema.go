// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// diffSchema never creates or drops "public": the catalog loader already
// normalizes its built-in comment to nil, so a genuine comment-only diff
// on public is still possible and handled below.
func diffSchema(old, new *catalog.SchemaEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		if new.Name == "public" {
			return nil
		}
		return []steps.MigrationStep{steps.CreateSchema{Name: new.Name, Comment: new.Comment}}
	case new == nil:
		if old.Name == "public" {
			return nil
		}
		return []steps.MigrationStep{steps.DropSchema{Name: old.Name}}
	default:
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterSchemaComment{Name: new.Name, Comment: new.Comment}}
	}
}
