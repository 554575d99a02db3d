// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffView(old, new *catalog.ViewEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateView{
			SchemaName: new.SchemaName, Name: new.Name, Materialized: new.Materialized,
			Definition: new.Definition, SecurityInvoker: new.SecurityInvoker,
			SecurityBarrier: new.SecurityBarrier, DependsOn: new.DependsOn,
		}}
		if new.Comment != nil {
			out = append(out, steps.AlterViewComment{SchemaName: new.SchemaName, Name: new.Name, Materialized: new.Materialized, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropView{SchemaName: old.SchemaName, Name: old.Name, Materialized: old.Materialized}}
	default:
		if old.Materialized != new.Materialized || !stringSliceEqual(old.Columns, new.Columns) {
			out := []steps.MigrationStep{
				steps.DropView{SchemaName: old.SchemaName, Name: old.Name, Materialized: old.Materialized},
				steps.CreateView{
					SchemaName: new.SchemaName, Name: new.Name, Materialized: new.Materialized,
					Definition: new.Definition, SecurityInvoker: new.SecurityInvoker,
					SecurityBarrier: new.SecurityBarrier, DependsOn: new.DependsOn,
				},
			}
			if new.Comment != nil {
				out = append(out, steps.AlterViewComment{SchemaName: new.SchemaName, Name: new.Name, Materialized: new.Materialized, Comment: new.Comment})
			}
			return out
		}

		var out []steps.MigrationStep
		if old.Definition != new.Definition || old.SecurityInvoker != new.SecurityInvoker || old.SecurityBarrier != new.SecurityBarrier {
			out = append(out, steps.CreateView{
				SchemaName: new.SchemaName, Name: new.Name, Materialized: new.Materialized,
				Definition: new.Definition, SecurityInvoker: new.SecurityInvoker,
				SecurityBarrier: new.SecurityBarrier, DependsOn: new.DependsOn,
			})
		}
		if !stringPtrEqual(old.Comment, new.Comment) {
			out = append(out, steps.AlterViewComment{SchemaName: new.SchemaName, Name: new.Name, Materialized: new.Materialized, Comment: new.Comment})
		}
		return out
	}
}
