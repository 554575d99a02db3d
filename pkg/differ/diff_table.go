// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffTable(old, new *catalog.TableEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		return []steps.MigrationStep{steps.CreateTable{
			SchemaName: new.SchemaName, Name: new.Name, Columns: new.Columns,
			PrimaryKey: new.PrimaryKey, RLSEnabled: new.RLSEnabled, RLSForced: new.RLSForced,
			Comment: new.Comment,
		}}
	case new == nil:
		return []steps.MigrationStep{steps.DropTable{SchemaName: old.SchemaName, Name: old.Name}}
	default:
		var actions []steps.ColumnAction
		actions = append(actions, diffColumns(old.Columns, new.Columns)...)
		actions = append(actions, diffPrimaryKey(new.Name, old.PrimaryKey, new.PrimaryKey)...)
		actions = append(actions, diffRLS(old, new)...)
		if !stringPtrEqual(old.Comment, new.Comment) {
			actions = append(actions, steps.SetTableCommentAction{Comment: new.Comment})
		}
		if len(actions) == 0 {
			return nil
		}
		return []steps.MigrationStep{steps.AlterTable{SchemaName: new.SchemaName, Name: new.Name, Actions: actions}}
	}
}

func diffColumns(old, new []catalog.ColumnEntity) []steps.ColumnAction {
	oldByName := make(map[string]catalog.ColumnEntity, len(old))
	for _, c := range old {
		oldByName[c.Name] = c
	}
	newByName := make(map[string]catalog.ColumnEntity, len(new))
	for _, c := range new {
		newByName[c.Name] = c
	}

	var actions []steps.ColumnAction
	for _, c := range new {
		o, existed := oldByName[c.Name]
		if !existed {
			actions = append(actions, steps.AddColumnAction{Column: c})
			continue
		}
		if o.DataType != c.DataType {
			actions = append(actions, steps.AlterColumnTypeAction{Name: c.Name, DataType: c.DataType})
		}
		if !stringPtrEqual(o.Default, c.Default) || !stringPtrEqual(o.GeneratedExpr, c.GeneratedExpr) {
			if c.Default == nil {
				actions = append(actions, steps.DropColumnDefaultAction{Name: c.Name})
			} else {
				actions = append(actions, steps.SetColumnDefaultAction{Name: c.Name, Default: *c.Default})
			}
		}
		if o.NotNull != c.NotNull {
			if c.NotNull {
				actions = append(actions, steps.SetColumnNotNullAction{Name: c.Name})
			} else {
				actions = append(actions, steps.DropColumnNotNullAction{Name: c.Name})
			}
		}
		if !stringPtrEqual(o.Comment, c.Comment) {
			actions = append(actions, steps.SetColumnCommentAction{Name: c.Name, Comment: c.Comment})
		}
	}
	for _, c := range old {
		if _, exists := newByName[c.Name]; !exists {
			actions = append(actions, steps.DropColumnAction{Name: c.Name})
		}
	}
	return actions
}

// diffPrimaryKey treats any primary-key change as drop-then-add. A
// structurally identical primary key is a no-op here even if a comment
// changed on the owning constraint. Primary-key comments are not tracked:
// the table entity holds only the key's columns, and the constraint
// loader skips primary keys.
func diffPrimaryKey(tableName string, old, new []string) []steps.ColumnAction {
	if stringSliceEqual(old, new) {
		return nil
	}
	var actions []steps.ColumnAction
	if len(old) > 0 {
		actions = append(actions, steps.DropPrimaryKeyAction{ConstraintName: tableName + "_pkey"})
	}
	if len(new) > 0 {
		actions = append(actions, steps.AddPrimaryKeyAction{ConstraintName: tableName + "_pkey", Columns: new})
	}
	return actions
}

func diffRLS(old, new *catalog.TableEntity) []steps.ColumnAction {
	var actions []steps.ColumnAction
	if old.RLSEnabled != new.RLSEnabled {
		if new.RLSEnabled {
			actions = append(actions, steps.EnableRLSAction{})
		} else {
			actions = append(actions, steps.DisableRLSAction{})
		}
	}
	if old.RLSForced != new.RLSForced {
		if new.RLSForced {
			actions = append(actions, steps.ForceRLSAction{})
		} else {
			actions = append(actions, steps.NoForceRLSAction{})
		}
	}
	return actions
}
