// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffDomain(old, new *catalog.DomainEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		return []steps.MigrationStep{steps.CreateDomain{
			SchemaName: new.SchemaName, Name: new.Name, BaseType: new.BaseType,
			Default: new.Default, NotNull: new.NotNull, Collation: new.Collation,
			CheckConstraints: new.CheckConstraints, Comment: new.Comment,
		}}
	case new == nil:
		return []steps.MigrationStep{steps.DropDomain{SchemaName: old.SchemaName, Name: old.Name}}
	default:
		if old.BaseType != new.BaseType || !stringPtrEqual(old.Collation, new.Collation) {
			return []steps.MigrationStep{
				steps.DropDomain{SchemaName: old.SchemaName, Name: old.Name},
				steps.CreateDomain{
					SchemaName: new.SchemaName, Name: new.Name, BaseType: new.BaseType,
					Default: new.Default, NotNull: new.NotNull, Collation: new.Collation,
					CheckConstraints: new.CheckConstraints, Comment: new.Comment,
				},
			}
		}

		alter := steps.AlterDomain{SchemaName: new.SchemaName, Name: new.Name}
		changed := false
		if !stringPtrEqual(old.Default, new.Default) {
			changed = true
			if new.Default == nil {
				alter.DropDefault = true
			} else {
				alter.SetDefault = new.Default
			}
		}
		if old.NotNull != new.NotNull {
			changed = true
			if new.NotNull {
				alter.SetNotNull = true
			} else {
				alter.DropNotNull = true
			}
		}
		added, dropped := diffDomainChecks(old.CheckConstraints, new.CheckConstraints)
		if len(added) > 0 || len(dropped) > 0 {
			changed = true
			alter.AddChecks = added
			alter.DropChecks = dropped
		}
		if !stringPtrEqual(old.Comment, new.Comment) {
			changed = true
			alter.SetComment = true
			alter.Comment = new.Comment
		}
		if !changed {
			return nil
		}
		return []steps.MigrationStep{alter}
	}
}

// diffDomainChecks treats a check constraint as replaced (dropped + added)
// whenever its name is reused with a different expression, per the
// name+expression tuple comparison.
func diffDomainChecks(old, new []catalog.DomainCheck) (added []catalog.DomainCheck, droppedNames []string) {
	oldByName := make(map[string]catalog.DomainCheck, len(old))
	for _, c := range old {
		oldByName[c.Name] = c
	}
	newByName := make(map[string]catalog.DomainCheck, len(new))
	for _, c := range new {
		newByName[c.Name] = c
	}
	for _, c := range new {
		if o, ok := oldByName[c.Name]; !ok || o.Expression != c.Expression {
			added = append(added, c)
		}
	}
	for _, c := range old {
		if n, ok := newByName[c.Name]; !ok || n.Expression != c.Expression {
			droppedNames = append(droppedNames, c.Name)
		}
	}
	return added, droppedNames
}
