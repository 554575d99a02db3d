// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func diffType(old, new *catalog.TypeEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{steps.CreateType{
			SchemaName: new.SchemaName, Name: new.Name, Kind: new.Kind,
			EnumValues: new.EnumValues, CompositeAttrs: new.CompositeAttrs,
		}}
		if new.Comment != nil {
			out = append(out, steps.AlterTypeComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropType{SchemaName: old.SchemaName, Name: old.Name}}
	default:
		if old.Kind != new.Kind {
			return dropRecreateType(old, new)
		}
		switch new.Kind {
		case catalog.TypeKindEnum:
			if additions, ok := enumSuperset(old.EnumValues, new.EnumValues); ok {
				var out []steps.MigrationStep
				for _, add := range additions {
					out = append(out, steps.AddEnumValue{SchemaName: new.SchemaName, Name: new.Name, Value: add.value, After: add.after})
				}
				if !stringPtrEqual(old.Comment, new.Comment) {
					out = append(out, steps.AlterTypeComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment})
				}
				return out
			}
			return dropRecreateType(old, new)
		case catalog.TypeKindComposite:
			if !compositeAttrsEqual(old.CompositeAttrs, new.CompositeAttrs) {
				return dropRecreateType(old, new)
			}
		}
		// Range/Other: no structural fields are modeled beyond Kind, so
		// only a comment change is detectable here.
		if stringPtrEqual(old.Comment, new.Comment) {
			return nil
		}
		return []steps.MigrationStep{steps.AlterTypeComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment}}
	}
}

func dropRecreateType(old, new *catalog.TypeEntity) []steps.MigrationStep {
	out := []steps.MigrationStep{
		steps.DropType{SchemaName: old.SchemaName, Name: old.Name},
		steps.CreateType{
			SchemaName: new.SchemaName, Name: new.Name, Kind: new.Kind,
			EnumValues: new.EnumValues, CompositeAttrs: new.CompositeAttrs,
		},
	}
	if new.Comment != nil {
		out = append(out, steps.AlterTypeComment{SchemaName: new.SchemaName, Name: new.Name, Comment: new.Comment})
	}
	return out
}

func compositeAttrsEqual(a, b []catalog.CompositeAttr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type enumAddition struct{ value, after string }

// enumSuperset reports whether newVals equals oldVals with zero or more
// values inserted, never removed or reordered relative to each other, and
// if so returns the ordered (value, precedingValue) pairs the differ must
// emit as chained ALTER TYPE ... ADD VALUE ... AFTER statements.
func enumSuperset(oldVals, newVals []string) ([]enumAddition, bool) {
	oldSet := make(map[string]bool, len(oldVals))
	for _, v := range oldVals {
		oldSet[v] = true
	}
	for _, v := range oldVals {
		if !containsString(newVals, v) {
			return nil, false
		}
	}

	var oldPositionsInNew []int
	for _, v := range oldVals {
		for i, nv := range newVals {
			if nv == v {
				oldPositionsInNew = append(oldPositionsInNew, i)
				break
			}
		}
	}
	for i := 1; i < len(oldPositionsInNew); i++ {
		if oldPositionsInNew[i] <= oldPositionsInNew[i-1] {
			return nil, false
		}
	}

	var additions []enumAddition
	prev := ""
	havePrev := false
	for _, v := range newVals {
		if oldSet[v] {
			prev, havePrev = v, true
			continue
		}
		if !havePrev {
			// A brand-new value inserted before any surviving old value
			// has no value to anchor AFTER; force drop+recreate instead.
			return nil, false
		}
		additions = append(additions, enumAddition{value: v, after: prev})
		prev, havePrev = v, true
	}
	return additions, true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
