// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// diffFunction never needs to detect a signature change itself: ArgSignature
// is part of Function's ObjectId, so two entities reaching this function
// with the same id already have identical signatures - a signature change
// surfaces as a Drop on the old id plus a Create on the new one via
// diffList's id-based pairing.
func diffFunction(old, new *catalog.FunctionEntity) []steps.MigrationStep {
	switch {
	case old == nil && new == nil:
		return nil
	case old == nil:
		out := []steps.MigrationStep{newCreateFunction(new)}
		if new.Comment != nil {
			out = append(out, steps.AlterFunctionComment{SchemaName: new.SchemaName, Name: new.Name, ArgSignature: new.ArgSignature, Kind: new.Kind, Comment: new.Comment})
		}
		return out
	case new == nil:
		return []steps.MigrationStep{steps.DropFunction{SchemaName: old.SchemaName, Name: old.Name, ArgSignature: old.ArgSignature, Kind: old.Kind}}
	default:
		var out []steps.MigrationStep
		bodyEqual := old.Definition == new.Definition && old.Language == new.Language &&
			old.Volatility == new.Volatility && old.Strict == new.Strict &&
			old.SecurityType == new.SecurityType && stringPtrEqual(old.ReturnType, new.ReturnType)
		if !bodyEqual {
			out = append(out, newCreateFunction(new))
		}
		if !stringPtrEqual(old.Comment, new.Comment) {
			out = append(out, steps.AlterFunctionComment{SchemaName: new.SchemaName, Name: new.Name, ArgSignature: new.ArgSignature, Kind: new.Kind, Comment: new.Comment})
		}
		return out
	}
}

func newCreateFunction(f *catalog.FunctionEntity) steps.CreateFunction {
	return steps.CreateFunction{
		SchemaName: f.SchemaName, Name: f.Name, Parameters: f.Parameters,
		ReturnType: f.ReturnType, Language: f.Language, Definition: f.Definition,
		Volatility: f.Volatility, Strict: f.Strict, SecurityType: f.SecurityType, Kind: f.Kind,
	}
}
