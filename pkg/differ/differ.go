// SPDX-License-Identifier: Apache-2.0

// Package differ computes the ordered sequence of migration steps that
// transforms one catalog into another. Diff is the single entry point;
// everything else in the package supports its three passes: per-kind
// diffing, cascade expansion, and topological ordering.
package differ

import (
	"sort"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// Diff computes the ordered, cascade-expanded sequence of migration steps
// that transforms old into new. It is a pure function of its two
// arguments.
func Diff(old, new *catalog.Catalog) ([]steps.MigrationStep, error) {
	var out []steps.MigrationStep

	out = append(out, diffList(old.Schemas, new.Schemas, diffSchema)...)
	out = append(out, diffList(old.Extensions, new.Extensions, diffExtension)...)
	out = append(out, diffList(old.Types, new.Types, diffType)...)
	out = append(out, diffList(old.Domains, new.Domains, diffDomain)...)
	out = append(out, diffList(old.Sequences, new.Sequences, diffSequence)...)
	out = append(out, diffList(old.Tables, new.Tables, diffTable)...)
	out = append(out, diffList(old.Indexes, new.Indexes, diffIndex)...)
	out = append(out, diffList(old.Constraints, new.Constraints, diffConstraint)...)
	out = append(out, diffList(old.Triggers, new.Triggers, diffTrigger)...)
	out = append(out, diffList(old.Policies, new.Policies, diffPolicy)...)
	out = append(out, diffList(old.Views, new.Views, diffView)...)
	out = append(out, diffList(old.Functions, new.Functions, diffFunction)...)
	out = append(out, diffList(old.Aggregates, new.Aggregates, diffAggregate)...)
	out = append(out, diffGrants(old.Grants, new.Grants)...)

	out = expandCascade(out, old, new)

	return orderSteps(out, old, new)
}

// diffList pairs every object id present in either map and calls diffOne
// exactly once per id, visiting ids in their total order (ObjectId.Less)
// so the result never depends on Go's randomized map iteration.
func diffList[V any](oldMap, newMap map[catalog.ObjectId]*V, diffOne func(old, new *V) []steps.MigrationStep) []steps.MigrationStep {
	seen := make(map[catalog.ObjectId]struct{}, len(oldMap)+len(newMap))
	ids := make([]catalog.ObjectId, 0, len(oldMap)+len(newMap))
	for id := range oldMap {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for id := range newMap {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	var out []steps.MigrationStep
	for _, id := range ids {
		out = append(out, diffOne(oldMap[id], newMap[id])...)
	}
	return out
}
