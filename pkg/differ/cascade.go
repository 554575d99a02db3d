// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"sort"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// expandCascade walks the dependents closure of every drop in plan and
// inserts matching drop+recreate pairs for dependents that the per-kind
// diff passes left untouched: dropping a table referenced by a view
// must emit the view's drop (and, if the view still exists unchanged in
// new, its recreate) even though the view itself produced no diff on
// its own. The pass is idempotent: re-running it against an
// already-expanded plan finds every dependent already present and adds
// nothing.
func expandCascade(plan []steps.MigrationStep, old, new *catalog.Catalog) []steps.MigrationStep {
	present := make(map[catalog.ObjectId]struct{}, len(plan))
	for _, s := range plan {
		present[s.ID()] = struct{}{}
	}

	dependents := reverseDeps(old)

	// BFS frontier seeded by every drop step's id already in the plan.
	var frontier []catalog.ObjectId
	for _, s := range plan {
		if s.IsDrop() {
			frontier = append(frontier, s.ID())
		}
	}

	visited := map[catalog.ObjectId]struct{}{}
	for len(frontier) > 0 {
		sort.Slice(frontier, func(i, j int) bool { return frontier[i].Less(frontier[j]) })
		id := frontier[0]
		frontier = frontier[1:]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		for _, dep := range dependents[id] {
			if _, ok := present[dep]; ok {
				// dep already has its own diff step (e.g. it is itself
				// being dropped, altered, or recreated) - nothing to add,
				// but it still cascades to its own dependents.
				frontier = append(frontier, dep)
				continue
			}
			added := forceDropRecreate(dep, old, new)
			if len(added) == 0 {
				continue
			}
			for _, s := range added {
				present[s.ID()] = struct{}{}
			}
			plan = append(plan, added...)
			frontier = append(frontier, dep)
		}
	}

	return plan
}

// reverseDeps inverts old.ForwardDeps: dependents[target] is every id
// that directly depends on target.
func reverseDeps(old *catalog.Catalog) map[catalog.ObjectId][]catalog.ObjectId {
	out := map[catalog.ObjectId][]catalog.ObjectId{}
	for _, id := range old.Order() {
		for _, dep := range old.DependsOn(id) {
			out[dep] = append(out[dep], id)
		}
	}
	return out
}

// forceDropRecreate synthesizes the drop (and, if the object still exists
// unchanged in new, the recreate) steps for a dependent that cascade
// expansion determined must be dropped even though its own per-kind diff
// found no change. It reuses the same per-kind diff functions the primary
// pass uses, by calling them with one side nil.
func forceDropRecreate(id catalog.ObjectId, old, new *catalog.Catalog) []steps.MigrationStep {
	var out []steps.MigrationStep
	switch id.Kind {
	case catalog.KindTable:
		if o, ok := old.Tables[id]; ok {
			out = append(out, diffTable(o, nil)...)
		}
		if n, ok := new.Tables[id]; ok {
			out = append(out, diffTable(nil, n)...)
		}
	case catalog.KindView:
		if o, ok := old.Views[id]; ok {
			out = append(out, diffView(o, nil)...)
		}
		if n, ok := new.Views[id]; ok {
			out = append(out, diffView(nil, n)...)
		}
	case catalog.KindType:
		if o, ok := old.Types[id]; ok {
			out = append(out, diffType(o, nil)...)
		}
		if n, ok := new.Types[id]; ok {
			out = append(out, diffType(nil, n)...)
		}
	case catalog.KindDomain:
		if o, ok := old.Domains[id]; ok {
			out = append(out, diffDomain(o, nil)...)
		}
		if n, ok := new.Domains[id]; ok {
			out = append(out, diffDomain(nil, n)...)
		}
	case catalog.KindSequence:
		if o, ok := old.Sequences[id]; ok {
			out = append(out, diffSequence(o, nil)...)
		}
		if n, ok := new.Sequences[id]; ok {
			out = append(out, diffSequence(nil, n)...)
		}
	case catalog.KindFunction:
		if o, ok := old.Functions[id]; ok {
			out = append(out, diffFunction(o, nil)...)
		}
		if n, ok := new.Functions[id]; ok {
			out = append(out, diffFunction(nil, n)...)
		}
	case catalog.KindAggregate:
		if o, ok := old.Aggregates[id]; ok {
			out = append(out, diffAggregate(o, nil)...)
		}
		if n, ok := new.Aggregates[id]; ok {
			out = append(out, diffAggregate(nil, n)...)
		}
	case catalog.KindIndex:
		if o, ok := old.Indexes[id]; ok {
			out = append(out, diffIndex(o, nil)...)
		}
		if n, ok := new.Indexes[id]; ok {
			out = append(out, diffIndex(nil, n)...)
		}
	case catalog.KindConstraint:
		if o, ok := old.Constraints[id]; ok {
			out = append(out, diffConstraint(o, nil)...)
		}
		if n, ok := new.Constraints[id]; ok {
			out = append(out, diffConstraint(nil, n)...)
		}
	case catalog.KindTrigger:
		if o, ok := old.Triggers[id]; ok {
			out = append(out, diffTrigger(o, nil)...)
		}
		if n, ok := new.Triggers[id]; ok {
			out = append(out, diffTrigger(nil, n)...)
		}
	case catalog.KindPolicy:
		if o, ok := old.Policies[id]; ok {
			out = append(out, diffPolicy(o, nil)...)
		}
		if n, ok := new.Policies[id]; ok {
			out = append(out, diffPolicy(nil, n)...)
		}
	case catalog.KindExtension:
		if o, ok := old.Extensions[id]; ok {
			out = append(out, diffExtension(o, nil)...)
		}
		if n, ok := new.Extensions[id]; ok {
			out = append(out, diffExtension(nil, n)...)
		}
	}
	return out
}
