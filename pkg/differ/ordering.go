// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"sort"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// orderSteps partitions plan into the primary phase (create/drop/alter)
// and the relationship phase (sequence ownership; foreign-key constraints
// are created in the primary phase), then topologically sorts each
// independently.
func orderSteps(plan []steps.MigrationStep, old, new *catalog.Catalog) ([]steps.MigrationStep, error) {
	var primary, relationship []steps.MigrationStep
	for _, s := range plan {
		if s.IsRelationship() {
			relationship = append(relationship, s)
		} else {
			primary = append(primary, s)
		}
	}

	orderedPrimary, err := topoSortPhase(primary, old, new)
	if err != nil {
		return nil, err
	}
	orderedRelationship, err := topoSortPhase(relationship, old, new)
	if err != nil {
		return nil, err
	}

	out := make([]steps.MigrationStep, 0, len(orderedPrimary)+len(orderedRelationship))
	out = append(out, orderedPrimary...)
	out = append(out, orderedRelationship...)
	return out, nil
}

// topoSortPhase runs Kahn's algorithm over the step indices of one phase.
// Edges come from four sources:
//
//  1. drop steps look up dependencies in old, and the edge is reversed
//     relative to create ordering: if X depends on Y, X's drop precedes
//     Y's drop (dropping the dependent first).
//  2. create/alter steps look up dependencies in new: a dependency Y's
//     step precedes X's step.
//  3. drop-before-create and create-before-other for steps sharing an id.
//  4. extension creates precede every non-extension, non-schema create.
//
// Ties (and cycle-break ambiguity, which cannot arise here since cycles
// are a hard error) are broken by original slice index, so the output is
// a deterministic function of the input slice's order.
func topoSortPhase(phase []steps.MigrationStep, old, new *catalog.Catalog) ([]steps.MigrationStep, error) {
	n := len(phase)
	if n == 0 {
		return nil, nil
	}

	idToIndices := map[catalog.ObjectId][]int{}
	for i, s := range phase {
		idToIndices[s.ID()] = append(idToIndices[s.ID()], i)
	}

	adj := make([][]int, n)
	inDegree := make([]int, n)
	edgeSeen := make(map[[2]int]struct{})
	addEdge := func(before, after int) {
		if before == after {
			return
		}
		key := [2]int{before, after}
		if _, dup := edgeSeen[key]; dup {
			return
		}
		edgeSeen[key] = struct{}{}
		adj[before] = append(adj[before], after)
		inDegree[after]++
	}

	for i, s := range phase {
		id := s.ID()
		if s.IsDrop() {
			deps := old.DependsOn(id)
			if len(deps) == 0 {
				deps = s.Dependencies()
			}
			for _, dep := range deps {
				for _, j := range idToIndices[dep] {
					if phase[j].IsDrop() {
						addEdge(i, j)
					}
				}
			}
			continue
		}
		deps := new.DependsOn(id)
		if len(deps) == 0 {
			deps = s.Dependencies()
		}
		for _, dep := range deps {
			for _, j := range idToIndices[dep] {
				if !phase[j].IsDrop() {
					addEdge(j, i)
				}
			}
		}
	}

	for _, idxs := range idToIndices {
		if len(idxs) < 2 {
			continue
		}
		dropIdx, createIdx := -1, -1
		var others []int
		for _, idx := range idxs {
			switch {
			case phase[idx].IsDrop():
				dropIdx = idx
			case phase[idx].IsCreate():
				createIdx = idx
			default:
				others = append(others, idx)
			}
		}
		if dropIdx != -1 && createIdx != -1 {
			addEdge(dropIdx, createIdx)
		}
		if createIdx != -1 {
			for _, o := range others {
				addEdge(createIdx, o)
			}
		}
	}

	var extensionCreates, otherCreates []int
	for i, s := range phase {
		if !s.IsCreate() {
			continue
		}
		switch s.ID().Kind {
		case catalog.KindExtension:
			extensionCreates = append(extensionCreates, i)
		case catalog.KindSchema:
			// exempt: extensions may themselves depend on schemas
		default:
			otherCreates = append(otherCreates, i)
		}
	}
	for _, e := range extensionCreates {
		for _, o := range otherCreates {
			addEdge(e, o)
		}
	}

	return kahn(phase, adj, inDegree)
}

func kahn(phase []steps.MigrationStep, adj [][]int, inDegree []int) ([]steps.MigrationStep, error) {
	n := len(phase)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	sort.Ints(queue)

	order := make([]int, 0, n)
	for len(order) < n {
		if len(queue) == 0 {
			return nil, OrderingCycleError{Step: phase[firstUnvisited(order, n)]}
		}
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)

		neighbors := append([]int(nil), adj[cur]...)
		sort.Ints(neighbors)
		for _, nb := range neighbors {
			inDegree[nb]--
			if inDegree[nb] == 0 {
				queue = append(queue, nb)
			}
		}
		sort.Ints(queue)
	}

	out := make([]steps.MigrationStep, n)
	for i, idx := range order {
		out[i] = phase[idx]
	}
	return out, nil
}

func firstUnvisited(order []int, n int) int {
	seen := make([]bool, n)
	for _, idx := range order {
		seen[idx] = true
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			return i
		}
	}
	return 0
}
