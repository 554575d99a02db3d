// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/gdpotter/pgmt/pkg/steps"
)

// OrderingCycleError is returned when the topological sort over a phase's
// dependency graph cannot make progress. Intrinsic PostgreSQL
// dependencies cannot cycle - seeing this means either a bug in
// dependency extraction or a user-introduced cycle via file-level
// `-- require:` augmentation.
type OrderingCycleError struct {
	Step steps.MigrationStep
}

func (e OrderingCycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected in migration plan at step %s", e.Step.ID())
}
