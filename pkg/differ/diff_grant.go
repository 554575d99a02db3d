// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"sort"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// diffGrants is a pure set difference over (grantee, privilege, object)
// tuples: a grant has no body to alter, so every difference is either a
// REVOKE (present in old, absent in new) or a GRANT (absent in old,
// present in new). Iteration is over the sorted ObjectId keys of both
// maps so the output is deterministic.
func diffGrants(old, new map[catalog.ObjectId]*catalog.GrantEntity) []steps.MigrationStep {
	ids := make([]catalog.ObjectId, 0, len(old)+len(new))
	seen := map[catalog.ObjectId]struct{}{}
	for id := range old {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for id := range new {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	var out []steps.MigrationStep
	for _, id := range ids {
		o, n := old[id], new[id]
		switch {
		case o == nil && n == nil:
			continue
		case o == nil:
			out = append(out, steps.GrantPrivilege{
				Grantee: n.Grantee, GranteeType: n.GranteeType, Privilege: n.Privilege,
				Object: n.Object, GrantOption: n.GrantOption,
			})
		case n == nil:
			out = append(out, steps.RevokePrivilege{
				Grantee: o.Grantee, GranteeType: o.GranteeType, Privilege: o.Privilege, Object: o.Object,
			})
		case o.GrantOption != n.GrantOption:
			// WITH GRANT OPTION is a property of the grant, but PostgreSQL
			// has no ALTER GRANT: flip it by revoking and re-granting.
			out = append(out, steps.RevokePrivilege{
				Grantee: o.Grantee, GranteeType: o.GranteeType, Privilege: o.Privilege, Object: o.Object,
			})
			out = append(out, steps.GrantPrivilege{
				Grantee: n.Grantee, GranteeType: n.GranteeType, Privilege: n.Privilege,
				Object: n.Object, GrantOption: n.GrantOption,
			})
		}
	}
	return out
}
