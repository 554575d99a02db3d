// SPDX-License-Identifier: Apache-2.0

package catalog

import "path"

// ObjectFilter restricts the Loader to a subset of schemas/tables via
// shell-style glob include/exclude lists, matched with stdlib path.Match
// semantics. A narrow glob need like this doesn't justify an extra
// third-party globbing dependency - path.Match's "*"/"?"/"[...]" syntax
// covers every pattern the tracking table and CLI config examples in
// this corpus actually write.
type ObjectFilter struct {
	IncludeSchemas []string
	ExcludeSchemas []string
	IncludeTables  []string // matched against "schema.table"
	ExcludeTables  []string
}

// AllowSchema reports whether schema passes the filter. System schemas
// are never passed to this function by the loader; they are excluded
// unconditionally before filtering runs.
func (f ObjectFilter) AllowSchema(schema string) bool {
	if len(f.IncludeSchemas) > 0 && !matchesAny(f.IncludeSchemas, schema) {
		return false
	}
	if matchesAny(f.ExcludeSchemas, schema) {
		return false
	}
	return true
}

// AllowTable reports whether schema.table passes the filter.
func (f ObjectFilter) AllowTable(schema, table string) bool {
	if !f.AllowSchema(schema) {
		return false
	}
	qualified := schema + "." + table
	if len(f.IncludeTables) > 0 && !matchesAny(f.IncludeTables, qualified) {
		return false
	}
	if matchesAny(f.ExcludeTables, qualified) {
		return false
	}
	return true
}

func matchesAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, s); err == nil && ok {
			return true
		}
	}
	return false
}
