// SPDX-License-Identifier: Apache-2.0

package catalog

// PgType is the slice of a pg_type row the classifier needs. It mirrors
// the columns the loader selects when resolving any type reference -
// a column's data type, a domain's base type, a function's argument or
// return type, and so on all go through the same PgType.
type PgType struct {
	OID        uint32
	Schema     string
	Name       string
	Typtype    string // 'b' base, 'c' composite, 'd' domain, 'e' enum, 'r' range, 'm' multirange
	Typelem    uint32 // nonzero => this is an array, Typelem is the element type's OID
	TyprelID   uint32 // nonzero for typtype='c': the backing pg_class OID
	Relkind    string // relkind of TyprelID, when TyprelID != 0: 'r'/'p' table, 'v'/'m' view
	IsExtension bool  // pg_depend records this type as owned by an extension (deptype='e')
}

// ClassifyType is the single resolution rule, consumed by every catalog
// loader query that needs to turn a pg_type reference into an ObjectId
// dependency. It implements, in one place:
//
//   - array element resolution: the caller must already have followed
//     Typelem to pt before calling this - ClassifyType never re-resolves
//     typelem itself, it classifies whatever row it is given;
//   - extension ownership: extension-provided types resolve to
//     Extension{name}, never Type{}/Table{}/View{};
//   - domain vs. composite vs. enum/range/other, with composite types
//     backed by a table or view resolving to that Table/View identity
//     instead of a standalone Type.
//
// pt.Schema/pt.Name must already reflect the row being classified (the
// element type's own schema/name if this was reached via Typelem).
func ClassifyType(pt PgType, extensionName string) ObjectId {
	if pt.IsExtension {
		return Extension(extensionName)
	}
	if IsSystemSchema(pt.Schema) {
		// Dependencies on system-schema types are valid but are not
		// represented as catalog entities; callers are expected to
		// recognize a system-schema Type{} result and drop the edge
		// rather than warn about it.
		return Type(pt.Schema, pt.Name)
	}
	switch pt.Typtype {
	case "d":
		return Domain(pt.Schema, pt.Name)
	case "c":
		if pt.TyprelID != 0 {
			switch pt.Relkind {
			case "r", "p":
				return Table(pt.Schema, pt.Name)
			case "v", "m":
				return View(pt.Schema, pt.Name)
			}
		}
		return Type(pt.Schema, pt.Name)
	default:
		// enum ('e'), range ('r'), multirange ('m'), base ('b') and
		// anything else pg_type can hold that isn't a domain or
		// composite all resolve to a standalone Type.
		return Type(pt.Schema, pt.Name)
	}
}
