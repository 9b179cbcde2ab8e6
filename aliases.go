package cmdkit

// composeAliases produces the fully-qualified aliases for a node declaring
// its own raw aliases under a parent whose full aliases are already composed.
//
// The empty string is meaningful on both sides: a parent alias of "" means
// the parent resolved to the root (children are reachable without a prefix),
// and an own alias of "" declares a default form reachable by the parent's
// name alone.
//
// Rules, for every parent alias m crossed with every own alias c (parents
// outer, own inner, order preserved):
//
//   - no parent aliases at all: the own aliases are already fully qualified
//   - no own aliases at all: the node inherits the parent aliases verbatim
//   - c == "" under m == "": skipped, the bare form already exists
//   - c == "" under a named m: emits m alone
//   - c != "" under m == "": emits c alone, no separator
//   - otherwise: emits m + sep + c
//
// Duplicate emitted strings are kept; callers that need uniqueness (the
// dispatcher's lookup map) resolve duplicates themselves.
func composeAliases(parents, own []string, sep string) []string {
	if len(parents) == 0 {
		return own
	}
	if len(own) == 0 {
		return parents
	}

	full := make([]string, 0, len(parents)*len(own))
	for _, m := range parents {
		absolute := m == ""
		for _, c := range own {
			switch {
			case c == "" && absolute:
				// the bare root form, already covered
			case c == "":
				full = append(full, m)
			case absolute:
				full = append(full, c)
			default:
				full = append(full, m+sep+c)
			}
		}
	}
	return full
}
