package selafin

import "strings"

// vectorPairs lists the canonicalised variable-name suffix pairs that
// get merged into one 2D vector group (spec.md §4.10). Treating this as
// a fixed table, not a general heuristic, follows spec.md §9's design
// note that the merge is "driver policy" and should be documented in
// code rather than inferred.
var vectorPairs = [][2]string{
	{"velocity u", "velocity v"},
	{"along x", "along y"},
	{"vitesse u", "vitesse v"},
	{"suivant x", "suivant y"},
}

// canonicalizeVarName lowercases and strips slashes from a Selafin
// variable name, per spec.md §4.10.
func canonicalizeVarName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "/", "")
	return name
}

// vectorPairFor reports whether canonical (an already canonicalised
// name) is one half of a known vector pair, returning the pair's index
// in vectorPairs, a shared base name to group them under, and which
// half canonical itself is (0 or 1).
func vectorPairFor(canonical string) (pairIndex int, base string, half int, ok bool) {
	for i, pair := range vectorPairs {
		if canonical == pair[0] {
			return i, commonPrefix(pair), 0, true
		}
		if canonical == pair[1] {
			return i, commonPrefix(pair), 1, true
		}
	}
	return 0, "", 0, false
}

// commonPrefix derives a readable group name from a vector pair, e.g.
// "velocity u"/"velocity v" → "velocity".
func commonPrefix(pair [2]string) string {
	a, b := pair[0], pair[1]
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return strings.TrimSpace(a[:i])
}
