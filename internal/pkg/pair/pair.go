package pair

import "strings"

// Key returns the canonical key for an unordered profile pair: the two ids
// sorted lexicographically and joined with '#'. Both swipe directions map to
// the same key, so it can anchor a uniqueness constraint.
func Key(a, b string) string {
	lo, hi := Order(a, b)
	return lo + "#" + hi
}

// Order returns the two ids in canonical (ascending) order.
func Order(a, b string) (string, string) {
	if strings.Compare(a, b) <= 0 {
		return a, b
	}
	return b, a
}
