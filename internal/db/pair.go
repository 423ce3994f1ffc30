package db

// CanonicalPair orders two participant identifiers into the (UserA, UserB)
// slots of a Chat. The rule is a plain lexicographic comparison of the
// identifier strings: deterministic, total, and free of business meaning.
// Every chat lookup and insert must go through this single comparator so
// pair identity stays order-independent.
func CanonicalPair(a, b string) (userA, userB string) {
	if a <= b {
		return a, b
	}
	return b, a
}
