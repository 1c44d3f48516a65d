package rules

// SortPair orders two user ids lexicographically so the pair is unordered.
func SortPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// MatchID derives the deterministic match identifier from an unordered
// user pair. The same two users always map to the same id, which makes
// match creation idempotent regardless of who completed the match.
func MatchID(a, b string) string {
	lo, hi := SortPair(a, b)
	return lo + "_" + hi
}
