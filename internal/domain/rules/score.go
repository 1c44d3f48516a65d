package rules

const (
	DefaultMatchScore = 70
	SuperLikeBoost    = 20
)

// EffectiveScore computes a candidate's ranking score. Candidates with
// an unseen incoming superlike get the boost on top of their stored
// score; a missing stored score falls back to the default.
func EffectiveScore(stored *int, defaultScore, boost int, priority bool) int {
	score := defaultScore
	if stored != nil {
		score = *stored
	}
	if priority {
		score += boost
	}
	return score
}
