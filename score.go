package credit

// Credit score bounds and per-debt penalties.
const (
	ScoreBase        = 1000
	ScoreFloor       = 0
	debtPenalty      = 10
	amountPenaltyPer = 100.0
)

// ComputeScore derives a credit score from the user's recorded debts:
// ScoreBase minus a fixed penalty per open debt and one point per whole 100
// units of outstanding amount, floored at ScoreFloor. A user with no debts
// scores ScoreBase.
func ComputeScore(debts []*Debt) int {
	score := ScoreBase

	var total float64
	for _, d := range debts {
		if d == nil {
			continue
		}
		score -= debtPenalty
		total += d.Amount
	}

	score -= int(total / amountPenaltyPer)

	if score < ScoreFloor {
		return ScoreFloor
	}
	return score
}
