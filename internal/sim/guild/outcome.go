package guild

import "guildhall.quest/internal/sim/balance"

// heroPower derives a single power value from rank and traits.
func heroPower(b balance.Profile, h Hero) int {
	return h.Rank.Tier()*b.RankPowerStep + h.Might + h.Cunning/2
}

// partyPower is the mean power of the party, floored.
func partyPower(b balance.Profile, s *State, heroes []HeroID) int {
	if len(heroes) == 0 {
		return 0
	}
	total := 0
	for _, id := range heroes {
		if h := s.Heroes.hero(id); h != nil {
			total += heroPower(b, *h)
		}
	}
	return total / len(heroes)
}

// outcomeChances computes the cumulative thresholds for a single percentage
// roll, in the fixed order success -> partial -> fail. Fail keeps an
// enforced floor so it stays reachable at maximum success chance.
func outcomeChances(b balance.Profile, power, difficulty int) (success, partial int) {
	success = clampInt(b.SuccessOffset+(power-difficulty), b.SuccessMin, b.SuccessMax)
	partial = b.PartialChance
	if success+partial > 100-b.FailFloor {
		success = 100 - b.FailFloor - partial
		if success < b.SuccessMin {
			success = b.SuccessMin
		}
	}
	return success, partial
}

// rollOutcome consumes exactly one draw, plus one more immediately after it
// when the first lands on fail (the dead-vs-missing reclassification).
// Callers resolve actives in ascending ActiveID order; permuting either
// ordering breaks replays.
func rollOutcome(b balance.Profile, rng *RNG, power, difficulty int) Outcome {
	success, partial := outcomeChances(b, power, difficulty)
	roll := rng.NextInt(100)
	switch {
	case roll < success:
		return OutcomeSuccess
	case roll < success+partial:
		return OutcomePartial
	}
	if int64(rng.NextInt(10000)) < b.MissingBp {
		return OutcomeMissing
	}
	return OutcomeDead
}

// trophiesFor is deterministic (no draws): trophy yield scales with
// difficulty and collapses on failure.
func trophiesFor(outcome Outcome, difficulty int) int {
	switch outcome {
	case OutcomeSuccess:
		return difficulty/20 + 1
	case OutcomePartial:
		return difficulty / 40
	default:
		return 0
	}
}
