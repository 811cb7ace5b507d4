package guild

import "fmt"

// Rank is the guild (and hero) rank ladder, F lowest, S highest.
type Rank string

const (
	RankF Rank = "F"
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

var rankOrder = []Rank{RankF, RankE, RankD, RankC, RankB, RankA, RankS}

func ParseRank(s string) (Rank, error) {
	for _, r := range rankOrder {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("rank: unknown %q", s)
}

// Tier returns the 0-based position on the ladder (F=0 .. S=6).
func (r Rank) Tier() int {
	for i, o := range rankOrder {
		if o == r {
			return i
		}
	}
	return -1
}

func (r Rank) Valid() bool { return r.Tier() >= 0 }

// Next returns the rank above, or the same rank at the top of the ladder.
func (r Rank) Next() Rank {
	t := r.Tier()
	if t < 0 || t == len(rankOrder)-1 {
		return r
	}
	return rankOrder[t+1]
}

const (
	StabilityMin = 0
	StabilityMax = 100

	ReputationMin = 0
	ReputationMax = 1000
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
