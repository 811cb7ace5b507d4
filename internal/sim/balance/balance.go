// Package balance holds the tuned values of the simulation. The engine never
// reads these from process globals: a Profile is loaded once and threaded
// into every transition, so tests can substitute alternate profiles.
package balance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Profile struct {
	StartingFunds     int64 `yaml:"starting_funds"`
	StartingStability int   `yaml:"starting_stability"`

	// Tax schedule.
	TaxEveryDays     int   `yaml:"tax_every_days"`
	TaxBase          int64 `yaml:"tax_base"`
	TaxPenaltyBp     int64 `yaml:"tax_penalty_bp"`
	TaxMissedCeiling int   `yaml:"tax_missed_ceiling"`

	// Daily generation quotas, scaled by guild rank tier.
	ArrivalsBase    int `yaml:"arrivals_base"`
	ArrivalsPerTier int `yaml:"arrivals_per_tier"`
	DraftsBase      int `yaml:"drafts_base"`
	DraftsPerTier   int `yaml:"drafts_per_tier"`
	DraftMaxAgeDays int `yaml:"draft_max_age_days"`

	// Active contract duration in days.
	MissionDays int `yaml:"mission_days"`

	// Outcome curve (percent points unless noted).
	SuccessOffset int   `yaml:"success_offset"`
	SuccessMin    int   `yaml:"success_min"`
	SuccessMax    int   `yaml:"success_max"`
	PartialChance int   `yaml:"partial_chance"`
	FailFloor     int   `yaml:"fail_floor"`
	MissingBp     int64 `yaml:"missing_bp"` // chance a fail is MISSING, not DEAD

	// Hero generation and power.
	RankPowerStep int `yaml:"rank_power_step"`
	MightMax      int `yaml:"might_max"`
	CunningMax    int `yaml:"cunning_max"`

	// Generated drafts.
	GenDifficultyMax int   `yaml:"gen_difficulty_max"`
	GenRewardBase    int64 `yaml:"gen_reward_base"`
	GenRewardPerDiff int64 `yaml:"gen_reward_per_diff"`

	// Economy.
	TrophyRate int64 `yaml:"trophy_rate"` // copper per trophy at the buyer

	// Reputation and promotion.
	RepSuccess      int `yaml:"rep_success"`
	RepPartial      int `yaml:"rep_partial"`
	RepFail         int `yaml:"rep_fail"` // subtracted
	RankThreshold   int `yaml:"rank_threshold"`
	RankThresholdUp int `yaml:"rank_threshold_up"` // added per promotion

	// Stability deltas.
	StabSuccess   int `yaml:"stab_success"`
	StabDead      int `yaml:"stab_dead"`
	StabMissedTax int `yaml:"stab_missed_tax"`
}

// Default is the shipped profile; configs/balance.yaml overrides it.
func Default() Profile {
	return Profile{
		StartingFunds:     5000,
		StartingStability: 70,

		TaxEveryDays:     30,
		TaxBase:          2000,
		TaxPenaltyBp:     1500,
		TaxMissedCeiling: 3,

		ArrivalsBase:    1,
		ArrivalsPerTier: 1,
		DraftsBase:      2,
		DraftsPerTier:   1,
		DraftMaxAgeDays: 7,

		MissionDays: 3,

		SuccessOffset: 55,
		SuccessMin:    5,
		SuccessMax:    90,
		PartialChance: 20,
		FailFloor:     5,
		MissingBp:     2500,

		RankPowerStep: 10,
		MightMax:      20,
		CunningMax:    20,

		GenDifficultyMax: 80,
		GenRewardBase:    1000,
		GenRewardPerDiff: 40,

		TrophyRate: 150,

		RepSuccess:      10,
		RepPartial:      3,
		RepFail:         5,
		RankThreshold:   10,
		RankThresholdUp: 15,

		StabSuccess:   1,
		StabDead:      2,
		StabMissedTax: 5,
	}
}

func Load(path string) (Profile, error) {
	p := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("balance.yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	if p.TaxEveryDays <= 0 {
		return fmt.Errorf("balance: tax_every_days must be > 0")
	}
	if p.MissionDays <= 0 {
		return fmt.Errorf("balance: mission_days must be > 0")
	}
	if p.SuccessMin < 0 || p.SuccessMax > 100 || p.SuccessMin > p.SuccessMax {
		return fmt.Errorf("balance: success bounds %d..%d invalid", p.SuccessMin, p.SuccessMax)
	}
	// The outcome curve cuts success back toward success_min to keep the fail
	// floor reachable, so only the min-side sum has to fit in the roll range.
	if p.FailFloor < 0 || p.SuccessMin+p.PartialChance+p.FailFloor > 100 {
		return fmt.Errorf("balance: outcome shares exceed 100%%")
	}
	if p.MissingBp < 0 || p.MissingBp > 10000 {
		return fmt.Errorf("balance: missing_bp %d out of range", p.MissingBp)
	}
	if p.TrophyRate < 0 || p.GenRewardBase < 0 || p.GenRewardPerDiff < 0 || p.TaxBase < 0 {
		return fmt.Errorf("balance: negative money value")
	}
	return nil
}
