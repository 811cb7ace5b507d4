package guild

import (
	"guildhall.quest/internal/sim/balance"
	"guildhall.quest/internal/sim/catalogs"
)

// SaveVersion is the current save-format version; decoders accept
// SaveVersionMin..SaveVersion.
const (
	SaveVersion    = 3
	SaveVersionMin = 2
)

// Config is the immutable configuration threaded into every transition.
type Config struct {
	Balance  balance.Profile
	Catalogs *catalogs.Catalogs
}

func DefaultConfig() Config {
	return Config{Balance: balance.Default(), Catalogs: catalogs.Builtin()}
}

// NewState builds the day-zero world for a seed.
func NewState(cfg Config, seed int64) State {
	b := cfg.Balance
	return State{
		Meta: Meta{
			Version:      SaveVersion,
			Seed:         seed,
			Day:          0,
			NextContract: 1,
			NextHero:     1,
			NextActive:   1,
			Tax: TaxSchedule{
				DueDay:    b.TaxEveryDays,
				AmountDue: Money(b.TaxBase),
			},
		},
		Guild: Guild{
			Rank:        RankF,
			NextRankAt:  b.RankThreshold,
			ProofPolicy: PolicyLenient,
		},
		Region: Region{Stability: clampInt(b.StartingStability, StabilityMin, StabilityMax)},
		Economy: Economy{
			Liquid: Money(b.StartingFunds),
		},
	}
}

// Step is the reducer: validate, dispatch, sequence the revision counter.
// A rejected command returns the input state unchanged (revision included)
// with a single Rejected event; an accepted command returns a new state with
// Revision incremented exactly once. The RNG is drawn from only by the
// handlers that document draws, in their fixed order.
func Step(cfg Config, s State, cmd Command, rng *RNG) (State, []Event) {
	if rej := validate(s, cmd); rej != nil {
		return s, []Event{Rejected{Cmd: cmd.CmdID(), Code: rej.Code, Detail: rej.Detail}}
	}

	next := s.Clone()
	var events []Event
	switch c := cmd.(type) {
	case CreateDraft:
		events = stepCreateDraft(cfg, &next, c)
	case PostDraft:
		events = stepPostDraft(cfg, &next, c)
	case TakeContract:
		events = stepTakeContract(cfg, &next, c)
	case AdvanceDay:
		events = stepAdvanceDay(cfg, &next, rng)
	case CloseReturn:
		events = stepCloseReturn(cfg, &next, c)
	case SellTrophies:
		events = stepSellTrophies(cfg, &next, c)
	case CancelContract:
		events = stepCancelContract(&next, c)
	case UpdateTerms:
		events = stepUpdateTerms(&next, c)
	case PayTax:
		events = stepPayTax(&next)
	}
	next.Meta.Revision++
	return next, events
}

// id allocation: read-then-increment exactly once per new entity, in
// declaration order when one command creates several.

func allocContract(s *State) ContractID {
	id := s.Meta.NextContract
	s.Meta.NextContract++
	return id
}

func allocHero(s *State) HeroID {
	id := s.Meta.NextHero
	s.Meta.NextHero++
	return id
}

func allocActive(s *State) ActiveID {
	id := s.Meta.NextActive
	s.Meta.NextActive++
	return id
}
