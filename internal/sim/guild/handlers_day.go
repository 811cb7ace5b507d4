package guild

import "sort"

// stepAdvanceDay ticks the world one day. RNG draw order is fixed and part
// of the determinism contract:
//
//  1. hero arrivals (3 draws per hero: name, might, cunning)
//  2. outcome rolls for actives reaching zero duration, ascending ActiveID
//     (1 draw, plus 1 reclassification draw immediately after a fail)
//  3. new draft generation (2 draws per draft: title, difficulty)
//
// Tax assessment and draft expiry draw nothing.
func stepAdvanceDay(cfg Config, s *State, rng *RNG) []Event {
	b := cfg.Balance
	s.Meta.Day++
	events := []Event{DayAdvanced{Day: s.Meta.Day}}

	events = append(events, dayArrivals(cfg, s, rng)...)
	events = append(events, dayResolveActives(cfg, s, rng)...)
	events = append(events, dayGenerateDrafts(cfg, s, rng)...)
	events = append(events, dayAssessTax(cfg, s)...)

	// Expire drafts that sat unposted past the age threshold.
	var kept []Draft
	for _, d := range s.Contracts.Inbox {
		if s.Meta.Day-d.CreatedDay > b.DraftMaxAgeDays {
			events = append(events, DraftExpired{Contract: d.ID})
			continue
		}
		kept = append(kept, d)
	}
	s.Contracts.Inbox = kept

	return events
}

func dayArrivals(cfg Config, s *State, rng *RNG) []Event {
	b := cfg.Balance
	n := b.ArrivalsBase + s.Guild.Rank.Tier()*b.ArrivalsPerTier
	s.Heroes.ArrivedToday = nil

	var events []Event
	for i := 0; i < n; i++ {
		name := cfg.Catalogs.HeroNames[rng.NextInt(len(cfg.Catalogs.HeroNames))]
		might := rng.NextInt(b.MightMax + 1)
		cunning := rng.NextInt(b.CunningMax + 1)

		id := allocHero(s)
		s.Heroes.Roster = append(s.Heroes.Roster, Hero{
			ID:         id,
			Name:       name,
			Rank:       s.Guild.Rank,
			Might:      might,
			Cunning:    cunning,
			Status:     HeroAvailable,
			ArrivedDay: s.Meta.Day,
		})
		s.Heroes.ArrivedToday = append(s.Heroes.ArrivedToday, id)
		events = append(events, HeroArrived{Hero: id, Name: name, Rank: s.Guild.Rank})
	}
	return events
}

func dayResolveActives(cfg Config, s *State, rng *RNG) []Event {
	b := cfg.Balance

	var due []ActiveID
	for i := range s.Contracts.Active {
		a := &s.Contracts.Active[i]
		if a.Status != ActiveUnderway {
			continue
		}
		if a.Remaining > 0 {
			a.Remaining--
		}
		if a.Remaining == 0 {
			due = append(due, a.ID)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })

	var events []Event
	for _, id := range due {
		a := s.Contracts.active(id)
		board := s.Contracts.board(a.Contract)

		power := partyPower(b, s, a.Heroes)
		outcome := rollOutcome(b, rng, power, board.Difficulty)
		trophies := trophiesFor(outcome, board.Difficulty)

		board.Status = BoardCompleted

		switch outcome {
		case OutcomeSuccess:
			s.Region.Stability = clampInt(s.Region.Stability+b.StabSuccess, StabilityMin, StabilityMax)
			s.Guild.Reputation = clampInt(s.Guild.Reputation+b.RepSuccess, ReputationMin, ReputationMax)
		case OutcomePartial:
			s.Guild.Reputation = clampInt(s.Guild.Reputation+b.RepPartial, ReputationMin, ReputationMax)
		case OutcomeDead:
			s.Region.Stability = clampInt(s.Region.Stability-b.StabDead, StabilityMin, StabilityMax)
			s.Guild.Reputation = clampInt(s.Guild.Reputation-b.RepFail, ReputationMin, ReputationMax)
		case OutcomeMissing:
			s.Guild.Reputation = clampInt(s.Guild.Reputation-b.RepFail, ReputationMin, ReputationMax)
		}

		for _, hid := range a.Heroes {
			h := s.Heroes.hero(hid)
			switch outcome {
			case OutcomeDead:
				h.Status = HeroDead
			case OutcomeMissing:
				h.Status = HeroMissing
			}
		}

		pkt := ReturnPacket{
			Active:         a.ID,
			Contract:       a.Contract,
			Outcome:        outcome,
			Trophies:       trophies,
			ProofDamaged:   outcome == OutcomePartial,
			TheftSuspected: theftSuspected(cfg, s, a.Heroes, *board, trophies),
			ResolvedDay:    s.Meta.Day,
		}
		pkt.NeedsClosure = s.Guild.ProofPolicy == PolicyStrict ||
			outcome != OutcomeSuccess || pkt.TheftSuspected
		events = append(events, ContractResolved{
			Active:       a.ID,
			Contract:     a.Contract,
			Outcome:      outcome,
			Trophies:     trophies,
			NeedsClosure: pkt.NeedsClosure,
		})

		if pkt.NeedsClosure {
			a.Status = ActiveAwaitingReturn
			s.Contracts.Returns = append(s.Contracts.Returns, pkt)
			continue
		}
		// Lenient policy, clean success: settle immediately.
		events = append(events, settleReturn(cfg, s, pkt, DecisionAccept)...)
	}
	return events
}

// theftSuspected flags a guild-salvage contract brought home by a party with
// suspiciously high cunning. Deterministic, no draws.
func theftSuspected(cfg Config, s *State, heroes []HeroID, b BoardContract, trophies int) bool {
	if b.Salvage != SalvageGuild || trophies == 0 {
		return false
	}
	limit := cfg.Balance.CunningMax * 3 / 4
	for _, hid := range heroes {
		if h := s.Heroes.hero(hid); h != nil && h.Cunning >= limit {
			return true
		}
	}
	return false
}

func dayGenerateDrafts(cfg Config, s *State, rng *RNG) []Event {
	b := cfg.Balance
	n := b.DraftsBase + s.Guild.Rank.Tier()*b.DraftsPerTier

	var events []Event
	for i := 0; i < n; i++ {
		title := cfg.Catalogs.ContractTitles[rng.NextInt(len(cfg.Catalogs.ContractTitles))]
		difficulty := rng.NextInt(b.GenDifficultyMax + 1)
		reward := Money(b.GenRewardBase + int64(difficulty)*b.GenRewardPerDiff)

		id := allocContract(s)
		s.Contracts.Inbox = append(s.Contracts.Inbox, Draft{
			ID:            id,
			Title:         title,
			Rank:          s.Guild.Rank,
			Difficulty:    difficulty,
			Reward:        reward,
			Salvage:       SalvageGuild,
			ClientPrepaid: true,
			CreatedDay:    s.Meta.Day,
		})
		events = append(events, DraftCreated{
			Contract:   id,
			Title:      title,
			Rank:       s.Guild.Rank,
			Difficulty: difficulty,
			Reward:     reward,
			Salvage:    SalvageGuild,
		})
	}
	return events
}

func dayAssessTax(cfg Config, s *State) []Event {
	b := cfg.Balance
	if s.Meta.Day != s.Meta.Tax.DueDay {
		return nil
	}

	due := s.Meta.Tax.AmountDue.Add(s.Meta.Tax.Penalty)
	unreserved := s.Economy.Liquid.Sub(s.Economy.Reserved)
	var events []Event
	if unreserved >= due {
		s.Economy.Liquid = s.Economy.Liquid.Sub(due)
		s.Meta.Tax.Penalty = 0
		s.Meta.Tax.MissedCount = 0
		events = append(events, TaxAssessed{Amount: due, Paid: true})
	} else {
		s.Meta.Tax.MissedCount++
		s.Meta.Tax.Penalty = s.Meta.Tax.Penalty.Add(s.Meta.Tax.AmountDue.Bp(b.TaxPenaltyBp))
		s.Region.Stability = clampInt(s.Region.Stability-b.StabMissedTax, StabilityMin, StabilityMax)
		events = append(events, TaxAssessed{Amount: due, Paid: false, Missed: s.Meta.Tax.MissedCount})
		if s.Meta.Tax.MissedCount > b.TaxMissedCeiling {
			s.Region.Stability = StabilityMin
			events = append(events, GuildClosureWarning{Missed: s.Meta.Tax.MissedCount})
		}
	}
	s.Meta.Tax.DueDay += b.TaxEveryDays
	return events
}
