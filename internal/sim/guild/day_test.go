package guild

import (
	"testing"

	"guildhall.quest/internal/sim/balance"
)

// quietProfile turns off daily generation so day tests can count draws and
// events precisely.
func quietProfile() balance.Profile {
	p := balance.Default()
	p.ArrivalsBase = 0
	p.ArrivalsPerTier = 0
	p.DraftsBase = 0
	p.DraftsPerTier = 0
	return p
}

func sureSuccessProfile() balance.Profile {
	p := quietProfile()
	p.SuccessOffset = 1000
	p.SuccessMax = 100
	p.PartialChance = 0
	p.FailFloor = 0
	p.MissionDays = 1
	return p
}

func sureDeadProfile() balance.Profile {
	p := quietProfile()
	p.SuccessOffset = -1000
	p.SuccessMin = 0
	p.PartialChance = 0
	p.MissingBp = 0
	p.MissionDays = 1
	return p
}

func TestAdvanceDay_DrawAccounting(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 77)
	rng := NewRNG(77)

	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 1}}, rng)

	// 1 arrival (3 draws) + 2 generated drafts (2 draws each).
	if rng.Draws() != 7 {
		t.Fatalf("draws = %d, want 7", rng.Draws())
	}
	var arrived, drafted int
	for _, ev := range events {
		switch ev.(type) {
		case HeroArrived:
			arrived++
		case DraftCreated:
			drafted++
		}
	}
	if arrived != 1 || drafted != 2 {
		t.Fatalf("arrived=%d drafted=%d, want 1/2", arrived, drafted)
	}
	if _, ok := events[0].(DayAdvanced); !ok {
		t.Fatalf("first event = %T, want DayAdvanced", events[0])
	}
	if s.Meta.Day != 1 {
		t.Fatalf("day = %d, want 1", s.Meta.Day)
	}
	if len(s.Heroes.ArrivedToday) != 1 {
		t.Fatalf("arrived today = %d, want 1", len(s.Heroes.ArrivedToday))
	}
	if vs := Verify(s); len(vs) != 0 {
		t.Fatalf("violations: %v", vs)
	}
}

func TestAdvanceDay_GeneratedDraftFields(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 5)
	rng := NewRNG(5)

	s, _ = Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 1}}, rng)
	for _, d := range s.Contracts.Inbox {
		if !d.ClientPrepaid || d.Salvage != SalvageGuild {
			t.Fatalf("generated draft: %+v", d)
		}
		want := Money(cfg.Balance.GenRewardBase + int64(d.Difficulty)*cfg.Balance.GenRewardPerDiff)
		if d.Reward != want {
			t.Fatalf("reward = %d, want %d for difficulty %d", d.Reward, want, d.Difficulty)
		}
	}
}

// takeOne drives a single contract to UNDERWAY with one hero and returns the
// hero id.
func takeOne(t *testing.T, cfg Config, s *State, rng *RNG, prepaid bool) HeroID {
	t.Helper()
	*s, _ = mustStep(t, cfg, *s, CreateDraft{
		CmdHeader: CmdHeader{Cmd: 1},
		Title:     "Night Courier", Rank: RankF, Difficulty: 20,
		Reward: 1000, Salvage: SalvageGuild, ClientPrepaid: prepaid,
	}, rng)
	*s, _ = mustStep(t, cfg, *s, PostDraft{CmdHeader: CmdHeader{Cmd: 2}, Contract: 1}, rng)
	h := addHero(s, "Lothar", 12, 2)
	*s, _ = mustStep(t, cfg, *s, TakeContract{
		CmdHeader: CmdHeader{Cmd: 3}, Contract: 1, Heroes: []HeroID{h},
	}, rng)
	return h
}

func TestAdvanceDay_CleanLenientSuccessAutoSettles(t *testing.T) {
	cfg := Config{Balance: sureSuccessProfile(), Catalogs: DefaultConfig().Catalogs}
	s := NewState(cfg, 11)
	rng := NewRNG(11)
	h := takeOne(t, cfg, &s, rng, true)

	drawsBefore := rng.Draws()
	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 4}}, rng)

	if rng.Draws()-drawsBefore != 1 {
		t.Fatalf("draws = %d, want 1 (outcome roll only)", rng.Draws()-drawsBefore)
	}
	var resolved *ContractResolved
	var closed *ReturnClosed
	for i := range events {
		switch ev := events[i].(type) {
		case ContractResolved:
			resolved = &ev
		case ReturnClosed:
			closed = &ev
		}
	}
	if resolved == nil || resolved.Outcome != OutcomeSuccess || resolved.NeedsClosure {
		t.Fatalf("resolved: %+v", resolved)
	}
	if closed == nil || closed.Decision != DecisionAccept || closed.Released != 1000 {
		t.Fatalf("closed: %+v", closed)
	}
	if s.Contracts.board(1).Status != BoardCompleted {
		t.Fatalf("board status = %s", s.Contracts.board(1).Status)
	}
	if len(s.Contracts.Active) != 0 || len(s.Contracts.Returns) != 0 {
		t.Fatal("active or packet left behind after auto-settle")
	}
	if got := s.Heroes.hero(h).Status; got != HeroAvailable {
		t.Fatalf("hero status = %s, want AVAILABLE", got)
	}
	if s.Economy.Trophies != resolved.Trophies {
		t.Fatalf("trophy stock = %d, want %d", s.Economy.Trophies, resolved.Trophies)
	}
	if vs := Verify(s); len(vs) != 0 {
		t.Fatalf("violations: %v", vs)
	}
}

func TestAdvanceDay_DeadOutcomeLeavesPendingReturn(t *testing.T) {
	cfg := Config{Balance: sureDeadProfile(), Catalogs: DefaultConfig().Catalogs}
	s := NewState(cfg, 13)
	rng := NewRNG(13)
	h := takeOne(t, cfg, &s, rng, true)

	stability := s.Region.Stability
	reputation := s.Guild.Reputation
	drawsBefore := rng.Draws()
	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 4}}, rng)

	// One outcome roll plus the dead-vs-missing reclassification.
	if rng.Draws()-drawsBefore != 2 {
		t.Fatalf("draws = %d, want 2", rng.Draws()-drawsBefore)
	}
	var resolved *ContractResolved
	for i := range events {
		if ev, ok := events[i].(ContractResolved); ok {
			resolved = &ev
		}
	}
	if resolved == nil || resolved.Outcome != OutcomeDead || !resolved.NeedsClosure {
		t.Fatalf("resolved: %+v", resolved)
	}
	if got := s.Heroes.hero(h).Status; got != HeroDead {
		t.Fatalf("hero status = %s, want DEAD", got)
	}
	if s.Region.Stability != stability-cfg.Balance.StabDead {
		t.Fatalf("stability = %d, want %d", s.Region.Stability, stability-cfg.Balance.StabDead)
	}
	if s.Guild.Reputation != clampInt(reputation-cfg.Balance.RepFail, ReputationMin, ReputationMax) {
		t.Fatalf("reputation = %d", s.Guild.Reputation)
	}
	if len(s.Contracts.Returns) != 1 || !s.Contracts.Returns[0].NeedsClosure {
		t.Fatalf("returns: %+v", s.Contracts.Returns)
	}
	if s.Contracts.active(1).Status != ActiveAwaitingReturn {
		t.Fatalf("active status = %s", s.Contracts.active(1).Status)
	}
	if vs := Verify(s); len(vs) != 0 {
		t.Fatalf("violations: %v", vs)
	}

	// Strict-policy liveness: an explicit reject always terminates the packet.
	s.Guild.ProofPolicy = PolicyStrict
	s, _ = Step(cfg, s, CloseReturn{
		CmdHeader: CmdHeader{Cmd: 5}, Active: 1, Decision: DecisionReject,
	}, rng)
	if len(s.Contracts.Returns) != 0 || len(s.Contracts.Active) != 0 {
		t.Fatal("reject-close did not terminate the packet lifecycle")
	}
	if got := s.Heroes.hero(h).Status; got != HeroDead {
		t.Fatalf("dead hero resurrected by close: %s", got)
	}
}

func TestAdvanceDay_TaxPaidOnDueDay(t *testing.T) {
	p := quietProfile()
	p.TaxEveryDays = 1
	cfg := Config{Balance: p, Catalogs: DefaultConfig().Catalogs}
	s := NewState(cfg, 3)
	rng := NewRNG(3)

	liquid := s.Economy.Liquid
	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 1}}, rng)

	var tax *TaxAssessed
	for i := range events {
		if ev, ok := events[i].(TaxAssessed); ok {
			tax = &ev
		}
	}
	if tax == nil || !tax.Paid || tax.Amount != Money(p.TaxBase) {
		t.Fatalf("tax: %+v", tax)
	}
	if s.Economy.Liquid != liquid-Money(p.TaxBase) {
		t.Fatalf("liquid = %d, want %d", s.Economy.Liquid, liquid-Money(p.TaxBase))
	}
	if s.Meta.Tax.DueDay != 2 {
		t.Fatalf("next due day = %d, want 2", s.Meta.Tax.DueDay)
	}
	if rng.Draws() != 0 {
		t.Fatalf("tax assessment drew %d times", rng.Draws())
	}
}

func TestAdvanceDay_TaxMissedAccruesPenalty(t *testing.T) {
	p := quietProfile()
	p.TaxEveryDays = 1
	p.StartingFunds = 100 // cannot cover the 2000 base
	cfg := Config{Balance: p, Catalogs: DefaultConfig().Catalogs}
	s := NewState(cfg, 3)
	rng := NewRNG(3)

	stability := s.Region.Stability
	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 1}}, rng)

	var tax *TaxAssessed
	for i := range events {
		if ev, ok := events[i].(TaxAssessed); ok {
			tax = &ev
		}
	}
	if tax == nil || tax.Paid || tax.Missed != 1 {
		t.Fatalf("tax: %+v", tax)
	}
	wantPenalty := Money(p.TaxBase).Bp(p.TaxPenaltyBp)
	if s.Meta.Tax.Penalty != wantPenalty {
		t.Fatalf("penalty = %d, want %d", s.Meta.Tax.Penalty, wantPenalty)
	}
	if s.Meta.Tax.MissedCount != 1 {
		t.Fatalf("missed = %d, want 1", s.Meta.Tax.MissedCount)
	}
	if s.Region.Stability != stability-p.StabMissedTax {
		t.Fatalf("stability = %d, want %d", s.Region.Stability, stability-p.StabMissedTax)
	}
	if s.Economy.Liquid != 100 {
		t.Fatalf("liquid = %d, funds must not go negative", s.Economy.Liquid)
	}
}

func TestAdvanceDay_ClosureWarningPastCeiling(t *testing.T) {
	p := quietProfile()
	p.TaxEveryDays = 1
	p.TaxMissedCeiling = 0
	p.StartingFunds = 0
	cfg := Config{Balance: p, Catalogs: DefaultConfig().Catalogs}
	s := NewState(cfg, 3)

	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 1}}, NewRNG(3))

	var warned bool
	for _, ev := range events {
		if _, ok := ev.(GuildClosureWarning); ok {
			warned = true
		}
	}
	if !warned {
		t.Fatal("no closure warning past the missed-tax ceiling")
	}
	if s.Region.Stability != StabilityMin {
		t.Fatalf("stability = %d, want floor %d", s.Region.Stability, StabilityMin)
	}
	if vs := Verify(s); len(vs) != 0 {
		t.Fatalf("violations: %v", vs)
	}
}

func TestAdvanceDay_StaleDraftExpires(t *testing.T) {
	p := quietProfile()
	p.DraftMaxAgeDays = 0
	cfg := Config{Balance: p, Catalogs: DefaultConfig().Catalogs}
	s := NewState(cfg, 3)
	rng := NewRNG(3)

	s, _ = mustStep(t, cfg, s, CreateDraft{
		CmdHeader: CmdHeader{Cmd: 1},
		Title:     "Broken Bridge", Rank: RankF, Difficulty: 10,
		Reward: 200, Salvage: SalvageGuild,
	}, rng)
	s, events := Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: 2}}, rng)

	var expired bool
	for _, ev := range events {
		if e, ok := ev.(DraftExpired); ok && e.Contract == 1 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("stale draft did not expire")
	}
	if len(s.Contracts.Inbox) != 0 {
		t.Fatalf("inbox: %+v", s.Contracts.Inbox)
	}
}
