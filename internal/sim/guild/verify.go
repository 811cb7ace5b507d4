package guild

import "fmt"

// Violation names a broken invariant and the offending values. A violation
// is always a defect in the engine or a handler, never a normal rejection.
type Violation struct {
	Invariant string
	Detail    string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Invariant, v.Detail)
}

// Verify re-checks every whole-state invariant. It performs no mutation and
// is idempotent; an empty result means the state is consistent.
func Verify(s State) []Violation {
	var out []Violation
	bad := func(inv, format string, args ...any) {
		out = append(out, Violation{Invariant: inv, Detail: fmt.Sprintf(format, args...)})
	}

	// Id counters dominate every allocated id.
	for _, d := range s.Contracts.Inbox {
		if d.ID >= s.Meta.NextContract {
			bad("contract-id-monotonic", "draft %s >= next %d", d.ID, s.Meta.NextContract)
		}
	}
	for _, b := range s.Contracts.Board {
		if b.ID >= s.Meta.NextContract {
			bad("contract-id-monotonic", "board %s >= next %d", b.ID, s.Meta.NextContract)
		}
	}
	for _, h := range s.Heroes.Roster {
		if h.ID >= s.Meta.NextHero {
			bad("hero-id-monotonic", "hero %s >= next %d", h.ID, s.Meta.NextHero)
		}
	}
	for _, a := range s.Contracts.Active {
		if a.ID >= s.Meta.NextActive {
			bad("active-id-monotonic", "active %s >= next %d", a.ID, s.Meta.NextActive)
		}
	}

	// Id uniqueness within each collection.
	seenContract := map[ContractID]bool{}
	for _, d := range s.Contracts.Inbox {
		if seenContract[d.ID] {
			bad("contract-id-unique", "duplicate %s", d.ID)
		}
		seenContract[d.ID] = true
	}
	for _, b := range s.Contracts.Board {
		if seenContract[b.ID] {
			bad("contract-id-unique", "duplicate %s", b.ID)
		}
		seenContract[b.ID] = true
	}
	seenHero := map[HeroID]bool{}
	for _, h := range s.Heroes.Roster {
		if seenHero[h.ID] {
			bad("hero-id-unique", "duplicate %s", h.ID)
		}
		seenHero[h.ID] = true
	}
	seenActive := map[ActiveID]bool{}
	for _, a := range s.Contracts.Active {
		if seenActive[a.ID] {
			bad("active-id-unique", "duplicate %s", a.ID)
		}
		seenActive[a.ID] = true
	}

	// A board entry may not be OPEN while an active contract references it.
	for _, a := range s.Contracts.Active {
		b := s.Contracts.board(a.Contract)
		if b == nil {
			bad("active-board-link", "active %s references missing board %s", a.ID, a.Contract)
			continue
		}
		if b.Status == BoardOpen {
			bad("board-open-exclusive", "board %s OPEN with active %s", b.ID, a.ID)
		}
	}

	// Escrow conservation.
	if s.Economy.Liquid < 0 {
		bad("money-non-negative", "liquid %d", s.Economy.Liquid)
	}
	if s.Economy.Reserved < 0 {
		bad("money-non-negative", "reserved %d", s.Economy.Reserved)
	}
	if s.Economy.Trophies < 0 {
		bad("trophies-non-negative", "trophies %d", s.Economy.Trophies)
	}
	if s.Economy.Reserved > s.Economy.Liquid {
		bad("reserved-within-liquid", "reserved %d > liquid %d", s.Economy.Reserved, s.Economy.Liquid)
	}
	var escrowSum Money
	for _, a := range s.Contracts.Active {
		if a.Escrow < 0 {
			bad("money-non-negative", "active %s escrow %d", a.ID, a.Escrow)
		}
		escrowSum = escrowSum.Add(a.Escrow)
	}
	if escrowSum > s.Economy.Reserved {
		bad("escrow-within-reserved", "escrow total %d > reserved %d", escrowSum, s.Economy.Reserved)
	}

	// Bounded scores.
	if s.Region.Stability < StabilityMin || s.Region.Stability > StabilityMax {
		bad("stability-bounds", "stability %d outside %d..%d", s.Region.Stability, StabilityMin, StabilityMax)
	}
	if s.Guild.Reputation < ReputationMin || s.Guild.Reputation > ReputationMax {
		bad("reputation-bounds", "reputation %d outside %d..%d", s.Guild.Reputation, ReputationMin, ReputationMax)
	}

	// Active durations and packet pairing.
	for _, a := range s.Contracts.Active {
		if a.Remaining < 0 {
			bad("duration-non-negative", "active %s remaining %d", a.ID, a.Remaining)
		}
		if a.Status == ActiveAwaitingReturn && s.Contracts.packet(a.ID) == nil {
			bad("packet-active-paired", "active %s awaiting return without packet", a.ID)
		}
	}
	for _, p := range s.Contracts.Returns {
		if s.Contracts.active(p.Active) == nil {
			bad("packet-active-paired", "packet %s without active contract", p.Active)
		}
	}

	// Heroes referenced by actives must exist and be on mission.
	for _, a := range s.Contracts.Active {
		for _, hid := range a.Heroes {
			h := s.Heroes.hero(hid)
			if h == nil {
				bad("active-hero-link", "active %s references missing hero %s", a.ID, hid)
				continue
			}
			if a.Status == ActiveUnderway && h.Status != HeroOnMission {
				bad("hero-status-consistent", "hero %s is %s on underway %s", hid, h.Status, a.ID)
			}
		}
	}

	return out
}
