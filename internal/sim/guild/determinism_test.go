package guild

import "testing"

// Two engines stepped with the same seed and command stream must agree on
// every state and event digest, step by step.
func TestDeterminism_FixedCommandsSameDigest(t *testing.T) {
	cfg := DefaultConfig()
	const seed = 42

	s1 := NewState(cfg, seed)
	s2 := NewState(cfg, seed)
	r1 := NewRNG(seed)
	r2 := NewRNG(seed)

	if StateDigest(s1) != StateDigest(s2) {
		t.Fatal("fresh states differ")
	}

	var cmds []Command
	cmds = append(cmds, CreateDraft{
		CmdHeader: CmdHeader{Cmd: 1},
		Title:     "Lost Heirloom", Rank: RankF, Difficulty: 25,
		Reward: 800, Salvage: SalvageGuild, ClientPrepaid: true,
	})
	cmds = append(cmds, PostDraft{CmdHeader: CmdHeader{Cmd: 2}, Contract: 1, Fee: 50})
	for step := uint64(3); step < 40; step++ {
		cmds = append(cmds, AdvanceDay{CmdHeader: CmdHeader{Cmd: step}})
	}

	for i, cmd := range cmds {
		var ev1, ev2 []Event
		s1, ev1 = Step(cfg, s1, cmd, r1)
		s2, ev2 = Step(cfg, s2, cmd, r2)

		if d1, d2 := StateDigest(s1), StateDigest(s2); d1 != d2 {
			t.Fatalf("state digest mismatch at step %d: %s vs %s", i, d1, d2)
		}
		if d1, d2 := EventsDigest(ev1), EventsDigest(ev2); d1 != d2 {
			t.Fatalf("event digest mismatch at step %d: %s vs %s", i, d1, d2)
		}
		if r1.Draws() != r2.Draws() {
			t.Fatalf("draw counters diverged at step %d: %d vs %d", i, r1.Draws(), r2.Draws())
		}
		if vs := Verify(s1); len(vs) != 0 {
			t.Fatalf("violations at step %d: %v", i, vs)
		}
	}
}

// The day pipeline eventually exercises every branch under the default
// profile; whatever it does, the invariants must hold.
func TestDeterminism_LongRunHoldsInvariants(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 20240229)
	rng := NewRNG(20240229)

	step := uint64(1)
	for day := 0; day < 120; day++ {
		// Post the oldest affordable draft, then assign every available hero.
		if len(s.Contracts.Inbox) > 0 {
			id := s.Contracts.Inbox[0].ID
			s, _ = Step(cfg, s, PostDraft{CmdHeader: CmdHeader{Cmd: step}, Contract: id}, rng)
			step++

			var party []HeroID
			for _, h := range s.Heroes.Roster {
				if h.Status == HeroAvailable {
					party = append(party, h.ID)
				}
			}
			if len(party) > 0 {
				s, _ = Step(cfg, s, TakeContract{
					CmdHeader: CmdHeader{Cmd: step}, Contract: id, Heroes: party,
				}, rng)
				step++
			}
		}

		s, _ = Step(cfg, s, AdvanceDay{CmdHeader: CmdHeader{Cmd: step}}, rng)
		step++

		for len(s.Contracts.Returns) > 0 {
			active := s.Contracts.Returns[0].Active
			s, _ = Step(cfg, s, CloseReturn{
				CmdHeader: CmdHeader{Cmd: step}, Active: active, Decision: DecisionAccept,
			}, rng)
			step++
		}

		if vs := Verify(s); len(vs) != 0 {
			t.Fatalf("day %d: violations: %v", day, vs)
		}
	}
	if s.Meta.Day != 120 {
		t.Fatalf("day = %d, want 120", s.Meta.Day)
	}
}

func TestClone_IndependentOfOriginal(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 8)
	addHero(&s, "Petra", 5, 5)
	s.Contracts.Inbox = append(s.Contracts.Inbox, Draft{
		ID: 1, Title: "Wolf Cull", Rank: RankF, Salvage: SalvageGuild,
	})
	s.Meta.NextContract = 2

	c := s.Clone()
	before := StateDigest(s)
	c.Heroes.Roster[0].Name = "changed"
	c.Contracts.Inbox[0].Title = "changed"
	c.Economy.Liquid = 0

	if StateDigest(s) != before {
		t.Fatal("mutating the clone changed the original")
	}
}
