package guild

import "testing"

func TestStateDigest_SensitiveToFields(t *testing.T) {
	cfg := DefaultConfig()
	base := NewState(cfg, 1)
	d := StateDigest(base)

	mutations := []func(*State){
		func(s *State) { s.Meta.Day++ },
		func(s *State) { s.Meta.Revision++ },
		func(s *State) { s.Economy.Liquid++ },
		func(s *State) { s.Economy.Reserved++ },
		func(s *State) { s.Guild.Rank = RankE },
		func(s *State) { s.Guild.ProofPolicy = PolicyStrict },
		func(s *State) { s.Region.Stability-- },
		func(s *State) {
			s.Contracts.Inbox = append(s.Contracts.Inbox, Draft{ID: 0, Title: "x"})
		},
	}
	for i, mutate := range mutations {
		s := base.Clone()
		mutate(&s)
		if StateDigest(s) == d {
			t.Fatalf("mutation %d did not change the digest", i)
		}
	}
}

func TestStateDigest_NilAndEmptySlicesAgree(t *testing.T) {
	cfg := DefaultConfig()
	a := NewState(cfg, 1)
	b := NewState(cfg, 1)
	b.Contracts.Inbox = []Draft{}
	b.Heroes.Roster = []Hero{}
	b.Heroes.ArrivedToday = []HeroID{}

	if StateDigest(a) != StateDigest(b) {
		t.Fatal("nil and empty collections digest differently")
	}
}

func TestEventsDigest_OrderSensitive(t *testing.T) {
	a := []Event{DayAdvanced{Day: 1}, HeroArrived{Hero: 1, Name: "x", Rank: RankF}}
	b := []Event{HeroArrived{Hero: 1, Name: "x", Rank: RankF}, DayAdvanced{Day: 1}}
	if EventsDigest(a) == EventsDigest(b) {
		t.Fatal("event order does not affect the digest")
	}
	if EventsDigest(a) != EventsDigest([]Event{DayAdvanced{Day: 1}, HeroArrived{Hero: 1, Name: "x", Rank: RankF}}) {
		t.Fatal("identical event streams digest differently")
	}
}
