package guild

import "testing"

func TestSellTrophies(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 1)
	s.Economy.Trophies = 5

	liquid := s.Economy.Liquid
	s, events := Step(cfg, s, SellTrophies{CmdHeader: CmdHeader{Cmd: 1}, Count: 3}, NewRNG(1))

	sold, ok := events[0].(TrophiesSold)
	want := Money(3 * cfg.Balance.TrophyRate)
	if !ok || sold.Count != 3 || sold.Proceeds != want {
		t.Fatalf("event: %+v", events[0])
	}
	if s.Economy.Trophies != 2 {
		t.Fatalf("stock = %d, want 2", s.Economy.Trophies)
	}
	if s.Economy.Liquid != liquid+want {
		t.Fatalf("liquid = %d, want %d", s.Economy.Liquid, liquid+want)
	}
}

func TestSellTrophies_BeyondStockRejected(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 1)
	s.Economy.Trophies = 1

	_, events := Step(cfg, s, SellTrophies{CmdHeader: CmdHeader{Cmd: 1}, Count: 2}, NewRNG(1))
	rej, ok := events[0].(Rejected)
	if !ok || rej.Code != ErrInvalidState {
		t.Fatalf("got %+v", events[0])
	}

	_, events = Step(cfg, s, SellTrophies{CmdHeader: CmdHeader{Cmd: 2}, Count: 0}, NewRNG(1))
	rej, ok = events[0].(Rejected)
	if !ok || rej.Code != ErrBadRequest {
		t.Fatalf("got %+v", events[0])
	}
}

func TestPayTax_ClearsPenaltyAndMisses(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 1)
	s.Meta.Tax.Penalty = 300
	s.Meta.Tax.MissedCount = 2

	liquid := s.Economy.Liquid
	due := s.Meta.Tax.AmountDue.Add(s.Meta.Tax.Penalty)
	s, events := Step(cfg, s, PayTax{CmdHeader: CmdHeader{Cmd: 1}}, NewRNG(1))

	paid, ok := events[0].(TaxPaid)
	if !ok || paid.Amount != due {
		t.Fatalf("event: %+v", events[0])
	}
	if s.Economy.Liquid != liquid-due {
		t.Fatalf("liquid = %d, want %d", s.Economy.Liquid, liquid-due)
	}
	if s.Meta.Tax.Penalty != 0 || s.Meta.Tax.MissedCount != 0 {
		t.Fatalf("tax after payment: %+v", s.Meta.Tax)
	}
}

func TestPayTax_InsufficientFundsRejected(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 1)
	s.Economy.Liquid = 100

	_, events := Step(cfg, s, PayTax{CmdHeader: CmdHeader{Cmd: 1}}, NewRNG(1))
	rej, ok := events[0].(Rejected)
	if !ok || rej.Code != ErrInvalidState {
		t.Fatalf("got %+v", events[0])
	}
}

func TestPayTax_NothingDueRejected(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, 1)
	s.Meta.Tax.AmountDue = 0

	_, events := Step(cfg, s, PayTax{CmdHeader: CmdHeader{Cmd: 1}}, NewRNG(1))
	rej, ok := events[0].(Rejected)
	if !ok || rej.Code != ErrInvalidState {
		t.Fatalf("got %+v", events[0])
	}
}
