package guild

// stepSellTrophies exchanges trophy stock for funds at the fixed buyer rate.
// Purely arithmetic, no RNG.
func stepSellTrophies(cfg Config, s *State, c SellTrophies) []Event {
	proceeds := Money(int64(c.Count) * cfg.Balance.TrophyRate)
	s.Economy.Trophies -= c.Count
	s.Economy.Liquid = s.Economy.Liquid.Add(proceeds)
	return []Event{TrophiesSold{Count: c.Count, Proceeds: proceeds}}
}

// stepPayTax settles the current tax obligation (base plus any accumulated
// penalty) ahead of or after the due day, resetting the schedule. No RNG.
func stepPayTax(s *State) []Event {
	due := s.Meta.Tax.AmountDue.Add(s.Meta.Tax.Penalty)
	s.Economy.Liquid = s.Economy.Liquid.Sub(due)
	s.Meta.Tax.Penalty = 0
	s.Meta.Tax.MissedCount = 0
	return []Event{TaxPaid{Amount: due}}
}
