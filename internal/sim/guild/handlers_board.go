package guild

// stepPostDraft moves a draft from the inbox to the board with status OPEN.
// The posting fee is paid immediately; a prepaying client's reward enters
// the treasury and is escrowed until the contract closes. No RNG.
func stepPostDraft(cfg Config, s *State, c PostDraft) []Event {
	d := *s.Contracts.draft(c.Contract)
	s.Contracts.removeDraft(c.Contract)

	s.Economy.Liquid = s.Economy.Liquid.Sub(c.Fee)

	var escrowed Money
	if d.ClientPrepaid {
		escrowed = d.Reward
		s.Economy.Liquid = s.Economy.Liquid.Add(escrowed)
		s.Economy.Reserved = s.Economy.Reserved.Add(escrowed)
	}

	s.Contracts.Board = append(s.Contracts.Board, BoardContract{
		ID:            d.ID,
		Title:         d.Title,
		Rank:          d.Rank,
		Difficulty:    d.Difficulty,
		Reward:        d.Reward,
		Salvage:       d.Salvage,
		ClientPrepaid: d.ClientPrepaid,
		Fee:           c.Fee,
		Status:        BoardOpen,
		PostedDay:     s.Meta.Day,
	})
	return []Event{ContractPosted{Contract: d.ID, Fee: c.Fee, Escrowed: escrowed}}
}

// stepTakeContract locks an open board entry and opens an active contract
// for the given heroes. No RNG.
func stepTakeContract(cfg Config, s *State, c TakeContract) []Event {
	b := s.Contracts.board(c.Contract)
	b.Status = BoardLocked

	var escrow Money
	if b.ClientPrepaid {
		escrow = b.Reward
	}

	id := allocActive(s)
	heroes := append([]HeroID(nil), c.Heroes...)
	s.Contracts.Active = append(s.Contracts.Active, ActiveContract{
		ID:        id,
		Contract:  c.Contract,
		Heroes:    heroes,
		Remaining: cfg.Balance.MissionDays,
		Status:    ActiveUnderway,
		Escrow:    escrow,
	})
	for _, hid := range c.Heroes {
		s.Heroes.hero(hid).Status = HeroOnMission
	}
	return []Event{ContractTaken{Contract: c.Contract, Active: id, Heroes: heroes}}
}

// stepCancelContract removes an open board entry and returns any escrowed
// prepayment to the client. No RNG.
func stepCancelContract(s *State, c CancelContract) []Event {
	b := *s.Contracts.board(c.Contract)
	if b.ClientPrepaid {
		s.Economy.Reserved = s.Economy.Reserved.Sub(b.Reward)
		s.Economy.Liquid = s.Economy.Liquid.Sub(b.Reward)
	}
	s.Contracts.removeBoard(c.Contract)
	return []Event{ContractCancelled{Contract: c.Contract}}
}

// stepUpdateTerms rewrites reward and difficulty of an open board entry.
// Escrow follows the reward when the client prepaid. No RNG.
func stepUpdateTerms(s *State, c UpdateTerms) []Event {
	b := s.Contracts.board(c.Contract)
	if b.ClientPrepaid && b.Reward != c.Reward {
		s.Economy.Reserved = s.Economy.Reserved.Sub(b.Reward)
		s.Economy.Liquid = s.Economy.Liquid.Sub(b.Reward)
		s.Economy.Liquid = s.Economy.Liquid.Add(c.Reward)
		s.Economy.Reserved = s.Economy.Reserved.Add(c.Reward)
	}
	b.Reward = c.Reward
	b.Difficulty = c.Difficulty
	return []Event{TermsUpdated{Contract: c.Contract, Reward: c.Reward, Difficulty: c.Difficulty}}
}
