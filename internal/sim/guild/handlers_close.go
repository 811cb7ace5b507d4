package guild

// stepCloseReturn terminates a return packet requiring explicit closure.
// Neither branch draws from the RNG. Reject always succeeds and performs no
// settlement; this guarantees the strict proof policy can never deadlock a
// pending return.
func stepCloseReturn(cfg Config, s *State, c CloseReturn) []Event {
	pkt := *s.Contracts.packet(c.Active)
	decision := c.Decision
	if decision == DecisionNone {
		// Lenient policy only; strict rejects the omission in validation.
		decision = DecisionAccept
	}
	return settleReturn(cfg, s, pkt, decision)
}

// settleReturn closes out a resolved mission: the active contract and packet
// are removed, surviving heroes return to the roster, and escrow is released.
// Accept additionally applies the legacy settlement (client fee if unpaid,
// trophies per salvage policy, completion counters) unless denied by the
// proof policy.
func settleReturn(cfg Config, s *State, pkt ReturnPacket, decision Decision) []Event {
	b := cfg.Balance
	a := *s.Contracts.active(pkt.Active)
	board := *s.Contracts.board(pkt.Contract)

	released := a.Escrow
	s.Economy.Reserved = s.Economy.Reserved.Sub(released)

	var paid Money
	var trophies int
	denied := false
	var events []Event

	if decision == DecisionAccept {
		denied = pkt.ProofDamaged || pkt.TheftSuspected
		if !denied {
			if !board.ClientPrepaid {
				paid = board.Reward
				s.Economy.Liquid = s.Economy.Liquid.Add(paid)
			}
			if board.Salvage == SalvageGuild {
				trophies = pkt.Trophies
				s.Economy.Trophies += trophies
			}
			s.Guild.Completed++
			if s.Guild.Completed >= s.Guild.NextRankAt && s.Guild.Rank != s.Guild.Rank.Next() {
				s.Guild.Rank = s.Guild.Rank.Next()
				s.Guild.NextRankAt += b.RankThresholdUp
				events = append(events, RankPromoted{Rank: s.Guild.Rank})
			}
		}
	}

	// A rejected theft-suspected return bans the party; every other closure
	// returns surviving members to the roster.
	ban := decision == DecisionReject && pkt.TheftSuspected
	var banned []HeroID
	for _, hid := range a.Heroes {
		h := s.Heroes.hero(hid)
		if h == nil || h.Status != HeroOnMission {
			continue
		}
		if ban {
			h.Status = HeroBanned
			banned = append(banned, hid)
		} else {
			h.Status = HeroAvailable
		}
	}

	s.Contracts.removeActive(pkt.Active)
	s.Contracts.removePacket(pkt.Active)

	closed := ReturnClosed{
		Active:   pkt.Active,
		Contract: pkt.Contract,
		Decision: decision,
		Denied:   denied,
		Paid:     paid,
		Trophies: trophies,
		Released: released,
		Banned:   banned,
	}
	// RankPromoted, when present, follows the closure that earned it.
	return append([]Event{closed}, events...)
}
