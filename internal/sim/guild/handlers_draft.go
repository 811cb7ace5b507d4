package guild

// stepCreateDraft inserts a player-authored draft into the inbox. No RNG.
func stepCreateDraft(cfg Config, s *State, c CreateDraft) []Event {
	id := allocContract(s)
	s.Contracts.Inbox = append(s.Contracts.Inbox, Draft{
		ID:            id,
		Title:         c.Title,
		Rank:          c.Rank,
		Difficulty:    c.Difficulty,
		Reward:        c.Reward,
		Salvage:       c.Salvage,
		ClientPrepaid: c.ClientPrepaid,
		CreatedDay:    s.Meta.Day,
	})
	return []Event{DraftCreated{
		Contract:   id,
		Title:      c.Title,
		Rank:       c.Rank,
		Difficulty: c.Difficulty,
		Reward:     c.Reward,
		Salvage:    c.Salvage,
	}}
}
