package protocol

import (
	"encoding/json"
	"fmt"

	"guildhall.quest/internal/sim/guild"
)

// CommandMsg is the single wire envelope for every command variant; fields
// not used by a variant are omitted.
type CommandMsg struct {
	Type string `json:"type"`
	Cmd  uint64 `json:"cmd"`

	Title         string `json:"title,omitempty"`
	Rank          string `json:"rank,omitempty"`
	Difficulty    int    `json:"difficulty,omitempty"`
	Reward        int64  `json:"reward,omitempty"`
	Salvage       string `json:"salvage,omitempty"`
	ClientPrepaid bool   `json:"client_prepaid,omitempty"`

	Contract int64   `json:"contract,omitempty"`
	Fee      int64   `json:"fee,omitempty"`
	Heroes   []int64 `json:"heroes,omitempty"`
	Active   int64   `json:"active,omitempty"`
	Decision string  `json:"decision,omitempty"`
	Count    int     `json:"count,omitempty"`
}

// DecodeCommand turns a wire envelope into a typed engine command. Range
// validation stays in the engine; decoding only rejects unknown types.
func DecodeCommand(b []byte) (guild.Command, error) {
	var m CommandMsg
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	hdr := guild.CmdHeader{Cmd: m.Cmd}
	switch m.Type {
	case TypeCreateDraft:
		return guild.CreateDraft{
			CmdHeader:     hdr,
			Title:         m.Title,
			Rank:          guild.Rank(m.Rank),
			Difficulty:    m.Difficulty,
			Reward:        guild.Money(m.Reward),
			Salvage:       guild.SalvagePolicy(m.Salvage),
			ClientPrepaid: m.ClientPrepaid,
		}, nil
	case TypePostDraft:
		return guild.PostDraft{
			CmdHeader: hdr,
			Contract:  guild.ContractID(m.Contract),
			Fee:       guild.Money(m.Fee),
		}, nil
	case TypeTakeContract:
		heroes := make([]guild.HeroID, len(m.Heroes))
		for i, id := range m.Heroes {
			heroes[i] = guild.HeroID(id)
		}
		return guild.TakeContract{
			CmdHeader: hdr,
			Contract:  guild.ContractID(m.Contract),
			Heroes:    heroes,
		}, nil
	case TypeAdvanceDay:
		return guild.AdvanceDay{CmdHeader: hdr}, nil
	case TypeCloseReturn:
		return guild.CloseReturn{
			CmdHeader: hdr,
			Active:    guild.ActiveID(m.Active),
			Decision:  guild.Decision(m.Decision),
		}, nil
	case TypeSellTrophies:
		return guild.SellTrophies{CmdHeader: hdr, Count: m.Count}, nil
	case TypeCancelContract:
		return guild.CancelContract{CmdHeader: hdr, Contract: guild.ContractID(m.Contract)}, nil
	case TypeUpdateTerms:
		return guild.UpdateTerms{
			CmdHeader:  hdr,
			Contract:   guild.ContractID(m.Contract),
			Reward:     guild.Money(m.Reward),
			Difficulty: m.Difficulty,
		}, nil
	case TypePayTax:
		return guild.PayTax{CmdHeader: hdr}, nil
	default:
		return nil, fmt.Errorf("decode command: unknown type %q", m.Type)
	}
}

// EncodeCommand is the inverse of DecodeCommand; replay logs store this form.
func EncodeCommand(cmd guild.Command) ([]byte, error) {
	var m CommandMsg
	m.Cmd = cmd.CmdID()
	switch c := cmd.(type) {
	case guild.CreateDraft:
		m.Type = TypeCreateDraft
		m.Title = c.Title
		m.Rank = string(c.Rank)
		m.Difficulty = c.Difficulty
		m.Reward = int64(c.Reward)
		m.Salvage = string(c.Salvage)
		m.ClientPrepaid = c.ClientPrepaid
	case guild.PostDraft:
		m.Type = TypePostDraft
		m.Contract = int64(c.Contract)
		m.Fee = int64(c.Fee)
	case guild.TakeContract:
		m.Type = TypeTakeContract
		m.Contract = int64(c.Contract)
		for _, id := range c.Heroes {
			m.Heroes = append(m.Heroes, int64(id))
		}
	case guild.AdvanceDay:
		m.Type = TypeAdvanceDay
	case guild.CloseReturn:
		m.Type = TypeCloseReturn
		m.Active = int64(c.Active)
		m.Decision = string(c.Decision)
	case guild.SellTrophies:
		m.Type = TypeSellTrophies
		m.Count = c.Count
	case guild.CancelContract:
		m.Type = TypeCancelContract
		m.Contract = int64(c.Contract)
	case guild.UpdateTerms:
		m.Type = TypeUpdateTerms
		m.Contract = int64(c.Contract)
		m.Reward = int64(c.Reward)
		m.Difficulty = c.Difficulty
	case guild.PayTax:
		m.Type = TypePayTax
	default:
		return nil, fmt.Errorf("encode command: unknown variant %T", cmd)
	}
	return json.Marshal(m)
}

// EventMsg is the wire form of an observed fact.
type EventMsg struct {
	Type string `json:"type"`

	Cmd    uint64 `json:"cmd,omitempty"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`

	Contract   int64   `json:"contract,omitempty"`
	Active     int64   `json:"active,omitempty"`
	Hero       int64   `json:"hero,omitempty"`
	Heroes     []int64 `json:"heroes,omitempty"`
	Title      string  `json:"title,omitempty"`
	Name       string  `json:"name,omitempty"`
	Rank       string  `json:"rank,omitempty"`
	Difficulty int     `json:"difficulty,omitempty"`
	Reward     int64   `json:"reward,omitempty"`
	Salvage    string  `json:"salvage,omitempty"`
	Fee        int64   `json:"fee,omitempty"`
	Escrowed   int64   `json:"escrowed,omitempty"`
	Day        int     `json:"day,omitempty"`

	Outcome      string `json:"outcome,omitempty"`
	Trophies     int    `json:"trophies,omitempty"`
	NeedsClosure bool   `json:"needs_closure,omitempty"`

	Amount int64 `json:"amount,omitempty"`
	Paid   int64 `json:"paid,omitempty"`
	PaidOK bool  `json:"paid_ok,omitempty"`
	Missed int   `json:"missed,omitempty"`

	Decision string  `json:"decision,omitempty"`
	Denied   bool    `json:"denied,omitempty"`
	Released int64   `json:"released,omitempty"`
	Banned   []int64 `json:"banned,omitempty"`

	Count    int   `json:"count,omitempty"`
	Proceeds int64 `json:"proceeds,omitempty"`
}

// EncodeEvent flattens a typed event into its wire record.
func EncodeEvent(ev guild.Event) ([]byte, error) {
	var m EventMsg
	switch e := ev.(type) {
	case guild.DraftCreated:
		m = EventMsg{Type: TypeDraftCreated, Contract: int64(e.Contract), Title: e.Title,
			Rank: string(e.Rank), Difficulty: e.Difficulty, Reward: int64(e.Reward), Salvage: string(e.Salvage)}
	case guild.ContractPosted:
		m = EventMsg{Type: TypeContractPosted, Contract: int64(e.Contract), Fee: int64(e.Fee), Escrowed: int64(e.Escrowed)}
	case guild.ContractTaken:
		m = EventMsg{Type: TypeContractTaken, Contract: int64(e.Contract), Active: int64(e.Active)}
		for _, id := range e.Heroes {
			m.Heroes = append(m.Heroes, int64(id))
		}
	case guild.DayAdvanced:
		m = EventMsg{Type: TypeDayAdvanced, Day: e.Day}
	case guild.HeroArrived:
		m = EventMsg{Type: TypeHeroArrived, Hero: int64(e.Hero), Name: e.Name, Rank: string(e.Rank)}
	case guild.ContractResolved:
		m = EventMsg{Type: TypeContractResolved, Active: int64(e.Active), Contract: int64(e.Contract),
			Outcome: string(e.Outcome), Trophies: e.Trophies, NeedsClosure: e.NeedsClosure}
	case guild.DraftExpired:
		m = EventMsg{Type: TypeDraftExpired, Contract: int64(e.Contract)}
	case guild.TaxAssessed:
		m = EventMsg{Type: TypeTaxAssessed, Amount: int64(e.Amount), PaidOK: e.Paid, Missed: e.Missed}
	case guild.TaxPaid:
		m = EventMsg{Type: TypeTaxPaid, Amount: int64(e.Amount)}
	case guild.GuildClosureWarning:
		m = EventMsg{Type: TypeGuildClosureWarning, Missed: e.Missed}
	case guild.ReturnClosed:
		m = EventMsg{Type: TypeReturnClosed, Active: int64(e.Active), Contract: int64(e.Contract),
			Decision: string(e.Decision), Denied: e.Denied, Paid: int64(e.Paid),
			Trophies: e.Trophies, Released: int64(e.Released)}
		for _, id := range e.Banned {
			m.Banned = append(m.Banned, int64(id))
		}
	case guild.TrophiesSold:
		m = EventMsg{Type: TypeTrophiesSold, Count: e.Count, Proceeds: int64(e.Proceeds)}
	case guild.ContractCancelled:
		m = EventMsg{Type: TypeContractCancelled, Contract: int64(e.Contract)}
	case guild.TermsUpdated:
		m = EventMsg{Type: TypeTermsUpdated, Contract: int64(e.Contract), Reward: int64(e.Reward), Difficulty: e.Difficulty}
	case guild.RankPromoted:
		m = EventMsg{Type: TypeRankPromoted, Rank: string(e.Rank)}
	case guild.Rejected:
		m = EventMsg{Type: TypeRejected, Cmd: e.Cmd, Code: e.Code, Detail: e.Detail}
	default:
		return nil, fmt.Errorf("encode event: unknown variant %T", ev)
	}
	return json.Marshal(m)
}

// EncodeEvents encodes an ordered event list as a JSON array.
func EncodeEvents(events []guild.Event) ([]byte, error) {
	parts := make([]json.RawMessage, len(events))
	for i, ev := range events {
		b, err := EncodeEvent(ev)
		if err != nil {
			return nil, err
		}
		parts[i] = b
	}
	return json.Marshal(parts)
}
