// Package save implements the canonical, versioned text encoding of a world
// state. The encoding is deterministic: fixed field order, no
// platform-dependent formatting, explicit defaults for fields absent in old
// versions. The digest of a state is the sha256 of its canonical bytes.
package save

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"guildhall.quest/internal/sim/guild"
)

type Header struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`
	Day     int   `json:"day"`
}

// Save is the wire form of a full state snapshot, current version 3.
// Version 2 saves lack proof_policy (defaults LENIENT) and the tax penalty
// fields (default 0); both defaults are valid states for old data. Saves
// written before the draw counter was recorded lack rng_draws (defaults 0,
// which is only correct for genesis snapshots).
type Save struct {
	Header Header `json:"header"`

	Revision     uint64 `json:"revision"`
	RngDraws     uint64 `json:"rng_draws,omitempty"`
	NextContract int64  `json:"next_contract"`
	NextHero     int64  `json:"next_hero"`
	NextActive   int64  `json:"next_active"`

	TaxDueDay    int   `json:"tax_due_day"`
	TaxAmountDue int64 `json:"tax_amount_due"`
	TaxPenalty   int64 `json:"tax_penalty,omitempty"`
	TaxMissed    int   `json:"tax_missed,omitempty"`

	Rank        string `json:"rank"`
	Reputation  int    `json:"reputation"`
	Completed   int    `json:"completed"`
	NextRankAt  int    `json:"next_rank_at"`
	ProofPolicy string `json:"proof_policy,omitempty"`

	Stability int `json:"stability"`

	Liquid   int64 `json:"liquid"`
	Reserved int64 `json:"reserved"`
	Trophies int   `json:"trophies"`

	Inbox   []DraftRow  `json:"inbox"`
	Board   []BoardRow  `json:"board"`
	Active  []ActiveRow `json:"active"`
	Returns []ReturnRow `json:"returns"`

	Roster       []HeroRow `json:"roster"`
	ArrivedToday []int64   `json:"arrived_today,omitempty"`
}

type DraftRow struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Rank          string `json:"rank"`
	Difficulty    int    `json:"difficulty"`
	Reward        int64  `json:"reward"`
	Salvage       string `json:"salvage"`
	ClientPrepaid bool   `json:"client_prepaid,omitempty"`
	CreatedDay    int    `json:"created_day"`
}

type BoardRow struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Rank          string `json:"rank"`
	Difficulty    int    `json:"difficulty"`
	Reward        int64  `json:"reward"`
	Salvage       string `json:"salvage"`
	ClientPrepaid bool   `json:"client_prepaid,omitempty"`
	Fee           int64  `json:"fee"`
	Status        string `json:"status"`
	PostedDay     int    `json:"posted_day"`
}

type ActiveRow struct {
	ID        int64   `json:"id"`
	Contract  int64   `json:"contract"`
	Heroes    []int64 `json:"heroes"`
	Remaining int     `json:"remaining"`
	Status    string  `json:"status"`
	Escrow    int64   `json:"escrow,omitempty"`
}

type ReturnRow struct {
	Active         int64  `json:"active"`
	Contract       int64  `json:"contract"`
	Outcome        string `json:"outcome"`
	Trophies       int    `json:"trophies,omitempty"`
	ProofDamaged   bool   `json:"proof_damaged,omitempty"`
	TheftSuspected bool   `json:"theft_suspected,omitempty"`
	NeedsClosure   bool   `json:"needs_closure,omitempty"`
	ResolvedDay    int    `json:"resolved_day"`
}

type HeroRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Rank       string `json:"rank"`
	Might      int    `json:"might"`
	Cunning    int    `json:"cunning"`
	Status     string `json:"status"`
	ArrivedDay int    `json:"arrived_day"`
}

// FromState captures a state and the RNG draw position into its save form.
// The draw position makes a mid-session save resumable: replaying the log
// tail needs the generator exactly where the save left it.
func FromState(s guild.State, draws uint64) Save {
	out := Save{
		Header: Header{Version: guild.SaveVersion, Seed: s.Meta.Seed, Day: s.Meta.Day},

		Revision:     s.Meta.Revision,
		RngDraws:     draws,
		NextContract: int64(s.Meta.NextContract),
		NextHero:     int64(s.Meta.NextHero),
		NextActive:   int64(s.Meta.NextActive),

		TaxDueDay:    s.Meta.Tax.DueDay,
		TaxAmountDue: int64(s.Meta.Tax.AmountDue),
		TaxPenalty:   int64(s.Meta.Tax.Penalty),
		TaxMissed:    s.Meta.Tax.MissedCount,

		Rank:        string(s.Guild.Rank),
		Reputation:  s.Guild.Reputation,
		Completed:   s.Guild.Completed,
		NextRankAt:  s.Guild.NextRankAt,
		ProofPolicy: string(s.Guild.ProofPolicy),

		Stability: s.Region.Stability,

		Liquid:   int64(s.Economy.Liquid),
		Reserved: int64(s.Economy.Reserved),
		Trophies: s.Economy.Trophies,

		Inbox:   []DraftRow{},
		Board:   []BoardRow{},
		Active:  []ActiveRow{},
		Returns: []ReturnRow{},
		Roster:  []HeroRow{},
	}
	for _, d := range s.Contracts.Inbox {
		out.Inbox = append(out.Inbox, DraftRow{
			ID: int64(d.ID), Title: d.Title, Rank: string(d.Rank), Difficulty: d.Difficulty,
			Reward: int64(d.Reward), Salvage: string(d.Salvage), ClientPrepaid: d.ClientPrepaid,
			CreatedDay: d.CreatedDay,
		})
	}
	for _, b := range s.Contracts.Board {
		out.Board = append(out.Board, BoardRow{
			ID: int64(b.ID), Title: b.Title, Rank: string(b.Rank), Difficulty: b.Difficulty,
			Reward: int64(b.Reward), Salvage: string(b.Salvage), ClientPrepaid: b.ClientPrepaid,
			Fee: int64(b.Fee), Status: string(b.Status), PostedDay: b.PostedDay,
		})
	}
	for _, a := range s.Contracts.Active {
		row := ActiveRow{
			ID: int64(a.ID), Contract: int64(a.Contract), Heroes: []int64{},
			Remaining: a.Remaining, Status: string(a.Status), Escrow: int64(a.Escrow),
		}
		for _, h := range a.Heroes {
			row.Heroes = append(row.Heroes, int64(h))
		}
		out.Active = append(out.Active, row)
	}
	for _, p := range s.Contracts.Returns {
		out.Returns = append(out.Returns, ReturnRow{
			Active: int64(p.Active), Contract: int64(p.Contract), Outcome: string(p.Outcome),
			Trophies: p.Trophies, ProofDamaged: p.ProofDamaged, TheftSuspected: p.TheftSuspected,
			NeedsClosure: p.NeedsClosure, ResolvedDay: p.ResolvedDay,
		})
	}
	for _, h := range s.Heroes.Roster {
		out.Roster = append(out.Roster, HeroRow{
			ID: int64(h.ID), Name: h.Name, Rank: string(h.Rank), Might: h.Might,
			Cunning: h.Cunning, Status: string(h.Status), ArrivedDay: h.ArrivedDay,
		})
	}
	for _, id := range s.Heroes.ArrivedToday {
		out.ArrivedToday = append(out.ArrivedToday, int64(id))
	}
	return out
}

// ToState restores a state from its save form, applying version defaults.
func (sv Save) ToState() guild.State {
	st := guild.State{
		Meta: guild.Meta{
			Version:      guild.SaveVersion,
			Seed:         sv.Header.Seed,
			Day:          sv.Header.Day,
			Revision:     sv.Revision,
			NextContract: guild.ContractID(sv.NextContract),
			NextHero:     guild.HeroID(sv.NextHero),
			NextActive:   guild.ActiveID(sv.NextActive),
			Tax: guild.TaxSchedule{
				DueDay:      sv.TaxDueDay,
				AmountDue:   guild.Money(sv.TaxAmountDue),
				Penalty:     guild.Money(sv.TaxPenalty),
				MissedCount: sv.TaxMissed,
			},
		},
		Guild: guild.Guild{
			Rank:        guild.Rank(sv.Rank),
			Reputation:  sv.Reputation,
			Completed:   sv.Completed,
			NextRankAt:  sv.NextRankAt,
			ProofPolicy: guild.ProofPolicy(sv.ProofPolicy),
		},
		Region: guild.Region{Stability: sv.Stability},
		Economy: guild.Economy{
			Liquid:   guild.Money(sv.Liquid),
			Reserved: guild.Money(sv.Reserved),
			Trophies: sv.Trophies,
		},
	}
	if st.Guild.ProofPolicy == "" {
		st.Guild.ProofPolicy = guild.PolicyLenient
	}
	for _, d := range sv.Inbox {
		st.Contracts.Inbox = append(st.Contracts.Inbox, guild.Draft{
			ID: guild.ContractID(d.ID), Title: d.Title, Rank: guild.Rank(d.Rank),
			Difficulty: d.Difficulty, Reward: guild.Money(d.Reward),
			Salvage: guild.SalvagePolicy(d.Salvage), ClientPrepaid: d.ClientPrepaid,
			CreatedDay: d.CreatedDay,
		})
	}
	for _, b := range sv.Board {
		st.Contracts.Board = append(st.Contracts.Board, guild.BoardContract{
			ID: guild.ContractID(b.ID), Title: b.Title, Rank: guild.Rank(b.Rank),
			Difficulty: b.Difficulty, Reward: guild.Money(b.Reward),
			Salvage: guild.SalvagePolicy(b.Salvage), ClientPrepaid: b.ClientPrepaid,
			Fee: guild.Money(b.Fee), Status: guild.BoardStatus(b.Status), PostedDay: b.PostedDay,
		})
	}
	for _, a := range sv.Active {
		row := guild.ActiveContract{
			ID: guild.ActiveID(a.ID), Contract: guild.ContractID(a.Contract),
			Remaining: a.Remaining, Status: guild.ActiveStatus(a.Status), Escrow: guild.Money(a.Escrow),
		}
		for _, h := range a.Heroes {
			row.Heroes = append(row.Heroes, guild.HeroID(h))
		}
		st.Contracts.Active = append(st.Contracts.Active, row)
	}
	for _, p := range sv.Returns {
		st.Contracts.Returns = append(st.Contracts.Returns, guild.ReturnPacket{
			Active: guild.ActiveID(p.Active), Contract: guild.ContractID(p.Contract),
			Outcome: guild.Outcome(p.Outcome), Trophies: p.Trophies,
			ProofDamaged: p.ProofDamaged, TheftSuspected: p.TheftSuspected,
			NeedsClosure: p.NeedsClosure, ResolvedDay: p.ResolvedDay,
		})
	}
	for _, h := range sv.Roster {
		st.Heroes.Roster = append(st.Heroes.Roster, guild.Hero{
			ID: guild.HeroID(h.ID), Name: h.Name, Rank: guild.Rank(h.Rank),
			Might: h.Might, Cunning: h.Cunning, Status: guild.HeroStatus(h.Status),
			ArrivedDay: h.ArrivedDay,
		})
	}
	for _, id := range sv.ArrivedToday {
		st.Heroes.ArrivedToday = append(st.Heroes.ArrivedToday, guild.HeroID(id))
	}
	return st
}

// Encode produces the canonical bytes for a state at a draw position.
func Encode(s guild.State, draws uint64) ([]byte, error) {
	return json.Marshal(FromState(s, draws))
}

// Decode validates the save version and restores a state plus the recorded
// RNG draw position. An out-of-range version fails fast naming the seen and
// supported versions.
func Decode(b []byte) (guild.State, uint64, error) {
	var hdr struct {
		Header Header `json:"header"`
	}
	if err := json.Unmarshal(b, &hdr); err != nil {
		return guild.State{}, 0, fmt.Errorf("save: decode header: %w", err)
	}
	v := hdr.Header.Version
	if v < guild.SaveVersionMin || v > guild.SaveVersion {
		return guild.State{}, 0, fmt.Errorf("save: version %d unsupported (supported %d..%d)",
			v, guild.SaveVersionMin, guild.SaveVersion)
	}
	var sv Save
	if err := json.Unmarshal(b, &sv); err != nil {
		return guild.State{}, 0, fmt.Errorf("save: decode body: %w", err)
	}
	return sv.ToState(), sv.RngDraws, nil
}

// Digest is the sha256 of the canonical encoding.
func Digest(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
