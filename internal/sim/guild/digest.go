package guild

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// StateDigest hashes the canonical binary walk of a state. Collections are
// walked in id order; every field is written with a fixed width or a length
// prefix, so identical logical content always yields an identical digest.
func StateDigest(s State) string {
	h := sha256.New()
	var tmp [8]byte

	digestMeta(h, &tmp, s.Meta)
	digestGuild(h, &tmp, s.Guild)
	digestWriteI64(h, &tmp, int64(s.Region.Stability))
	digestEconomy(h, &tmp, s.Economy)
	digestContracts(h, &tmp, s.Contracts)
	digestHeroes(h, &tmp, s.Heroes)

	return hex.EncodeToString(h.Sum(nil))
}

// EventsDigest hashes an ordered event stream.
func EventsDigest(events []Event) string {
	h := sha256.New()
	var tmp [8]byte
	digestWriteU64(h, &tmp, uint64(len(events)))
	for _, ev := range events {
		digestWriteStr(h, &tmp, fmt.Sprintf("%#v", ev))
	}
	return hex.EncodeToString(h.Sum(nil))
}

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteStr(h hashWriter, tmp *[8]byte, s string) {
	digestWriteU64(h, tmp, uint64(len(s)))
	h.Write([]byte(s))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func digestMeta(h hashWriter, tmp *[8]byte, m Meta) {
	digestWriteI64(h, tmp, int64(m.Version))
	digestWriteI64(h, tmp, m.Seed)
	digestWriteI64(h, tmp, int64(m.Day))
	digestWriteU64(h, tmp, m.Revision)
	digestWriteI64(h, tmp, int64(m.NextContract))
	digestWriteI64(h, tmp, int64(m.NextHero))
	digestWriteI64(h, tmp, int64(m.NextActive))
	digestWriteI64(h, tmp, int64(m.Tax.DueDay))
	digestWriteI64(h, tmp, int64(m.Tax.AmountDue))
	digestWriteI64(h, tmp, int64(m.Tax.Penalty))
	digestWriteI64(h, tmp, int64(m.Tax.MissedCount))
}

func digestGuild(h hashWriter, tmp *[8]byte, g Guild) {
	digestWriteStr(h, tmp, string(g.Rank))
	digestWriteI64(h, tmp, int64(g.Reputation))
	digestWriteI64(h, tmp, int64(g.Completed))
	digestWriteI64(h, tmp, int64(g.NextRankAt))
	digestWriteStr(h, tmp, string(g.ProofPolicy))
}

func digestEconomy(h hashWriter, tmp *[8]byte, e Economy) {
	digestWriteI64(h, tmp, int64(e.Liquid))
	digestWriteI64(h, tmp, int64(e.Reserved))
	digestWriteI64(h, tmp, int64(e.Trophies))
}

func digestContracts(h hashWriter, tmp *[8]byte, c Contracts) {
	digestWriteU64(h, tmp, uint64(len(c.Inbox)))
	for _, d := range c.Inbox {
		digestWriteI64(h, tmp, int64(d.ID))
		digestWriteStr(h, tmp, d.Title)
		digestWriteStr(h, tmp, string(d.Rank))
		digestWriteI64(h, tmp, int64(d.Difficulty))
		digestWriteI64(h, tmp, int64(d.Reward))
		digestWriteStr(h, tmp, string(d.Salvage))
		h.Write([]byte{boolByte(d.ClientPrepaid)})
		digestWriteI64(h, tmp, int64(d.CreatedDay))
	}
	digestWriteU64(h, tmp, uint64(len(c.Board)))
	for _, b := range c.Board {
		digestWriteI64(h, tmp, int64(b.ID))
		digestWriteStr(h, tmp, b.Title)
		digestWriteStr(h, tmp, string(b.Rank))
		digestWriteI64(h, tmp, int64(b.Difficulty))
		digestWriteI64(h, tmp, int64(b.Reward))
		digestWriteStr(h, tmp, string(b.Salvage))
		h.Write([]byte{boolByte(b.ClientPrepaid)})
		digestWriteI64(h, tmp, int64(b.Fee))
		digestWriteStr(h, tmp, string(b.Status))
		digestWriteI64(h, tmp, int64(b.PostedDay))
	}
	digestWriteU64(h, tmp, uint64(len(c.Active)))
	for _, a := range c.Active {
		digestWriteI64(h, tmp, int64(a.ID))
		digestWriteI64(h, tmp, int64(a.Contract))
		digestWriteU64(h, tmp, uint64(len(a.Heroes)))
		for _, hid := range a.Heroes {
			digestWriteI64(h, tmp, int64(hid))
		}
		digestWriteI64(h, tmp, int64(a.Remaining))
		digestWriteStr(h, tmp, string(a.Status))
		digestWriteI64(h, tmp, int64(a.Escrow))
	}
	digestWriteU64(h, tmp, uint64(len(c.Returns)))
	for _, p := range c.Returns {
		digestWriteI64(h, tmp, int64(p.Active))
		digestWriteI64(h, tmp, int64(p.Contract))
		digestWriteStr(h, tmp, string(p.Outcome))
		digestWriteI64(h, tmp, int64(p.Trophies))
		h.Write([]byte{boolByte(p.ProofDamaged), boolByte(p.TheftSuspected), boolByte(p.NeedsClosure)})
		digestWriteI64(h, tmp, int64(p.ResolvedDay))
	}
}

func digestHeroes(h hashWriter, tmp *[8]byte, hs Heroes) {
	digestWriteU64(h, tmp, uint64(len(hs.Roster)))
	for _, hero := range hs.Roster {
		digestWriteI64(h, tmp, int64(hero.ID))
		digestWriteStr(h, tmp, hero.Name)
		digestWriteStr(h, tmp, string(hero.Rank))
		digestWriteI64(h, tmp, int64(hero.Might))
		digestWriteI64(h, tmp, int64(hero.Cunning))
		digestWriteStr(h, tmp, string(hero.Status))
		digestWriteI64(h, tmp, int64(hero.ArrivedDay))
	}
	digestWriteU64(h, tmp, uint64(len(hs.ArrivedToday)))
	for _, id := range hs.ArrivedToday {
		digestWriteI64(h, tmp, int64(id))
	}
}
