package guild

import (
	"fmt"
	"strings"
)

// Closed rejection reason taxonomy.
const (
	ErrNotFound     = "E_NOT_FOUND"
	ErrBadRequest   = "E_BAD_REQUEST"
	ErrInvalidState = "E_INVALID_STATE"
)

var knownCodes = map[string]struct{}{
	ErrNotFound:     {},
	ErrBadRequest:   {},
	ErrInvalidState: {},
}

func IsKnownCode(code string) bool {
	_, ok := knownCodes[code]
	return ok
}

// Rejection is the result of a failed admissibility check.
type Rejection struct {
	Code   string
	Detail string
}

func reject(code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// validate decides admissibility before any mutation. Validators only read
// state; they never draw from the RNG and have no side effects.
func validate(s State, cmd Command) *Rejection {
	switch c := cmd.(type) {
	case CreateDraft:
		return validateCreateDraft(c)
	case PostDraft:
		return validatePostDraft(s, c)
	case TakeContract:
		return validateTakeContract(s, c)
	case AdvanceDay:
		return nil
	case CloseReturn:
		return validateCloseReturn(s, c)
	case SellTrophies:
		return validateSellTrophies(s, c)
	case CancelContract:
		return validateBoardOpen(s, c.Contract)
	case UpdateTerms:
		return validateUpdateTerms(s, c)
	case PayTax:
		return validatePayTax(s)
	default:
		return reject(ErrBadRequest, "unknown command %T", cmd)
	}
}

func validateCreateDraft(c CreateDraft) *Rejection {
	if strings.TrimSpace(c.Title) == "" {
		return reject(ErrBadRequest, "title must not be blank")
	}
	if !c.Rank.Valid() {
		return reject(ErrBadRequest, "rank %q unknown", string(c.Rank))
	}
	if c.Difficulty < 0 || c.Difficulty > 100 {
		return reject(ErrBadRequest, "difficulty %d out of range 0..100", c.Difficulty)
	}
	if c.Reward < 0 {
		return reject(ErrBadRequest, "reward %d must be >= 0", c.Reward)
	}
	switch c.Salvage {
	case SalvageGuild, SalvageHero:
	default:
		return reject(ErrBadRequest, "salvage policy %q unknown", string(c.Salvage))
	}
	return nil
}

func validatePostDraft(s State, c PostDraft) *Rejection {
	if c.Fee < 0 {
		return reject(ErrBadRequest, "fee %d must be >= 0", c.Fee)
	}
	d := s.Contracts.draft(c.Contract)
	if d == nil {
		return reject(ErrNotFound, "draft %s not in inbox", c.Contract)
	}
	if s.Economy.Liquid.Sub(s.Economy.Reserved) < c.Fee {
		return reject(ErrInvalidState, "fee %s exceeds unreserved funds %s",
			c.Fee, s.Economy.Liquid.Sub(s.Economy.Reserved))
	}
	return nil
}

func validateTakeContract(s State, c TakeContract) *Rejection {
	b := s.Contracts.board(c.Contract)
	if b == nil {
		return reject(ErrNotFound, "contract %s not on board", c.Contract)
	}
	if b.Status != BoardOpen {
		return reject(ErrInvalidState, "contract %s is %s, not OPEN", c.Contract, b.Status)
	}
	if len(c.Heroes) == 0 {
		return reject(ErrBadRequest, "no heroes given for contract %s", c.Contract)
	}
	seen := map[HeroID]bool{}
	for _, id := range c.Heroes {
		if seen[id] {
			return reject(ErrBadRequest, "hero %s listed twice", id)
		}
		seen[id] = true
		h := s.Heroes.hero(id)
		if h == nil {
			return reject(ErrNotFound, "hero %s not in roster", id)
		}
		if h.Status != HeroAvailable {
			return reject(ErrInvalidState, "hero %s is %s, not AVAILABLE", id, h.Status)
		}
	}
	return nil
}

func validateCloseReturn(s State, c CloseReturn) *Rejection {
	p := s.Contracts.packet(c.Active)
	if p == nil {
		return reject(ErrNotFound, "no return packet for %s", c.Active)
	}
	if !p.NeedsClosure {
		return reject(ErrInvalidState, "return %s does not require closure", c.Active)
	}
	switch c.Decision {
	case DecisionAccept, DecisionReject:
	case DecisionNone:
		if s.Guild.ProofPolicy == PolicyStrict {
			return reject(ErrBadRequest,
				"strict proof policy: return %s requires an explicit ACCEPT or REJECT", c.Active)
		}
	default:
		return reject(ErrBadRequest, "decision %q unknown", string(c.Decision))
	}
	return nil
}

func validateSellTrophies(s State, c SellTrophies) *Rejection {
	if c.Count <= 0 {
		return reject(ErrBadRequest, "count %d must be > 0", c.Count)
	}
	if s.Economy.Trophies < c.Count {
		return reject(ErrInvalidState, "only %d trophies in stock, wanted %d",
			s.Economy.Trophies, c.Count)
	}
	return nil
}

func validateBoardOpen(s State, id ContractID) *Rejection {
	b := s.Contracts.board(id)
	if b == nil {
		return reject(ErrNotFound, "contract %s not on board", id)
	}
	if b.Status != BoardOpen {
		return reject(ErrInvalidState, "contract %s is %s, not OPEN", id, b.Status)
	}
	return nil
}

func validateUpdateTerms(s State, c UpdateTerms) *Rejection {
	if c.Reward < 0 {
		return reject(ErrBadRequest, "reward %d must be >= 0", c.Reward)
	}
	if c.Difficulty < 0 || c.Difficulty > 100 {
		return reject(ErrBadRequest, "difficulty %d out of range 0..100", c.Difficulty)
	}
	return validateBoardOpen(s, c.Contract)
}

func validatePayTax(s State) *Rejection {
	due := s.Meta.Tax.AmountDue.Add(s.Meta.Tax.Penalty)
	if due == 0 {
		return reject(ErrInvalidState, "no tax due")
	}
	if s.Economy.Liquid.Sub(s.Economy.Reserved) < due {
		return reject(ErrInvalidState, "tax %s exceeds unreserved funds %s",
			due, s.Economy.Liquid.Sub(s.Economy.Reserved))
	}
	return nil
}
