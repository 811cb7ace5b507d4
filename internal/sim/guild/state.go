package guild

// State is the full world snapshot. Transitions never mutate a State in
// place: Step clones, mutates the clone, and returns it. Collections are
// id-sorted slices so encoding and digests need no extra ordering pass.
type State struct {
	Meta    Meta
	Guild   Guild
	Region  Region
	Economy Economy

	Contracts Contracts
	Heroes    Heroes
}

type Meta struct {
	Version  int
	Seed     int64
	Day      int
	Revision uint64

	NextContract ContractID
	NextHero     HeroID
	NextActive   ActiveID

	Tax TaxSchedule
}

type TaxSchedule struct {
	DueDay      int
	AmountDue   Money
	Penalty     Money
	MissedCount int
}

// ProofPolicy governs whether ambiguous mission outcomes require an explicit
// accept/reject decision before closure.
type ProofPolicy string

const (
	PolicyLenient ProofPolicy = "LENIENT"
	PolicyStrict  ProofPolicy = "STRICT"
)

type Guild struct {
	Rank        Rank
	Reputation  int
	Completed   int
	NextRankAt  int
	ProofPolicy ProofPolicy
}

type Region struct {
	Stability int // 0..100
}

type Economy struct {
	Liquid   Money
	Reserved Money // escrowed portion of Liquid; Reserved <= Liquid always
	Trophies int
}

// SalvagePolicy decides who keeps trophies recovered on a mission.
type SalvagePolicy string

const (
	SalvageGuild SalvagePolicy = "GUILD"
	SalvageHero  SalvagePolicy = "HERO"
)

type Draft struct {
	ID            ContractID
	Title         string
	Rank          Rank
	Difficulty    int // 0..100
	Reward        Money
	Salvage       SalvagePolicy
	ClientPrepaid bool
	CreatedDay    int
}

type BoardStatus string

const (
	BoardOpen      BoardStatus = "OPEN"
	BoardLocked    BoardStatus = "LOCKED"
	BoardCompleted BoardStatus = "COMPLETED"
)

type BoardContract struct {
	ID            ContractID
	Title         string
	Rank          Rank
	Difficulty    int
	Reward        Money
	Salvage       SalvagePolicy
	ClientPrepaid bool
	Fee           Money
	Status        BoardStatus
	PostedDay     int
}

type ActiveStatus string

const (
	ActiveUnderway       ActiveStatus = "UNDERWAY"
	ActiveAwaitingReturn ActiveStatus = "AWAITING_RETURN"
)

type ActiveContract struct {
	ID       ActiveID
	Contract ContractID
	Heroes   []HeroID
	// Remaining is whole days until resolution; never negative.
	Remaining int
	Status    ActiveStatus
	Escrow    Money
}

// Outcome of a resolved mission.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomePartial Outcome = "PARTIAL"
	OutcomeDead    Outcome = "DEAD"
	OutcomeMissing Outcome = "MISSING"
)

func (o Outcome) Failed() bool { return o == OutcomeDead || o == OutcomeMissing }

// ReturnPacket is the resolved result of an active contract, awaiting (or
// not requiring) explicit player closure.
type ReturnPacket struct {
	Active         ActiveID
	Contract       ContractID
	Outcome        Outcome
	Trophies       int
	ProofDamaged   bool
	TheftSuspected bool
	NeedsClosure   bool
	ResolvedDay    int
}

type Contracts struct {
	Inbox   []Draft
	Board   []BoardContract
	Active  []ActiveContract
	Returns []ReturnPacket
}

type HeroStatus string

const (
	HeroAvailable HeroStatus = "AVAILABLE"
	HeroOnMission HeroStatus = "ON_MISSION"
	HeroBanned    HeroStatus = "BANNED"
	HeroDead      HeroStatus = "DEAD"
	HeroMissing   HeroStatus = "MISSING"
)

type Hero struct {
	ID         HeroID
	Name       string
	Rank       Rank
	Might      int
	Cunning    int
	Status     HeroStatus
	ArrivedDay int
}

type Heroes struct {
	Roster       []Hero
	ArrivedToday []HeroID
}

// Clone deep-copies the state so a handler can rebuild sub-states by value.
func (s State) Clone() State {
	out := s
	out.Contracts.Inbox = append([]Draft(nil), s.Contracts.Inbox...)
	out.Contracts.Board = append([]BoardContract(nil), s.Contracts.Board...)
	out.Contracts.Active = make([]ActiveContract, len(s.Contracts.Active))
	for i, a := range s.Contracts.Active {
		a.Heroes = append([]HeroID(nil), a.Heroes...)
		out.Contracts.Active[i] = a
	}
	out.Contracts.Returns = append([]ReturnPacket(nil), s.Contracts.Returns...)
	out.Heroes.Roster = append([]Hero(nil), s.Heroes.Roster...)
	out.Heroes.ArrivedToday = append([]HeroID(nil), s.Heroes.ArrivedToday...)
	return out
}

// Lookup helpers. All return nil when absent; callers treat nil as
// entity-not-found.

func (c Contracts) draft(id ContractID) *Draft {
	for i := range c.Inbox {
		if c.Inbox[i].ID == id {
			return &c.Inbox[i]
		}
	}
	return nil
}

func (c Contracts) board(id ContractID) *BoardContract {
	for i := range c.Board {
		if c.Board[i].ID == id {
			return &c.Board[i]
		}
	}
	return nil
}

func (c Contracts) active(id ActiveID) *ActiveContract {
	for i := range c.Active {
		if c.Active[i].ID == id {
			return &c.Active[i]
		}
	}
	return nil
}

func (c Contracts) activeFor(contract ContractID) *ActiveContract {
	for i := range c.Active {
		if c.Active[i].Contract == contract {
			return &c.Active[i]
		}
	}
	return nil
}

func (c Contracts) packet(id ActiveID) *ReturnPacket {
	for i := range c.Returns {
		if c.Returns[i].Active == id {
			return &c.Returns[i]
		}
	}
	return nil
}

func (h Heroes) hero(id HeroID) *Hero {
	for i := range h.Roster {
		if h.Roster[i].ID == id {
			return &h.Roster[i]
		}
	}
	return nil
}

func (c *Contracts) removeDraft(id ContractID) {
	for i := range c.Inbox {
		if c.Inbox[i].ID == id {
			c.Inbox = append(c.Inbox[:i], c.Inbox[i+1:]...)
			return
		}
	}
}

func (c *Contracts) removeBoard(id ContractID) {
	for i := range c.Board {
		if c.Board[i].ID == id {
			c.Board = append(c.Board[:i], c.Board[i+1:]...)
			return
		}
	}
}

func (c *Contracts) removeActive(id ActiveID) {
	for i := range c.Active {
		if c.Active[i].ID == id {
			c.Active = append(c.Active[:i], c.Active[i+1:]...)
			return
		}
	}
}

func (c *Contracts) removePacket(id ActiveID) {
	for i := range c.Returns {
		if c.Returns[i].Active == id {
			c.Returns = append(c.Returns[:i], c.Returns[i+1:]...)
			return
		}
	}
}
