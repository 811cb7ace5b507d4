package guild

// Event is the closed set of observable facts. Events are flat records and
// the only channel by which external code observes state changes.
type Event interface {
	isEvent()
}

type DraftCreated struct {
	Contract   ContractID
	Title      string
	Rank       Rank
	Difficulty int
	Reward     Money
	Salvage    SalvagePolicy
}

type ContractPosted struct {
	Contract ContractID
	Fee      Money
	Escrowed Money
}

type ContractTaken struct {
	Contract ContractID
	Active   ActiveID
	Heroes   []HeroID
}

type DayAdvanced struct {
	Day int
}

type HeroArrived struct {
	Hero HeroID
	Name string
	Rank Rank
}

type ContractResolved struct {
	Active       ActiveID
	Contract     ContractID
	Outcome      Outcome
	Trophies     int
	NeedsClosure bool
}

type DraftExpired struct {
	Contract ContractID
}

type TaxAssessed struct {
	Amount Money
	Paid   bool
	Missed int
}

type TaxPaid struct {
	Amount Money
}

type GuildClosureWarning struct {
	Missed int
}

type ReturnClosed struct {
	Active   ActiveID
	Contract ContractID
	Decision Decision
	// Denied is set when an accept was refused under the proof policy
	// (damaged proof or suspected theft); the packet still closes.
	Denied   bool
	Paid     Money
	Trophies int
	Released Money
	// Banned lists party members barred from future contracts; only a
	// rejected theft-suspected return bans the party.
	Banned []HeroID
}

type TrophiesSold struct {
	Count    int
	Proceeds Money
}

type ContractCancelled struct {
	Contract ContractID
}

type TermsUpdated struct {
	Contract   ContractID
	Reward     Money
	Difficulty int
}

type RankPromoted struct {
	Rank Rank
}

// Rejected is the single event produced for an inadmissible command. Code is
// one of the closed reason taxonomy in validate.go.
type Rejected struct {
	Cmd    uint64
	Code   string
	Detail string
}

func (DraftCreated) isEvent()        {}
func (ContractPosted) isEvent()      {}
func (ContractTaken) isEvent()       {}
func (DayAdvanced) isEvent()         {}
func (HeroArrived) isEvent()         {}
func (ContractResolved) isEvent()    {}
func (DraftExpired) isEvent()        {}
func (TaxAssessed) isEvent()         {}
func (TaxPaid) isEvent()             {}
func (GuildClosureWarning) isEvent() {}
func (ReturnClosed) isEvent()        {}
func (TrophiesSold) isEvent()        {}
func (ContractCancelled) isEvent()   {}
func (TermsUpdated) isEvent()        {}
func (RankPromoted) isEvent()        {}
func (Rejected) isEvent()            {}
