package guild

// Command is the closed set of transition requests. Each variant carries
// only its own typed arguments plus Cmd, a caller-supplied monotonically
// distinct identifier used for audit. The engine does not deduplicate by
// Cmd: applying the same logical command twice applies twice.
type Command interface {
	CmdID() uint64
	isCommand()
}

type CmdHeader struct {
	Cmd uint64
}

func (h CmdHeader) CmdID() uint64 { return h.Cmd }

type CreateDraft struct {
	CmdHeader
	Title         string
	Rank          Rank
	Difficulty    int
	Reward        Money
	Salvage       SalvagePolicy
	ClientPrepaid bool
}

type PostDraft struct {
	CmdHeader
	Contract ContractID
	Fee      Money
}

type TakeContract struct {
	CmdHeader
	Contract ContractID
	Heroes   []HeroID
}

type AdvanceDay struct {
	CmdHeader
}

// Decision on a return packet. Empty means "not provided"; under the
// lenient proof policy that defaults to accept, under strict it is rejected.
type Decision string

const (
	DecisionNone   Decision = ""
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

type CloseReturn struct {
	CmdHeader
	Active   ActiveID
	Decision Decision
}

type SellTrophies struct {
	CmdHeader
	Count int
}

type CancelContract struct {
	CmdHeader
	Contract ContractID
}

type UpdateTerms struct {
	CmdHeader
	Contract   ContractID
	Reward     Money
	Difficulty int
}

type PayTax struct {
	CmdHeader
}

func (CreateDraft) isCommand()    {}
func (PostDraft) isCommand()      {}
func (TakeContract) isCommand()   {}
func (AdvanceDay) isCommand()     {}
func (CloseReturn) isCommand()    {}
func (SellTrophies) isCommand()   {}
func (CancelContract) isCommand() {}
func (UpdateTerms) isCommand()    {}
func (PayTax) isCommand()         {}
