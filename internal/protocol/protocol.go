// Package protocol is the wire form of the engine's command and event
// vocabularies: flat JSON envelopes routed by a type tag. The engine itself
// never sees wire bytes; front-end adapters decode to typed commands and
// encode the resulting events.
package protocol

import "encoding/json"

const Version = "1.0"

// Command wire types.
const (
	TypeCreateDraft    = "CREATE_DRAFT"
	TypePostDraft      = "POST_DRAFT"
	TypeTakeContract   = "TAKE_CONTRACT"
	TypeAdvanceDay     = "ADVANCE_DAY"
	TypeCloseReturn    = "CLOSE_RETURN"
	TypeSellTrophies   = "SELL_TROPHIES"
	TypeCancelContract = "CANCEL_CONTRACT"
	TypeUpdateTerms    = "UPDATE_TERMS"
	TypePayTax         = "PAY_TAX"
)

// Event wire types.
const (
	TypeDraftCreated        = "DRAFT_CREATED"
	TypeContractPosted      = "CONTRACT_POSTED"
	TypeContractTaken       = "CONTRACT_TAKEN"
	TypeDayAdvanced         = "DAY_ADVANCED"
	TypeHeroArrived         = "HERO_ARRIVED"
	TypeContractResolved    = "CONTRACT_RESOLVED"
	TypeDraftExpired        = "DRAFT_EXPIRED"
	TypeTaxAssessed         = "TAX_ASSESSED"
	TypeTaxPaid             = "TAX_PAID"
	TypeGuildClosureWarning = "GUILD_CLOSURE_WARNING"
	TypeReturnClosed        = "RETURN_CLOSED"
	TypeTrophiesSold        = "TROPHIES_SOLD"
	TypeContractCancelled   = "CONTRACT_CANCELLED"
	TypeTermsUpdated        = "TERMS_UPDATED"
	TypeRankPromoted        = "RANK_PROMOTED"
	TypeRejected            = "REJECTED"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
	Cmd  uint64 `json:"cmd,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
