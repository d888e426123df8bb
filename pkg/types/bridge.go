package types

import (
	"strings"
	"time"
)

// TargetAsset is the asset delivered on the Stellar side.
type TargetAsset string

const (
	AssetXLM  TargetAsset = "XLM"  // native asset
	AssetUSDC TargetAsset = "USDC" // configured stablecoin issuance
)

// BridgeStatus defines the outcome of a payout attempt
type BridgeStatus string

const (
	BridgeSimulated BridgeStatus = "simulated" // preview only, no transaction submitted
	BridgeCompleted BridgeStatus = "completed" // funds delivered on Stellar
	BridgeFailed    BridgeStatus = "failed"
)

// SwapStatus is the coarse lifecycle derived from ledger memo conventions
type SwapStatus string

const (
	SwapInitiated SwapStatus = "initiated" // default, no matching event yet
	SwapLocked    SwapStatus = "locked"    // SWAP: memo observed
	SwapRedeemed  SwapStatus = "redeemed"  // REDEEM: memo observed
	SwapRefunded  SwapStatus = "refunded"  // REFUND: memo observed
)

// PayoutRequest is an incoming tip payout. Immutable once constructed;
// lives only for the duration of the request.
type PayoutRequest struct {
	EthereumTxHash   string      `json:"ethereumTxHash"`
	SourceChain      int         `json:"sourceChain"`
	Amount           string      `json:"amount"` // gross amount, decimal string
	StellarRecipient string      `json:"stellarRecipient"`
	TargetAsset      TargetAsset `json:"targetAsset"`
}

// MissingFields returns the names of required fields that are absent.
func (r *PayoutRequest) MissingFields() []string {
	var missing []string
	if r.EthereumTxHash == "" {
		missing = append(missing, "ethereumTxHash")
	}
	if r.SourceChain == 0 {
		missing = append(missing, "sourceChain")
	}
	if r.Amount == "" {
		missing = append(missing, "amount")
	}
	if r.StellarRecipient == "" {
		missing = append(missing, "stellarRecipient")
	}
	return missing
}

// ValidStellarAddress reports whether addr satisfies the destination
// ledger's address grammar: 56 characters with a leading 'G'.
func ValidStellarAddress(addr string) bool {
	return len(addr) == 56 && strings.HasPrefix(addr, "G")
}

// BridgeRecord tracks a single payout attempt. Created at the start of
// orchestration, written once when the outcome is known, never mutated
// again.
type BridgeRecord struct {
	BridgeID       string       `json:"bridgeId"`
	Status         BridgeStatus `json:"status"`
	NetAmount      string       `json:"netAmount"`
	StellarTxHash  string       `json:"stellarTxHash,omitempty"` // present only when completed
	EthereumTxHash string       `json:"ethereumTxHash"`
	Note           string       `json:"note,omitempty"`
}

// AssetBalance is one (asset, balance) pair held by the operating account.
type AssetBalance struct {
	Code    string
	Issuer  string
	Balance string
}

// LedgerAccountState is the operating account's current state. It must be
// reloaded immediately before each transaction build; a stale sequence
// number invalidates submission.
type LedgerAccountState struct {
	AccountID string
	Sequence  int64
	Balances  []AssetBalance
}

// SwapEvent is a ledger transaction observed during status monitoring.
// Derived read-only from history, never mutated.
type SwapEvent struct {
	ID            string    `json:"id"`
	Hash          string    `json:"hash"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
	SourceAccount string    `json:"source_account"`
}

// SwapStatusResult is the derived status for a swap plus the events that
// produced it, most recent first.
type SwapStatusResult struct {
	SwapID      string      `json:"swapId"`
	Status      SwapStatus  `json:"status"`
	Events      []SwapEvent `json:"events"`
	LatestEvent *SwapEvent  `json:"latestEvent,omitempty"`
}
