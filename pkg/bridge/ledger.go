package bridge

import (
	"context"

	"swapjar/pkg/types"
)

// PaymentParams describes a single-operation payment on the destination
// ledger.
type PaymentParams struct {
	Destination    string
	Amount         string // net amount, decimal string
	Asset          types.TargetAsset
	MemoText       string
	TimeoutSeconds int64
}

// Ledger is the destination-ledger capability the orchestrator and the
// status monitor depend on. Implementations are bound to the
// bridge-operating account.
type Ledger interface {
	// AccountState loads the operating account's current sequence number
	// and balances.
	AccountState(ctx context.Context) (*types.LedgerAccountState, error)

	// SubmitPayment builds, signs and submits a payment transaction,
	// returning the network-assigned transaction hash. The account state
	// is reloaded immediately before the build.
	SubmitPayment(ctx context.Context, p PaymentParams) (string, error)

	// RecentTransactions returns the operating account's most recent
	// transactions, newest first.
	RecentTransactions(ctx context.Context, limit int) ([]types.SwapEvent, error)
}

// TipVerifier checks that the originating source-chain transaction exists
// and succeeded.
type TipVerifier interface {
	VerifyTip(ctx context.Context, txHash string) error
}
