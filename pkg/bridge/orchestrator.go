package bridge

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"swapjar/pkg/types"
)

// Memo conventions used to correlate ledger transactions with a bridge
// identifier. MemoPrefixSwap + a bridge ID must fit Stellar's 28-byte
// text memo.
const (
	MemoPrefixSwap   = "SWAP:"
	MemoPrefixRedeem = "REDEEM:"
	MemoPrefixRefund = "REFUND:"
)

// paymentTimeoutSeconds bounds how long a submitted-but-unconfirmed
// transaction remains valid.
const paymentTimeoutSeconds = 30

// Orchestrator accepts payout requests, decides between a real transfer
// and a simulated preview, and reports a tracking record. Each call is
// stateless; the only shared resource is the operating account, guarded
// by submitMu so concurrent initiations cannot race its sequence number.
type Orchestrator struct {
	fee      decimal.Decimal
	ledger   Ledger      // nil when operating-account credentials are absent
	verifier TipVerifier // nil when source-chain verification is not configured

	submitMu sync.Mutex
}

// NewOrchestrator builds an orchestrator. Pass a nil ledger to run in
// simulation mode.
func NewOrchestrator(fee decimal.Decimal, ledger Ledger, verifier TipVerifier) *Orchestrator {
	return &Orchestrator{
		fee:      fee,
		ledger:   ledger,
		verifier: verifier,
	}
}

// SimulationMode reports whether the orchestrator has no ledger to
// execute real transfers against.
func (o *Orchestrator) SimulationMode() bool {
	return o.ledger == nil
}

// Initiate validates a payout request and produces a bridge record. Real
// transfer failures are absorbed into a simulated record carrying the
// failure reason: the caller only ever sees a hard failure on validation
// errors. See README for the tradeoff behind this best-effort policy.
func (o *Orchestrator) Initiate(ctx context.Context, req types.PayoutRequest) (*types.BridgeRecord, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	if !types.ValidStellarAddress(req.StellarRecipient) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("invalid Stellar recipient %q: expected 56 characters starting with 'G'", req.StellarRecipient),
		}
	}

	net, err := NetAmount(req.Amount, o.fee)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	asset := req.TargetAsset
	if asset == "" {
		asset = types.AssetXLM
	}
	if asset != types.AssetXLM && asset != types.AssetUSDC {
		return nil, &ValidationError{
			Message: fmt.Sprintf("unsupported target asset %q", req.TargetAsset),
		}
	}

	if o.ledger == nil {
		return o.simulatedRecord(req, net, "simulation mode: no bridge credentials configured, no transaction was submitted"), nil
	}

	bridgeID := newBridgeID()

	txHash, err := o.executeTransfer(ctx, bridgeID, net, req.StellarRecipient, asset, req.EthereumTxHash)
	if err != nil {
		log.Printf("[bridge] transfer %s failed, falling back to simulation: %v", bridgeID, err)
		rec := o.simulatedRecord(req, net, fmt.Sprintf("transfer not executed: %v", err))
		rec.BridgeID = bridgeID
		return rec, nil
	}

	return &types.BridgeRecord{
		BridgeID:       bridgeID,
		Status:         types.BridgeCompleted,
		NetAmount:      net,
		StellarTxHash:  txHash,
		EthereumTxHash: req.EthereumTxHash,
	}, nil
}

// executeTransfer moves funds out of the operating account. This is the
// only state-changing operation in the core and it is irreversible on
// success.
func (o *Orchestrator) executeTransfer(ctx context.Context, bridgeID, net, recipient string, asset types.TargetAsset, sourceTx string) (string, error) {
	if o.verifier != nil {
		if err := o.verifier.VerifyTip(ctx, sourceTx); err != nil {
			return "", fmt.Errorf("source transaction check failed: %w", err)
		}
	}

	o.submitMu.Lock()
	defer o.submitMu.Unlock()

	if _, err := o.ledger.AccountState(ctx); err != nil {
		return "", &LedgerUnavailableError{Err: err}
	}

	txHash, err := o.ledger.SubmitPayment(ctx, PaymentParams{
		Destination:    recipient,
		Amount:         net,
		Asset:          asset,
		MemoText:       MemoPrefixSwap + bridgeID,
		TimeoutSeconds: paymentTimeoutSeconds,
	})
	if err != nil {
		return "", &SubmissionError{Err: err}
	}

	return txHash, nil
}

func (o *Orchestrator) simulatedRecord(req types.PayoutRequest, net, note string) *types.BridgeRecord {
	return &types.BridgeRecord{
		BridgeID:       newBridgeID(),
		Status:         types.BridgeSimulated,
		NetAmount:      net,
		EthereumTxHash: req.EthereumTxHash,
		Note:           note,
	}
}

// newBridgeID generates an identifier unique within the operating
// account's transaction history window: unix-seconds prefix plus a random
// suffix. 19 characters, leaving room for the SWAP: memo prefix.
func newBridgeID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s", time.Now().Unix(), suffix)
}
