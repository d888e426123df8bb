package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Verifier checks that an originating tip transaction exists and
// succeeded on the source chain before the bridge pays out.
type Verifier struct {
	client *ethclient.Client
}

// NewVerifier connects to an EVM RPC endpoint
func NewVerifier(rpcURL string) (*Verifier, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("RPC URL not configured")
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	return &Verifier{client: client}, nil
}

// VerifyTip confirms the transaction is mined and its receipt reports
// success. A pending transaction is not yet acceptable as a tip.
func (v *Verifier) VerifyTip(ctx context.Context, txHash string) error {
	hash := common.HexToHash(txHash)

	_, isPending, err := v.client.TransactionByHash(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to get transaction %s: %w", txHash, err)
	}
	if isPending {
		return fmt.Errorf("transaction %s is still pending", txHash)
	}

	receipt, err := v.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to get transaction receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", txHash)
	}

	return nil
}

// Close closes the client connection
func (v *Verifier) Close() {
	if v.client != nil {
		v.client.Close()
	}
}
