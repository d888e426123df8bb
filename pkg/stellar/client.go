package stellar

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"

	"swapjar/config"
	"swapjar/pkg/bridge"
	"swapjar/pkg/types"
)

// memoTextLimit is Stellar's hard cap on text memos.
const memoTextLimit = 28

// Client is the Stellar ledger client bound to the bridge-operating
// account. It implements bridge.Ledger. When only the account address is
// configured (no secret) the client can monitor history but not pay out.
type Client struct {
	horizon    horizonclient.ClientInterface
	kp         *keypair.Full // nil when the secret is not configured
	accountID  string
	passphrase string
	usdcIssuer string
}

// NewClient builds a Stellar client from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	passphrase := network.TestNetworkPassphrase
	if cfg.Network == config.NetworkPublic {
		passphrase = network.PublicNetworkPassphrase
	}

	c := &Client{
		horizon: &horizonclient.Client{
			HorizonURL: cfg.HorizonURL,
			HTTP:       &http.Client{Timeout: cfg.HorizonTimeout},
		},
		passphrase: passphrase,
		usdcIssuer: cfg.USDCIssuer,
		accountID:  cfg.BridgeAccount,
	}

	if cfg.BridgeSecret != "" {
		kp, err := keypair.ParseFull(cfg.BridgeSecret)
		if err != nil {
			return nil, fmt.Errorf("invalid bridge secret: %w", err)
		}
		c.kp = kp
		c.accountID = kp.Address()
	}

	if c.accountID == "" {
		return nil, fmt.Errorf("neither bridge secret nor bridge account configured")
	}

	return c, nil
}

// AccountID returns the operating account's address.
func (c *Client) AccountID() string {
	return c.accountID
}

// CanPay reports whether the client holds the signing secret.
func (c *Client) CanPay() bool {
	return c.kp != nil
}

// AccountState loads the operating account's sequence number and
// balances.
func (c *Client) AccountState(ctx context.Context) (*types.LedgerAccountState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acct, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: c.accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", c.accountID, horizonError(err))
	}

	seq, err := acct.GetSequenceNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence number: %w", err)
	}

	state := &types.LedgerAccountState{
		AccountID: c.accountID,
		Sequence:  seq,
	}
	for _, b := range acct.Balances {
		code := b.Code
		if b.Type == "native" {
			code = string(types.AssetXLM)
		}
		state.Balances = append(state.Balances, types.AssetBalance{
			Code:    code,
			Issuer:  b.Issuer,
			Balance: b.Balance,
		})
	}

	return state, nil
}

// SubmitPayment builds a single-operation payment, signs it with the held
// secret and submits it. The account is reloaded right before the build so
// the sequence number is fresh.
func (c *Client) SubmitPayment(ctx context.Context, p bridge.PaymentParams) (string, error) {
	if c.kp == nil {
		return "", fmt.Errorf("operating account secret not configured")
	}
	if len(p.MemoText) > memoTextLimit {
		return "", fmt.Errorf("memo %q exceeds %d bytes", p.MemoText, memoTextLimit)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	acct, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: c.accountID})
	if err != nil {
		return "", fmt.Errorf("failed to reload account: %w", horizonError(err))
	}

	var asset txnbuild.Asset = txnbuild.NativeAsset{}
	if p.Asset == types.AssetUSDC {
		asset = txnbuild.CreditAsset{Code: string(types.AssetUSDC), Issuer: c.usdcIssuer}
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &acct,
		IncrementSequenceNum: true,
		BaseFee:              txnbuild.MinBaseFee,
		Memo:                 txnbuild.MemoText(p.MemoText),
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(p.TimeoutSeconds),
		},
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: p.Destination,
				Amount:      p.Amount,
				Asset:       asset,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build transaction: %w", err)
	}

	tx, err = tx.Sign(c.passphrase, c.kp)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	resp, err := c.horizon.SubmitTransaction(tx)
	if err != nil {
		return "", fmt.Errorf("submission rejected: %w", horizonError(err))
	}

	return resp.Hash, nil
}

// RecentTransactions fetches the operating account's latest transactions,
// newest first, for memo scanning.
func (c *Client) RecentTransactions(ctx context.Context, limit int) ([]types.SwapEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := c.horizon.Transactions(horizonclient.TransactionRequest{
		ForAccount: c.accountID,
		Order:      horizonclient.OrderDesc,
		Limit:      uint(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", horizonError(err))
	}

	events := make([]types.SwapEvent, 0, len(page.Embedded.Records))
	for _, record := range page.Embedded.Records {
		events = append(events, types.SwapEvent{
			ID:            record.ID,
			Hash:          record.Hash,
			Memo:          record.Memo,
			CreatedAt:     record.LedgerCloseTime,
			SourceAccount: record.Account,
		})
	}

	return events, nil
}

// horizonError extracts the human-readable problem from a horizon
// rejection, keeping the transaction result code when present.
func horizonError(err error) error {
	hErr := horizonclient.GetError(err)
	if hErr == nil {
		return err
	}
	if codes, cErr := hErr.ResultCodes(); cErr == nil && codes != nil {
		return fmt.Errorf("%s: %s", hErr.Problem.Title, codes.TransactionCode)
	}
	return fmt.Errorf("%s", hErr.Problem.Title)
}
