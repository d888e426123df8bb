package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	oneclick "github.com/defuse-protocol/one-click-sdk-go"
)

// Request describes a payer-side swap quote: what the payer sends and
// what the jar should receive.
type Request struct {
	Amount        string `json:"amount"`
	SourceToken   string `json:"sourceToken"`
	SourceChain   string `json:"sourceChain,omitempty"`
	DestToken     string `json:"destToken"`
	DestChain     string `json:"destChain,omitempty"`
	RecipientAddr string `json:"recipient"`
	RefundAddr    string `json:"refundAddr,omitempty"`
}

// Client wraps the 1Click DEX-aggregation SDK
type Client struct {
	client *oneclick.APIClient
	jwt    string
}

// NewClient creates a new aggregation API client. An empty baseURL keeps
// the SDK's default endpoint.
func NewClient(jwtToken, baseURL string) *Client {
	cfg := oneclick.NewConfiguration()
	if baseURL != "" {
		cfg.Servers = oneclick.ServerConfigurations{{URL: baseURL}}
	}
	return &Client{
		client: oneclick.NewAPIClient(cfg),
		jwt:    jwtToken,
	}
}

func (c *Client) authContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oneclick.ContextAccessToken, c.jwt)
}

// SupportedTokens retrieves all tokens the aggregator can swap
func (c *Client) SupportedTokens(ctx context.Context) ([]oneclick.TokenResponse, error) {
	resp, httpResp, err := c.client.OneClickAPI.GetTokens(c.authContext(ctx)).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != 200 {
		return nil, fmt.Errorf("API returned status code %d", httpResp.StatusCode)
	}

	return resp, nil
}

// FindToken searches for a token by symbol across all chains
func (c *Client) FindToken(ctx context.Context, symbol string) (*oneclick.TokenResponse, error) {
	tokens, err := c.SupportedTokens(ctx)
	if err != nil {
		return nil, err
	}

	symbol = strings.ToUpper(symbol)

	// Try exact match first
	for _, token := range tokens {
		if strings.ToUpper(token.GetSymbol()) == symbol {
			return &token, nil
		}
	}

	// Try partial match
	for _, token := range tokens {
		if strings.Contains(strings.ToUpper(token.GetSymbol()), symbol) {
			return &token, nil
		}
	}

	return nil, fmt.Errorf("token '%s' not found", symbol)
}

// FindTokenOnChain searches for a token by symbol on a specific chain
func (c *Client) FindTokenOnChain(ctx context.Context, symbol, chain string) (*oneclick.TokenResponse, error) {
	tokens, err := c.SupportedTokens(ctx)
	if err != nil {
		return nil, err
	}

	symbol = strings.ToUpper(symbol)
	chain = strings.ToLower(chain)

	for _, token := range tokens {
		if strings.ToUpper(token.GetSymbol()) == symbol &&
			strings.ToLower(token.GetBlockchain()) == chain {
			return &token, nil
		}
	}

	return nil, fmt.Errorf("token '%s' not found on chain '%s'", symbol, chain)
}

// GetQuote generates a swap quote for a tip
func (c *Client) GetQuote(ctx context.Context, req *Request) (*oneclick.QuoteResponse, error) {
	return c.getQuote(ctx, req, false)
}

func (c *Client) getQuote(ctx context.Context, req *Request, dry bool) (*oneclick.QuoteResponse, error) {
	// Find source and destination tokens
	var sourceToken, destToken *oneclick.TokenResponse
	var err error

	if req.SourceChain != "" {
		sourceToken, err = c.FindTokenOnChain(ctx, req.SourceToken, req.SourceChain)
	} else {
		sourceToken, err = c.FindToken(ctx, req.SourceToken)
	}
	if err != nil {
		return nil, fmt.Errorf("source token error: %w", err)
	}

	if req.DestChain != "" {
		destToken, err = c.FindTokenOnChain(ctx, req.DestToken, req.DestChain)
	} else {
		destToken, err = c.FindToken(ctx, req.DestToken)
	}
	if err != nil {
		return nil, fmt.Errorf("destination token error: %w", err)
	}

	// Convert amount to smallest unit
	amountFloat, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	smallestUnit := amountFloat * math.Pow(10, float64(sourceToken.GetDecimals()))
	amountStr := fmt.Sprintf("%.0f", smallestUnit)

	recipient := req.RecipientAddr
	if recipient == "" {
		return nil, fmt.Errorf("recipient address is required")
	}

	// Refund to the payer, defaulting to the recipient
	refundTo := req.RefundAddr
	if refundTo == "" {
		refundTo = recipient
	}

	deadline := time.Now().Add(24 * time.Hour)

	quoteReq := oneclick.NewQuoteRequest(
		dry,                      // dry - true skips deposit-address creation
		"EXACT_INPUT",            // swapType
		100,                      // slippageTolerance (1%)
		sourceToken.GetAssetId(), // originAsset
		"ORIGIN_CHAIN",           // depositType
		destToken.GetAssetId(),   // destinationAsset
		amountStr,                // amount in smallest unit
		refundTo,                 // refundTo
		"ORIGIN_CHAIN",           // refundType
		recipient,                // recipient
		"DESTINATION_CHAIN",      // recipientType
		deadline,                 // deadline
	)

	resp, httpResp, err := c.client.OneClickAPI.GetQuote(c.authContext(ctx)).QuoteRequest(*quoteReq).Execute()
	if err != nil {
		// Try to extract the actual error message from the response
		if httpResp != nil {
			defer httpResp.Body.Close()
			bodyBytes, readErr := io.ReadAll(httpResp.Body)
			if readErr == nil && len(bodyBytes) > 0 {
				var errorResp map[string]interface{}
				if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
					if message, ok := errorResp["message"].(string); ok {
						return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, message)
					}
				}
				return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(bodyBytes))
			}
		}
		return nil, fmt.Errorf("failed to get quote from API: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("API returned status code %d", httpResp.StatusCode)
	}
	if resp == nil {
		return nil, fmt.Errorf("empty quote response")
	}

	return resp, nil
}

// EstimateRate fetches the current price of a token pair using a small
// dry quote, returning how many destination tokens one source token buys.
func (c *Client) EstimateRate(ctx context.Context, req *Request) (string, error) {
	probe := *req
	testAmount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}

	// Probe with 10% of the requested amount, floored at 0.01
	testAmount = testAmount * 0.1
	if testAmount < 0.01 {
		testAmount = 0.01
	}
	probe.Amount = fmt.Sprintf("%.8f", testAmount)

	resp, err := c.getQuote(ctx, &probe, true)
	if err != nil {
		return "", fmt.Errorf("failed to get quote: %w", err)
	}

	quoteDetails := resp.GetQuote()
	amountIn, err := strconv.ParseFloat(quoteDetails.GetAmountInFormatted(), 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount in: %w", err)
	}
	amountOut, err := strconv.ParseFloat(quoteDetails.GetAmountOutFormatted(), 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount out: %w", err)
	}
	if amountIn == 0 {
		return "", fmt.Errorf("invalid amount in: 0")
	}

	return fmt.Sprintf("%.8f", amountOut/amountIn), nil
}
