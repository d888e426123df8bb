package chains

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/stellar/go/strkey"
)

// AddressKind selects the address grammar a chain uses.
type AddressKind string

const (
	AddressEVM     AddressKind = "evm"
	AddressSolana  AddressKind = "solana"
	AddressStellar AddressKind = "stellar"
)

// Chain describes a supported source chain for incoming tips.
type Chain struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Native string      `json:"nativeSymbol"`
	Kind   AddressKind `json:"addressKind"`
}

var supported = []Chain{
	{ID: 1, Name: "ethereum", Native: "ETH", Kind: AddressEVM},
	{ID: 10, Name: "optimism", Native: "ETH", Kind: AddressEVM},
	{ID: 137, Name: "polygon", Native: "POL", Kind: AddressEVM},
	{ID: 8453, Name: "base", Native: "ETH", Kind: AddressEVM},
	{ID: 42161, Name: "arbitrum", Native: "ETH", Kind: AddressEVM},
	{ID: 1151111081099710, Name: "solana", Native: "SOL", Kind: AddressSolana},
	{ID: 148, Name: "stellar", Native: "XLM", Kind: AddressStellar},
}

// Supported returns the chains tips can arrive from.
func Supported() []Chain {
	out := make([]Chain, len(supported))
	copy(out, supported)
	return out
}

// ByID looks up a chain by its numeric identifier.
func ByID(id int) (Chain, bool) {
	for _, c := range supported {
		if c.ID == id {
			return c, true
		}
	}
	return Chain{}, false
}

// ByName looks up a chain by name, case-insensitively.
func ByName(name string) (Chain, bool) {
	name = strings.ToLower(name)
	for _, c := range supported {
		if c.Name == name {
			return c, true
		}
	}
	return Chain{}, false
}

// ValidateAddress checks an address against the chain's grammar. Used for
// payer refund addresses on the quote path.
func ValidateAddress(chain Chain, addr string) error {
	switch chain.Kind {
	case AddressEVM:
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid %s address: %s", chain.Name, addr)
		}
	case AddressSolana:
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("invalid solana address %s: %w", addr, err)
		}
	case AddressStellar:
		if !strkey.IsValidEd25519PublicKey(addr) {
			return fmt.Errorf("invalid stellar address: %s", addr)
		}
	default:
		return fmt.Errorf("unknown address kind %q", chain.Kind)
	}
	return nil
}
