package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoutRequestMissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  PayoutRequest
		want []string
	}{
		{
			name: "complete request",
			req: PayoutRequest{
				EthereumTxHash:   "0xabc",
				SourceChain:      1,
				Amount:           "100",
				StellarRecipient: "G" + strings.Repeat("A", 55),
			},
			want: nil,
		},
		{
			name: "everything missing",
			req:  PayoutRequest{},
			want: []string{"ethereumTxHash", "sourceChain", "amount", "stellarRecipient"},
		},
		{
			name: "amount missing",
			req: PayoutRequest{
				EthereumTxHash:   "0xabc",
				SourceChain:      1,
				StellarRecipient: "G" + strings.Repeat("A", 55),
			},
			want: []string{"amount"},
		},
		{
			name: "tx hash and recipient missing",
			req: PayoutRequest{
				SourceChain: 137,
				Amount:      "3.5",
			},
			want: []string{"ethereumTxHash", "stellarRecipient"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.MissingFields())
		})
	}
}

func TestValidStellarAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		{name: "valid grammar", addr: "G" + strings.Repeat("A", 55), want: true},
		{name: "too short", addr: "GABC", want: false},
		{name: "too long", addr: "G" + strings.Repeat("A", 56), want: false},
		{name: "wrong leading character", addr: "S" + strings.Repeat("A", 55), want: false},
		{name: "empty", addr: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStellarAddress(tt.addr))
		})
	}
}
