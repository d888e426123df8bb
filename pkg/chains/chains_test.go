package chains

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	c, ok := ByID(1)
	require.True(t, ok)
	assert.Equal(t, "ethereum", c.Name)

	_, ok = ByID(999999)
	assert.False(t, ok)
}

func TestByName(t *testing.T) {
	c, ok := ByName("Polygon")
	require.True(t, ok)
	assert.Equal(t, 137, c.ID)

	_, ok = ByName("dogechain")
	assert.False(t, ok)
}

func TestValidateAddress(t *testing.T) {
	ethereum, _ := ByName("ethereum")
	sol, _ := ByName("solana")
	stellarChain, _ := ByName("stellar")

	kp, err := keypair.Random()
	require.NoError(t, err)

	tests := []struct {
		name    string
		chain   Chain
		addr    string
		wantErr bool
	}{
		{name: "valid evm address", chain: ethereum, addr: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"},
		{name: "evm address missing prefix", chain: ethereum, addr: "71C7656EC7ab88b098defB751B7401B5f6d8976F"},
		{name: "evm address garbage", chain: ethereum, addr: "not-an-address", wantErr: true},
		{name: "valid solana address", chain: sol, addr: "11111111111111111111111111111111"},
		{name: "solana address garbage", chain: sol, addr: "0x1234", wantErr: true},
		{name: "valid stellar address", chain: stellarChain, addr: kp.Address()},
		{name: "stellar address garbage", chain: stellarChain, addr: "GABC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.chain, tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
