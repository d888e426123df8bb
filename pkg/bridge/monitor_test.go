package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapjar/pkg/types"
)

func eventAt(memo string, minutesAgo int) types.SwapEvent {
	return types.SwapEvent{
		ID:            memo,
		Hash:          "hash-" + memo,
		Memo:          memo,
		CreatedAt:     time.Now().Add(-time.Duration(minutesAgo) * time.Minute),
		SourceAccount: "GSOURCE",
	}
}

func TestClassifyEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []types.SwapEvent
		want   types.SwapStatus
	}{
		{
			name:   "no events",
			events: nil,
			want:   types.SwapInitiated,
		},
		{
			name:   "swap memo only",
			events: []types.SwapEvent{eventAt("SWAP: swap-42", 10)},
			want:   types.SwapLocked,
		},
		{
			name: "redeem after swap",
			events: []types.SwapEvent{
				eventAt("REDEEM: swap-42", 1),
				eventAt("SWAP: swap-42", 10),
			},
			want: types.SwapRedeemed,
		},
		{
			name: "refund after swap",
			events: []types.SwapEvent{
				eventAt("REFUND: swap-42", 1),
				eventAt("SWAP: swap-42", 10),
			},
			want: types.SwapRefunded,
		},
		{
			name: "most recent event dominates older redeem",
			events: []types.SwapEvent{
				eventAt("REFUND: swap-42", 1),
				eventAt("REDEEM: swap-42", 5),
			},
			want: types.SwapRefunded,
		},
		{
			name:   "unrelated memo",
			events: []types.SwapEvent{eventAt("hello world", 1)},
			want:   types.SwapInitiated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEvents(tt.events))
		})
	}
}

func TestFilterEventsOrdersNewestFirst(t *testing.T) {
	history := []types.SwapEvent{
		eventAt("SWAP: swap-42", 30),
		eventAt("REDEEM: swap-42", 2),
		eventAt("SWAP: other-swap", 5),
		eventAt("REFUND: swap-42", 15),
	}

	got := FilterEvents(history, "swap-42")
	require.Len(t, got, 3)
	assert.Equal(t, "REDEEM: swap-42", got[0].Memo)
	assert.Equal(t, "REFUND: swap-42", got[1].Memo)
	assert.Equal(t, "SWAP: swap-42", got[2].Memo)
}

func TestMonitorStatusNoMatches(t *testing.T) {
	ledger := &fakeLedger{events: []types.SwapEvent{eventAt("SWAP: other", 1)}}
	m := NewMonitor(ledger, 50)

	result, err := m.Status(context.Background(), "swap-42")
	require.NoError(t, err)

	assert.Equal(t, types.SwapInitiated, result.Status)
	assert.Empty(t, result.Events)
	assert.Nil(t, result.LatestEvent)
}

func TestMonitorStatusRedeemedAfterSwap(t *testing.T) {
	ledger := &fakeLedger{events: []types.SwapEvent{
		eventAt("SWAP: swap-42", 20),
		eventAt("REDEEM: swap-42", 1),
	}}
	m := NewMonitor(ledger, 50)

	result, err := m.Status(context.Background(), "swap-42")
	require.NoError(t, err)

	assert.Equal(t, types.SwapRedeemed, result.Status)
	require.Len(t, result.Events, 2)
	require.NotNil(t, result.LatestEvent)
	assert.Equal(t, "REDEEM: swap-42", result.LatestEvent.Memo)
}

func TestMonitorStatusLedgerFailure(t *testing.T) {
	ledger := &fakeLedger{eventsErr: errors.New("horizon timeout")}
	m := NewMonitor(ledger, 50)

	_, err := m.Status(context.Background(), "swap-42")
	require.Error(t, err)

	var lErr *LedgerUnavailableError
	assert.ErrorAs(t, err, &lErr)
}

func TestMonitorStatusEmptySwapID(t *testing.T) {
	m := NewMonitor(&fakeLedger{}, 50)

	_, err := m.Status(context.Background(), "")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"swapId"}, vErr.Fields)
}

func TestMonitorStatusNoLedgerConfigured(t *testing.T) {
	m := NewMonitor(nil, 50)

	_, err := m.Status(context.Background(), "swap-42")
	require.Error(t, err)

	var lErr *LedgerUnavailableError
	assert.ErrorAs(t, err, &lErr)
}
