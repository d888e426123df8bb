package bridge

import (
	"context"
	"sort"
	"strings"

	"swapjar/pkg/types"
)

// Monitor derives a coarse swap lifecycle status from the operating
// account's transaction history. The status is recomputed from the ledger
// on every call; there is no persisted state machine, transitions are
// observed rather than driven.
type Monitor struct {
	ledger    Ledger
	scanLimit int
}

// NewMonitor builds a status monitor scanning up to scanLimit recent
// transactions per query.
func NewMonitor(ledger Ledger, scanLimit int) *Monitor {
	if scanLimit <= 0 {
		scanLimit = 50
	}
	return &Monitor{ledger: ledger, scanLimit: scanLimit}
}

// Status queries the ledger for transactions whose memo references swapID
// and classifies the result. Ledger failures surface as
// LedgerUnavailableError with no fallback; retries are the caller's
// responsibility.
func (m *Monitor) Status(ctx context.Context, swapID string) (*types.SwapStatusResult, error) {
	if swapID == "" {
		return nil, &ValidationError{Fields: []string{"swapId"}}
	}
	if m.ledger == nil {
		return nil, &LedgerUnavailableError{Err: errNoLedger}
	}

	history, err := m.ledger.RecentTransactions(ctx, m.scanLimit)
	if err != nil {
		return nil, &LedgerUnavailableError{Err: err}
	}

	events := FilterEvents(history, swapID)
	result := &types.SwapStatusResult{
		SwapID: swapID,
		Status: ClassifyEvents(events),
		Events: events,
	}
	if len(events) > 0 {
		result.LatestEvent = &events[0]
	}
	return result, nil
}

// FilterEvents returns the events whose memo contains swapID, most recent
// first.
func FilterEvents(events []types.SwapEvent, swapID string) []types.SwapEvent {
	matched := make([]types.SwapEvent, 0)
	for _, ev := range events {
		if strings.Contains(ev.Memo, swapID) {
			matched = append(matched, ev)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// ClassifyEvents derives a status from an ordered event list, most recent
// first. The most recent matching event dominates; within an event the
// most specific memo signal wins. With no matching events the swap is
// still in its initial state.
func ClassifyEvents(events []types.SwapEvent) types.SwapStatus {
	for _, ev := range events {
		switch {
		case strings.Contains(ev.Memo, MemoPrefixRedeem):
			return types.SwapRedeemed
		case strings.Contains(ev.Memo, MemoPrefixRefund):
			return types.SwapRefunded
		case strings.Contains(ev.Memo, MemoPrefixSwap):
			return types.SwapLocked
		}
	}
	return types.SwapInitiated
}
