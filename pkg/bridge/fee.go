package bridge

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NetAmount computes gross × (1 − fee) as a decimal string. The fee is
// charged on simulated paths too, so previews match real payouts.
func NetAmount(gross string, fee decimal.Decimal) (string, error) {
	amount, err := decimal.NewFromString(gross)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", gross, err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("amount must be positive, got %s", amount)
	}

	net := amount.Mul(decimal.NewFromInt(1).Sub(fee))
	return net.String(), nil
}
