package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrGateway = errors.New("payment gateway error")

// Gateway creates remote orders that a client then pays against.
type Gateway interface {
	// CreateOrder registers an order for amount rupees and returns the gateway's order id.
	CreateOrder(ctx context.Context, amount decimal.Decimal) (string, error)
}

// ToMinorUnits converts rupees to paise, dropping any fraction of a paisa.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Truncate(0).IntPart()
}
