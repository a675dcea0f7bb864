package checkout

import (
	"errors"

	"github.com/google/uuid"
	"github.com/reptitrack/reptitrack-backend/internal/modules/cart"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is returned when a checkout starts on a cart with no lines.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrInvalidState is returned when a step arrives out of order.
	ErrInvalidState = errors.New("checkout: operation not valid in current state")
	// ErrInvalidPaymentMethod is returned for anything other than cash or card.
	ErrInvalidPaymentMethod = errors.New("checkout: payment method must be CASH or CARD")
	// ErrInsufficientCash is returned when the cash received does not cover
	// the amount due. The checkout stays open and nothing is committed.
	ErrInsufficientCash = errors.New("checkout: cash received is less than amount due")
)

// State is the checkout engine's position in the sale protocol.
type State string

const (
	StateIdle            State = "IDLE"
	StatePricing         State = "PRICING"
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateCompleted       State = "COMPLETED"
	StateAborted         State = "ABORTED"
)

// PaymentMethod represents how a sale is settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// ParsePaymentMethod accepts exactly the two settlement methods.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard:
		return PaymentMethod(s), nil
	}
	return "", ErrInvalidPaymentMethod
}

// TaxRate is the fixed sales tax applied to every checkout.
var TaxRate = decimal.RequireFromString("0.13")

var twenty = decimal.NewFromInt(20)

// RoundToNickel rounds an amount to the nearest $0.05, the smallest cash
// denomination accepted at the counter.
func RoundToNickel(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(twenty).Round(0).Div(twenty)
}

// Pricing is the priced view of a cart before payment. Amounts keep full
// precision; rounding to two decimals happens only on the receipt.
type Pricing struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt summarizes a committed sale.
type Receipt struct {
	ID            uuid.UUID       `json:"id"`
	Lines         []cart.Line     `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	CashReceived  decimal.Decimal `json:"cash_received"`
	Change        decimal.Decimal `json:"change"`
}
