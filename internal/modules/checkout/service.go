package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/reptitrack/reptitrack-backend/internal/modules/cart"
	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/reptitrack/reptitrack-backend/internal/modules/inventory"
	"github.com/shopspring/decimal"
)

// Service drives one checkout state machine per session: price the cart,
// collect a payment method, validate payment, then commit stock decrements
// through the synchronizer and clear the cart.
type Service interface {
	// Start prices the session's cart and opens a checkout. Fails with
	// ErrEmptyCart when there is nothing to sell.
	Start(ctx context.Context, sessionID string) (Pricing, error)
	// SelectPaymentMethod picks CASH or CARD. Card settlement is confirmed
	// externally, so it commits immediately and returns the receipt. Cash
	// returns no receipt and waits for SubmitCash.
	SelectPaymentMethod(ctx context.Context, sessionID, method string) (*Receipt, error)
	// SubmitCash settles a cash sale. Underpayment returns
	// ErrInsufficientCash and leaves the checkout open, cart and stock
	// untouched.
	SubmitCash(ctx context.Context, sessionID string, received decimal.Decimal) (*Receipt, error)
	// Abort cancels an open checkout and returns the engine to idle. The
	// cart keeps its lines.
	Abort(ctx context.Context, sessionID string) error
	State(sessionID string) State
}

type engine struct {
	state   State
	lines   []cart.Line
	pricing Pricing
	method  PaymentMethod
}

type service struct {
	registry catalog.Repository
	stock    inventory.Synchronizer
	carts    *cart.Sessions

	mu      sync.Mutex
	engines map[string]*engine
}

// NewService creates a checkout service over the given registry,
// synchronizer and session carts.
func NewService(registry catalog.Repository, stock inventory.Synchronizer, carts *cart.Sessions) Service {
	return &service{
		registry: registry,
		stock:    stock,
		carts:    carts,
		engines:  make(map[string]*engine),
	}
}

func (s *service) engine(sessionID string) *engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines[sessionID]
	if !ok {
		e = &engine{state: StateIdle}
		s.engines[sessionID] = e
	}
	return e
}

func (s *service) State(sessionID string) State {
	return s.engine(sessionID).state
}

func (s *service) Start(ctx context.Context, sessionID string) (Pricing, error) {
	_ = ctx
	e := s.engine(sessionID)
	if e.state != StateIdle {
		return Pricing{}, ErrInvalidState
	}
	c := s.carts.Cart(sessionID)
	if c.IsEmpty() {
		return Pricing{}, ErrEmptyCart
	}

	subtotal := c.Total()
	tax := subtotal.Mul(TaxRate)
	e.lines = c.Lines()
	e.pricing = Pricing{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
	e.state = StatePricing
	return e.pricing, nil
}

func (s *service) SelectPaymentMethod(ctx context.Context, sessionID, method string) (*Receipt, error) {
	e := s.engine(sessionID)
	if e.state != StatePricing && e.state != StateAwaitingPayment {
		return nil, ErrInvalidState
	}
	m, err := ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}
	e.method = m

	if m == PaymentCard {
		// Card settlement is externally confirmed; commit directly.
		due := e.pricing.Total.Round(2)
		return s.commit(ctx, sessionID, e, due, decimal.Zero, decimal.Zero)
	}
	e.state = StateAwaitingPayment
	return nil, nil
}

func (s *service) SubmitCash(ctx context.Context, sessionID string, received decimal.Decimal) (*Receipt, error) {
	e := s.engine(sessionID)
	if e.state != StateAwaitingPayment || e.method != PaymentCash {
		return nil, ErrInvalidState
	}
	due := RoundToNickel(e.pricing.Total)
	if received.LessThan(due) {
		// Stay open: the cashier can retry with more cash or abort.
		return nil, ErrInsufficientCash
	}
	change := RoundToNickel(received.Sub(due))
	return s.commit(ctx, sessionID, e, due, received, change)
}

func (s *service) Abort(ctx context.Context, sessionID string) error {
	_ = ctx
	e := s.engine(sessionID)
	if e.state != StatePricing && e.state != StateAwaitingPayment {
		return ErrInvalidState
	}
	e.reset()
	return nil
}

// commit applies every line's stock decrement in one atomic batch, then
// clears the cart. A failure leaves the checkout open with stock and cart
// untouched; it is never swallowed.
func (s *service) commit(ctx context.Context, sessionID string, e *engine, due, received, change decimal.Decimal) (*Receipt, error) {
	levels := make([]inventory.StockLevel, 0, len(e.lines))
	for _, line := range e.lines {
		current, err := s.registry.GetQuantity(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("checkout: read stock for product %d: %w", line.ProductID, err)
		}
		newStock := current - line.Quantity
		if newStock < 0 {
			newStock = 0
		}
		levels = append(levels, inventory.StockLevel{
			ProductID: line.ProductID,
			Category:  line.Category,
			Quantity:  newStock,
		})
	}
	if err := s.stock.ApplyStockLevels(ctx, levels); err != nil {
		return nil, fmt.Errorf("checkout: commit sale: %w", err)
	}

	receipt := &Receipt{
		ID:            uuid.New(),
		Lines:         e.lines,
		Subtotal:      e.pricing.Subtotal.Round(2),
		Tax:           e.pricing.Tax.Round(2),
		Total:         e.pricing.Total.Round(2),
		PaymentMethod: e.method,
		AmountDue:     due,
		CashReceived:  received,
		Change:        change,
	}
	s.carts.Cart(sessionID).Clear()
	e.reset()
	return receipt, nil
}

func (e *engine) reset() {
	e.state = StateIdle
	e.lines = nil
	e.pricing = Pricing{}
	e.method = ""
}
