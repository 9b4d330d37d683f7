// Package checkout drives the payment dialog of the till: method selection, cash tender,
// the simulated processing delay and the receipt that follows.
package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/pricing"
)

// DefaultDelay is how long a sale stays in the processing state.
const DefaultDelay = 1500 * time.Millisecond

type cartState interface {
	Snapshot() domain.Cart
	ClearCart()
}

type settingsSource interface {
	Get(ctx context.Context) domain.Settings
}

// SalePublisher is notified once per completed sale.
type SalePublisher interface {
	SaleCompleted(ctx context.Context, receipt domain.Receipt, currency domain.Currency) error
}

type Option func(*Checkout)

func WithDelay(d time.Duration) Option {
	return func(c *Checkout) { c.delay = d }
}

// WithClock replaces the wall clock and the timer used for the processing delay.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(c *Checkout) {
		c.now = now
		c.after = after
	}
}

func WithPublisher(p SalePublisher) Option {
	return func(c *Checkout) { c.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Checkout) {
		if l != nil {
			c.logger = l
		}
	}
}

// Checkout is the state machine behind the payment dialog.
type Checkout struct {
	cart      cartState
	settings  settingsSource
	publisher SalePublisher
	logger    *zap.Logger
	delay     time.Duration
	now       func() time.Time
	after     func(time.Duration) <-chan time.Time

	mu       sync.Mutex
	state    domain.CheckoutState
	method   domain.PaymentMethod
	tendered decimal.Decimal
	receipt  *domain.Receipt
}

func New(cart cartState, settings settingsSource, opts ...Option) *Checkout {
	c := &Checkout{
		cart:     cart,
		settings: settings,
		logger:   zap.NewNop(),
		delay:    DefaultDelay,
		now:      time.Now,
		after:    time.After,
		state:    domain.CheckoutIdle,
		method:   domain.PaymentCash,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View is a consistent read of the checkout and the totals it is charging.
type View struct {
	State        domain.CheckoutState
	Method       domain.PaymentMethod
	Tendered     decimal.Decimal
	Change       decimal.Decimal
	Totals       domain.Totals
	Currency     domain.Currency
	QuickAmounts []decimal.Decimal
	Receipt      *domain.Receipt
}

func (c *Checkout) View(ctx context.Context) View {
	settings := c.settings.Get(ctx)
	totals := pricing.Summarize(c.cart.Snapshot().Lines, settings)

	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{
		State:    c.state,
		Method:   c.method,
		Tendered: c.tendered,
		Totals:   totals,
		Currency: settings.Currency,
	}
	if c.receipt != nil {
		r := *c.receipt
		v.Receipt = &r
		v.Totals = r.Totals
		v.Change = r.Change
		return v
	}
	v.Change = Change(c.method, c.tendered, totals.Total)
	if c.method == domain.PaymentCash && c.state != domain.CheckoutIdle {
		v.QuickAmounts = QuickAmounts(totals.Total)
	}
	return v
}

// Processing reports whether a sale is inside the processing delay.
func (c *Checkout) Processing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == domain.CheckoutProcessing
}

// Guarded runs fn with the dialog locked, so the sale cannot start or finish while fn edits
// the cart. Edits are refused while processing and while a receipt is on screen.
func (c *Checkout) Guarded(op string, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(op, domain.CheckoutIdle, domain.CheckoutSelectingMethod, domain.CheckoutEnteringTender); err != nil {
		return err
	}
	return fn()
}

func (c *Checkout) State() domain.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts a checkout for the current cart with cash preselected.
func (c *Checkout) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("open", domain.CheckoutIdle); err != nil {
		return err
	}
	if len(c.cart.Snapshot().Lines) == 0 {
		return domain.ErrEmptyCart
	}
	c.state = domain.CheckoutSelectingMethod
	c.method = domain.PaymentCash
	c.tendered = decimal.Zero
	c.logger.Debug("checkout: opened")
	return nil
}

// SelectMethod switches the payment method. Leaving cash discards any tendered amount.
func (c *Checkout) SelectMethod(m domain.PaymentMethod) error {
	if _, err := domain.ParsePaymentMethod(string(m)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("select method", domain.CheckoutSelectingMethod, domain.CheckoutEnteringTender); err != nil {
		return err
	}
	c.method = m
	if m != domain.PaymentCash {
		c.tendered = decimal.Zero
		c.state = domain.CheckoutSelectingMethod
	}
	return nil
}

// SetTendered records the cash handed over by the customer.
func (c *Checkout) SetTendered(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: tendered amount must not be negative", domain.ErrInvalidInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("tender", domain.CheckoutSelectingMethod, domain.CheckoutEnteringTender); err != nil {
		return err
	}
	if c.method != domain.PaymentCash {
		return fmt.Errorf("%w: tender only applies to cash", domain.ErrInvalidTransition)
	}
	c.tendered = amount
	c.state = domain.CheckoutEnteringTender
	return nil
}

// Complete charges the sale. It blocks for the processing delay and returns the receipt,
// which stays available until Acknowledge or Close.
func (c *Checkout) Complete(ctx context.Context) (*domain.Receipt, error) {
	settings := c.settings.Get(ctx)

	c.mu.Lock()
	if err := c.require("complete", domain.CheckoutSelectingMethod, domain.CheckoutEnteringTender); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	cart := c.cart.Snapshot()
	if len(cart.Lines) == 0 {
		c.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	totals := pricing.Summarize(cart.Lines, settings)
	method, tendered := c.method, c.tendered
	if method == domain.PaymentCash && tendered.LessThan(totals.Total) {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: tendered %s, due %s", domain.ErrInsufficientTender, tendered, totals.Total.StringFixed(2))
	}
	prev := c.state
	c.state = domain.CheckoutProcessing
	c.mu.Unlock()

	c.logger.Info("checkout: processing",
		zap.String("method", string(method)),
		zap.String("total", totals.Total.String()),
	)

	select {
	case <-c.after(c.delay):
	case <-ctx.Done():
		c.mu.Lock()
		c.state = prev
		c.mu.Unlock()
		c.logger.Warn("checkout: processing aborted", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	}

	completedAt := c.now()
	receipt := domain.Receipt{
		TransactionID: NewTransactionID(completedAt),
		Method:        method,
		Tendered:      tendered,
		Change:        Change(method, tendered, totals.Total),
		Totals:        totals,
		Lines:         cart.Lines,
		Customer:      cart.Customer,
		CompletedAt:   completedAt.UTC(),
	}

	c.mu.Lock()
	c.state = domain.CheckoutComplete
	c.receipt = &receipt
	c.mu.Unlock()

	c.logger.Info("checkout: sale completed",
		zap.String("transaction_id", receipt.TransactionID),
		zap.String("method", string(method)),
		zap.String("total", totals.Total.String()),
		zap.Int("items", cart.ItemCount()),
	)
	if c.publisher != nil {
		if err := c.publisher.SaleCompleted(ctx, receipt, settings.Currency); err != nil {
			c.logger.Error("checkout: publish sale failed",
				zap.String("transaction_id", receipt.TransactionID),
				zap.Error(err),
			)
		}
	}
	out := receipt
	return &out, nil
}

// Acknowledge dismisses the receipt, resets the dialog and empties the cart.
func (c *Checkout) Acknowledge() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require("acknowledge", domain.CheckoutComplete); err != nil {
		return err
	}
	c.reset()
	c.cart.ClearCart()
	return nil
}

// Close dismisses the dialog. The cart survives unless a sale has just completed.
func (c *Checkout) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case domain.CheckoutProcessing:
		return fmt.Errorf("close: %w", domain.ErrCheckoutBusy)
	case domain.CheckoutComplete:
		c.reset()
		c.cart.ClearCart()
	default:
		c.reset()
	}
	return nil
}

func (c *Checkout) reset() {
	c.state = domain.CheckoutIdle
	c.method = domain.PaymentCash
	c.tendered = decimal.Zero
	c.receipt = nil
}

// require must be called with c.mu held.
func (c *Checkout) require(op string, allowed ...domain.CheckoutState) error {
	for _, s := range allowed {
		if c.state == s {
			return nil
		}
	}
	if c.state == domain.CheckoutProcessing {
		return fmt.Errorf("%s: %w", op, domain.ErrCheckoutBusy)
	}
	return fmt.Errorf("%s from %s: %w", op, c.state, domain.ErrInvalidTransition)
}

// Change is the cash returned to the customer; zero for other methods or short tender.
func Change(method domain.PaymentMethod, tendered, total decimal.Decimal) decimal.Decimal {
	if method != domain.PaymentCash {
		return decimal.Zero
	}
	diff := tendered.Sub(total)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

var quickSteps = []int64{1, 5, 10, 20}

// QuickAmounts suggests round cash amounts at or above total, smallest step first.
func QuickAmounts(total decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(quickSteps))
	for _, step := range quickSteps {
		s := decimal.NewFromInt(step)
		v := total.Div(s).Ceil().Mul(s)
		if v.LessThan(total) || containsDecimal(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsDecimal(list []decimal.Decimal, v decimal.Decimal) bool {
	for _, d := range list {
		if d.Equal(v) {
			return true
		}
	}
	return false
}

// NewTransactionID encodes the millisecond timestamp in upper-case base 36.
func NewTransactionID(t time.Time) string {
	return strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
