package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-terminal/internal/domain"
	cartsvc "pos-terminal/internal/service/cart"
)

type fixedSettings domain.Settings

func (f fixedSettings) Get(context.Context) domain.Settings { return domain.Settings(f) }

type recordingPublisher struct {
	mu       sync.Mutex
	receipts []domain.Receipt
	err      error
}

func (p *recordingPublisher) SaleCompleted(_ context.Context, r domain.Receipt, _ domain.Currency) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.receipts = append(p.receipts, r)
	return p.err
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func instant(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- clock
	return ch
}

// newFixture returns a checkout over a cart holding one 13.06 item at 7.5% tax: total 14.0395.
func newFixture(t *testing.T, opts ...Option) (*Checkout, *cartsvc.Service) {
	t.Helper()
	cart := cartsvc.New()
	cart.AddToCart(domain.Product{ID: "p1", Name: "Platter", SKU: "FOOD009", Price: dec("13.06")})
	settings := fixedSettings{Currency: domain.CurrencyUSD, TaxRate: dec("7.5")}
	opts = append([]Option{WithClock(func() time.Time { return clock }, instant)}, opts...)
	return New(cart, settings, opts...), cart
}

func TestOpen(t *testing.T) {
	co, cart := newFixture(t)
	require.NoError(t, co.Open(context.Background()))
	assert.Equal(t, domain.CheckoutSelectingMethod, co.State())
	assert.Equal(t, domain.PaymentCash, co.View(context.Background()).Method)

	assert.ErrorIs(t, co.Open(context.Background()), domain.ErrInvalidTransition)

	require.NoError(t, co.Close())
	cart.ClearCart()
	assert.ErrorIs(t, co.Open(context.Background()), domain.ErrEmptyCart)
	assert.Equal(t, domain.CheckoutIdle, co.State())
}

func TestCashSale_ChangeAndReceipt(t *testing.T) {
	pub := &recordingPublisher{}
	co, cart := newFixture(t, WithPublisher(pub))
	ctx := context.Background()

	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SetTendered(dec("20")))
	assert.Equal(t, domain.CheckoutEnteringTender, co.State())

	v := co.View(ctx)
	assert.True(t, v.Change.Round(2).Equal(dec("5.96")), "change %s", v.Change)

	receipt, err := co.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutComplete, co.State())
	assert.Equal(t, NewTransactionID(clock), receipt.TransactionID)
	assert.True(t, receipt.Change.Round(2).Equal(dec("5.96")))
	assert.True(t, receipt.Tendered.Equal(dec("20")))
	require.Len(t, pub.receipts, 1)
	assert.Equal(t, receipt.TransactionID, pub.receipts[0].TransactionID)

	// the cart is only cleared once the receipt is dismissed
	assert.Len(t, cart.Snapshot().Lines, 1)
	require.NoError(t, co.Acknowledge())
	assert.Equal(t, domain.CheckoutIdle, co.State())
	assert.Empty(t, cart.Snapshot().Lines)
	assert.Nil(t, cart.Snapshot().Customer)
}

func TestComplete_InsufficientTender(t *testing.T) {
	co, _ := newFixture(t)
	ctx := context.Background()

	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SetTendered(dec("10")))

	_, err := co.Complete(ctx)
	assert.ErrorIs(t, err, domain.ErrInsufficientTender)
	assert.Equal(t, domain.CheckoutEnteringTender, co.State())
	assert.True(t, co.View(ctx).Tendered.Equal(dec("10")))
}

func TestComplete_NonCashIgnoresTender(t *testing.T) {
	co, _ := newFixture(t)
	ctx := context.Background()

	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SetTendered(dec("50")))
	require.NoError(t, co.SelectMethod(domain.PaymentCard))
	assert.Equal(t, domain.CheckoutSelectingMethod, co.State())

	v := co.View(ctx)
	assert.True(t, v.Tendered.IsZero())
	assert.True(t, v.Change.IsZero())
	assert.Empty(t, v.QuickAmounts)

	assert.ErrorIs(t, co.SetTendered(dec("5")), domain.ErrInvalidTransition)

	receipt, err := co.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCard, receipt.Method)
	assert.True(t, receipt.Change.IsZero())
}

func TestSelectMethod_RejectsUnknown(t *testing.T) {
	co, _ := newFixture(t)
	require.NoError(t, co.Open(context.Background()))
	assert.ErrorIs(t, co.SelectMethod("cheque"), domain.ErrInvalidInput)
	assert.ErrorIs(t, co.SetTendered(dec("-1")), domain.ErrInvalidInput)
}

func TestProcessing_BlocksEverything(t *testing.T) {
	release := make(chan time.Time)
	co, _ := newFixture(t, WithClock(func() time.Time { return clock }, func(time.Duration) <-chan time.Time { return release }))
	ctx := context.Background()
	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SelectMethod(domain.PaymentBankTransfer))

	done := make(chan error, 1)
	go func() {
		_, err := co.Complete(ctx)
		done <- err
	}()
	require.Eventually(t, co.Processing, time.Second, time.Millisecond)

	assert.ErrorIs(t, co.SelectMethod(domain.PaymentCash), domain.ErrCheckoutBusy)
	assert.ErrorIs(t, co.SetTendered(dec("1")), domain.ErrCheckoutBusy)
	assert.ErrorIs(t, co.Close(), domain.ErrCheckoutBusy)
	assert.ErrorIs(t, co.Acknowledge(), domain.ErrCheckoutBusy)
	assert.ErrorIs(t, co.Open(ctx), domain.ErrCheckoutBusy)
	assert.ErrorIs(t, co.Guarded("edit", func() error { return nil }), domain.ErrCheckoutBusy)

	release <- clock
	require.NoError(t, <-done)
	assert.Equal(t, domain.CheckoutComplete, co.State())
}

func TestGuarded(t *testing.T) {
	co, _ := newFixture(t)
	ctx := context.Background()
	calls := 0
	edit := func() error { calls++; return nil }

	require.NoError(t, co.Guarded("edit", edit))
	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.Guarded("edit", edit))
	require.NoError(t, co.SetTendered(dec("20")))
	require.NoError(t, co.Guarded("edit", edit))

	boom := errors.New("boom")
	assert.ErrorIs(t, co.Guarded("edit", func() error { return boom }), boom)

	_, err := co.Complete(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, co.Guarded("edit", edit), domain.ErrInvalidTransition)
	assert.Equal(t, 3, calls)
}

func TestComplete_CancelledRestoresState(t *testing.T) {
	co, _ := newFixture(t, WithClock(time.Now, func(time.Duration) <-chan time.Time { return nil }))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SetTendered(dec("15")))

	cancel()
	_, err := co.Complete(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.CheckoutEnteringTender, co.State())
}

func TestComplete_PublishFailureDoesNotFailSale(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	co, _ := newFixture(t, WithPublisher(pub))
	ctx := context.Background()
	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SelectMethod(domain.PaymentWallet))

	_, err := co.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutComplete, co.State())
}

func TestClose(t *testing.T) {
	co, cart := newFixture(t)
	ctx := context.Background()

	require.NoError(t, co.Close())
	require.NoError(t, co.Open(ctx))
	require.NoError(t, co.SetTendered(dec("100")))
	require.NoError(t, co.Close())
	assert.Equal(t, domain.CheckoutIdle, co.State())
	assert.Len(t, cart.Snapshot().Lines, 1)
	assert.True(t, co.View(ctx).Tendered.IsZero())

	require.NoError(t, co.Open(ctx))
	_, err := co.Complete(ctx)
	assert.ErrorIs(t, err, domain.ErrInsufficientTender)
	require.NoError(t, co.SetTendered(dec("100")))
	_, err = co.Complete(ctx)
	require.NoError(t, err)
	require.NoError(t, co.Close())
	assert.Empty(t, cart.Snapshot().Lines)
}

func TestQuickAmounts(t *testing.T) {
	cases := []struct {
		total string
		want  []string
	}{
		{"14.04", []string{"15", "20"}},
		{"7.525", []string{"8", "10", "20"}},
		{"23", []string{"23", "25", "30", "40"}},
		{"40", []string{"40"}},
		{"0", []string{"0"}},
	}
	for _, tc := range cases {
		t.Run(tc.total, func(t *testing.T) {
			got := QuickAmounts(dec(tc.total))
			require.Len(t, got, len(tc.want))
			for i, w := range tc.want {
				assert.True(t, got[i].Equal(dec(w)), "index %d: got %s want %s", i, got[i], w)
				assert.False(t, got[i].LessThan(dec(tc.total)))
			}
		})
	}
}

func TestChange(t *testing.T) {
	assert.True(t, Change(domain.PaymentCash, dec("20"), dec("14.04")).Equal(dec("5.96")))
	assert.True(t, Change(domain.PaymentCash, dec("10"), dec("14.04")).IsZero())
	assert.True(t, Change(domain.PaymentUSSD, dec("20"), dec("14.04")).IsZero())
}

func TestNewTransactionID(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "LOYW3V28", NewTransactionID(at))
	assert.Equal(t, NewTransactionID(at), NewTransactionID(at))
	assert.NotEqual(t, NewTransactionID(at), NewTransactionID(at.Add(time.Millisecond)))
}
