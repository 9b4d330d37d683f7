// Package events announces completed sales to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/pricing"
)

const (
	DefaultExchange         = "pos_events"
	SaleCompletedRoutingKey = "sale.completed"
)

// SaleLine is one line of a completed sale.
type SaleLine struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Discount  string `json:"discount"`
	LineTotal string `json:"lineTotal"`
}

// SaleCompleted is the message body published for every completed sale. Amounts are decimal
// strings in the till currency.
type SaleCompleted struct {
	EventID       string     `json:"eventId"`
	TransactionID string     `json:"transactionId"`
	OccurredAt    time.Time  `json:"occurredAt"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"paymentMethod"`
	CustomerID    string     `json:"customerId,omitempty"`
	Subtotal      string     `json:"subtotal"`
	Discount      string     `json:"discount"`
	Tax           string     `json:"tax"`
	Total         string     `json:"total"`
	Tendered      string     `json:"tendered"`
	Change        string     `json:"change"`
	Lines         []SaleLine `json:"lines"`
}

// NewSaleCompleted builds the event for receipt, rounding amounts to cents.
func NewSaleCompleted(receipt domain.Receipt, currency domain.Currency) SaleCompleted {
	ev := SaleCompleted{
		EventID:       uuid.NewString(),
		TransactionID: receipt.TransactionID,
		OccurredAt:    receipt.CompletedAt,
		Currency:      string(currency),
		PaymentMethod: string(receipt.Method),
		Subtotal:      receipt.Totals.Subtotal.StringFixed(2),
		Discount:      receipt.Totals.Discount.StringFixed(2),
		Tax:           receipt.Totals.Tax.StringFixed(2),
		Total:         receipt.Totals.Total.StringFixed(2),
		Tendered:      receipt.Tendered.StringFixed(2),
		Change:        receipt.Change.StringFixed(2),
		Lines:         make([]SaleLine, 0, len(receipt.Lines)),
	}
	if receipt.Customer != nil {
		ev.CustomerID = receipt.Customer.ID
	}
	for _, l := range receipt.Lines {
		ev.Lines = append(ev.Lines, SaleLine{
			ProductID: l.Product.ID,
			SKU:       l.Product.SKU,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price.StringFixed(2),
			Discount:  pricing.LineDiscount(l).StringFixed(2),
			LineTotal: pricing.LineTotal(l).StringFixed(2),
		})
	}
	return ev
}

// LogPublisher writes sale events to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) SaleCompleted(_ context.Context, receipt domain.Receipt, currency domain.Currency) error {
	ev := NewSaleCompleted(receipt, currency)
	p.logger.Info("events: sale completed",
		zap.String("event_id", ev.EventID),
		zap.String("transaction_id", ev.TransactionID),
		zap.String("payment_method", ev.PaymentMethod),
		zap.String("total", ev.Total),
		zap.String("currency", ev.Currency),
		zap.Int("lines", len(ev.Lines)),
	)
	return nil
}
