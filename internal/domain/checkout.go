package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentUSSD         PaymentMethod = "ussd"
	PaymentWallet       PaymentMethod = "wallet"
)

// ParsePaymentMethod validates a payment method identifier.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentUSSD, PaymentWallet:
		return m, nil
	}
	return "", fmt.Errorf("%w: unsupported payment method %q", ErrInvalidInput, s)
}

type CheckoutState string

const (
	CheckoutIdle            CheckoutState = "idle"
	CheckoutSelectingMethod CheckoutState = "selecting_method"
	CheckoutEnteringTender  CheckoutState = "entering_tender"
	CheckoutProcessing      CheckoutState = "processing"
	CheckoutComplete        CheckoutState = "complete"
)

func (s CheckoutState) String() string {
	return string(s)
}

// Receipt describes a completed sale until the cashier acknowledges it.
type Receipt struct {
	TransactionID string          `json:"transactionId"`
	Method        PaymentMethod   `json:"paymentMethod"`
	Tendered      decimal.Decimal `json:"tendered"`
	Change        decimal.Decimal `json:"change"`
	Totals        Totals          `json:"totals"`
	Lines         []LineItem      `json:"lineItems"`
	Customer      *Customer       `json:"customer,omitempty"`
	CompletedAt   time.Time       `json:"completedAt"`
}
