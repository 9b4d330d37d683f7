package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
)

// RabbitConfig holds the broker connection settings.
type RabbitConfig struct {
	URL      string
	Exchange string
	// Attempts bounds the dial retries; zero means 5.
	Attempts int
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes sale events to a durable topic exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *zap.Logger
	now      func() time.Time
}

// DialRabbit connects with backoff, opens a channel and declares the exchange.
func DialRabbit(ctx context.Context, cfg RabbitConfig, logger *zap.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 5
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for i := 0; i < attempts; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		if i == attempts-1 {
			break
		}
		wait := time.Duration(i*i)*time.Second + time.Second
		logger.Warn("rabbitmq: dial failed, retrying", zap.Duration("in", wait), zap.Error(err))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq after %d attempts: %w", attempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}
	logger.Info("rabbitmq: exchange ready", zap.String("exchange", cfg.Exchange))

	p := newRabbitPublisher(ch, cfg.Exchange, logger)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch channel, exchange string, logger *zap.Logger) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange, logger: logger, now: time.Now}
}

func (p *RabbitPublisher) SaleCompleted(ctx context.Context, receipt domain.Receipt, currency domain.Currency) error {
	ev := NewSaleCompleted(receipt, currency)
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal sale event: %w", err)
	}
	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		SaleCompletedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Timestamp:    p.now(),
			Type:         SaleCompletedRoutingKey,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", p.exchange, SaleCompletedRoutingKey, err)
	}
	p.logger.Debug("rabbitmq: published",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", SaleCompletedRoutingKey),
		zap.String("transaction_id", ev.TransactionID),
	)
	return nil
}

// Close closes the channel and then the connection.
func (p *RabbitPublisher) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
