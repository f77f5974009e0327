package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"foodstore/internal/domain/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

// 会計完了を流すfanout exchange
const InvoicesExchange = "invoices_fanout"

// amqp.Channelのうち使うところだけ
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher は RabbitMQ へイベントを送る
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	log      *slog.Logger
}

// Dial は接続してexchangeを宣言する
func Dial(url string, log *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		InvoicesExchange, // name
		"fanout",         // type
		true,             // durable
		false,            // auto-deleted
		false,            // internal
		false,            // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newPublisher(ch, InvoicesExchange, log)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, log *slog.Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, log: log}
}

// PublishInvoicePaid は会計完了イベントを送る
func (p *Publisher) PublishInvoicePaid(ctx context.Context, ev model.InvoicePaidEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.InvoiceID,
		Type:         "invoice.paid",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	p.log.Debug("event published",
		slog.String("action", "invoice_paid_published"),
		slog.String("exchange", p.exchange),
		slog.String("invoice_id", ev.InvoiceID),
		slog.Int("message_size", len(body)),
	)
	return nil
}

func (p *Publisher) Close() error {
	var firstErr error
	if p.ch != nil {
		firstErr = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NopPublisher はRABBITMQ_URL未設定のとき用
type NopPublisher struct{}

func (NopPublisher) PublishInvoicePaid(context.Context, model.InvoicePaidEvent) error { return nil }
func (NopPublisher) Close() error                                                    { return nil }
