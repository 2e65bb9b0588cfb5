package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/producer"
	"storefront/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrSkip: событие не требует письма.
var ErrSkip = errors.New("no notification for event")

type EmailSender interface {
	SendEmail(n model.EmailNotification) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaOrderConsumer struct {
	reader      messageReader
	emailSender EmailSender
	log         *zap.Logger
}

func NewKafkaOrderConsumer(brokers []string, groupID, topic string, emailSender EmailSender, log *zap.Logger) *KafkaOrderConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaOrderConsumer{reader: r, emailSender: emailSender, log: log}
}

func (c *KafkaOrderConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		c.handle(m)
	}
}

func (c *KafkaOrderConsumer) handle(m kafka.Message) {
	var env producer.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		c.log.Error("unmarshal envelope", zap.ByteString("value", m.Value), zap.Error(err))
		return
	}

	n, err := Notification(env)
	if errors.Is(err, ErrSkip) {
		c.log.Debug("event skipped", zap.String("type", env.Type), zap.String("event_id", env.EventID))
		return
	}
	if err != nil {
		c.log.Warn("invalid order event", zap.String("type", env.Type), zap.String("event_id", env.EventID), zap.Error(err))
		return
	}

	if err := c.emailSender.SendEmail(*n); err != nil {
		c.log.Error("send email failed", zap.String("to", n.To), zap.String("template", n.Template), zap.Error(err))
		return
	}
	c.log.Info("email sent", zap.String("to", n.To), zap.String("template", n.Template), zap.String("event_id", env.EventID))
}

func (c *KafkaOrderConsumer) Close() error { return c.reader.Close() }

var statusLabels = map[string]string{
	"pending":   "pendiente",
	"paid":      "pagado",
	"shipped":   "enviado",
	"delivered": "entregado",
}

func shortID(id fmt.Stringer) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Notification превращает событие заказа в письмо покупателю.
func Notification(env producer.Envelope) (*model.EmailNotification, error) {
	switch env.Type {
	case producer.EventOrderPlaced:
		var e service.OrderPlacedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, err
		}
		if e.Email == "" {
			return nil, errors.New("order placed event without email")
		}
		items := make([]map[string]any, 0, len(e.Items))
		for _, it := range e.Items {
			items = append(items, map[string]any{
				"Name":     it.ProductName,
				"Quantity": it.Quantity,
				"Price":    it.Price.StringFixed(2),
				"Subtotal": it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2),
			})
		}
		return &model.EmailNotification{
			To:       e.Email,
			Subject:  "Recibimos tu pedido #" + shortID(e.OrderID),
			Template: "order_placed",
			Data: map[string]any{
				"FullName": e.FullName,
				"OrderID":  e.OrderID.String(),
				"ShortID":  shortID(e.OrderID),
				"Items":    items,
				"Total":    e.TotalAmount.StringFixed(2),
			},
		}, nil

	case producer.EventOrderStatusChanged:
		var e service.OrderStatusChangedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, err
		}
		if e.Email == "" {
			return nil, errors.New("status changed event without email")
		}
		to := string(e.To)
		label, ok := statusLabels[to]
		if !ok {
			label = to
		}
		return &model.EmailNotification{
			To:       e.Email,
			Subject:  fmt.Sprintf("Tu pedido #%s está %s", shortID(e.OrderID), label),
			Template: "order_status_changed",
			Data: map[string]any{
				"FullName": e.FullName,
				"OrderID":  e.OrderID.String(),
				"ShortID":  shortID(e.OrderID),
				"Status":   label,
			},
		}, nil
	}
	return nil, ErrSkip
}
