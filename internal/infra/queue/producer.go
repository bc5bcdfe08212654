package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/digiwolf/leads/internal/infra/integration/facebook"
	"github.com/digiwolf/leads/internal/infra/metrics"
)

// Publisher é o pedaço do *amqp.Channel que o producer usa.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ConversionProducer enfileira eventos de conversão em vez de chamar a Graph API direto.
type ConversionProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *ConversionProducer {
	return &ConversionProducer{Ch: ch}
}

func (p *ConversionProducer) SendLeadEvent(ctx context.Context, event facebook.LeadEventInput) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		metrics.RecordIntegrationError("rabbitmq")
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	metrics.RecordConversionEvent(metrics.OutcomeQueued)
	return nil
}
