package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/digiwolf/leads/internal/infra/integration/facebook"
	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/infra/metrics"
)

// ConversionSender é quem entrega o evento de fato (o client do Facebook).
type ConversionSender interface {
	SendLeadEvent(ctx context.Context, event facebook.LeadEventInput) error
}

// Acknowledger é o subconjunto de amqp.Delivery usado pelo worker.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel     *amqp.Channel
	Sender      ConversionSender
	SendTimeout time.Duration
}

func NewWorker(ch *amqp.Channel, sender ConversionSender) *Worker {
	return &Worker{
		Channel:     ch,
		Sender:      sender,
		SendTimeout: 15 * time.Second,
	}
}

// Start consome a fila até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor: %w", err)
	}

	logger.Log.Info().Str("queue", queueName).Msg("worker aguardando eventos de conversão")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d.Body, &d)
		}
	}
}

// handle nunca recoloca a mensagem na fila: falha vai para a DLQ.
func (w *Worker) handle(ctx context.Context, body []byte, ack Acknowledger) {
	var event facebook.LeadEventInput
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.Error().Err(err).Msg("evento malformado na fila")
		_ = ack.Nack(false, false)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()

	if err := w.Sender.SendLeadEvent(sendCtx, event); err != nil {
		logger.Log.Error().Err(err).Str("event_id", event.EventID).Msg("falha ao enviar evento, indo para a DLQ")
		metrics.RecordIntegrationError("rabbitmq")
		_ = ack.Nack(false, false)
		return
	}

	_ = ack.Ack(false)
}
