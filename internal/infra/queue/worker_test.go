package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/digiwolf/leads/internal/infra/integration/facebook"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendLeadEvent(ctx context.Context, event facebook.LeadEventInput) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockAck struct {
	mock.Mock
}

func (m *MockAck) Ack(multiple bool) error {
	return m.Called(multiple).Error(0)
}

func (m *MockAck) Nack(multiple, requeue bool) error {
	return m.Called(multiple, requeue).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func newTestWorker(sender ConversionSender) *Worker {
	return &Worker{Sender: sender, SendTimeout: time.Second}
}

func TestWorkerHandle_AcksOnSuccess(t *testing.T) {
	sender := new(MockSender)
	ack := new(MockAck)
	event := facebook.LeadEventInput{EventID: "lead-1", Email: "a@b.com"}

	sender.On("SendLeadEvent", mock.Anything, event).Return(nil)
	ack.On("Ack", false).Return(nil)

	body, _ := json.Marshal(event)
	newTestWorker(sender).handle(context.Background(), body, ack)

	sender.AssertExpectations(t)
	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Nack", mock.Anything, mock.Anything)
}

func TestWorkerHandle_NacksWithoutRequeueOnFailure(t *testing.T) {
	sender := new(MockSender)
	ack := new(MockAck)

	sender.On("SendLeadEvent", mock.Anything, mock.Anything).Return(errors.New("graph api 500"))
	ack.On("Nack", false, false).Return(nil)

	body, _ := json.Marshal(facebook.LeadEventInput{EventID: "lead-1"})
	newTestWorker(sender).handle(context.Background(), body, ack)

	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Ack", mock.Anything)
}

func TestWorkerHandle_MalformedMessage(t *testing.T) {
	sender := new(MockSender)
	ack := new(MockAck)
	ack.On("Nack", false, false).Return(nil)

	newTestWorker(sender).handle(context.Background(), []byte("{not json"), ack)

	ack.AssertExpectations(t)
	sender.AssertNotCalled(t, "SendLeadEvent", mock.Anything, mock.Anything)
}

func TestProducer_PublishesPersistentJSON(t *testing.T) {
	pub := new(MockPublisher)
	event := facebook.LeadEventInput{EventID: "lead-1", Phone: "+216"}

	pub.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got facebook.LeadEventInput
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.DeliveryMode == amqp.Persistent &&
			msg.ContentType == "application/json" &&
			msg.MessageId == "lead-1" &&
			got == event
	})).Return(nil)

	require.NoError(t, NewProducer(pub).SendLeadEvent(context.Background(), event))
	pub.AssertExpectations(t)
}

func TestProducer_PublishFailure(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(amqp.ErrClosed)

	err := NewProducer(pub).SendLeadEvent(context.Background(), facebook.LeadEventInput{EventID: "x"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}
