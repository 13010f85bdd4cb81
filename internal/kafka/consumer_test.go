package kafka

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	messages []kafkaGo.Message
}

func (s *stubReader) ReadMessage(ctx context.Context) (kafkaGo.Message, error) {
	if len(s.messages) == 0 {
		return kafkaGo.Message{}, io.EOF
	}
	msg := s.messages[0]
	s.messages = s.messages[1:]
	return msg, nil
}

func (s *stubReader) Close() error { return nil }

func TestConsumer_Consume_decodesOrderEvents(t *testing.T) {
	payload, err := json.Marshal(OrderEvent{
		Type:      "order_created",
		OrderID:   42,
		UserEmail: "passenger@example.com",
		Tickets:   []TicketRef{{FlightID: 7, Row: 2, Seat: 3}},
	})
	require.NoError(t, err)

	consumer := &Consumer{reader: &stubReader{messages: []kafkaGo.Message{
		{Value: []byte("not json")},
		{Value: payload},
	}}}

	var events []OrderEvent
	err = consumer.Consume(context.Background(), func(ctx context.Context, event OrderEvent) error {
		events = append(events, event)
		return nil
	})

	assert.Equal(t, io.EOF, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(42), events[0].OrderID)
	assert.Equal(t, "passenger@example.com", events[0].UserEmail)
}

func TestConsumer_Consume_stopsOnHandlerError(t *testing.T) {
	payload, err := json.Marshal(OrderEvent{OrderID: 1})
	require.NoError(t, err)

	consumer := &Consumer{reader: &stubReader{messages: []kafkaGo.Message{
		{Value: payload},
		{Value: payload},
	}}}

	calls := 0
	err = consumer.Consume(context.Background(), func(ctx context.Context, event OrderEvent) error {
		calls++
		return context.Canceled
	})

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 1, calls)
}
