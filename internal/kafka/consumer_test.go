package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConsumer(t *testing.T) {
	consumer := NewConsumer([]string{"localhost:9092"}, "skyticket-notifier", "ticket-notifications")
	assert.NotNil(t, consumer)
	assert.NoError(t, consumer.Close())
}

func TestDecodeTicketEvent(t *testing.T) {
	payload, err := json.Marshal(TicketEvent{
		Type:         "ticket_issued",
		PNR:          "482913",
		Airline:      "Turkish Airlines",
		FlightNumber: "TK1234",
		Email:        "ayse@example.com",
		FinalPrice:   1450,
	})
	assert.NoError(t, err)

	event, err := decodeTicketEvent(payload)
	assert.NoError(t, err)
	assert.Equal(t, "ticket_issued", event.Type)
	assert.Equal(t, "482913", event.PNR)
	assert.Equal(t, "ayse@example.com", event.Email)
}

func TestDecodeTicketEvent_Garbage(t *testing.T) {
	_, err := decodeTicketEvent([]byte("not json"))
	assert.Error(t, err)
}
