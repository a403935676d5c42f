package email

import (
	"context"
	"fmt"

	"github.com/meltemk/skyticket/internal/kafka"
)

// Sender simulates the confirmation mail; real delivery is out of scope.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if event.IsChildTicket {
		fmt.Printf("send guardian email to %s about %s for flight %s (pnr %s)\n", event.Email, event.Type, event.FlightNumber, event.PNR)
		return nil
	}
	fmt.Printf("send email to %s about %s for flight %s (pnr %s)\n", event.Email, event.Type, event.FlightNumber, event.PNR)
	return nil
}
