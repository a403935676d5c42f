package ledger

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/kafka"
	"github.com/meltemk/skyticket/internal/repository"
)

var (
	ErrNoPNR = errors.New("booking has no pnr assigned")
	// ErrTicketExpired rejects cancellation once the departure date has
	// passed; expired tickets only render.
	ErrTicketExpired = errors.New("ticket departure date has passed")
)

// TicketView is the listing projection of a ledger entry: the persisted
// snapshot plus the expired flag computed against the current day.
type TicketView struct {
	domain.TicketLedgerEntry
	Expired bool `json:"expired"`
}

type UseCase interface {
	Finalize(ctx context.Context, record domain.BookingRecord, loggedInEmail string) ([]domain.TicketLedgerEntry, error)
	TicketsFor(ctx context.Context, email string) ([]TicketView, error)
	Cancel(ctx context.Context, pnr string) (int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Service struct {
	tickets            repository.TicketRepository
	producer           Producer
	ticketsTopic       string
	notificationsTopic string
	now                func() time.Time
}

type ServiceOption func(*Service)

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) { s.notificationsTopic = topic }
}

// WithClock replaces the wall clock the expired flag is computed against.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(tickets repository.TicketRepository, producer Producer, ticketsTopic string, opts ...ServiceOption) *Service {
	s := &Service{
		tickets:      tickets,
		producer:     producer,
		ticketsTopic: ticketsTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Finalize materializes ledger entries for a paid booking: the primary
// entry stamped with the purchaser, plus one guardian-linked clone per
// child passenger carrying a guardian email. Children sharing a guardian
// intentionally each produce their own clone.
//
// Finalize is idempotent on (pnr, purchaserEmail): if the ledger already
// holds entries for the pair, nothing is written and the existing entries
// come back. The confirmation view may re-render any number of times.
func (s *Service) Finalize(ctx context.Context, record domain.BookingRecord, loggedInEmail string) ([]domain.TicketLedgerEntry, error) {
	if record.PNR == 0 {
		return nil, ErrNoPNR
	}
	pnr := strconv.Itoa(record.PNR)

	existing, err := s.tickets.ListByPNRAndPurchaser(ctx, pnr, loggedInEmail)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	primary := domain.TicketLedgerEntry{
		BookingRecord:  record.Clone(),
		PurchaserEmail: loggedInEmail,
	}
	entries := []domain.TicketLedgerEntry{primary}

	for _, p := range record.Passengers {
		if !p.IsChild || p.ParentInfo == nil || p.ParentInfo.Email == "" {
			continue
		}
		clone := primary
		clone.BookingRecord = primary.BookingRecord.Clone()
		clone.AssociatedUserEmail = p.ParentInfo.Email
		clone.IsChildTicket = true
		entries = append(entries, clone)
	}

	if err := s.tickets.AppendAll(ctx, entries); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := s.publish(ctx, "ticket_issued", entry); err != nil {
			log.Printf("WARNING: failed to publish ticket_issued for pnr %s: %v", pnr, err)
		}
	}
	return entries, nil
}

// TicketsFor lists the account's tickets, flagging the ones whose flight
// has already departed.
func (s *Service) TicketsFor(ctx context.Context, email string) ([]TicketView, error) {
	entries, err := s.tickets.ListByAccount(ctx, email)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]TicketView, len(entries))
	for i, entry := range entries {
		views[i] = TicketView{TicketLedgerEntry: entry, Expired: entry.Expired(now)}
	}
	return views, nil
}

// Cancel removes every ledger entry whose pnr matches, the primary entry
// and any guardian-linked clones alike; they share the pnr, so this is a
// bulk deletion. The match is string-normalized. An expired ticket cannot
// be cancelled anymore.
func (s *Service) Cancel(ctx context.Context, pnr string) (int64, error) {
	existing, err := s.tickets.ListByPNR(ctx, pnr)
	if err != nil {
		return 0, err
	}
	now := s.now()
	for _, entry := range existing {
		if entry.Expired(now) {
			return 0, ErrTicketExpired
		}
	}

	removed, err := s.tickets.DeleteByPNR(ctx, pnr)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		if err := s.publish(ctx, "ticket_cancelled", domain.TicketLedgerEntry{BookingRecord: domain.BookingRecord{PNR: pnrAsInt(pnr)}}); err != nil {
			log.Printf("WARNING: failed to publish ticket_cancelled for pnr %s: %v", pnr, err)
		}
	}
	return removed, nil
}

func (s *Service) publish(ctx context.Context, eventType string, entry domain.TicketLedgerEntry) error {
	if s.producer == nil || s.ticketsTopic == "" {
		return nil
	}
	email := entry.PurchaserEmail
	if entry.IsChildTicket {
		email = entry.AssociatedUserEmail
	}
	event := kafka.TicketEvent{
		Type:          eventType,
		PNR:           entry.PNRString(),
		Airline:       entry.Airline,
		FlightNumber:  entry.FlightNumber,
		Email:         email,
		IsChildTicket: entry.IsChildTicket,
		FinalPrice:    entry.FinalPrice,
	}
	if err := s.producer.Publish(ctx, s.ticketsTopic, event.PNR, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.PNR, event)
	}
	return nil
}

func pnrAsInt(pnr string) int {
	n, _ := strconv.Atoi(domain.NormalizePNR(pnr))
	return n
}

var _ UseCase = (*Service)(nil)
