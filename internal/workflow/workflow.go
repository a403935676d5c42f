package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/meltemk/skyticket/internal/catalog"
	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/seatmap"
	"github.com/meltemk/skyticket/internal/session"
)

// Redirect targets handed back with precondition failures. The caller is
// expected to navigate there; nothing about the failure is recoverable in
// place.
const (
	RedirectSearch  = "/search"
	RedirectFlights = "/flights"
	RedirectHome    = "/"
)

type UseCase interface {
	SubmitSearch(ctx context.Context, sessionID string, criteria domain.SearchCriteria) error
	Offers(ctx context.Context, sessionID string, order catalog.SortOrder) ([]domain.FlightOffer, error)
	SelectFlight(ctx context.Context, sessionID, flightNumber string, class domain.CabinClass) (*domain.BookingRecord, error)
	SeatMap(ctx context.Context, sessionID string) (*SeatMapView, error)
	ToggleSeat(ctx context.Context, sessionID, seatID string) ([]string, error)
	ConfirmSeats(ctx context.Context, sessionID string) (*domain.BookingRecord, error)
	QuickBooking(ctx context.Context, sessionID string, input QuickBookingInput) (*domain.BookingRecord, error)
	SubmitPassengers(ctx context.Context, sessionID string, passengers []domain.Passenger) (*domain.BookingRecord, error)
	SubmitPayment(ctx context.Context, sessionID string, card CardDetails) (*domain.BookingRecord, error)
	Confirmation(ctx context.Context, sessionID string) (*domain.BookingRecord, error)
	CompleteBooking(ctx context.Context, sessionID string) error
}

// Catalog is the flight search collaborator. Its Search call carries the
// simulated network latency.
type Catalog interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error)
}

// PNRChecker answers whether a candidate pnr already exists in the ledger.
type PNRChecker interface {
	PNRExists(ctx context.Context, pnr string) (bool, error)
}

// SeatMapView is the seat-selection projection: geometry plus the
// session's current progress toward the required seat count.
type SeatMapView struct {
	Layout        seatmap.Layout `json:"layout"`
	SelectedSeats []string       `json:"selectedSeats"`
	Capacity      int            `json:"capacity"`
}

// QuickBookingInput seeds a booking from the quick-booking surface: no
// catalog search, no seat map, a synthetic Unknown flight. The resulting
// record converges on the same passenger/payment path as a full search.
type QuickBookingInput struct {
	From          string            `json:"from"`
	To            string            `json:"to"`
	DepartureDate string            `json:"departureDate"`
	DepartureTime string            `json:"departureTime"`
	BasePrice     float64           `json:"basePrice"`
	SeatClass     domain.CabinClass `json:"seatClass"`
	Passengers    int               `json:"passengers"`
}

type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type Service struct {
	sessions     session.Repository
	catalog      Catalog
	pnrs         PNRChecker
	paymentDelay time.Duration
	validate     *fieldValidator
	now          func() time.Time
	pnrGen       func() int
}

type ServiceOption func(*Service)

// WithClock replaces the wall clock used for card expiry checks.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithPNRGenerator replaces the random pnr source.
func WithPNRGenerator(gen func() int) ServiceOption {
	return func(s *Service) { s.pnrGen = gen }
}

func NewService(sessions session.Repository, flightCatalog Catalog, pnrs PNRChecker, paymentDelay time.Duration, opts ...ServiceOption) *Service {
	s := &Service{
		sessions:     sessions,
		catalog:      flightCatalog,
		pnrs:         pnrs,
		paymentDelay: paymentDelay,
		validate:     newFieldValidator(),
		now:          time.Now,
		pnrGen:       func() int { return 100000 + rand.Intn(900000) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitSearch validates and persists the search criteria. Any booking
// accumulated under previous criteria is discarded; criteria are immutable
// once a flight has been chosen, so a new search starts a new booking.
func (s *Service) SubmitSearch(ctx context.Context, sessionID string, criteria domain.SearchCriteria) error {
	verr := &domain.ValidationError{}
	if criteria.From == "" {
		verr.Add("from")
	}
	if criteria.To == "" {
		verr.Add("to")
	}
	if criteria.DepartureDate == "" {
		verr.Add("departureDate")
	}
	if criteria.IsRoundTrip && criteria.ReturnDate == "" {
		verr.Add("returnDate")
	}
	if criteria.Adults < 1 {
		verr.Add("adults")
	}
	if criteria.Children < 0 {
		verr.Add("children")
	}
	if verr.HasFields() {
		return verr
	}

	raw, err := json.Marshal(criteria)
	if err != nil {
		return err
	}
	if err := s.sessions.Set(ctx, sessionID, session.KeySearchCriteria, string(raw)); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID, session.KeyBookingDetails, session.KeyPaymentComplete)
}

// Offers runs the catalog search for the stored criteria and sorts the
// results for display. An empty result is not an error.
func (s *Service) Offers(ctx context.Context, sessionID string, order catalog.SortOrder) ([]domain.FlightOffer, error) {
	criteria, err := s.loadCriteria(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	offers, err := s.catalog.Search(ctx, *criteria)
	if err != nil {
		return nil, err
	}
	return catalog.Sort(offers, order), nil
}

// SelectFlight pins one offer into the booking record and moves the
// workflow to seat selection.
func (s *Service) SelectFlight(ctx context.Context, sessionID, flightNumber string, class domain.CabinClass) (*domain.BookingRecord, error) {
	criteria, err := s.loadCriteria(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	offer, ok := findOffer(catalog.OffersFor(*criteria), flightNumber, class)
	if !ok {
		return nil, domain.ErrNoFlightSelected
	}

	record := &domain.BookingRecord{
		SearchCriteria:  *criteria,
		FlightOffer:     offer,
		SelectedSeats:   []string{},
		FromReservation: true,
	}
	if err := s.saveBooking(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) SeatMap(ctx context.Context, sessionID string) (*SeatMapView, error) {
	record, err := s.loadBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record.FlightNumber == "" {
		return nil, domain.ErrNoFlightSelected
	}
	layout, err := seatmap.ForClass(record.SeatClass)
	if err != nil {
		return nil, err
	}
	return &SeatMapView{
		Layout:        layout,
		SelectedSeats: record.SelectedSeats,
		Capacity:      record.TotalPassengers(),
	}, nil
}

// ToggleSeat flips one seat in the working selection. Capacity overruns
// and unavailable seats are rejected without touching the selection.
func (s *Service) ToggleSeat(ctx context.Context, sessionID, seatID string) ([]string, error) {
	record, err := s.loadBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record.FlightNumber == "" {
		return nil, domain.ErrNoFlightSelected
	}
	layout, err := seatmap.ForClass(record.SeatClass)
	if err != nil {
		return nil, err
	}
	selection, err := seatmap.Toggle(layout, record.SelectedSeats, seatID, record.TotalPassengers())
	if err != nil {
		return record.SelectedSeats, err
	}
	record.SelectedSeats = selection
	if err := s.saveBooking(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return selection, nil
}

// ConfirmSeats requires the selection to cover every passenger exactly,
// then fixes the total price and moves the workflow to passenger info.
func (s *Service) ConfirmSeats(ctx context.Context, sessionID string) (*domain.BookingRecord, error) {
	record, err := s.loadBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record.FlightNumber == "" {
		return nil, domain.ErrNoFlightSelected
	}
	required := record.TotalPassengers()
	if len(record.SelectedSeats) != required {
		return nil, &domain.SeatCountError{Required: required, Selected: len(record.SelectedSeats)}
	}

	record.FinalPrice = record.BasePrice * float64(len(record.SelectedSeats))
	if err := s.saveBooking(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// QuickBooking seeds a booking without a catalog search. All passengers
// are counted as adults and the seats are positional placeholders, so the
// shared invariants downstream still hold.
func (s *Service) QuickBooking(ctx context.Context, sessionID string, input QuickBookingInput) (*domain.BookingRecord, error) {
	verr := &domain.ValidationError{}
	if input.Passengers < 1 {
		verr.Add("passengers")
	}
	if input.BasePrice <= 0 {
		verr.Add("basePrice")
	}
	if input.SeatClass != domain.CabinEconomy && input.SeatClass != domain.CabinBusiness {
		verr.Add("seatClass")
	}
	if verr.HasFields() {
		return nil, verr
	}

	pricePerPassenger := input.BasePrice
	if input.SeatClass == domain.CabinBusiness {
		pricePerPassenger *= domain.BusinessMultiplier
	}

	seats := make([]string, input.Passengers)
	for i := range seats {
		seats[i] = fmt.Sprintf("Seat %d", i+1)
	}

	record := &domain.BookingRecord{
		SearchCriteria: domain.SearchCriteria{
			From:          input.From,
			To:            input.To,
			DepartureDate: input.DepartureDate,
			Adults:        input.Passengers,
			Children:      0,
		},
		FlightOffer: domain.FlightOffer{
			Airline:       "Unknown Airline",
			FlightNumber:  "Unknown",
			DepartureTime: input.DepartureTime,
			ArrivalTime:   "Unknown",
			SeatClass:     input.SeatClass,
			BasePrice:     pricePerPassenger,
			Price:         domain.DisplayPrice(pricePerPassenger),
		},
		SelectedSeats: seats,
		FinalPrice:    pricePerPassenger * float64(input.Passengers),
	}
	if err := s.saveBooking(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// SubmitPassengers validates every passenger form and, only when all of
// them pass, persists the passenger list and moves the workflow to
// payment. A failed submit persists nothing.
func (s *Service) SubmitPassengers(ctx context.Context, sessionID string, passengers []domain.Passenger) (*domain.BookingRecord, error) {
	record, err := s.loadBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(record.SelectedSeats) == 0 {
		return nil, &domain.PreconditionError{Missing: "selectedSeats", RedirectTo: RedirectHome}
	}
	if len(record.SelectedSeats) != record.TotalPassengers() {
		return nil, &domain.PreconditionError{Missing: "matching seat selection", RedirectTo: RedirectFlights}
	}

	verr := &domain.ValidationError{}
	if len(passengers) != len(record.SelectedSeats) {
		verr.Add("passengers")
		return nil, verr
	}
	for i, p := range passengers {
		// Adults first, then children, in the order the forms are
		// generated and bound to seats.
		wantChild := i >= record.Adults
		if p.IsChild != wantChild {
			verr.Add(fmt.Sprintf("passengers[%d].isChild", i))
			continue
		}
		s.validate.passenger(i, p, verr)
	}
	if verr.HasFields() {
		return nil, verr
	}

	record.Passengers = passengers
	if err := s.saveBooking(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// SubmitPayment validates the card, waits out the simulated processing
// delay and stamps a fresh 6-digit pnr onto the booking.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, card CardDetails) (*domain.BookingRecord, error) {
	record, err := s.loadBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(record.Passengers) == 0 || len(record.Passengers) != len(record.SelectedSeats) {
		return nil, &domain.PreconditionError{Missing: "passengers", RedirectTo: RedirectHome}
	}

	if verr := s.validate.card(card, s.now()); verr.HasFields() {
		return nil, verr
	}

	if s.paymentDelay > 0 {
		timer := time.NewTimer(s.paymentDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	record.PNR = s.generatePNR(ctx)
	if err := s.saveBooking(ctx, sessionID, record); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionID, session.KeyPaymentComplete, "true"); err != nil {
		return nil, err
	}
	return record, nil
}

// generatePNR draws candidates until one is unused in the ledger. If the
// ledger cannot be consulted the last candidate stands; collisions were
// never checked in the simulated domain, so this degrades to that.
func (s *Service) generatePNR(ctx context.Context) int {
	pnr := s.pnrGen()
	for attempt := 0; attempt < 5; attempt++ {
		exists, err := s.pnrs.PNRExists(ctx, fmt.Sprintf("%d", pnr))
		if err != nil || !exists {
			break
		}
		pnr = s.pnrGen()
	}
	return pnr
}

// Confirmation is the terminal projection: it requires a completed
// payment and returns the finished record for display and finalization.
func (s *Service) Confirmation(ctx context.Context, sessionID string) (*domain.BookingRecord, error) {
	record, err := s.loadBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	complete, err := s.sessions.Get(ctx, sessionID, session.KeyPaymentComplete)
	if err != nil {
		return nil, err
	}
	if complete != "true" {
		return nil, &domain.PreconditionError{Missing: session.KeyPaymentComplete, RedirectTo: RedirectHome}
	}
	return record, nil
}

// CompleteBooking is the confirmation page's only exit: the in-progress
// booking is dropped from the session.
func (s *Service) CompleteBooking(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID, session.KeyBookingDetails, session.KeyPaymentComplete)
}

func (s *Service) loadCriteria(ctx context.Context, sessionID string) (*domain.SearchCriteria, error) {
	raw, err := s.sessions.Get(ctx, sessionID, session.KeySearchCriteria)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, &domain.PreconditionError{Missing: session.KeySearchCriteria, RedirectTo: RedirectSearch}
	}
	var criteria domain.SearchCriteria
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (s *Service) loadBooking(ctx context.Context, sessionID string) (*domain.BookingRecord, error) {
	raw, err := s.sessions.Get(ctx, sessionID, session.KeyBookingDetails)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, &domain.PreconditionError{Missing: session.KeyBookingDetails, RedirectTo: RedirectHome}
	}
	var record domain.BookingRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) saveBooking(ctx context.Context, sessionID string, record *domain.BookingRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.sessions.Set(ctx, sessionID, session.KeyBookingDetails, string(raw))
}

func findOffer(offers []domain.FlightOffer, flightNumber string, class domain.CabinClass) (domain.FlightOffer, bool) {
	for _, offer := range offers {
		if offer.FlightNumber == flightNumber && offer.SeatClass == class {
			return offer, true
		}
	}
	return domain.FlightOffer{}, false
}

var _ UseCase = (*Service)(nil)
