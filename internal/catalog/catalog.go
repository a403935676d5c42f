package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/meltemk/skyticket/internal/domain"
)

// baseFlight is a schedule row before class expansion.
type baseFlight struct {
	airline       string
	flightNumber  string
	departureTime string
	arrivalTime   string
	economyPrice  float64
	isConnecting  bool
}

var baseFlights = []baseFlight{
	{airline: "Turkish Airlines", flightNumber: "TK1234", departureTime: "08:30", arrivalTime: "10:00", economyPrice: 1450},
	{airline: "Pegasus", flightNumber: "PC5678", departureTime: "09:15", arrivalTime: "10:45", economyPrice: 1380},
	{airline: "AnadoluJet", flightNumber: "AJ9101", departureTime: "11:00", arrivalTime: "12:30", economyPrice: 1410},
	{airline: "SunExpress", flightNumber: "XQ222", departureTime: "07:00", arrivalTime: "08:30", economyPrice: 1520},
}

var connectingFlights = []baseFlight{
	{airline: "Turkish Airlines", flightNumber: "TK7890", departureTime: "06:00", arrivalTime: "12:00", economyPrice: 1350, isConnecting: true},
	{airline: "Pegasus", flightNumber: "PC1122", departureTime: "10:00", arrivalTime: "15:00", economyPrice: 1300, isConnecting: true},
}

type SortOrder string

const (
	SortNone  SortOrder = ""
	SortPrice SortOrder = "price"
	// SortTime compares departure times lexicographically, which is
	// correct only while they stay zero-padded 24h HH:MM.
	SortTime SortOrder = "time"
)

// Service produces simulated flight offers. There is no live schedule
// source; the same fixed set answers every search, expanded into one
// Economy and one Business offer per flight.
type Service struct {
	delay time.Duration
}

func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Search waits out the simulated network latency and returns the offers
// for the given criteria. The wait is abandoned if ctx is canceled.
func (s *Service) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return OffersFor(criteria), nil
}

// OffersFor expands the fixed schedule into offers without the simulated
// latency. Results are deterministic for given criteria, so downstream
// stages can re-derive the offer list instead of storing it.
func OffersFor(criteria domain.SearchCriteria) []domain.FlightOffer {
	flights := baseFlights
	if criteria.IsConnectingFlight {
		flights = append(append([]baseFlight{}, baseFlights...), connectingFlights...)
	}

	offers := make([]domain.FlightOffer, 0, 2*len(flights))
	for _, f := range flights {
		businessPrice := f.economyPrice * domain.BusinessMultiplier
		offers = append(offers,
			domain.FlightOffer{
				Airline:       f.airline,
				FlightNumber:  f.flightNumber,
				DepartureTime: f.departureTime,
				ArrivalTime:   f.arrivalTime,
				SeatClass:     domain.CabinEconomy,
				BasePrice:     f.economyPrice,
				Price:         domain.DisplayPrice(f.economyPrice),
				IsConnecting:  f.isConnecting,
			},
			domain.FlightOffer{
				Airline:       f.airline,
				FlightNumber:  f.flightNumber,
				DepartureTime: f.departureTime,
				ArrivalTime:   f.arrivalTime,
				SeatClass:     domain.CabinBusiness,
				BasePrice:     businessPrice,
				Price:         domain.DisplayPrice(businessPrice),
				IsConnecting:  f.isConnecting,
			},
		)
	}
	return offers
}

// Sort orders offers for display. Sorting is a presentation concern, so
// Search itself guarantees no order; callers apply this on the way out.
func Sort(offers []domain.FlightOffer, order SortOrder) []domain.FlightOffer {
	sorted := make([]domain.FlightOffer, len(offers))
	copy(sorted, offers)
	switch order {
	case SortPrice:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BasePrice < sorted[j].BasePrice })
	case SortTime:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DepartureTime < sorted[j].DepartureTime })
	}
	return sorted
}
