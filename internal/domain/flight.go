package domain

import "fmt"

type CabinClass string

const (
	CabinEconomy  CabinClass = "Economy"
	CabinBusiness CabinClass = "Business"
)

// BusinessMultiplier converts an economy base price into the business
// cabin price for the same flight.
const BusinessMultiplier = 1.8

// FlightOffer is one bookable class of one flight. Offers are generated
// fresh for every search and are never stored on their own; once selected
// the fields are copied by value into the BookingRecord.
type FlightOffer struct {
	Airline       string     `json:"airline"`
	FlightNumber  string     `json:"flightNumber"`
	DepartureTime string     `json:"departureTime"`
	ArrivalTime   string     `json:"arrivalTime"`
	SeatClass     CabinClass `json:"seatClass"`
	BasePrice     float64    `json:"basePrice"`
	Price         string     `json:"price"`
	IsConnecting  bool       `json:"isConnecting"`
}

// DisplayPrice rounds to whole currency units for listing. BasePrice keeps
// the exact value so later totals accumulate without rounding drift.
func DisplayPrice(price float64) string {
	return fmt.Sprintf("%.0f", price)
}
