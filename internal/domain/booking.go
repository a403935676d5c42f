package domain

// SearchCriteria is what the passenger asked for on the search form.
// Immutable once a flight has been chosen.
type SearchCriteria struct {
	From               string `json:"from"`
	To                 string `json:"to"`
	DepartureDate      string `json:"departureDate"`
	ReturnDate         string `json:"returnDate,omitempty"`
	IsRoundTrip        bool   `json:"isRoundTrip"`
	Adults             int    `json:"adults"`
	Children           int    `json:"children"`
	IsConnectingFlight bool   `json:"isConnectingFlight"`
}

func (c SearchCriteria) TotalPassengers() int {
	return c.Adults + c.Children
}

type ParentInfo struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Passenger carries the data collected on the personal-info forms. Adults
// carry their own contact fields; children carry guardian contact data in
// ParentInfo instead.
type Passenger struct {
	GovernmentID string      `json:"tc"`
	Name         string      `json:"name"`
	Surname      string      `json:"surname"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Gender       string      `json:"gender"`
	Nationality  string      `json:"nationality"`
	IsChild      bool        `json:"isChild"`
	ParentInfo   *ParentInfo `json:"parentInfo,omitempty"`
}

// BookingRecord is the session aggregate built up stage by stage: search
// criteria, then the chosen offer, then seats and price, then passengers,
// then the PNR assigned at payment.
type BookingRecord struct {
	SearchCriteria
	FlightOffer

	SelectedSeats   []string    `json:"selectedSeats,omitempty"`
	FinalPrice      float64     `json:"finalPrice,omitempty"`
	Passengers      []Passenger `json:"passengers,omitempty"`
	PNR             int         `json:"pnr,omitempty"`
	FromReservation bool        `json:"fromReservation,omitempty"`
}

// Clone returns a deep copy. Ledger clones for guardian-linked tickets
// must not alias the primary entry's slices.
func (b BookingRecord) Clone() BookingRecord {
	out := b
	if b.SelectedSeats != nil {
		out.SelectedSeats = make([]string, len(b.SelectedSeats))
		copy(out.SelectedSeats, b.SelectedSeats)
	}
	if b.Passengers != nil {
		out.Passengers = make([]Passenger, len(b.Passengers))
		copy(out.Passengers, b.Passengers)
		for i, p := range b.Passengers {
			if p.ParentInfo != nil {
				info := *p.ParentInfo
				out.Passengers[i].ParentInfo = &info
			}
		}
	}
	return out
}

// Stage names for the booking workflow, in strict forward order.
type Stage string

const (
	StageSearch        Stage = "search"
	StageFlightList    Stage = "flight_list"
	StageSeatSelection Stage = "seat_selection"
	StagePassengerInfo Stage = "passenger_info"
	StagePayment       Stage = "payment"
	StageConfirmation  Stage = "confirmation"
)
