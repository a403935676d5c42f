package seatmap

import (
	"fmt"

	"github.com/meltemk/skyticket/internal/domain"
)

// Layout is the seat geometry for one cabin class. Unavailable seats are
// excluded from the selectable set up front rather than rejected at
// selection time.
type Layout struct {
	Cabin       domain.CabinClass `json:"cabin"`
	FirstRow    int               `json:"firstRow"`
	LastRow     int               `json:"lastRow"`
	Columns     []string          `json:"columns"`
	AisleColumn string            `json:"aisleColumn"`
	Unavailable []string          `json:"unavailableSeats"`
}

var layouts = map[domain.CabinClass]Layout{
	domain.CabinBusiness: {
		Cabin:       domain.CabinBusiness,
		FirstRow:    1,
		LastRow:     5,
		Columns:     []string{"A", "B", "C", "D"},
		AisleColumn: "C",
		Unavailable: []string{"1A", "2C", "3D"},
	},
	domain.CabinEconomy: {
		Cabin:       domain.CabinEconomy,
		FirstRow:    6,
		LastRow:     20,
		Columns:     []string{"A", "B", "C", "D", "E", "F"},
		AisleColumn: "D",
		Unavailable: []string{"5B", "6E", "7A", "10C", "12F", "14A", "15F"},
	},
}

func ForClass(cabin domain.CabinClass) (Layout, error) {
	layout, ok := layouts[cabin]
	if !ok {
		return Layout{}, fmt.Errorf("unknown cabin class %q", cabin)
	}
	return layout, nil
}

func (l Layout) SeatExists(seatID string) bool {
	for row := l.FirstRow; row <= l.LastRow; row++ {
		for _, col := range l.Columns {
			if seatID == fmt.Sprintf("%d%s", row, col) {
				return true
			}
		}
	}
	return false
}

func (l Layout) IsUnavailable(seatID string) bool {
	for _, s := range l.Unavailable {
		if s == seatID {
			return true
		}
	}
	return false
}

// SelectableSeats enumerates every seat a passenger may pick, row by row.
func (l Layout) SelectableSeats() []string {
	var seats []string
	for row := l.FirstRow; row <= l.LastRow; row++ {
		for _, col := range l.Columns {
			id := fmt.Sprintf("%d%s", row, col)
			if !l.IsUnavailable(id) {
				seats = append(seats, id)
			}
		}
	}
	return seats
}

// Toggle flips seatID in the selection. Re-selecting a selected seat
// deselects it. Selecting past capacity returns a CapacityError and the
// selection unchanged.
func Toggle(layout Layout, selection []string, seatID string, capacity int) ([]string, error) {
	if !layout.SeatExists(seatID) {
		return selection, domain.ErrUnknownSeat
	}
	if layout.IsUnavailable(seatID) {
		return selection, domain.ErrSeatUnavailable
	}

	for i, s := range selection {
		if s == seatID {
			next := make([]string, 0, len(selection)-1)
			next = append(next, selection[:i]...)
			next = append(next, selection[i+1:]...)
			return next, nil
		}
	}

	if len(selection) >= capacity {
		return selection, &domain.CapacityError{Capacity: capacity}
	}

	next := make([]string, len(selection), len(selection)+1)
	copy(next, selection)
	return append(next, seatID), nil
}
