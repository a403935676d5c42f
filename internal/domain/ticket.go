package domain

import (
	"strconv"
	"strings"
	"time"
)

// TicketLedgerEntry is a finalized booking snapshot persisted across
// sessions. A booking with child passengers produces the primary entry
// plus one guardian-linked clone per child carrying a guardian email.
type TicketLedgerEntry struct {
	BookingRecord

	PurchaserEmail      string `json:"purchaserEmail,omitempty"`
	AssociatedUserEmail string `json:"associatedUserEmail,omitempty"`
	IsChildTicket       bool   `json:"isChildTicket,omitempty"`
}

// NormalizePNR renders any pnr value the way cancellation matches it:
// trimmed decimal string. Ledger lookups by pnr compare these.
func NormalizePNR(pnr string) string {
	return strings.TrimSpace(pnr)
}

func (e TicketLedgerEntry) PNRString() string {
	return strconv.Itoa(e.PNR)
}

// Expired reports whether the flight's departure date is strictly before
// the day now falls on. Expired tickets stay listed but can no longer be
// cancelled. An unparseable departure date (quick bookings can carry free
// text) never counts as expired.
func (e TicketLedgerEntry) Expired(now time.Time) bool {
	departure, err := time.Parse("2006-01-02", e.DepartureDate)
	if err != nil {
		return false
	}
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return departure.Before(today)
}

// UserAccount is a registered membership account. Credentials are stored
// in plaintext; this system simulates membership, it does not secure it.
type UserAccount struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	GovernmentID string `json:"tc"`
	Phone        string `json:"phone"`
}
