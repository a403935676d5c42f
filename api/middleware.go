package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/ledger"
)

const sessionHeader = "X-Session-ID"

// SessionMiddleware makes sure every request runs under a session id.
// A missing header gets a fresh id, echoed back so the client can keep it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(sessionHeader, id)
		c.Set("sessionID", id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}

// writeError maps the workflow error taxonomy onto HTTP. Precondition
// failures carry the redirect target; other taxonomy errors are
// recoverable in place by the client. Anything outside the taxonomy is an
// infrastructure failure and must not leak its message.
func writeError(c *gin.Context, err error) {
	var precond *domain.PreconditionError
	var verr *domain.ValidationError
	var capErr *domain.CapacityError
	var seatErr *domain.SeatCountError

	switch {
	case errors.As(err, &precond):
		c.JSON(http.StatusConflict, gin.H{"error": precond.Error(), "redirect": precond.RedirectTo})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.As(err, &capErr):
		c.JSON(http.StatusConflict, gin.H{"error": capErr.Error(), "capacity": capErr.Capacity})
	case errors.As(err, &seatErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": seatErr.Error(), "required": seatErr.Required, "selected": seatErr.Selected})
	case errors.Is(err, domain.ErrSeatUnavailable), errors.Is(err, domain.ErrUnknownSeat), errors.Is(err, domain.ErrNoFlightSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNoPNR), errors.Is(err, ledger.ErrTicketExpired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
