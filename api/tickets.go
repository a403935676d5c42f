package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meltemk/skyticket/internal/accounts"
	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/ledger"
	"github.com/meltemk/skyticket/internal/workflow"
)

type TicketsHandler struct {
	booking  workflow.UseCase
	tickets  ledger.UseCase
	accounts accounts.UseCase
}

func NewTicketsHandler(booking workflow.UseCase, tickets ledger.UseCase, accountsSvc accounts.UseCase) *TicketsHandler {
	return &TicketsHandler{booking: booking, tickets: tickets, accounts: accountsSvc}
}

func (h *TicketsHandler) Register(router *gin.RouterGroup) {
	router.POST("/finalize", h.finalize)
	router.GET("/", h.list)
	router.DELETE("/:pnr", h.cancel)
}

// finalize materializes the confirmed booking into the ledger. Safe to
// call repeatedly; re-renders of the confirmation view hit the same
// (pnr, purchaser) entries.
func (h *TicketsHandler) finalize(c *gin.Context) {
	record, err := h.booking.Confirmation(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	// An anonymous purchase is still finalized, just without an account
	// stamped on it.
	email, err := h.accounts.LoggedInEmail(c.Request.Context(), sessionID(c))
	if err != nil && !errors.Is(err, domain.ErrNotLoggedIn) {
		writeError(c, err)
		return
	}

	entries, err := h.tickets.Finalize(c.Request.Context(), *record, email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tickets": entries})
}

func (h *TicketsHandler) list(c *gin.Context) {
	email, err := h.accounts.LoggedInEmail(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	entries, err := h.tickets.TicketsFor(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": entries})
}

// cancel removes every entry sharing the pnr, guardian-linked clones
// included.
func (h *TicketsHandler) cancel(c *gin.Context) {
	if _, err := h.accounts.LoggedInEmail(c.Request.Context(), sessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	removed, err := h.tickets.Cancel(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	if removed == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no tickets found for pnr"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": removed})
}
