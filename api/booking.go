package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meltemk/skyticket/internal/catalog"
	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/workflow"
)

type BookingHandler struct {
	service workflow.UseCase
}

func NewBookingHandler(service workflow.UseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.search)
	router.GET("/flights", h.flights)
	router.POST("/flights/select", h.selectFlight)
	router.GET("/seatmap", h.seatMap)
	router.POST("/seats/toggle", h.toggleSeat)
	router.POST("/seats/confirm", h.confirmSeats)
	router.POST("/quick-booking", h.quickBooking)
	router.POST("/passengers", h.passengers)
	router.POST("/payment", h.payment)
	router.GET("/confirmation", h.confirmation)
	router.POST("/confirmation/home", h.home)
}

func (h *BookingHandler) search(c *gin.Context) {
	var criteria domain.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.SubmitSearch(c.Request.Context(), sessionID(c), criteria); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "criteria stored"})
}

func (h *BookingHandler) flights(c *gin.Context) {
	order := catalog.SortOrder(c.Query("sort"))
	offers, err := h.service.Offers(c.Request.Context(), sessionID(c), order)
	if err != nil {
		writeError(c, err)
		return
	}
	// Empty results are an empty-state for the client, sort controls off.
	c.JSON(http.StatusOK, gin.H{"offers": offers, "sortable": len(offers) > 0})
}

type selectFlightRequest struct {
	FlightNumber string            `json:"flightNumber"`
	SeatClass    domain.CabinClass `json:"seatClass"`
}

func (h *BookingHandler) selectFlight(c *gin.Context) {
	var req selectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.service.SelectFlight(c.Request.Context(), sessionID(c), req.FlightNumber, req.SeatClass)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *BookingHandler) seatMap(c *gin.Context) {
	view, err := h.service.SeatMap(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type toggleSeatRequest struct {
	SeatID string `json:"seatId"`
}

func (h *BookingHandler) toggleSeat(c *gin.Context) {
	var req toggleSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	selection, err := h.service.ToggleSeat(c.Request.Context(), sessionID(c), req.SeatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selectedSeats": selection})
}

func (h *BookingHandler) confirmSeats(c *gin.Context) {
	record, err := h.service.ConfirmSeats(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *BookingHandler) quickBooking(c *gin.Context) {
	var input workflow.QuickBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.service.QuickBooking(c.Request.Context(), sessionID(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

type passengersRequest struct {
	Passengers []domain.Passenger `json:"passengers"`
}

func (h *BookingHandler) passengers(c *gin.Context) {
	var req passengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.service.SubmitPassengers(c.Request.Context(), sessionID(c), req.Passengers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *BookingHandler) payment(c *gin.Context) {
	var card workflow.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.service.SubmitPayment(c.Request.Context(), sessionID(c), card)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pnr": record.PNR, "finalPrice": record.FinalPrice})
}

func (h *BookingHandler) confirmation(c *gin.Context) {
	record, err := h.service.Confirmation(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *BookingHandler) home(c *gin.Context) {
	if err := h.service.CompleteBooking(c.Request.Context(), sessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": workflow.RedirectHome})
}
