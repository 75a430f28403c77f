package handlers

import (
	"net/http"
	"time"

	"wayfare/middleware"
	"wayfare/models"
	"wayfare/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// CheckAvailability answers whether a provider's window is free.
// GET /providers/:id/availability?start=...&end=... (RFC 3339)
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start, expected RFC 3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end, expected RFC 3339"})
		return
	}

	result, err := h.Svc.CheckAvailability(c.Param("id"), start, end)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) Request(c *gin.Context) {
	var input models.BookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.RequesterID = middleware.ActorID(c)

	created, err := h.Svc.RequestBooking(input)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) Respond(c *gin.Context) {
	var input struct {
		Decision models.Decision     `json:"decision" binding:"required"`
		Terms    *models.AgreedTerms `json:"terms,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Svc.RespondToBooking(c.Param("id"), middleware.ActorID(c), input.Decision, input.Terms)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		Reason string `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Svc.CancelBooking(c.Param("id"), middleware.ActorID(c), input.Reason)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Start(c *gin.Context) {
	updated, err := h.Svc.StartEngagement(c.Param("id"), middleware.ActorID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	updated, err := h.Svc.CompleteEngagement(c.Param("id"), middleware.ActorID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Get(c *gin.Context) {
	got, err := h.Svc.GetBooking(c.Param("id"), middleware.ActorID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, got)
}

// ListAsProvider returns the caller's inbound bookings.
func (h *BookingHandler) ListAsProvider(c *gin.Context) {
	actor := middleware.ActorID(c)
	bookings, err := h.Svc.ListForProvider(actor, actor)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListAsRequester returns the caller's outbound bookings.
func (h *BookingHandler) ListAsRequester(c *gin.Context) {
	bookings, err := h.Svc.ListForRequester(middleware.ActorID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
