package handlers

import (
	"net/http"

	"wayfare/middleware"
	"wayfare/models"
	"wayfare/services/review"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review submission and provider review listings.
type ReviewHandler struct {
	Svc review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.SubmitReview(c.Param("id"), middleware.ActorID(c), input)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListForProvider returns a provider's public reviews.
func (h *ReviewHandler) ListForProvider(c *gin.Context) {
	reviews, err := h.Svc.ListForProvider(c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
