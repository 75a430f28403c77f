package handlers

import (
	"net/http"

	"wayfare/middleware"
	"wayfare/models"
	"wayfare/services/profile"

	"github.com/gin-gonic/gin"
)

// ProfileHandler exposes the provider-profile lifecycle. The acting owner
// always comes from the token, never a request field.
type ProfileHandler struct {
	Svc profile.ProfileService
}

func NewProfileHandler(svc profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Svc: svc}
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var input models.NewProfile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.CreateProfile(middleware.ActorID(c), input)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Svc.UpdateProfile(middleware.ActorID(c), patch)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProfileHandler) SetEnabled(c *gin.Context) {
	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Svc.SetEnabled(middleware.ActorID(c), *input.Enabled)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProfile(middleware.ActorID(c)); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

// Get returns a provider's profile; exact-location fields are redacted for
// everyone but the owner.
func (h *ProfileHandler) Get(c *gin.Context) {
	ownerID := c.Param("id")
	got, err := h.Svc.GetProfile(ownerID, middleware.ActorID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, got)
}
