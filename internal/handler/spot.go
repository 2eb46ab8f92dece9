package handler

import (
	"context"
	"net/http"

	"parking-api/internal/models"
	"parking-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SpotCreatedMessage accompanies every successful create response.
const SpotCreatedMessage = "Garden successfully marked as parking spot!"

// SpotHandler handles parking spot requests
type SpotHandler struct {
	service SpotService
}

// SpotService interface for dependency injection
type SpotService interface {
	CreateSpot(context.Context, service.CreateSpotInput) (*models.ParkingSpot, error)
	ListSpots(context.Context) ([]models.ParkingSpot, error)
}

// NewSpotHandler creates a new spot handler
func NewSpotHandler(svc SpotService) *SpotHandler {
	return &SpotHandler{service: svc}
}

// MarkSpot handles POST /mark-spot/ requests
//
//	@Summary		Mark a parking spot
//	@Description	Resolves an address for the coordinates and stores the spot.
//	@Tags			spots
//	@Accept			json
//	@Produce		json
//	@Param			spot	body		models.CreateSpotRequest	true	"Spot coordinates"
//	@Success		200		{object}	models.CreateSpotResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		422		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Failure		503		{object}	models.ErrorResponse
//	@Router			/mark-spot/ [post]
func (h *SpotHandler) MarkSpot(c *gin.Context) {
	var req models.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("rejected mark-spot body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	spot, err := h.service.CreateSpot(c.Request.Context(), service.CreateSpotInput{
		Latitude:  req.Latitude.Float64(),
		Longitude: req.Longitude.Float64(),
		OwnerName: req.OwnerName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CreateSpotResponse{
		Status:  "success",
		Data:    *spot,
		Message: SpotCreatedMessage,
	})
}

// ListSpots handles GET /spots/ requests
//
//	@Summary	List parking spots
//	@Tags		spots
//	@Produce	json
//	@Success	200	{array}		models.ParkingSpot
//	@Failure	500	{object}	models.ErrorResponse
//	@Failure	503	{object}	models.ErrorResponse
//	@Router		/spots/ [get]
func (h *SpotHandler) ListSpots(c *gin.Context) {
	spots, err := h.service.ListSpots(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, spots)
}

// writeError maps a service error to a status and a fixed message; internal error text is only logged.
func writeError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "internal server error"
	switch service.KindOf(err) {
	case service.KindValidation:
		status, message = http.StatusUnprocessableEntity, "invalid coordinates"
	case service.KindUnavailable:
		status, message = http.StatusServiceUnavailable, "storage unavailable"
	case service.KindRejected:
		status, message = http.StatusInternalServerError, "storage rejected the request"
	}

	log.Error().Err(err).Int("status", status).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(status, gin.H{"error": message})
}
