package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/service/availability"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/validator"
)

type Handler struct {
	service   *availability.Service
	validator *validator.Validator
}

func NewHandler(service *availability.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors/:id/availability")
	{
		doctors.POST("", h.AddAvailability)
		doctors.GET("", h.ListAvailability)
		doctors.DELETE("/:slotId", h.RemoveAvailability)
	}
}

func (h *Handler) AddAvailability(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid doctor ID", err))
		return
	}

	var req model.AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error(), err))
		return
	}

	slots, err := h.service.AddSlots(c.Request.Context(), actor, doctorID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) ListAvailability(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid doctor ID", err))
		return
	}

	freeOnly := c.Query("free") == "true"

	slots, err := h.service.ListSlots(c.Request.Context(), doctorID, freeOnly)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) RemoveAvailability(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid doctor ID", err))
		return
	}

	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid slot ID", err))
		return
	}

	slots, err := h.service.RemoveSlot(c.Request.Context(), actor, doctorID, slotID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
