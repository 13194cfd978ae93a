package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	"github.com/medbook/booking-api/internal/service/scheduling"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/validator"
)

type Handler struct {
	scheduler    *scheduling.Service
	appointments *appointmentService.Service
	validator    *validator.Validator
}

func NewHandler(scheduler *scheduling.Service, appointments *appointmentService.Service, v *validator.Validator) *Handler {
	return &Handler{
		scheduler:    scheduler,
		appointments: appointments,
		validator:    v,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id/status", h.UpdateAppointmentStatus)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error(), err))
		return
	}

	appointment, err := h.scheduler.BookAppointment(c.Request.Context(), actor.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	status := model.AppointmentStatus(c.Query("status"))

	appointments, err := h.appointments.ListAppointments(c.Request.Context(), actor, status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid appointment ID", err))
		return
	}

	appointment, err := h.appointments.GetAppointment(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid appointment ID", err))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error(), err))
		return
	}

	appointment, err := h.appointments.UpdateStatus(c.Request.Context(), actor, id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}
