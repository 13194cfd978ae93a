package review

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/service/review"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/validator"
)

type Handler struct {
	service   *review.Service
	validator *validator.Validator
}

func NewHandler(service *review.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reviews", h.CreateReview)
	r.GET("/doctors/:id/reviews", h.ListDoctorReviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing actor"))
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error(), err))
		return
	}

	r, err := h.service.CreateReview(c.Request.Context(), actor, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(r))
}

func (h *Handler) ListDoctorReviews(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("invalid doctor ID", err))
		return
	}

	reviews, rating, err := h.service.ListDoctorReviews(c.Request.Context(), doctorID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"reviews": reviews,
		"rating":  rating,
	}))
}
