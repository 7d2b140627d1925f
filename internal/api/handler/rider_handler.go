package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/api/metrics"
	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// RiderHandler handles HTTP requests for rider applications.
type RiderHandler struct {
	service ports.RiderService
}

func NewRiderHandler(service ports.RiderService) *RiderHandler {
	return &RiderHandler{service: service}
}

func toRiderResponse(r *domain.Rider) riderResponse {
	return riderResponse{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		District:         r.District,
		BikeRegistration: r.BikeRegistration,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
	}
}

// List handles GET /v1/riders with an optional status filter.
//
// @Summary      List rider applications
// @Tags         riders
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(pending, approved, rejected)
// @Success      200     {array}   riderResponse
// @Failure      400     {object}  errorResponse
// @Router       /v1/riders [get]
func (h *RiderHandler) List(c echo.Context) error {
	status := domain.RiderStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status filter")
	}

	riders, err := h.service.List(c.Request().Context(), status)
	if err != nil {
		return err
	}

	resp := make([]riderResponse, 0, len(riders))
	for i := range riders {
		resp = append(resp, toRiderResponse(&riders[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Apply handles POST /v1/riders and records a pending rider application.
//
// @Summary      Apply as a rider
// @Tags         riders
// @Accept       json
// @Produce      json
// @Param        body  body      applyRiderRequest  true  "Rider profile"
// @Success      201   {object}  riderResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/riders [post]
func (h *RiderHandler) Apply(c echo.Context) error {
	var req applyRiderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rider, err := h.service.Apply(c.Request().Context(), ports.ApplyRiderInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		District:         req.District,
		BikeRegistration: req.BikeRegistration,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRiderResponse(rider))
}

// SetStatus handles PATCH /v1/riders/:id, admin-gated status transition.
// Approval additionally promotes the linked user account to the rider role;
// the promotion outcome is reported separately from the rider write.
//
// @Summary      Set a rider application's status
// @Tags         riders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Rider id"
// @Param        body  body      setRiderStatusRequest  true  "New status and linked account email"
// @Success      200   {object}  setRiderStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/riders/{id} [patch]
func (h *RiderHandler) SetStatus(c echo.Context) error {
	var req setRiderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.SetStatus(c.Request().Context(), ports.SetRiderStatusInput{
		RiderID:     c.Param("id"),
		Status:      domain.RiderStatus(req.Status),
		LinkedEmail: req.Email,
	})
	if err != nil {
		return err
	}

	metrics.RiderStatusTotal.WithLabelValues(req.Status).Inc()

	resp := setRiderStatusResponse{
		Rider: updateOutcomeResponse{Matched: result.Rider.Matched, Modified: result.Rider.Modified},
	}
	if result.RolePromotion != nil {
		resp.RolePromotion = &writeOutcomeResponse{
			Applied: result.RolePromotion.Applied,
			Error:   result.RolePromotion.Error,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
