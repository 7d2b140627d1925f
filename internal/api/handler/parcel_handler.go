package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// ParcelHandler handles HTTP requests for parcels.
type ParcelHandler struct {
	service ports.ParcelService
}

func NewParcelHandler(service ports.ParcelService) *ParcelHandler {
	return &ParcelHandler{service: service}
}

func toParcelResponse(p *domain.Parcel) parcelResponse {
	return parcelResponse{
		ID:            p.ID,
		Title:         p.Title,
		SenderEmail:   p.SenderEmail,
		Cost:          p.Cost,
		PaymentStatus: string(p.PaymentStatus),
		TrackingID:    p.TrackingID,
		CreatedAt:     p.CreatedAt,
	}
}

// List handles GET /v1/parcels with an optional sender email filter.
//
// @Summary      List parcels
// @Tags         parcels
// @Produce      json
// @Param        email  query     string  false  "Filter by sender email"
// @Success      200    {array}   parcelResponse
// @Router       /v1/parcels [get]
func (h *ParcelHandler) List(c echo.Context) error {
	parcels, err := h.service.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}

	resp := make([]parcelResponse, 0, len(parcels))
	for i := range parcels {
		resp = append(resp, toParcelResponse(&parcels[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/parcels/:id.
//
// @Summary      Get a parcel by id
// @Tags         parcels
// @Produce      json
// @Param        id   path      string  true  "Parcel id"
// @Success      200  {object}  parcelResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/parcels/{id} [get]
func (h *ParcelHandler) Get(c echo.Context) error {
	parcel, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(parcel))
}

// Create handles POST /v1/parcels. New parcels start unpaid.
//
// @Summary      Create a parcel
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Param        body  body      createParcelRequest  true  "Parcel payload"
// @Success      201   {object}  parcelResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/parcels [post]
func (h *ParcelHandler) Create(c echo.Context) error {
	var req createParcelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.service.Create(c.Request().Context(), ports.CreateParcelInput{
		Title:       req.Title,
		SenderEmail: req.SenderEmail,
		Cost:        req.Cost,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toParcelResponse(parcel))
}

// Delete handles DELETE /v1/parcels/:id.
//
// @Summary      Delete a parcel
// @Tags         parcels
// @Produce      json
// @Param        id   path      string  true  "Parcel id"
// @Success      200  {object}  deleteParcelResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/parcels/{id} [delete]
func (h *ParcelHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteParcelResponse{Deleted: deleted})
}
