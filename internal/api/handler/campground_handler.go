package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailhead/campground-api/internal/api/metrics"
	"github.com/trailhead/campground-api/internal/core/ports"
)

// CampgroundHandler serves the campground ("product") routes. All routes are
// authenticated but not owner-scoped.
type CampgroundHandler struct {
	service ports.CampgroundService
}

func NewCampgroundHandler(service ports.CampgroundService) *CampgroundHandler {
	return &CampgroundHandler{service: service}
}

type campgroundRequest struct {
	Name      string `json:"name"      validate:"required"`
	Address   string `json:"address"   validate:"required"`
	Telephone string `json:"telephone" validate:"required"`
}

type campgroundPatchRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Telephone *string `json:"telephone"`
}

type campgroundResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// List handles GET /api/products. Query parameters translate into typed
// filter predicates; select, sort, page and limit control the shape of the
// result.
//
// @Summary      List campgrounds
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        select  query     string  false  "Comma-separated field projection"
// @Param        sort    query     string  false  "Comma-separated sort fields, '-' prefix for descending"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 5, max 100)"
// @Success      200     {object}  ports.CampgroundPage
// @Failure      400     {object}  messageResponse
// @Router       /products [get]
func (h *CampgroundHandler) List(c echo.Context) error {
	q, err := parseCampgroundQuery(c.QueryParams())
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a campground
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campground id"
// @Success      200  {object}  campgroundResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /products/{id} [get]
func (h *CampgroundHandler) Get(c echo.Context) error {
	cg, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campgroundResponse{Success: true, Data: cg})
}

// Create handles POST /api/products/create.
//
// @Summary      Create a campground
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      campgroundRequest  true  "Campground details"
// @Success      201   {object}  campgroundResponse
// @Failure      400   {object}  messageResponse
// @Router       /products/create [post]
func (h *CampgroundHandler) Create(c echo.Context) error {
	var req campgroundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cg, err := h.service.Create(c.Request().Context(), ports.CampgroundInput{
		Name:      req.Name,
		Address:   req.Address,
		Telephone: req.Telephone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, campgroundResponse{Success: true, Data: cg})
}

// Update handles PUT /api/products/update/:id as a partial update.
//
// @Summary      Update a campground
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Campground id"
// @Param        body  body      campgroundPatchRequest  true  "Fields to update"
// @Success      200   {object}  campgroundResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /products/update/{id} [put]
func (h *CampgroundHandler) Update(c echo.Context) error {
	var req campgroundPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	cg, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.CampgroundPatch{
		Name:      req.Name,
		Address:   req.Address,
		Telephone: req.Telephone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campgroundResponse{Success: true, Data: cg})
}

// Delete handles DELETE /api/products/delete/:id. Deleting a campground
// also deletes every booking referencing it.
//
// @Summary      Delete a campground and its bookings
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campground id"
// @Success      200  {object}  campgroundResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /products/delete/{id} [delete]
func (h *CampgroundHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.CascadeDeletesTotal.Inc()
	return c.JSON(http.StatusOK, campgroundResponse{Success: true, Data: map[string]any{}})
}
