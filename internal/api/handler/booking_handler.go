package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailhead/campground-api/internal/api/metrics"
	"github.com/trailhead/campground-api/internal/core/ports"
	"github.com/trailhead/campground-api/internal/core/validate"
)

// BookingHandler serves both the user-scoped and the admin booking routes.
// User routes pass the actor's id as the owner scope so every lookup is
// filtered to their own rows; admin routes pass an empty scope.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List handles GET /api/bookings: the actor's own bookings, paginated.
//
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 5, max 100)"
// @Success      200    {object}  ports.BookingPage
// @Failure      400    {object}  messageResponse
// @Failure      401    {object}  messageResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, err := validate.Pagination(c.QueryParam("page"), c.QueryParam("limit"), validate.Strict)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), claims.UserID, page.Page, page.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/bookings/:id. A booking that does not exist and a
// booking owned by someone else produce the same 404.
//
// @Summary      Get one of your bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  ports.BookingDetail
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Create handles POST /api/bookings/create. The owner in the stored booking
// is always the authenticated actor, regardless of the request body.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookingRequest  true  "Booking details"
// @Success      201   {object}  bookingMutationResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /bookings/create [post]
func (h *BookingHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		OwnerID:        claims.UserID,
		CampgroundName: req.CampgroundName,
		StartDate:      startDate,
		Nights:         req.Nights,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusCreated, bookingMutationResponse{
		Message: "Booking created successfully",
		Booking: booking,
	})
}

// Update handles PUT /api/bookings/update/:id.
//
// @Summary      Update one of your bookings
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Booking id"
// @Param        body  body      bookingRequest  true  "New booking details"
// @Success      200   {object}  bookingMutationResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /bookings/update/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateBookingInput{
		ScopeOwnerID:   claims.UserID,
		CampgroundName: req.CampgroundName,
		StartDate:      startDate,
		Nights:         req.Nights,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookingMutationResponse{
		Message: "Booking updated successfully",
		Booking: booking,
	})
}

// Delete handles DELETE /api/bookings/delete/:id.
//
// @Summary      Delete one of your bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /bookings/delete/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Booking deleted successfully"})
}

// --- Admin routes: same five operations with no owner filter ---

// AdminList handles GET /api/admin/bookings: all users' bookings.
//
// @Summary      List all bookings (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 5, max 100)"
// @Success      200    {object}  ports.BookingPage
// @Failure      400    {object}  messageResponse
// @Failure      403    {object}  messageResponse
// @Router       /admin/bookings [get]
func (h *BookingHandler) AdminList(c echo.Context) error {
	page, err := validate.Pagination(c.QueryParam("page"), c.QueryParam("limit"), validate.Strict)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), "", page.Page, page.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// AdminGet handles GET /api/admin/bookings/:id.
//
// @Summary      Get any booking (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  ports.BookingDetail
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /admin/bookings/{id} [get]
func (h *BookingHandler) AdminGet(c echo.Context) error {
	booking, err := h.service.Get(c.Request().Context(), c.Param("id"), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// AdminCreate handles POST /api/admin/bookings/create. The booking's owner
// is the user behind the supplied email.
//
// @Summary      Create a booking for any user (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminBookingRequest  true  "Booking details including owner email"
// @Success      201   {object}  bookingMutationResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /admin/bookings/create [post]
func (h *BookingHandler) AdminCreate(c echo.Context) error {
	var req adminBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		OwnerEmail:     req.Email,
		CampgroundName: req.CampgroundName,
		StartDate:      startDate,
		Nights:         req.Nights,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, bookingMutationResponse{
		Message: "Booking created successfully",
		Booking: booking,
	})
}

// AdminUpdate handles PUT /api/admin/bookings/update/:id.
//
// @Summary      Update any booking (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      adminBookingRequest  true  "New booking details including owner email"
// @Success      200   {object}  bookingMutationResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /admin/bookings/update/{id} [put]
func (h *BookingHandler) AdminUpdate(c echo.Context) error {
	var req adminBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateBookingInput{
		OwnerEmail:     req.Email,
		CampgroundName: req.CampgroundName,
		StartDate:      startDate,
		Nights:         req.Nights,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookingMutationResponse{
		Message: "Booking updated successfully",
		Booking: booking,
	})
}

// AdminDelete handles DELETE /api/admin/bookings/delete/:id.
//
// @Summary      Delete any booking (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /admin/bookings/delete/{id} [delete]
func (h *BookingHandler) AdminDelete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), ""); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Booking deleted successfully"})
}
