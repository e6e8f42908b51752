package api

import (
	"net/http"
	"time"

	reqdto "medslot/internal/handler/dto/request"
	resdto "medslot/internal/handler/dto/response"
	"medslot/internal/handler/httperr"
	"medslot/internal/handler/middleware"
	"medslot/internal/usecase/commands"
	"medslot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CenterHandler struct {
	catalog  commands.CatalogCommands
	bookings queries.BookingQueries
}

func NewCenterHandler(catalog commands.CatalogCommands, bookings queries.BookingQueries) *CenterHandler {
	return &CenterHandler{catalog: catalog, bookings: bookings}
}

// @Summary Create center
// @Tags centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCenterRequest true "Center"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 403 {object} httperr.Response
// @Router /centers [post]
func (h *CenterHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	var req reqdto.CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.catalog.CreateCenter(c.Request.Context(), actor, commands.CreateCenterParams{
		Name:         req.Name,
		Address:      req.Address,
		DefaultSlots: req.DefaultSlots,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}

// @Summary Create test
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTestRequest true "Diagnostic test"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 403 {object} httperr.Response
// @Router /tests [post]
func (h *CenterHandler) CreateTest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	var req reqdto.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.catalog.CreateTest(c.Request.Context(), actor, commands.CreateTestParams{
		Name:           req.Name,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}

// @Summary Set per-test daily slots
// @Description Upsert the slot override for one test at this center
// @Tags centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Param testId path string true "Test ID"
// @Param request body reqdto.SetCapacityRequest true "Slots"
// @Success 204
// @Failure 422 {object} httperr.Response "Slots out of range"
// @Router /centers/{id}/tests/{testId}/slots [put]
func (h *CenterHandler) SetCapacity(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	centerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid center ID format", nil)
		return
	}
	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid test ID format", nil)
		return
	}

	var req reqdto.SetCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.catalog.SetCapacity(c.Request.Context(), actor, centerID, testID, req.Slots); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Day availability
// @Description Remaining slots for a center on a date, optionally for one test
// @Tags centers
// @Produce json
// @Param id path string true "Center ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param test_id query string false "Test ID for per-test limits"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /centers/{id}/availability [get]
func (h *CenterHandler) Availability(c *gin.Context) {
	centerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid center ID format", nil)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	var testID *uuid.UUID
	if raw := c.Query("test_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid test ID format", nil)
			return
		}
		testID = &id
	}

	view, err := h.bookings.Availability(c.Request.Context(), centerID, date, testID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary List center bookings
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Param date query string false "Limit to one date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Router /centers/{id}/bookings [get]
func (h *CenterHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	centerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid center ID format", nil)
		return
	}

	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		day = &d
	}

	views, err := h.bookings.ListForCenter(c.Request.Context(), actor, centerID, day)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
