package api

import (
	"net/http"

	"medslot/internal/domain/assignment"
	reqdto "medslot/internal/handler/dto/request"
	resdto "medslot/internal/handler/dto/response"
	"medslot/internal/handler/httperr"
	"medslot/internal/handler/middleware"
	"medslot/internal/usecase/commands"
	"medslot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	commands commands.AssignmentCommands
	queries  queries.AssignmentQueries
}

func NewAssignmentHandler(cmds commands.AssignmentCommands, qs queries.AssignmentQueries) *AssignmentHandler {
	return &AssignmentHandler{commands: cmds, queries: qs}
}

// @Summary Assign test to center
// @Description Direct approval of a (test, center) pair with a price
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Param centerId path string true "Center ID"
// @Param request body reqdto.AssignTestRequest true "Price and optional slots"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Router /tests/{id}/assignments/{centerId} [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	testID, centerID, ok := pairParams(c)
	if !ok {
		return
	}

	var req reqdto.AssignTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err := h.commands.Assign(c.Request.Context(), actor, commands.AssignTestParams{
		TestID:     testID,
		CenterID:   centerID,
		PriceCents: req.PriceCents,
		Slots:      req.Slots,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Param centerId path string true "Center ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /tests/{id}/assignments/{centerId} [delete]
func (h *AssignmentHandler) Remove(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	testID, centerID, ok := pairParams(c)
	if !ok {
		return
	}

	if err := h.commands.Remove(c.Request.Context(), actor, testID, centerID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Request assignment
// @Description Center admin proposes offering a test at a price
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestAssignmentRequest true "Proposal"
// @Success 201 {object} resdto.AssignmentRequestResponse
// @Failure 409 {object} httperr.Response "Already offered or pending"
// @Router /assignment-requests [post]
func (h *AssignmentHandler) Request(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	var req reqdto.RequestAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.commands.Request(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.queries.Get(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAssignmentRequestView(view))
}

// @Summary Review assignment request
// @Description Approve or reject exactly once; approval publishes the pricing entry
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.ReviewAssignmentRequest true "Decision"
// @Success 200 {object} resdto.AssignmentRequestResponse
// @Failure 409 {object} httperr.Response "Already reviewed"
// @Router /assignment-requests/{id}/review [post]
func (h *AssignmentHandler) Review(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format", nil)
		return
	}

	var req reqdto.ReviewAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.Review(c.Request.Context(), actor, id, assignment.Status(req.Decision), req.Notes); err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.queries.Get(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAssignmentRequestView(view))
}

// @Summary Get assignment request
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.AssignmentRequestResponse
// @Failure 404 {object} httperr.Response
// @Router /assignment-requests/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format", nil)
		return
	}

	view, err := h.queries.Get(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAssignmentRequestView(view))
}

// @Summary List assignment requests
// @Description Superadmins see all; center admins see their own center's
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} resdto.AssignmentRequestResponse
// @Router /assignment-requests [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingActor, "Internal server error", nil)
		return
	}

	var status *string
	if raw := c.Query("status"); raw != "" {
		if _, err := assignment.NewStatus(raw); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return
		}
		status = &raw
	}

	views, err := h.queries.List(c.Request.Context(), actor, status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAssignmentRequestViews(views))
}

func pairParams(c *gin.Context) (testID, centerID uuid.UUID, ok bool) {
	testID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid test ID format", nil)
		return uuid.Nil, uuid.Nil, false
	}
	centerID, err = uuid.Parse(c.Param("centerId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid center ID format", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return testID, centerID, true
}
