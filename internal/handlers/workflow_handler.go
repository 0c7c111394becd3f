package handlers

import (
	"net/http"

	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// WorkflowHandler exposes the user's current workflow pointers so a client
// can resume a flow after navigation.
type WorkflowHandler struct {
	pointerRepository repositories.PointerRepository
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(pointerRepo repositories.PointerRepository) *WorkflowHandler {
	return &WorkflowHandler{pointerRepository: pointerRepo}
}

// RegisterWorkflowRoutes registers workflow routes
func (h *WorkflowHandler) RegisterWorkflowRoutes(g *echo.Group) {
	g.GET("/workflow", h.GetWorkflow)
}

// GetWorkflow returns every current-record pointer the user holds, with
// versions for compare-and-set writes.
func (h *WorkflowHandler) GetWorkflow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pointers, err := h.pointerRepository.ListByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"pointers": pointers}})
}
