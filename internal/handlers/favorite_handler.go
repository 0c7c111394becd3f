package handlers

import (
	"net/http"

	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FavoriteHandler handles saved-property HTTP requests
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favRepo repositories.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepository: favRepo}
}

// RegisterFavoriteRoutes registers favorite routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.POST("/favorites", h.AddFavorite)
	g.GET("/favorites", h.ListFavorites)
	g.DELETE("/favorites/:propertyId", h.RemoveFavorite)
}

// AddFavorite saves a property for the current user
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req struct {
		PropertyID string `json:"property_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.favoriteRepository.AddFavorite(c.Request().Context(), currentUserID, req.PropertyID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"property_id": req.PropertyID}})
}

// ListFavorites returns the current user's saved properties
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	favorites, err := h.favoriteRepository.ListByUser(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorites": favorites}})
}

// RemoveFavorite unsaves a property for the current user
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	propertyID := c.Param("propertyId")
	if err := h.favoriteRepository.RemoveFavorite(c.Request().Context(), currentUserID, propertyID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Favorite not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"property_id": propertyID}})
}
