package handlers

import (
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/PzyCool/DomiHive-sub000/internal/listings"
	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ListingHandler handles property browsing HTTP requests
type ListingHandler struct {
	source             listings.Source
	curated            listings.Source
	cache              *listings.SessionCache
	favoriteRepository repositories.FavoriteRepository
}

// NewListingHandler creates a new ListingHandler. curated may be nil when
// no curated inventory is configured.
func NewListingHandler(source listings.Source, curated listings.Source, cache *listings.SessionCache, favRepo repositories.FavoriteRepository) *ListingHandler {
	return &ListingHandler{
		source:             source,
		curated:            curated,
		cache:              cache,
		favoriteRepository: favRepo,
	}
}

// RegisterListingRoutes registers listing browse routes
func (h *ListingHandler) RegisterListingRoutes(g *echo.Group) {
	g.GET("/listings", h.BrowseListings)
	g.GET("/listings/:id", h.GetListing)
}

// BrowseListings returns a filtered, sorted, paginated page of the
// category's listing set. The seed pins a browsing session to a stable
// generated set; omitting it starts a new session.
func (h *ListingHandler) BrowseListings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	category := c.QueryParam("category")
	if category == "" {
		category = models.CategoryRent
	}
	if !listings.ValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown listing category")
	}

	seed, err := strconv.ParseInt(c.QueryParam("seed"), 10, 64)
	if err != nil || seed <= 0 {
		seed = rand.Int63()
	}

	ctx := c.Request().Context()

	set := h.cache.Get(ctx, category, seed)
	if set == nil {
		set, err = h.source.Listings(ctx, category, seed)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if h.curated != nil {
			curated, err := h.curated.Listings(ctx, category, seed)
			if err == nil {
				set = append(curated, set...)
			}
		}
		h.cache.Set(ctx, category, seed, set)
	}

	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	filtered := listings.Filter(set, criteria)
	filtered = listings.SortListings(filtered, c.QueryParam("sort"))

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageItems := filtered[start:end]

	h.flagFavorites(c, currentUserID, pageItems)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"listings": pageItems,
		},
		"meta": echo.Map{
			"category":        category,
			"seed":            seed,
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// GetListing returns one listing. Generated listings need the session's
// category and seed to be reconstructed; curated listings resolve directly.
func (h *ListingHandler) GetListing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id := c.Param("id")
	ctx := c.Request().Context()

	if curated, ok := h.curated.(*listings.CuratedSource); ok && curated != nil {
		if listing, err := curated.GetByID(ctx, id); err == nil {
			h.flagFavorites(c, currentUserID, []models.PropertyListing{*listing})
			return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"listing": listing}})
		}
	}

	category := c.QueryParam("category")
	seed, err := strconv.ParseInt(c.QueryParam("seed"), 10, 64)
	if err == nil && seed > 0 && listings.ValidCategory(category) {
		set := h.cache.Get(ctx, category, seed)
		if set == nil {
			set, err = h.source.Listings(ctx, category, seed)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
		for i := range set {
			if set[i].ID == id {
				h.flagFavorites(c, currentUserID, set[i:i+1])
				return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"listing": set[i]}})
			}
		}
	}

	return echo.NewHTTPError(http.StatusNotFound, "Listing not found")
}

func (h *ListingHandler) flagFavorites(c echo.Context, userID uint, items []models.PropertyListing) {
	if h.favoriteRepository == nil || len(items) == 0 {
		return
	}
	ids := make([]string, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}
	set, err := h.favoriteRepository.FavoritedSet(c.Request().Context(), userID, ids)
	if err != nil {
		return
	}
	for i := range items {
		items[i].IsFavorited = set[items[i].ID]
	}
}

// criteriaFromQuery builds the filter criteria from the browse query
// parameters. Multi-value dimensions arrive comma-separated.
func criteriaFromQuery(c echo.Context) (listings.Criteria, error) {
	var criteria listings.Criteria

	if v := c.QueryParam("min_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid min_price")
		}
		criteria.MinPrice = n
	}
	if v := c.QueryParam("max_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid max_price")
		}
		criteria.MaxPrice = n
	}

	criteria.Locations = splitParam(c.QueryParam("locations"))
	criteria.Areas = splitParam(c.QueryParam("areas"))
	criteria.Amenities = splitParam(c.QueryParam("amenities"))
	criteria.Furnishing = splitParam(c.QueryParam("furnishing"))

	for _, v := range splitParam(c.QueryParam("bedrooms")) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid bedrooms value")
		}
		criteria.Bedrooms = append(criteria.Bedrooms, n)
	}
	for _, v := range splitParam(c.QueryParam("bathrooms")) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid bathrooms value")
		}
		criteria.Bathrooms = append(criteria.Bathrooms, n)
	}

	if v := c.QueryParam("pets_allowed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid pets_allowed value")
		}
		criteria.PetsAllowed = &b
	}
	if v := c.QueryParam("verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid verified value")
		}
		criteria.VerifiedOnly = b
	}

	return criteria, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
