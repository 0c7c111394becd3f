package handlers

import (
	"net/http"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/PzyCool/DomiHive-sub000/validators"
	"github.com/labstack/echo/v4"
)

// Inspection slots are hourly, office hours only.
var inspectionSlots = map[string]bool{
	"09:00": true, "10:00": true, "11:00": true, "12:00": true,
	"13:00": true, "14:00": true, "15:00": true, "16:00": true, "17:00": true,
}

// BookingHandler handles inspection booking HTTP requests
type BookingHandler struct {
	bookingRepository      repositories.BookingRepository
	pointerRepository      repositories.PointerRepository
	notificationRepository repositories.NotificationRepository
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingRepo repositories.BookingRepository, pointerRepo repositories.PointerRepository, notifRepo repositories.NotificationRepository) *BookingHandler {
	return &BookingHandler{
		bookingRepository:      bookingRepo,
		pointerRepository:      pointerRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterBookingRoutes registers booking routes
func (h *BookingHandler) RegisterBookingRoutes(g *echo.Group) {
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
}

// CreateBooking books a property inspection
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !validators.IsValidEmail(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email address")
	}
	if !validators.IsValidPhone(req.Phone) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid phone number")
	}
	if !inspectionSlots[req.InspectionTime] {
		return echo.NewHTTPError(http.StatusBadRequest, "Inspection time must be an hourly slot between 09:00 and 17:00")
	}

	date, err := time.Parse("2006-01-02", req.InspectionDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Inspection date must be YYYY-MM-DD")
	}
	today := time.Now().Truncate(24 * time.Hour)
	if !date.After(today) {
		return echo.NewHTTPError(http.StatusBadRequest, "Inspection date must be in the future")
	}

	booking := &models.InspectionBooking{
		BookingID:      models.NewRecordID(models.BookingIDPrefix),
		PropertyID:     req.PropertyID,
		UserID:         currentUserID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		InspectionDate: req.InspectionDate,
		InspectionTime: req.InspectionTime,
		NumberOfPeople: req.NumberOfPeople,
		Notes:          req.Notes,
		Status:         models.BookingStatusPending,
		CreatedAt:      time.Now(),
	}

	if err := h.bookingRepository.CreateBooking(booking); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	version := req.WorkflowVersion
	if version == 0 {
		version = -1
	}
	pointer, err := h.pointerRepository.Set(currentUserID, models.PointerBooking, booking.BookingID, version)
	if err != nil {
		if err == repositories.ErrPointerConflict {
			return echo.NewHTTPError(http.StatusConflict, "Another booking flow is already in progress")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.notificationRepository != nil {
		notif := &models.Notification{
			Type:        models.NotificationBookingConfirmed,
			Title:       "Inspection booked",
			Message:     "Your inspection for " + req.InspectionDate + " at " + req.InspectionTime + " has been received.",
			RecipientID: currentUserID,
			TargetID:    booking.BookingID,
			CreatedAt:   time.Now(),
		}
		h.notificationRepository.CreateNotification(notif)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"booking": booking},
		"meta":    echo.Map{"workflow_version": pointer.Version},
	})
}

// ListBookings returns the current user's bookings
func (h *BookingHandler) ListBookings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	bookings, err := h.bookingRepository.ListByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bookings": bookings}})
}

// GetBooking returns one booking by its booking ID
func (h *BookingHandler) GetBooking(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	booking, err := h.bookingRepository.GetByBookingID(c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if booking.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Booking belongs to another user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"booking": booking}})
}
