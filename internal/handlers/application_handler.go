package handlers

import (
	"net/http"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/PzyCool/DomiHive-sub000/validators"
	"github.com/labstack/echo/v4"
)

// ApplicationHandler handles rental application HTTP requests
type ApplicationHandler struct {
	applicationRepository  repositories.ApplicationRepository
	bookingRepository      repositories.BookingRepository
	pointerRepository      repositories.PointerRepository
	notificationRepository repositories.NotificationRepository
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appRepo repositories.ApplicationRepository, bookingRepo repositories.BookingRepository, pointerRepo repositories.PointerRepository, notifRepo repositories.NotificationRepository) *ApplicationHandler {
	return &ApplicationHandler{
		applicationRepository:  appRepo,
		bookingRepository:      bookingRepo,
		pointerRepository:      pointerRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterApplicationRoutes registers application routes
func (h *ApplicationHandler) RegisterApplicationRoutes(g *echo.Group) {
	g.POST("/applications", h.CreateApplication)
	g.GET("/applications", h.ListApplications)
	g.GET("/applications/:id", h.GetApplication)
}

// CreateApplication submits a rental application
func (h *ApplicationHandler) CreateApplication(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	for _, ref := range req.References {
		if !validators.IsValidPhone(ref.Phone) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reference phone number")
		}
	}
	if err := validators.ValidateDocument(req.IDDocumentFile, req.IDDocumentSize); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validators.ValidateDocument(req.ProofOfIncomeFile, req.ProofOfIncomeSize); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// Employment letter only applies to salaried applicants.
	if req.Employment.Status == "employed" {
		if req.EmploymentLetterFile == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Employment letter is required for employed applicants")
		}
		if err := validators.ValidateDocument(req.EmploymentLetterFile, req.EmploymentLetterSize); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	// An inspection-flow application must point at a booking the user owns.
	if req.Flow == models.FlowInspection {
		if req.BookingID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Booking ID is required for the inspection flow")
		}
		booking, err := h.bookingRepository.GetByBookingID(req.BookingID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if booking.UserID != currentUserID {
			return echo.NewHTTPError(http.StatusForbidden, "Booking belongs to another user")
		}
	}

	now := time.Now()
	app := &models.RentalApplication{
		ApplicationID:        models.NewRecordID(models.ApplicationIDPrefix),
		PropertyID:           req.PropertyID,
		BookingID:            req.BookingID,
		UserID:               currentUserID,
		Flow:                 req.Flow,
		AnnualRent:           req.AnnualRent,
		Background:           req.Background,
		RentalHistory:        req.RentalHistory,
		Employment:           req.Employment,
		Reference1:           req.References[0],
		Reference2:           req.References[1],
		IDDocumentFile:       req.IDDocumentFile,
		ProofOfIncomeFile:    req.ProofOfIncomeFile,
		EmploymentLetterFile: req.EmploymentLetterFile,
		AgreeTerms:           req.AgreeTerms,
		AgreeCreditCheck:     req.AgreeCreditCheck,
		Status:               models.ApplicationStatusSubmitted,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := h.applicationRepository.CreateApplication(app); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	version := req.WorkflowVersion
	if version == 0 {
		version = -1
	}
	pointer, err := h.pointerRepository.Set(currentUserID, models.PointerApplication, app.ApplicationID, version)
	if err != nil {
		if err == repositories.ErrPointerConflict {
			return echo.NewHTTPError(http.StatusConflict, "Another application flow is already in progress")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.notificationRepository != nil {
		received := &models.Notification{
			Type:        models.NotificationApplicationReceived,
			Title:       "Application received",
			Message:     "We have received your rental application and started processing it.",
			RecipientID: currentUserID,
			TargetID:    app.ApplicationID,
			CreatedAt:   now,
		}
		h.notificationRepository.CreateNotification(received)

		// The approval is pre-built now but stays invisible until the
		// payment step completes.
		approval := &models.Notification{
			Type:        models.NotificationTenantApproval,
			Title:       "You have been approved!",
			Message:     "Congratulations, your tenancy has been approved. Your agent will contact you with move-in details.",
			RecipientID: currentUserID,
			TargetID:    app.ApplicationID,
			Actions: models.NotificationActions{
				{Text: "View application", Action: "view_application", ID: app.ApplicationID},
			},
			DeferredUntil: models.TriggerPaymentCompleted,
			CreatedAt:     now,
		}
		h.notificationRepository.CreateNotification(approval)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"application": app},
		"meta":    echo.Map{"workflow_version": pointer.Version},
	})
}

// ListApplications returns the current user's applications
func (h *ApplicationHandler) ListApplications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	apps, err := h.applicationRepository.ListByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"applications": apps}})
}

// GetApplication returns one application by its application ID
func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	app, err := h.applicationRepository.GetByApplicationID(c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Application not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if app.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Application belongs to another user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"application": app}})
}
