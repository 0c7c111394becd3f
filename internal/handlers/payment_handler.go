package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/payments"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/PzyCool/DomiHive-sub000/pkg/push"
	"github.com/PzyCool/DomiHive-sub000/validators"
	"github.com/labstack/echo/v4"
)

// PaymentHandler handles move-in payment HTTP requests
type PaymentHandler struct {
	processor              payments.Processor
	paymentRepository      repositories.PaymentRepository
	applicationRepository  repositories.ApplicationRepository
	screeningRepository    repositories.ScreeningRepository
	pointerRepository      repositories.PointerRepository
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	pushSender             *push.Sender
}

// NewPaymentHandler creates a new PaymentHandler. pushSender may be nil
// when push delivery is not configured.
func NewPaymentHandler(processor payments.Processor, paymentRepo repositories.PaymentRepository, appRepo repositories.ApplicationRepository, screeningRepo repositories.ScreeningRepository, pointerRepo repositories.PointerRepository, notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, pushSender *push.Sender) *PaymentHandler {
	return &PaymentHandler{
		processor:              processor,
		paymentRepository:      paymentRepo,
		applicationRepository:  appRepo,
		screeningRepository:    screeningRepo,
		pointerRepository:      pointerRepo,
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		pushSender:             pushSender,
	}
}

// RegisterPaymentRoutes registers payment routes
func (h *PaymentHandler) RegisterPaymentRoutes(g *echo.Group) {
	g.GET("/payments/quote", h.GetQuote)
	g.POST("/payments", h.CreatePayment)
	g.GET("/payments", h.ListPayments)
	g.GET("/payments/:id", h.GetPayment)
}

// GetQuote returns the amount breakdown for an application's move-in
// payment.
func (h *PaymentHandler) GetQuote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	app, err := h.applicationRepository.GetByApplicationID(c.QueryParam("applicationId"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Application not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if app.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Application belongs to another user")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"breakdown": payments.AmountBreakdown(app.AnnualRent)},
	})
}

// CreatePayment charges the move-in payment for a screened application and
// promotes the deferred approval notification on success.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Method == models.PaymentMethodCard {
		if !validators.IsValidCardNumber(req.CardNumber) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid card number")
		}
		if !validators.IsValidExpiryDate(req.CardExpiry) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired card expiry date")
		}
		if !validators.IsValidCVV(req.CardCVV) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid CVV")
		}
		if req.CardHolder == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Card holder name is required")
		}
	}

	app, err := h.applicationRepository.GetByApplicationID(req.ApplicationID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Application not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if app.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Application belongs to another user")
	}
	if app.Status != models.ApplicationStatusScreeningCompleted {
		return echo.NewHTTPError(http.StatusConflict, "Application has not completed screening")
	}

	screening, err := h.screeningRepository.GetByScreeningID(req.ScreeningID)
	if err != nil || screening.ApplicationID != app.ApplicationID {
		return echo.NewHTTPError(http.StatusBadRequest, "Screening does not match application")
	}

	breakdown := payments.AmountBreakdown(app.AnnualRent)
	result, err := h.processor.Process(c.Request().Context(), payments.ChargeRequest{
		Amount:    breakdown.Total,
		Method:    req.Method,
		Reference: app.ApplicationID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Payment processing failed: "+err.Error())
	}

	payment := &models.PaymentRecord{
		PaymentID:          models.NewRecordID(models.PaymentIDPrefix),
		TransactionID:      result.TransactionID,
		ScreeningID:        req.ScreeningID,
		ApplicationID:      app.ApplicationID,
		UserID:             currentUserID,
		SecurityDeposit:    breakdown.SecurityDeposit,
		ProcessingFee:      breakdown.ProcessingFee,
		BackgroundCheckFee: breakdown.BackgroundCheckFee,
		TotalAmount:        breakdown.Total,
		Method:             req.Method,
		CardLast4:          cardLast4(req.CardNumber),
		Status:             models.PaymentStatusCompleted,
		CreatedAt:          time.Now(),
	}

	if err := h.paymentRepository.CreatePayment(payment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.applicationRepository.UpdateStatus(app.ApplicationID, models.ApplicationStatusScreeningCompleted, models.ApplicationStatusPaymentCompleted); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	version := req.WorkflowVersion
	if version == 0 {
		version = -1
	}
	pointer, err := h.pointerRepository.Set(currentUserID, models.PointerPayment, payment.PaymentID, version)
	if err != nil && err != repositories.ErrPointerConflict {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.notificationRepository != nil {
		h.notificationRepository.CreateNotification(&models.Notification{
			Type:        models.NotificationPaymentReceived,
			Title:       "Payment received",
			Message:     "Your move-in payment was processed successfully.",
			RecipientID: currentUserID,
			TargetID:    payment.PaymentID,
			CreatedAt:   time.Now(),
		})

		promoted, err := h.notificationRepository.PromoteDeferred(app.ApplicationID, models.TriggerPaymentCompleted)
		if err != nil {
			log.Printf("Failed to promote deferred notifications for %s: %v", app.ApplicationID, err)
		}
		h.pushPromoted(c, promoted)
	}

	resp := echo.Map{"success": true, "data": echo.Map{"payment": payment}}
	if pointer != nil {
		resp["meta"] = echo.Map{"workflow_version": pointer.Version}
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHandler) pushPromoted(c echo.Context, promoted []models.Notification) {
	if h.pushSender == nil || h.userRepository == nil {
		return
	}
	for i := range promoted {
		user, err := h.userRepository.GetUserByID(promoted[i].RecipientID)
		if err != nil || user.DeviceToken == "" {
			continue
		}
		if err := h.pushSender.Send(c.Request().Context(), user.DeviceToken, &promoted[i]); err != nil {
			log.Printf("Push delivery failed for notification %d: %v", promoted[i].ID, err)
		}
	}
}

// ListPayments returns the current user's payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	list, err := h.paymentRepository.ListByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"payments": list}})
}

// GetPayment returns one payment by its payment ID
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	payment, err := h.paymentRepository.GetByPaymentID(c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if payment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Payment belongs to another user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"payment": payment}})
}

func cardLast4(cardNumber string) string {
	digits := make([]byte, 0, len(cardNumber))
	for i := 0; i < len(cardNumber); i++ {
		if cardNumber[i] >= '0' && cardNumber[i] <= '9' {
			digits = append(digits, cardNumber[i])
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}
