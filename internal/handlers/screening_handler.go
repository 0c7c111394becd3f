package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/PzyCool/DomiHive-sub000/internal/screening"
	"github.com/PzyCool/DomiHive-sub000/validators"
	"github.com/labstack/echo/v4"
)

// ScreeningHandler handles tenant screening HTTP requests
type ScreeningHandler struct {
	engine                 *screening.Engine
	screeningRepository    repositories.ScreeningRepository
	applicationRepository  repositories.ApplicationRepository
	pointerRepository      repositories.PointerRepository
	notificationRepository repositories.NotificationRepository
}

// NewScreeningHandler creates a new ScreeningHandler
func NewScreeningHandler(engine *screening.Engine, screeningRepo repositories.ScreeningRepository, appRepo repositories.ApplicationRepository, pointerRepo repositories.PointerRepository, notifRepo repositories.NotificationRepository) *ScreeningHandler {
	return &ScreeningHandler{
		engine:                 engine,
		screeningRepository:    screeningRepo,
		applicationRepository:  appRepo,
		pointerRepository:      pointerRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterScreeningRoutes registers screening routes
func (h *ScreeningHandler) RegisterScreeningRoutes(g *echo.Group) {
	g.POST("/screenings", h.StartScreening)
	g.GET("/screenings/:id/progress", h.GetProgress)
	g.POST("/screenings/:id/submit", h.SubmitScreening)
	g.DELETE("/screenings/:id", h.CancelScreening)
}

// StartScreening kicks off the simulated check pipeline for a submitted
// application.
func (h *ScreeningHandler) StartScreening(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.StartScreeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
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
	if app.Status != models.ApplicationStatusSubmitted {
		return echo.NewHTTPError(http.StatusConflict, "Application is not awaiting screening")
	}

	screeningID := models.NewRecordID(models.ScreeningIDPrefix)
	if err := h.engine.Start(screeningID, app.ApplicationID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	version := req.WorkflowVersion
	if version == 0 {
		version = -1
	}
	pointer, err := h.pointerRepository.Set(currentUserID, models.PointerScreening, screeningID, version)
	if err != nil {
		h.engine.Cancel(screeningID)
		if err == repositories.ErrPointerConflict {
			return echo.NewHTTPError(http.StatusConflict, "Another screening flow is already in progress")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data": echo.Map{
			"screening_id":   screeningID,
			"application_id": app.ApplicationID,
		},
		"meta": echo.Map{"workflow_version": pointer.Version},
	})
}

// GetProgress reports a screening's live check percentages. Finished
// screenings resolve from the persisted record.
func (h *ScreeningHandler) GetProgress(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	screeningID := c.Param("id")

	progress, err := h.engine.Snapshot(screeningID)
	if err == nil {
		owner, _ := h.engine.UserID(screeningID)
		if owner != currentUserID {
			return echo.NewHTTPError(http.StatusForbidden, "Screening belongs to another user")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"progress": progress}})
	}
	if !errors.Is(err, screening.ErrUnknownScreening) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	record, err := h.screeningRepository.GetByScreeningID(screeningID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Screening not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if record.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Screening belongs to another user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{
		"progress": completedProgress(record),
	}})
}

// SubmitScreening finalizes a fully complete screening run.
func (h *ScreeningHandler) SubmitScreening(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SubmitScreeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validators.ValidateVideo(req.VideoIntroductionFile, req.VideoIntroductionSize); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	screeningID := c.Param("id")
	owner, err := h.engine.UserID(screeningID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Screening not running")
	}
	if owner != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Screening belongs to another user")
	}

	progress, err := h.engine.Finish(screeningID)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, "Screening checks are still running")
	}

	record := &models.ScreeningRecord{
		ScreeningID:           screeningID,
		ApplicationID:         progress.ApplicationID,
		UserID:                currentUserID,
		BackgroundScore:       progress.Scores[models.CheckBackground],
		CreditScore:           progress.Scores[models.CheckCredit],
		ReferenceScore:        progress.Scores[models.CheckReference],
		DocumentScore:         progress.Scores[models.CheckDocument],
		EmploymentScore:       progress.Scores[models.CheckEmployment],
		RentalHistoryScore:    progress.Scores[models.CheckRentalHistory],
		IdentityScore:         progress.Scores[models.CheckIdentity],
		VideoIntroductionFile: req.VideoIntroductionFile,
		ConsentBackground:     req.ConsentBackground,
		ConsentCredit:         req.ConsentCredit,
		ConsentReference:      req.ConsentReference,
		OverallScore:          overallScore(progress),
		Result:                models.ScreeningResultPassed,
		CreatedAt:             time.Now(),
	}

	if err := h.screeningRepository.CreateScreening(record); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.applicationRepository.UpdateStatus(progress.ApplicationID, models.ApplicationStatusSubmitted, models.ApplicationStatusScreeningCompleted); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	version := req.WorkflowVersion
	if version == 0 {
		version = -1
	}
	pointer, err := h.pointerRepository.Set(currentUserID, models.PointerScreening, screeningID, version)
	if err != nil && err != repositories.ErrPointerConflict {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.notificationRepository != nil {
		h.notificationRepository.CreateNotification(&models.Notification{
			Type:        models.NotificationScreeningCompleted,
			Title:       "Screening completed",
			Message:     "All screening checks completed. You can proceed to payment.",
			RecipientID: currentUserID,
			TargetID:    progress.ApplicationID,
			CreatedAt:   time.Now(),
		})
	}

	resp := echo.Map{"success": true, "data": echo.Map{"screening": record}}
	if pointer != nil {
		resp["meta"] = echo.Map{"workflow_version": pointer.Version}
	}
	return c.JSON(http.StatusCreated, resp)
}

// CancelScreening stops a running screening.
func (h *ScreeningHandler) CancelScreening(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	screeningID := c.Param("id")
	owner, err := h.engine.UserID(screeningID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Screening not running")
	}
	if owner != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Screening belongs to another user")
	}

	if err := h.engine.Cancel(screeningID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Screening not running")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"screening_id": screeningID}})
}

func overallScore(p *screening.Progress) int {
	sum := 0
	for _, s := range p.Scores {
		sum += s
	}
	return sum / len(p.Scores)
}

// completedProgress reconstructs a terminal progress view from a persisted
// screening record.
func completedProgress(r *models.ScreeningRecord) *screening.Progress {
	checks := make(map[string]int, len(models.ScreeningChecks))
	for _, name := range models.ScreeningChecks {
		checks[name] = 100
	}
	return &screening.Progress{
		ScreeningID:   r.ScreeningID,
		ApplicationID: r.ApplicationID,
		Checks:        checks,
		Scores: map[string]int{
			models.CheckBackground:    r.BackgroundScore,
			models.CheckCredit:        r.CreditScore,
			models.CheckReference:     r.ReferenceScore,
			models.CheckDocument:      r.DocumentScore,
			models.CheckEmployment:    r.EmploymentScore,
			models.CheckRentalHistory: r.RentalHistoryScore,
			models.CheckIdentity:      r.IdentityScore,
		},
		Overall:  100,
		ETA:      "complete",
		Complete: true,
	}
}
