package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/payments"
	"github.com/PzyCool/DomiHive-sub000/internal/screening"
)

func waitForScreening(t *testing.T, engine *screening.Engine, screeningID string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		p, err := engine.Snapshot(screeningID)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if p.Complete {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("screening never completed")
}

// Walks one application from submission through screening and payment,
// checking the status machine and the deferred approval along the way.
func TestScreeningAndPaymentFlow(t *testing.T) {
	e := newTestEcho()
	appRepo := &fakeApplicationRepo{}
	screeningRepo := &fakeScreeningRepo{}
	paymentRepo := &fakePaymentRepo{}
	pointerRepo := newFakePointerRepo()
	notifRepo := &fakeNotificationRepo{}
	engine := screening.NewEngine(0.001)
	defer engine.Shutdown()
	processor := payments.NewSimulatedProcessor(time.Millisecond)

	screeningHandler := NewScreeningHandler(engine, screeningRepo, appRepo, pointerRepo, notifRepo)
	paymentHandler := NewPaymentHandler(processor, paymentRepo, appRepo, screeningRepo, pointerRepo, notifRepo, &fakeUserRepo{}, nil)

	// Two submitted applications; only the paid one may advance.
	appRepo.CreateApplication(&models.RentalApplication{
		ApplicationID: "APP-flow", UserID: 1, AnnualRent: 2_000_000,
		Status: models.ApplicationStatusSubmitted,
	})
	appRepo.CreateApplication(&models.RentalApplication{
		ApplicationID: "APP-other", UserID: 2, AnnualRent: 1_000_000,
		Status: models.ApplicationStatusSubmitted,
	})
	notifRepo.CreateNotification(&models.Notification{
		Type: models.NotificationTenantApproval, RecipientID: 1, TargetID: "APP-flow",
		DeferredUntil: models.TriggerPaymentCompleted,
	})
	notifRepo.CreateNotification(&models.Notification{
		Type: models.NotificationTenantApproval, RecipientID: 2, TargetID: "APP-other",
		DeferredUntil: models.TriggerPaymentCompleted,
	})

	// Paying before screening must be refused.
	earlyPay := models.CreatePaymentRequest{
		ApplicationID: "APP-flow", ScreeningID: "SCR-none", Method: models.PaymentMethodTransfer,
	}
	rec := doRequest(t, e, http.MethodPost, "/api/v1/payments", earlyPay, 1, paymentHandler.CreatePayment)
	wantStatus(t, rec, http.StatusConflict)

	// Start screening.
	rec = doRequest(t, e, http.MethodPost, "/api/v1/screenings",
		models.StartScreeningRequest{ApplicationID: "APP-flow"}, 1, screeningHandler.StartScreening)
	wantStatus(t, rec, http.StatusCreated)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	screeningID := data["screening_id"].(string)
	if screeningID == "" {
		t.Fatal("no screening_id in response")
	}

	// A second screening for the same pointer at a stale version conflicts.
	rec = doRequest(t, e, http.MethodPost, "/api/v1/screenings",
		models.StartScreeningRequest{ApplicationID: "APP-flow", WorkflowVersion: 99}, 1, screeningHandler.StartScreening)
	wantStatus(t, rec, http.StatusConflict)

	submit := models.SubmitScreeningRequest{
		VideoIntroductionFile: "intro.mp4",
		VideoIntroductionSize: 10 << 20,
		ConsentBackground:     true,
		ConsentCredit:         true,
		ConsentReference:      true,
	}
	waitForScreening(t, engine, screeningID)

	rec = doRequest(t, e, http.MethodPost, "/api/v1/screenings/"+screeningID+"/submit",
		submit, 1, screeningHandler.SubmitScreening, "id", screeningID)
	wantStatus(t, rec, http.StatusCreated)

	app, _ := appRepo.GetByApplicationID("APP-flow")
	if app.Status != models.ApplicationStatusScreeningCompleted {
		t.Fatalf("application status = %q, want screening_completed", app.Status)
	}

	record, err := screeningRepo.GetByScreeningID(screeningID)
	if err != nil {
		t.Fatalf("screening record not persisted: %v", err)
	}
	if record.Result != models.ScreeningResultPassed {
		t.Errorf("result = %q, want passed", record.Result)
	}
	if record.IdentityScore != 100 {
		t.Errorf("identity score = %d, want 100", record.IdentityScore)
	}
	if record.OverallScore < 85 || record.OverallScore > 100 {
		t.Errorf("overall score = %d, out of range", record.OverallScore)
	}

	// Approval still hidden until the payment lands.
	deferred, _ := notifRepo.ListDeferredByTarget("APP-flow")
	if len(deferred) != 1 {
		t.Fatalf("deferred approval count = %d, want 1", len(deferred))
	}

	// Pay.
	pay := models.CreatePaymentRequest{
		ApplicationID: "APP-flow",
		ScreeningID:   screeningID,
		Method:        models.PaymentMethodCard,
		CardNumber:    "4111 1111 1111 1111",
		CardExpiry:    time.Now().AddDate(2, 0, 0).Format("01/06"),
		CardCVV:       "123",
		CardHolder:    "Ada Obi",
	}
	rec = doRequest(t, e, http.MethodPost, "/api/v1/payments", pay, 1, paymentHandler.CreatePayment)
	wantStatus(t, rec, http.StatusCreated)

	if len(paymentRepo.payments) != 1 {
		t.Fatalf("got %d payment records, want 1", len(paymentRepo.payments))
	}
	payment := paymentRepo.payments[0]

	want := payments.AmountBreakdown(2_000_000)
	if payment.SecurityDeposit != want.SecurityDeposit || payment.ProcessingFee != want.ProcessingFee ||
		payment.BackgroundCheckFee != want.BackgroundCheckFee || payment.TotalAmount != want.Total {
		t.Errorf("payment amounts = %+v, want %+v", payment, want)
	}
	if payment.CardLast4 != "1111" {
		t.Errorf("CardLast4 = %q, want 1111", payment.CardLast4)
	}
	if payment.Status != models.PaymentStatusCompleted {
		t.Errorf("payment status = %q, want completed", payment.Status)
	}
	if payment.TransactionID == "" {
		t.Error("payment has no transaction ID")
	}

	app, _ = appRepo.GetByApplicationID("APP-flow")
	if app.Status != models.ApplicationStatusPaymentCompleted {
		t.Errorf("application status = %q, want payment_completed", app.Status)
	}

	// The paid application's approval is now visible; the other user's is not.
	approval := notifRepo.byType(1, models.NotificationTenantApproval)
	if len(approval) != 1 || !approval[0].Active() {
		t.Error("tenant approval not promoted after payment")
	}
	otherApproval := notifRepo.byType(2, models.NotificationTenantApproval)
	if len(otherApproval) != 1 || otherApproval[0].Active() {
		t.Error("unrelated application's approval was promoted")
	}

	other, _ := appRepo.GetByApplicationID("APP-other")
	if other.Status != models.ApplicationStatusSubmitted {
		t.Errorf("unrelated application status = %q, want submitted", other.Status)
	}

	// Paying twice is refused: the status already moved on.
	rec = doRequest(t, e, http.MethodPost, "/api/v1/payments", pay, 1, paymentHandler.CreatePayment)
	wantStatus(t, rec, http.StatusConflict)
}

func TestSubmitScreeningWhileRunning(t *testing.T) {
	e := newTestEcho()
	appRepo := &fakeApplicationRepo{}
	// Real time scale keeps the checks running for the whole test.
	engine := screening.NewEngine(1.0)
	defer engine.Shutdown()
	h := NewScreeningHandler(engine, &fakeScreeningRepo{}, appRepo, newFakePointerRepo(), &fakeNotificationRepo{})

	appRepo.CreateApplication(&models.RentalApplication{
		ApplicationID: "APP-slow", UserID: 1, Status: models.ApplicationStatusSubmitted,
	})

	rec := doRequest(t, e, http.MethodPost, "/api/v1/screenings",
		models.StartScreeningRequest{ApplicationID: "APP-slow"}, 1, h.StartScreening)
	wantStatus(t, rec, http.StatusCreated)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	screeningID := data["screening_id"].(string)

	submit := models.SubmitScreeningRequest{
		VideoIntroductionFile: "intro.mp4",
		ConsentBackground:     true,
		ConsentCredit:         true,
		ConsentReference:      true,
	}
	rec = doRequest(t, e, http.MethodPost, "/api/v1/screenings/"+screeningID+"/submit",
		submit, 1, h.SubmitScreening, "id", screeningID)
	wantStatus(t, rec, http.StatusConflict)

	// Cancelling discards the run.
	rec = doRequest(t, e, http.MethodDelete, "/api/v1/screenings/"+screeningID, nil, 1, h.CancelScreening, "id", screeningID)
	wantStatus(t, rec, http.StatusOK)

	rec = doRequest(t, e, http.MethodGet, "/api/v1/screenings/"+screeningID+"/progress", nil, 1, h.GetProgress, "id", screeningID)
	wantStatus(t, rec, http.StatusNotFound)
}

func TestGetProgressFallsBackToRecord(t *testing.T) {
	e := newTestEcho()
	screeningRepo := &fakeScreeningRepo{}
	engine := screening.NewEngine(1.0)
	defer engine.Shutdown()
	h := NewScreeningHandler(engine, screeningRepo, &fakeApplicationRepo{}, newFakePointerRepo(), &fakeNotificationRepo{})

	screeningRepo.CreateScreening(&models.ScreeningRecord{
		ScreeningID: "SCR-done", ApplicationID: "APP-done", UserID: 1,
		BackgroundScore: 90, CreditScore: 88, ReferenceScore: 92, DocumentScore: 91,
		EmploymentScore: 89, RentalHistoryScore: 87, IdentityScore: 100,
		OverallScore: 91, Result: models.ScreeningResultPassed,
	})

	rec := doRequest(t, e, http.MethodGet, "/api/v1/screenings/SCR-done/progress", nil, 1, h.GetProgress, "id", "SCR-done")
	wantStatus(t, rec, http.StatusOK)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	progress := data["progress"].(map[string]interface{})
	if progress["complete"] != true {
		t.Error("persisted screening not reported complete")
	}
	if progress["overall"].(float64) != 100 {
		t.Errorf("overall = %v, want 100", progress["overall"])
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/screenings/SCR-done/progress", nil, 2, h.GetProgress, "id", "SCR-done")
	wantStatus(t, rec, http.StatusForbidden)
}

func TestGetQuote(t *testing.T) {
	e := newTestEcho()
	appRepo := &fakeApplicationRepo{}
	h := NewPaymentHandler(payments.NewSimulatedProcessor(time.Millisecond), &fakePaymentRepo{}, appRepo,
		&fakeScreeningRepo{}, newFakePointerRepo(), &fakeNotificationRepo{}, &fakeUserRepo{}, nil)

	appRepo.CreateApplication(&models.RentalApplication{
		ApplicationID: "APP-quote", UserID: 1, AnnualRent: 2_000_000,
		Status: models.ApplicationStatusScreeningCompleted,
	})

	rec := doRequest(t, e, http.MethodGet, "/api/v1/payments/quote?applicationId=APP-quote", nil, 1, h.GetQuote)
	wantStatus(t, rec, http.StatusOK)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	breakdown := data["breakdown"].(map[string]interface{})
	if breakdown["security_deposit"].(float64) != 200_000 {
		t.Errorf("security_deposit = %v, want 200000", breakdown["security_deposit"])
	}
	if breakdown["processing_fee"].(float64) != 30_000 {
		t.Errorf("processing_fee = %v, want 30000", breakdown["processing_fee"])
	}
	if breakdown["total"].(float64) != 245_000 {
		t.Errorf("total = %v, want 245000", breakdown["total"])
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/payments/quote?applicationId=APP-quote", nil, 2, h.GetQuote)
	wantStatus(t, rec, http.StatusForbidden)
}

func TestCreatePaymentRejectsBadCard(t *testing.T) {
	e := newTestEcho()
	appRepo := &fakeApplicationRepo{}
	h := NewPaymentHandler(payments.NewSimulatedProcessor(time.Millisecond), &fakePaymentRepo{}, appRepo,
		&fakeScreeningRepo{}, newFakePointerRepo(), &fakeNotificationRepo{}, &fakeUserRepo{}, nil)

	appRepo.CreateApplication(&models.RentalApplication{
		ApplicationID: "APP-card", UserID: 1, AnnualRent: 1_000_000,
		Status: models.ApplicationStatusScreeningCompleted,
	})

	base := models.CreatePaymentRequest{
		ApplicationID: "APP-card", ScreeningID: "SCR-card", Method: models.PaymentMethodCard,
		CardNumber: "4111111111111111", CardExpiry: "12/30", CardCVV: "123", CardHolder: "Ada Obi",
	}

	cases := []struct {
		name   string
		mutate func(*models.CreatePaymentRequest)
	}{
		{"short card number", func(r *models.CreatePaymentRequest) { r.CardNumber = "4111" }},
		{"expired card", func(r *models.CreatePaymentRequest) { r.CardExpiry = "01/20" }},
		{"bad cvv", func(r *models.CreatePaymentRequest) { r.CardCVV = "12" }},
		{"no holder", func(r *models.CreatePaymentRequest) { r.CardHolder = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			rec := doRequest(t, e, http.MethodPost, "/api/v1/payments", req, 1, h.CreatePayment)
			wantStatus(t, rec, http.StatusBadRequest)
		})
	}
}
