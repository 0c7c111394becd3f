package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/PzyCool/DomiHive-sub000/validators"
	"github.com/labstack/echo/v4"
)

// In-memory repository fakes backing the handler tests.

type fakeBookingRepo struct {
	bookings []*models.InspectionBooking
}

func (f *fakeBookingRepo) CreateBooking(b *models.InspectionBooking) error {
	b.ID = uint(len(f.bookings) + 1)
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) GetByBookingID(bookingID string) (*models.InspectionBooking, error) {
	for _, b := range f.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBookingRepo) ListByUser(userID uint) ([]models.InspectionBooking, error) {
	var out []models.InspectionBooking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	apps []*models.RentalApplication
}

func (f *fakeApplicationRepo) CreateApplication(a *models.RentalApplication) error {
	a.ID = uint(len(f.apps) + 1)
	f.apps = append(f.apps, a)
	return nil
}

func (f *fakeApplicationRepo) GetByApplicationID(applicationID string) (*models.RentalApplication, error) {
	for _, a := range f.apps {
		if a.ApplicationID == applicationID {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeApplicationRepo) ListByUser(userID uint) ([]models.RentalApplication, error) {
	var out []models.RentalApplication
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(applicationID, from, to string) error {
	for _, a := range f.apps {
		if a.ApplicationID == applicationID {
			if a.Status != from {
				return repositories.ErrInvalidTransition
			}
			a.Status = to
			a.UpdatedAt = time.Now()
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeScreeningRepo struct {
	records []*models.ScreeningRecord
}

func (f *fakeScreeningRepo) CreateScreening(r *models.ScreeningRecord) error {
	r.ID = uint(len(f.records) + 1)
	f.records = append(f.records, r)
	return nil
}

func (f *fakeScreeningRepo) GetByScreeningID(screeningID string) (*models.ScreeningRecord, error) {
	for _, r := range f.records {
		if r.ScreeningID == screeningID {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeScreeningRepo) GetByApplicationID(applicationID string) (*models.ScreeningRecord, error) {
	for _, r := range f.records {
		if r.ApplicationID == applicationID {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeScreeningRepo) ListByUser(userID uint) ([]models.ScreeningRecord, error) {
	var out []models.ScreeningRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []*models.PaymentRecord
}

func (f *fakePaymentRepo) CreatePayment(p *models.PaymentRecord) error {
	p.ID = uint(len(f.payments) + 1)
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) GetByPaymentID(paymentID string) (*models.PaymentRecord, error) {
	for _, p := range f.payments {
		if p.PaymentID == paymentID {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePaymentRepo) ListByUser(userID uint) ([]models.PaymentRecord, error) {
	var out []models.PaymentRecord
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        uint
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var active []models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.Active() {
			active = append(active, *n)
		}
	}
	total := int64(len(active))
	start := (page - 1) * limit
	if start > len(active) {
		start = len(active)
	}
	end := start + limit
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], total, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.Active() && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID uint) error {
	for _, n := range f.notifications {
		if n.ID == notificationID {
			n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.Active() {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) PromoteDeferred(targetID, trigger string) ([]models.Notification, error) {
	var promoted []models.Notification
	now := time.Now()
	for _, n := range f.notifications {
		if n.TargetID == targetID && n.DeferredUntil == trigger {
			n.DeferredUntil = ""
			n.CreatedAt = now
			promoted = append(promoted, *n)
		}
	}
	return promoted, nil
}

func (f *fakeNotificationRepo) ListDeferredByTarget(targetID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.TargetID == targetID && n.DeferredUntil != "" {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) byType(recipientID uint, typ string) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

type fakePointerRepo struct {
	pointers map[string]*models.WorkflowPointer
}

func newFakePointerRepo() *fakePointerRepo {
	return &fakePointerRepo{pointers: make(map[string]*models.WorkflowPointer)}
}

func pointerKey(userID uint, kind string) string {
	return fmt.Sprintf("%d/%s", userID, kind)
}

func (f *fakePointerRepo) Get(userID uint, kind string) (*models.WorkflowPointer, error) {
	p, ok := f.pointers[pointerKey(userID, kind)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}

func (f *fakePointerRepo) ListByUser(userID uint) ([]models.WorkflowPointer, error) {
	var out []models.WorkflowPointer
	for _, p := range f.pointers {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePointerRepo) Set(userID uint, kind, recordID string, expectedVersion int64) (*models.WorkflowPointer, error) {
	key := pointerKey(userID, kind)
	existing, ok := f.pointers[key]
	if !ok {
		if expectedVersion > 0 {
			return nil, repositories.ErrPointerConflict
		}
		p := &models.WorkflowPointer{UserID: userID, Kind: kind, RecordID: recordID, Version: 1, UpdatedAt: time.Now()}
		f.pointers[key] = p
		return p, nil
	}
	if expectedVersion >= 0 && existing.Version != expectedVersion {
		return nil, repositories.ErrPointerConflict
	}
	existing.RecordID = recordID
	existing.Version++
	existing.UpdatedAt = time.Now()
	return existing, nil
}

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) CreateUser(u *models.User) error {
	u.ID = uint(len(f.users) + 1)
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) UpdateUser(u *models.User) error { return nil }

func (f *fakeUserRepo) UpdateDeviceToken(userID uint, token string) error {
	u, err := f.GetUserByID(userID)
	if err != nil {
		return err
	}
	u.DeviceToken = token
	return nil
}

func (f *fakeUserRepo) DeleteUser(id uint) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeFavoriteRepo struct {
	favorites map[string]bool // "<userID>/<propertyID>"
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[string]bool)}
}

func favKey(userID uint, propertyID string) string {
	return fmt.Sprintf("%d/%s", userID, propertyID)
}

func (f *fakeFavoriteRepo) AddFavorite(_ context.Context, userID uint, propertyID string) error {
	f.favorites[favKey(userID, propertyID)] = true
	return nil
}

func (f *fakeFavoriteRepo) RemoveFavorite(_ context.Context, userID uint, propertyID string) error {
	delete(f.favorites, favKey(userID, propertyID))
	return nil
}

func (f *fakeFavoriteRepo) ListByUser(_ context.Context, userID uint) ([]models.Favorite, error) {
	var out []models.Favorite
	for key := range f.favorites {
		var uid uint
		var pid string
		fmt.Sscanf(key, "%d/%s", &uid, &pid)
		if uid == userID {
			out = append(out, models.Favorite{UserID: uid, PropertyID: pid})
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) FavoritedSet(_ context.Context, userID uint, propertyIDs []string) (map[string]bool, error) {
	set := make(map[string]bool)
	for _, id := range propertyIDs {
		if f.favorites[favKey(userID, id)] {
			set[id] = true
		}
	}
	return set, nil
}

// Test harness helpers.

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// doRequest runs one handler with an authenticated JSON request and returns
// the recorded response. Path parameter names and values may be supplied in
// pairs.
func doRequest(t *testing.T, e *echo.Echo, method, target string, body interface{}, userID uint, h echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(params) > 0 {
		if len(params)%2 != 0 {
			t.Fatal("params must come in name/value pairs")
		}
		var names, values []string
		for i := 0; i < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
