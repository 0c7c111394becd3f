package handlers

import (
	"net/http"
	"testing"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
)

func seedNotifications(repo *fakeNotificationRepo) {
	repo.CreateNotification(&models.Notification{
		Type: models.NotificationBookingConfirmed, RecipientID: 1, TargetID: "DOMI-1",
	})
	repo.CreateNotification(&models.Notification{
		Type: models.NotificationApplicationReceived, RecipientID: 1, TargetID: "APP-1",
	})
	repo.CreateNotification(&models.Notification{
		Type: models.NotificationTenantApproval, RecipientID: 1, TargetID: "APP-1",
		DeferredUntil: models.TriggerPaymentCompleted,
	})
	repo.CreateNotification(&models.Notification{
		Type: models.NotificationBookingConfirmed, RecipientID: 2, TargetID: "DOMI-2",
	})
}

func TestGetNotificationsHidesDeferred(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	seedNotifications(repo)
	h := NewNotificationHandler(repo)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/notifications", nil, 1, h.GetNotifications)
	wantStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	list := data["notifications"].([]interface{})
	if len(list) != 2 {
		t.Fatalf("user 1 sees %d notifications, want 2", len(list))
	}
	for _, item := range list {
		n := item.(map[string]interface{})
		if n["type"] == models.NotificationTenantApproval {
			t.Error("deferred tenant approval is visible")
		}
	}

	meta := body["meta"].(map[string]interface{})
	if meta["totalItems"].(float64) != 2 {
		t.Errorf("totalItems = %v, want 2", meta["totalItems"])
	}
}

func TestUnreadCountExcludesDeferred(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	seedNotifications(repo)
	h := NewNotificationHandler(repo)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/notifications/unread-count", nil, 1, h.GetUnreadCount)
	wantStatus(t, rec, http.StatusOK)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	if data["count"].(float64) != 2 {
		t.Errorf("count = %v, want 2", data["count"])
	}
}

func TestMarkAsRead(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	seedNotifications(repo)
	h := NewNotificationHandler(repo)

	rec := doRequest(t, e, http.MethodPut, "/api/v1/notifications/1/read", nil, 1, h.MarkAsRead, "id", "1")
	wantStatus(t, rec, http.StatusOK)

	count, _ := repo.GetUnreadCount(1)
	if count != 1 {
		t.Errorf("unread count after MarkAsRead = %d, want 1", count)
	}

	rec = doRequest(t, e, http.MethodPut, "/api/v1/notifications/abc/read", nil, 1, h.MarkAsRead, "id", "abc")
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestMarkAllAsRead(t *testing.T) {
	e := newTestEcho()
	repo := &fakeNotificationRepo{}
	seedNotifications(repo)
	h := NewNotificationHandler(repo)

	rec := doRequest(t, e, http.MethodPut, "/api/v1/notifications/read-all", nil, 1, h.MarkAllAsRead)
	wantStatus(t, rec, http.StatusOK)

	count, _ := repo.GetUnreadCount(1)
	if count != 0 {
		t.Errorf("unread count after MarkAllAsRead = %d, want 0", count)
	}

	// User 2's notifications are untouched.
	count, _ = repo.GetUnreadCount(2)
	if count != 1 {
		t.Errorf("user 2 unread count = %d, want 1", count)
	}

	// A later promotion surfaces as unread even after read-all.
	repo.PromoteDeferred("APP-1", models.TriggerPaymentCompleted)
	count, _ = repo.GetUnreadCount(1)
	if count != 1 {
		t.Errorf("unread count after promotion = %d, want 1", count)
	}
}
