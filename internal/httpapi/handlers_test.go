package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studio-voice-backend/internal/auth"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/config"
	"studio-voice-backend/internal/session"

	"github.com/gin-gonic/gin"
)

func newHandlers(t *testing.T) (Handlers, *booking.MemoryRepo, *session.MemoryStore) {
	t.Helper()
	m, err := auth.NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	repo := booking.NewMemoryRepo()
	store := session.NewMemoryStore(time.Hour)
	return Handlers{Auth: m, Bookings: repo, Sessions: store}, repo, store
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_IssuesToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newHandlers(t)
	r := gin.New()
	r.POST("/login", h.Login)

	w := doJSON(r, http.MethodPost, "/login", `{"staff_id":"staff-1","role":"front_desk"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp["access_token"] == "" {
		t.Fatalf("expected access_token")
	}
}

func TestLogin_RejectsUnknownRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newHandlers(t)
	r := gin.New()
	r.POST("/login", h.Login)

	w := doJSON(r, http.MethodPost, "/login", `{"staff_id":"staff-1","role":"dj"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, _ := newHandlers(t)
	r := gin.New()
	r.GET("/bookings/:booking_id", h.GetBooking)

	b := booking.ConfirmedBooking{
		ID:     "bk_1",
		CallID: "CA1",
		Studio: booking.StudioA,
		Status: booking.BookingStatusPendingPayment,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/bookings/bk_1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "bk_1") {
		t.Fatalf("expected booking in body: %s", w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/bookings/bk_missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListBookings_LimitValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newHandlers(t)
	r := gin.New()
	r.GET("/bookings", h.ListBookings)

	if w := doJSON(r, http.MethodGet, "/bookings?limit=0", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/bookings", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetCallSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, store := newHandlers(t)
	r := gin.New()
	r.GET("/calls/:call_id/session", h.GetCallSession)

	s, err := store.Load(context.Background(), "CA1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.AppendTurn(session.RoleCaller, "hi")
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("save: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/calls/CA1/session", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/calls/CA_missing/session", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown call, got %d", w.Code)
	}
}
