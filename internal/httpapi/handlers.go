package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"studio-voice-backend/internal/auth"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/rbac"
	"studio-voice-backend/internal/reporting"
	"studio-voice-backend/internal/session"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth     *auth.Manager
	Bookings booking.Repository
	Sessions session.Store
	Reports  *reporting.Service
}

// --- Auth ---

type loginRequest struct {
	StaffID string `json:"staff_id"`
	Role    string `json:"role"`
}

// Login issues a JWT access token.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.StaffID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "staff_id, role required"})
		return
	}
	if !rbac.IsKnownRole(req.Role) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	tok, err := h.Auth.Issue(time.Now(), req.StaffID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": tok})
}

// --- Bookings ---

func (h Handlers) ListBookings(c *gin.Context) {
	if h.Bookings == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "bookings not configured"})
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be 1..500"})
			return
		}
		limit = n
	}
	items, err := h.Bookings.List(c.Request.Context(), limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "booking lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": items})
}

func (h Handlers) GetBooking(c *gin.Context) {
	if h.Bookings == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "bookings not configured"})
		return
	}
	id := c.Param("booking_id")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "booking_id required"})
		return
	}
	b, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "booking lookup failed"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// --- Call sessions ---

// GetCallSession exposes the live dialogue state for a call so staff can
// see how far a caller got. Read-only; the dialogue engine owns writes.
func (h Handlers) GetCallSession(c *gin.Context) {
	if h.Sessions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "sessions not configured"})
		return
	}
	callID := c.Param("call_id")
	if callID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "call_id required"})
		return
	}
	s, err := h.Sessions.Load(c.Request.Context(), callID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return
	}
	// Load synthesizes an empty session for unknown calls.
	if len(s.History) == 0 && !s.Finalized {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// --- Reports ---

// GetBookingsSummary aggregates bookings over a date range.
// from/to are RFC 3339 timestamps; to is exclusive.
func (h Handlers) GetBookingsSummary(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reports not configured"})
		return
	}
	from, err1 := time.Parse(time.RFC3339, c.Query("from"))
	to, err2 := time.Parse(time.RFC3339, c.Query("to"))
	if err1 != nil || err2 != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from and to must be RFC 3339 timestamps"})
		return
	}

	out, err := h.Reports.BookingsSummary(c.Request.Context(), reporting.BookingsSummaryRequest{
		Range:  reporting.TimeRange{From: from, To: to},
		Studio: c.Query("studio"),
	})
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid report request"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}
