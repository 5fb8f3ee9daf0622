package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorent/internal/backend"
	"gorent/internal/config"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/notify"
	"gorent/internal/session"
	"gorent/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func testUser() models.User {
	return models.User{ID: "u1", Username: "alice", Role: models.RoleCustomer}
}

func testConfig() *config.Config {
	return &config.Config{
		Session: &config.SessionConfig{
			CookieName: "gorent_session",
			TTL:        time.Hour,
		},
		Security: &config.SecurityConfig{JWTSecret: "test-secret"},
	}
}

// fakeBackend answers every path with one canned envelope.
func fakeBackend(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return backend.NewClient(backend.Config{BaseURL: ts.URL}, nil)
}

func envelopeJSON(data interface{}) []byte {
	raw, _ := json.Marshal(map[string]interface{}{"success": true, "data": data})
	return raw
}

func TestLogin_CreatesSessionAndSetsCookie(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write(envelopeJSON(map[string]interface{}{
			"user":  map[string]interface{}{"id": "u1", "username": "alice", "role": "customer"},
			"token": "backend-jwt",
		}))
	})

	store := session.NewMemoryStore(time.Hour)
	h := NewAuthHandler(client, store, testConfig(), testLogger(t))

	router := gin.New()
	router.POST("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The cookie carries an opaque session id, never the backend token.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "gorent_session", cookies[0].Name)
	assert.NotEqual(t, "backend-jwt", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	sess, err := store.Get(req.Context(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.User.Username)
	assert.Equal(t, "backend-jwt", sess.Token)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotContains(t, string(resp.Data), "backend-jwt")
}

func TestLogin_MissingFieldsRejectedLocally(t *testing.T) {
	backendHits := 0
	client := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	})

	h := NewAuthHandler(client, session.NewMemoryStore(time.Hour), testConfig(), testLogger(t))

	router := gin.New()
	router.POST("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"username": "alice"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, backendHits)
}

func TestLogin_BackendRejection(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "invalid credentials"})
	})

	h := NewAuthHandler(client, session.NewMemoryStore(time.Hour), testConfig(), testLogger(t))

	router := gin.New()
	router.POST("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_DestroysSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	cfg := testConfig()
	h := NewAuthHandler(nil, store, cfg, testLogger(t))

	sess, err := store.Create(httptest.NewRequest(http.MethodPost, "/", nil).Context(), testUser(), "tok")
	require.NoError(t, err)

	router := gin.New()
	router.POST("/logout", func(c *gin.Context) {
		c.Set("session_id", sess.ID)
		h.Logout(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	_, err = store.Get(req.Context(), sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// The cookie is expired on the way out.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cfg.Session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestQuote_CalculatesRentalTotal(t *testing.T) {
	q := notify.NewQueue()
	t.Cleanup(q.Close)
	h := NewBookingHandler(nil, q, testLogger(t))

	router := gin.New()
	router.GET("/quote", h.Quote)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quote?daily_rate=50&start_date=2025-08-10&end_date=2025-08-15", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Days  int     `json:"days"`
			Total float64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Data.Days)
	assert.Equal(t, 250.0, resp.Data.Total)
}

func TestQuote_InvertedRangeRejected(t *testing.T) {
	q := notify.NewQueue()
	t.Cleanup(q.Close)
	h := NewBookingHandler(nil, q, testLogger(t))

	router := gin.New()
	router.GET("/quote", h.Quote)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quote?daily_rate=50&start_date=2025-08-15&end_date=2025-08-10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBooking_InvalidDatesNeverReachBackend(t *testing.T) {
	backendHits := 0
	client := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	})

	q := notify.NewQueue()
	t.Cleanup(q.Close)
	h := NewBookingHandler(client, q, testLogger(t))

	router := gin.New()
	router.POST("/bookings", h.CreateBooking)

	body, _ := json.Marshal(map[string]string{
		"car_id":          "c1",
		"start_date":      "2025-08-15",
		"end_date":        "2025-08-10",
		"pickup_location": "Airport",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, backendHits)
}

func TestAdminStats_FallsBackToBackendWithoutCache(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stats", r.URL.Query().Get("action"))
		w.Write(envelopeJSON(map[string]interface{}{
			"total_users": 12, "total_cars": 5, "active_bookings": 3, "monthly_revenue": 999.5,
		}))
	})

	h := NewAdminHandler(client, nil, nil, testLogger(t))

	router := gin.New()
	router.GET("/admin/stats", h.Stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalUsers     int     `json:"total_users"`
			MonthlyRevenue float64 `json:"monthly_revenue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Data.TotalUsers)
	assert.Equal(t, 999.5, resp.Data.MonthlyRevenue)
}

func TestRespondBackendError_TransportBecomesRetryable502(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on
	client := backend.NewClient(backend.Config{BaseURL: ts.URL}, nil)

	h := NewCarHandler(client, testLogger(t))

	router := gin.New()
	router.GET("/cars", h.ListCars)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp struct {
		Error struct {
			Retry bool `json:"retry"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Error.Retry)
}

func TestAuthMiddleware_BlocksAnonymous(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	cfg := testConfig()

	router := gin.New()
	router.GET("/me", middleware.AuthRequired(store, cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ResolvesSessionCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	cfg := testConfig()

	sess, err := store.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), testUser(), "tok-123")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", middleware.AuthRequired(store, cfg), func(c *gin.Context) {
		assert.Equal(t, sess.ID, middleware.SessionID(c))
		assert.Equal(t, "tok-123", middleware.BackendToken(c))
		assert.Equal(t, "u1", middleware.UserID(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: sess.ID})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequired_RejectsCustomers(t *testing.T) {
	router := gin.New()
	router.GET("/admin", func(c *gin.Context) {
		c.Set("user_role", "customer")
	}, middleware.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
