package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, issuer))
	r.GET("/whoami", func(c *gin.Context) {
		principal, _ := GetPrincipalFromContext(c)
		c.String(http.StatusOK, string(principal))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	now := time.Now()
	valid := signToken(t, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "ledger",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	expired := signToken(t, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "ledger",
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	})
	noSubject := signToken(t, jwt.RegisteredClaims{
		Issuer:    "ledger",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "alice", Issuer: "ledger"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "alice"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "alice"},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Authorization header format must be Bearer {token}"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized, "Invalid token claims"},
		{"none algorithm", "Bearer " + noneAlg, http.StatusUnauthorized, "Invalid token"},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid token"},
	}

	r := newAuthRouter("ledger")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), "inside handler")
	assert.Contains(t, buf.String(), "Request completed")

	// a request id is generated when the client does not send one
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiterInstance, err := NewMemoryRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if p := c.GetHeader("X-Test-Principal"); p != "" {
			c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), domain.Principal(p)))
		}
		c.Next()
	})
	r.Use(RateLimit(limiterInstance))
	r.POST("/write", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(principal string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		req.Header.Set("X-Test-Principal", principal)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("alice").Code)
	w := send("alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice").Code)

	// limits are tracked per principal
	assert.Equal(t, http.StatusOK, send("bob").Code)
}

func TestNewMemoryRateLimiter_InvalidFormat(t *testing.T) {
	_, err := NewMemoryRateLimiter("lots")
	assert.Error(t, err)
}

type observedRequest struct {
	method, route string
	status        int
}

type recordingObserver struct {
	requests []observedRequest
}

func (o *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.requests = append(o.requests, observedRequest{method, route, status})
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}

	r := gin.New()
	r.Use(MetricsMiddleware(observer))
	r.GET("/accounts/:accountID", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/accounts/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, observer.requests, 2)
	assert.Equal(t, observedRequest{"GET", "/accounts/:accountID", http.StatusOK}, observer.requests[0])
	assert.Equal(t, observedRequest{"GET", "unmatched", http.StatusNotFound}, observer.requests[1])
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
