package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/config"
	"github.com/BMSaiko/FoodLister-sub003/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		JWTSecret: "testservlet",
	}
	mw := NewMiddleware(cfg, logger.Discard())

	tests := []struct {
		name           string
		header         string
		cookieValue    string
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "No Token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Cookie",
			cookieValue:    "invalid",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			header:         "Bearer " + generateTestToken(t, "other", "user-1", time.Minute),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			header:         "Bearer " + generateTestToken(t, cfg.JWTSecret, "user-1", -time.Minute),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Subject",
			header:         "Bearer " + generateTestToken(t, cfg.JWTSecret, "", time.Minute),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Header",
			header:         "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Bearer",
			header:         "Bearer " + generateTestToken(t, cfg.JWTSecret, "user-1", time.Minute),
			expectedStatus: http.StatusOK,
			expectedUser:   "user-1",
		},
		{
			name:           "Valid Cookie",
			cookieValue:    generateTestToken(t, cfg.JWTSecret, "user-2", time.Minute),
			expectedStatus: http.StatusOK,
			expectedUser:   "user-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/restaurants", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookieValue != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tt.cookieValue})
			}

			var gotUser string
			rr := httptest.NewRecorder()
			handler := mw.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, tt.expectedStatus)
			}
			if gotUser != tt.expectedUser {
				t.Errorf("user id = %q, want %q", gotUser, tt.expectedUser)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	mw := NewMiddleware(&config.Config{}, logger.Discard())
	var seen string
	handler := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	handler.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("expected incoming request id to be kept, got ctx=%q header=%q", seen, rr.Header().Get("X-Request-ID"))
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	if seen == "" || seen == "abc-123" {
		t.Errorf("expected a generated request id, got %q", seen)
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2, logger.Discard())
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	codes := []int{}
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/links/preview", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}

	// Another client has its own budget
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/links/preview", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("second client got %d, want 200", rr.Code)
	}
}

func generateTestToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return tokenString
}
