package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/config"
	"github.com/Okita-Damian/video-streaming-App/internal/http/middleware"
	"github.com/Okita-Damian/video-streaming-App/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{Env: "development", RefreshTTL: 7 * 24 * time.Hour}
}

func newAuthRouter(svc domain.AuthService) *gin.Engine {
	h := NewAuthHandlers(svc, testConfig())
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	auth := r.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/refresh-token", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.POST("/verify-otp", h.VerifyOTP)
	auth.POST("/reset-password", h.ResetPassword)
	return r
}

func postJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid signup",
			body:           `{"fullname":"Ada Example","email":"ada@example.com","password":"longenough1","confirmPassword":"longenough1"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "password mismatch",
			body:           `{"fullname":"Ada Example","email":"ada@example.com","password":"longenough1","confirmPassword":"different1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password without digits",
			body:           `{"fullname":"Ada Example","email":"ada@example.com","password":"lettersonly","confirmPassword":"lettersonly"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			body:           `{"fullname":"Ada Example","email":"not-an-email","password":"longenough1","confirmPassword":"longenough1"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(mocks.NewMockAuthService())
			rec := postJSON(r, "/auth/signup", tt.body)
			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthHandlers_SignupNeverLeaksSecrets(t *testing.T) {
	r := newAuthRouter(mocks.NewMockAuthService())

	rec := postJSON(r, "/auth/signup", `{"fullname":"Ada Example","email":"ada@example.com","password":"longenough1","confirmPassword":"longenough1"}`)
	body := rec.Body.String()
	for _, secret := range []string{"password", "refreshToken", "longenough1"} {
		if strings.Contains(body, secret) {
			t.Errorf("response leaks %q: %s", secret, body)
		}
	}
}

func TestAuthHandlers_LoginSetsRefreshCookie(t *testing.T) {
	r := newAuthRouter(mocks.NewMockAuthService())
	rec := postJSON(r, "/auth/login", `{"email":"ada@example.com","password":"longenough1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookie := findCookie(rec, refreshCookie)
	if cookie == nil {
		t.Fatal("expected a refreshToken cookie")
	}
	if cookie.Value != "refresh-token" {
		t.Errorf("unexpected cookie value %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("refresh cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Error("refresh cookie must be SameSite=Strict")
	}
	if want := int((7 * 24 * time.Hour).Seconds()); cookie.MaxAge != want {
		t.Errorf("expected MaxAge %d, got %d", want, cookie.MaxAge)
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
		Data        struct {
			User map[string]any `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken != "access-token" {
		t.Errorf("expected access token in body, got %q", resp.AccessToken)
	}
	for _, field := range []string{"id", "email", "role"} {
		if _, ok := resp.Data.User[field]; !ok {
			t.Errorf("public user missing %q", field)
		}
	}
	if _, ok := resp.Data.User["refreshToken"]; ok {
		t.Error("refresh token must not appear in the body")
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		r := newAuthRouter(mocks.NewMockAuthService())
		rec := postJSON(r, "/auth/refresh-token", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rotation resets the cookie", func(t *testing.T) {
		r := newAuthRouter(mocks.NewMockAuthService())
		rec := postJSON(r, "/auth/refresh-token", "", &http.Cookie{Name: refreshCookie, Value: "old-refresh"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		cookie := findCookie(rec, refreshCookie)
		if cookie == nil || cookie.Value != "new-refresh-token" {
			t.Fatalf("expected rotated cookie, got %+v", cookie)
		}
	})

	t.Run("rotated-out token refused", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		r := newAuthRouter(svc)
		rec := postJSON(r, "/auth/refresh-token", "", &http.Cookie{Name: refreshCookie, Value: "stale"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandlers_LogoutAlwaysSucceeds(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "with a cookie", cookie: &http.Cookie{Name: refreshCookie, Value: "anything"}},
		{name: "without a cookie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(mocks.NewMockAuthService())
			var rec *httptest.ResponseRecorder
			if tt.cookie != nil {
				rec = postJSON(r, "/auth/logout", "", tt.cookie)
			} else {
				rec = postJSON(r, "/auth/logout", "")
			}

			if rec.Code != http.StatusOK {
				t.Fatalf("logout must always succeed, got %d", rec.Code)
			}
			cookie := findCookie(rec, refreshCookie)
			if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
				t.Errorf("expected the cookie cleared, got %+v", cookie)
			}
		})
	}
}
