package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

// TestRequireAuth covers token extraction from header and cookie and the
// claims placed on the context.
func TestRequireAuth(t *testing.T) {
	cfg := &config.Config{Jwt: testJwtConfig()}
	token, _, err := crypto.NewAccessToken("user123", true, db.RoleUser,
		[]byte(cfg.Jwt.AccessSecret), cfg.Jwt.AccessTokenDuration.Duration)
	if err != nil {
		t.Fatalf("failed to create access token: %v", err)
	}

	newApp := func() *App {
		provider := config.NewProvider(cfg)
		return &App{
			logger:         discardLogger(),
			configProvider: provider,
			authenticator:  NewDefaultAuthenticator(discardLogger(), provider),
		}
	}

	t.Run("api client via header", func(t *testing.T) {
		app := newApp()
		var gotClaims *AuthClaims
		handler := app.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotClaims, _ = authClaimsFrom(r)
		}))

		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Client", "not-browser")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if gotClaims == nil {
			t.Fatal("expected claims on context")
		}
		if gotClaims.UserID != "user123" || !gotClaims.Verified || gotClaims.Role != db.RoleUser {
			t.Errorf("unexpected claims %+v", gotClaims)
		}
	})

	t.Run("browser client via cookie", func(t *testing.T) {
		app := newApp()
		called := false
		handler := app.RequireAuth(okHandler(&called))

		req := httptest.NewRequest("GET", "/cart", nil)
		req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: "Bearer " + token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !called {
			t.Errorf("expected handler to run, got status %d", rr.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		app := newApp()
		called := false
		handler := app.RequireAuth(okHandler(&called))

		req := httptest.NewRequest("GET", "/cart", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if called {
			t.Error("handler must not run without a token")
		}
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired, _, err := crypto.NewAccessToken("user123", true, db.RoleUser,
			[]byte(cfg.Jwt.AccessSecret), -1)
		if err != nil {
			t.Fatalf("failed to create expired token: %v", err)
		}

		app := newApp()
		called := false
		handler := app.RequireAuth(okHandler(&called))

		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Client", "not-browser")
		req.Header.Set("Authorization", "Bearer "+expired)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if called || rr.Code != http.StatusUnauthorized {
			t.Errorf("expected rejection of expired token, got status %d", rr.Code)
		}
	})
}

// TestRoleMiddleware covers the verified, admin and vendor gates. They all
// fail closed when claims are missing.
func TestRoleMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		middleware func(*App, http.Handler) http.Handler
		claims     *AuthClaims
		wantStatus int
	}{
		{
			name:       "verified passes RequireVerified",
			middleware: (*App).RequireVerified,
			claims:     &AuthClaims{UserID: "u", Verified: true, Role: db.RoleUser},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unverified blocked by RequireVerified",
			middleware: (*App).RequireVerified,
			claims:     &AuthClaims{UserID: "u", Role: db.RoleUser},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin passes RequireAdmin",
			middleware: (*App).RequireAdmin,
			claims:     &AuthClaims{UserID: "u", Verified: true, Role: db.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user blocked by RequireAdmin",
			middleware: (*App).RequireAdmin,
			claims:     &AuthClaims{UserID: "u", Verified: true, Role: db.RoleUser},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "vendor blocked by RequireAdmin",
			middleware: (*App).RequireAdmin,
			claims:     &AuthClaims{UserID: "u", Verified: true, Role: db.RoleVendor},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing claims blocked by RequireAdmin",
			middleware: (*App).RequireAdmin,
			claims:     nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "vendor passes RequireVendorOrAdmin",
			middleware: (*App).RequireVendorOrAdmin,
			claims:     &AuthClaims{UserID: "u", Verified: true, Role: db.RoleVendor},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user blocked by RequireVendorOrAdmin",
			middleware: (*App).RequireVendorOrAdmin,
			claims:     &AuthClaims{UserID: "u", Verified: true, Role: db.RoleUser},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := &App{logger: discardLogger()}
			called := false
			handler := tc.middleware(app, okHandler(&called))

			req := httptest.NewRequest("GET", "/", nil)
			if tc.claims != nil {
				req = withClaims(req, tc.claims)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if called != (tc.wantStatus == http.StatusOK) {
				t.Errorf("handler called=%v with status %d", called, rr.Code)
			}
		})
	}
}
