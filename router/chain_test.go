package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func tagMiddleware(tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(tag))
			next.ServeHTTP(w, r)
		})
	}
}

func TestChainMiddlewareOrder(t *testing.T) {
	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handler"))
	})

	chain := NewChain(base).WithMiddleware(
		tagMiddleware("first."),
		tagMiddleware("second."),
	)

	rec := httptest.NewRecorder()
	chain.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	want := "first.second.handler"
	if got := rec.Body.String(); got != want {
		t.Errorf("execution order = %q, want %q", got, want)
	}
}

func TestChainNoMiddleware(t *testing.T) {
	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	NewChain(base).Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestNewChainNilHandlerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil handler")
		}
	}()
	NewChain(nil)
}

func TestSplitRoute(t *testing.T) {
	testCases := []struct {
		route      string
		wantMethod string
		wantPath   string
	}{
		{"GET /products", "GET", "/products"},
		{"PATCH /auth/change-password", "PATCH", "/auth/change-password"},
		{"/favicon.ico", "GET", "/favicon.ico"},
	}

	for _, tc := range testCases {
		method, path := SplitRoute(tc.route)
		if method != tc.wantMethod || path != tc.wantPath {
			t.Errorf("SplitRoute(%q) = (%q, %q), want (%q, %q)",
				tc.route, method, path, tc.wantMethod, tc.wantPath)
		}
	}
}

func TestParamsByName(t *testing.T) {
	ps := Params{{Key: "id", Value: "42"}, {Key: "slug", Value: "alba"}}

	if got := ps.ByName("slug"); got != "alba" {
		t.Errorf("ByName(slug) = %q, want alba", got)
	}
	if got := ps.ByName("missing"); got != "" {
		t.Errorf("ByName(missing) = %q, want empty", got)
	}
}
