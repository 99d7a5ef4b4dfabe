package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthMiddleware(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret-key"})
	handler := mw(authTestHandler())

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid key", "/api/v1/search", "Bearer secret-key", http.StatusOK},
		{"missing header", "/api/v1/search", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/v1/search", "Token secret-key", http.StatusUnauthorized},
		{"invalid key", "/api/v1/search", "Bearer wrong-key", http.StatusUnauthorized},
		{"health exempt", "/health", "", http.StatusOK},
		{"metrics exempt", "/metrics", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestBearerAuthMiddleware_Disabled(t *testing.T) {
	mw := BearerAuthMiddleware(nil)
	handler := mw(authTestHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no keys configured", rec.Code)
	}
}
