package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fundfigures/internal/logger"
)

func TestNewRouter_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init()

	router := NewRouter(NewHandler(&stubService{fig: goodFigures(), id: "ord-1"}))

	cases := []struct {
		name       string
		method     string
		path       string
		body       []byte
		wantStatus int
	}{
		{name: "quote", method: http.MethodPost, path: "/api/v1/figures/quote", body: quoteBody(), wantStatus: http.StatusOK},
		{name: "submit", method: http.MethodPost, path: "/api/v1/orders", body: quoteBody(), wantStatus: http.StatusCreated},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", wantStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader(tc.body))
			if tc.body != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			router.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status %d, want %d; body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
			if tc.wantStatus != http.StatusNotFound && w.Header().Get("X-Request-ID") == "" {
				t.Fatalf("missing X-Request-ID header")
			}
		})
	}
}
