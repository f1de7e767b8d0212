package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixedCounter int

func (f fixedCounter) Loaded() int { return int(f) }

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		counter    MarketCounter
		wantStatus int
		wantBody   string
	}{
		{name: "get reports loaded markets", method: http.MethodGet, counter: fixedCounter(2), wantStatus: http.StatusOK, wantBody: `{"status":"ok","markets":2}`},
		{name: "get without counter", method: http.MethodGet, wantStatus: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "head has no body", method: http.MethodHead, counter: fixedCounter(2), wantStatus: http.StatusOK},
		{name: "options", method: http.MethodOptions, counter: fixedCounter(2), wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.Handle(tt.method, "/healthz", Health(tt.counter))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.wantBody == "" {
				assert.Zero(t, w.Body.Len())
				return
			}
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
