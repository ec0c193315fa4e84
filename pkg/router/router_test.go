package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"exact", "/api/v1/runs", "/api/v1/runs", true},
		{"segment wildcard", "/api/v1/runs/abc/logs", "/api/v1/runs/*/logs", true},
		{"wildcard wrong suffix", "/api/v1/runs/abc/errors", "/api/v1/runs/*/logs", false},
		{"trailing wildcard", "/swagger/index.html", "/swagger/*", true},
		{"trailing wildcard deep", "/api/v1/download/run-1/Summary.csv", "/api/v1/download/*", true},
		{"length mismatch", "/api/v1/runs/abc/logs/extra", "/api/v1/runs/*/logs", false},
		{"different path", "/api/v2/runs", "/api/v1/runs", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPattern(tt.path, tt.pattern))
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("list"))
	})
	r.GET("/api/v1/runs/*/logs", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("logs"))
	})
	r.POST("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("created"))
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"exact route", http.MethodGet, "/api/v1/runs", http.StatusOK, "list"},
		{"wildcard route", http.MethodGet, "/api/v1/runs/abc/logs", http.StatusOK, "logs"},
		{"method routing", http.MethodPost, "/api/v1/runs", http.StatusOK, "created"},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, ""},
		{"known path wrong method", http.MethodDelete, "/api/v1/runs", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			r.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRouterRegistrationOrderWins(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs/*/logs", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("specific"))
	})
	r.GET("/api/v1/runs/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("generic"))
	})
	assert.Equal(t, 2, r.RouteCount())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/abc/logs", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "specific", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/runs/abc", nil)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "generic", rec.Body.String())
}
