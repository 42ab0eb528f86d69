package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	httptransport "smartdrive/internal/http"
	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/chat"
	"smartdrive/internal/modules/session"
)

func TestRoutes(t *testing.T) {
	store := session.NewStore()
	coll := catalog.NewCollection([]catalog.Listing{{Brand: "Dacia", Type: "SUV", City: "Rabat"}})
	srv := httptransport.NewServer(httptransport.ServerDeps{
		Chat:        chat.NewService(store, nil, coll, chat.Options{}),
		Sessions:    store,
		Listings:    coll,
		ResultLimit: 10,
	})
	h := srv.Routes()

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/cars?city=Rabat", http.StatusOK},
		{http.MethodPost, "/api/sessions", http.StatusCreated},
		{http.MethodGet, "/api/sessions/unseen", http.StatusNotFound},
		{http.MethodOptions, "/chat", http.StatusNoContent},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "http://example.test")
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}

	// A turn without a session id never reaches the orchestrator.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"bonjour"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
