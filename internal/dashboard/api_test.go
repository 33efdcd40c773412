package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubService struct {
	statsFn func(ctx context.Context) (Stats, error)
}

func (s *stubService) Stats(ctx context.Context) (Stats, error) { return s.statsFn(ctx) }

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHTTPHandler(svc, zap.NewNop()).RegisterRoutes(router.Group("/api"))
	return router
}

func TestStatsEndpoint(t *testing.T) {
	svc := &stubService{
		statsFn: func(ctx context.Context) (Stats, error) {
			return Stats{
				TotalOIDCClients:    4,
				TotalTenants:        1,
				PublicClients:       1,
				ConfidentialClients: 3,
				RecentActivity:      []Activity{},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{
		"total_oidc_clients", "total_saml_clients", "total_saml_connections",
		"total_oidc_connections", "total_tenants", "public_clients",
		"confidential_clients", "recent_activity",
	} {
		if _, ok := got[field]; !ok {
			t.Fatalf("missing field %q in response", field)
		}
	}
}

func TestStatsEndpointError(t *testing.T) {
	svc := &stubService{
		statsFn: func(ctx context.Context) (Stats, error) {
			return Stats{}, errors.New("store unavailable")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
