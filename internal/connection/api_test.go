package connection

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := NewService(NewSAMLMemoryStore(), NewOIDCMemoryStore())
	NewHTTPHandler(svc, zap.NewNop()).RegisterRoutes(router.Group("/api"))
	return router
}

func performRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSAMLConnectionEndpointRejectsNonXML(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(map[string]any{
		"name":             "Broken IdP",
		"idp_metadata_xml": "not xml at all",
	})
	w := performRequest(router, http.MethodPost, "/api/saml-connections", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "invalid XML: IDP metadata must be valid XML" {
		t.Fatalf("unexpected error message %q", resp["error"])
	}
}

func TestSAMLConnectionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(map[string]any{
		"name":             "Corporate IdP",
		"idp_metadata_xml": sampleMetadata,
	})
	w := performRequest(router, http.MethodPost, "/api/saml-connections", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created SAMLConnection
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if !created.SignRequest {
		t.Fatalf("expected sign_request default true")
	}

	w = performRequest(router, http.MethodDelete, "/api/saml-connections/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if resp["message"] != "SAML Connection deleted successfully" {
		t.Fatalf("unexpected message %q", resp["message"])
	}
}

func TestOIDCConnectionEndpointValidation(t *testing.T) {
	router := newTestRouter()

	// client_secret is required on OIDC connections
	body, _ := json.Marshal(map[string]any{
		"name":       "Google",
		"issuer_url": "https://accounts.google.com",
		"client_id":  "google-client",
	})
	w := performRequest(router, http.MethodPost, "/api/oidc-connections", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestOIDCConnectionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(map[string]any{
		"name":          "Google Workspace",
		"issuer_url":    "https://accounts.google.com",
		"client_id":     "google-client",
		"client_secret": "google-secret",
	})
	w := performRequest(router, http.MethodPost, "/api/oidc-connections", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created OIDCConnection
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = performRequest(router, http.MethodGet, "/api/oidc-connections/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", w.Code)
	}

	w = performRequest(router, http.MethodDelete, "/api/oidc-connections/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", w.Code)
	}

	w = performRequest(router, http.MethodGet, "/api/oidc-connections/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}
