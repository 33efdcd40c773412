package connection

import (
	"context"
	"errors"
	"testing"
)

const sampleMetadata = `<?xml version="1.0"?><EntityDescriptor entityID="https://idp.example.com"></EntityDescriptor>`

func newTestService() Service {
	return NewService(NewSAMLMemoryStore(), NewOIDCMemoryStore())
}

func TestCreateSAMLConnection(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateSAMLConnection(context.Background(), SAMLPayload{
		Name:           "Corporate IdP",
		IDPMetadataXML: sampleMetadata,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !created.SignRequest {
		t.Fatalf("expected sign_request enabled by default")
	}
	if created.TenantID != "default" {
		t.Fatalf("expected default tenant, got %q", created.TenantID)
	}
	if created.Protocol != "saml" {
		t.Fatalf("unexpected protocol %q", created.Protocol)
	}
}

func TestCreateSAMLConnectionRejectsNonXML(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateSAMLConnection(context.Background(), SAMLPayload{
		Name:           "Broken",
		IDPMetadataXML: "this is not xml",
	})
	if !errors.Is(err, ErrInvalidMetadata) {
		t.Fatalf("expected ErrInvalidMetadata, got %v", err)
	}

	conns, err := svc.ListSAMLConnections(context.Background())
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(conns) != 0 {
		t.Fatalf("rejected create must not persist, got %d connections", len(conns))
	}
}

func TestUpdateSAMLConnectionValidatesXML(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSAMLConnection(ctx, SAMLPayload{
		Name:           "Corporate IdP",
		IDPMetadataXML: sampleMetadata,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	_, err = svc.UpdateSAMLConnection(ctx, created.ID, SAMLPayload{
		Name:           "Corporate IdP",
		IDPMetadataXML: "garbage",
	})
	if !errors.Is(err, ErrInvalidMetadata) {
		t.Fatalf("expected ErrInvalidMetadata on update, got %v", err)
	}

	got, err := svc.GetSAMLConnection(ctx, created.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.IDPMetadataXML != sampleMetadata {
		t.Fatalf("rejected update must not change the record")
	}
}

func TestUpdateSAMLConnectionCanDisableSignRequest(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSAMLConnection(ctx, SAMLPayload{
		Name:           "Corporate IdP",
		IDPMetadataXML: sampleMetadata,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	off := false
	updated, err := svc.UpdateSAMLConnection(ctx, created.ID, SAMLPayload{
		Name:           created.Name,
		IDPMetadataXML: sampleMetadata,
		SignRequest:    &off,
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.SignRequest {
		t.Fatalf("expected sign_request disabled")
	}
	if updated.ID != created.ID || updated.CreatedAt != created.CreatedAt {
		t.Fatalf("identity fields must be immutable")
	}
}

func TestOIDCConnectionLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateOIDCConnection(ctx, OIDCPayload{
		Name:         "Google Workspace",
		IssuerURL:    "https://accounts.google.com",
		ClientID:     "google-client",
		ClientSecret: "google-secret",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(created.Scopes) != 3 {
		t.Fatalf("expected default scopes, got %v", created.Scopes)
	}
	if created.Protocol != "oidc" {
		t.Fatalf("unexpected protocol %q", created.Protocol)
	}

	updated, err := svc.UpdateOIDCConnection(ctx, created.ID, OIDCPayload{
		Name:         "Google Workspace",
		IssuerURL:    created.IssuerURL,
		ClientID:     created.ClientID,
		ClientSecret: "rotated-secret",
		Scopes:       []string{"openid"},
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.ClientSecret != "rotated-secret" {
		t.Fatalf("expected secret replaced, got %q", updated.ClientSecret)
	}
	if len(updated.Scopes) != 1 {
		t.Fatalf("expected scopes replaced, got %v", updated.Scopes)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at must be immutable")
	}

	if err := svc.DeleteOIDCConnection(ctx, created.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := svc.GetOIDCConnection(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestConnectionNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.GetSAMLConnection(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteSAMLConnection(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetOIDCConnection(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteOIDCConnection(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
