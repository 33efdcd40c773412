package samlclient

import (
	"context"
	"errors"
	"testing"
)

func TestCreateSAMLClient(t *testing.T) {
	svc := NewService(NewMemoryStore())

	created, err := svc.CreateClient(context.Background(), Payload{
		Name:     "Grafana",
		EntityID: "https://grafana.example.com/saml/metadata",
		ACSURL:   "https://grafana.example.com/saml/acs",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.TenantID != "default" {
		t.Fatalf("expected default tenant, got %q", created.TenantID)
	}
	if created.Protocol != "saml" {
		t.Fatalf("unexpected protocol %q", created.Protocol)
	}
	if created.AttributeMapping == nil {
		t.Fatalf("expected empty attribute mapping, not nil")
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Fatalf("expected created_at == updated_at")
	}
}

func TestCreateSAMLClientDuplicateEntityID(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	p := Payload{
		Name:     "Grafana",
		EntityID: "https://grafana.example.com/saml/metadata",
		ACSURL:   "https://grafana.example.com/saml/acs",
	}
	if _, err := svc.CreateClient(ctx, p); err != nil {
		t.Fatalf("create error: %v", err)
	}
	p.Name = "Grafana again"
	_, err := svc.CreateClient(ctx, p)
	if !errors.Is(err, ErrEntityIDExists) {
		t.Fatalf("expected ErrEntityIDExists, got %v", err)
	}
}

func TestUpdateSAMLClientPreservesIdentity(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, Payload{
		Name:     "Grafana",
		EntityID: "https://grafana.example.com/saml/metadata",
		ACSURL:   "https://grafana.example.com/saml/acs",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := svc.UpdateClient(ctx, created.ID, Payload{
		Name:       "Grafana prod",
		EntityID:   created.EntityID,
		ACSURL:     created.ACSURL,
		ForceAuthn: true,
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id must be immutable")
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at must be immutable")
	}
	if updated.Name != "Grafana prod" || !updated.ForceAuthn {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestSAMLClientNotFound(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.GetClient(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
	if _, err := svc.UpdateClient(ctx, "missing", Payload{Name: "x", EntityID: "y", ACSURL: "z"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := svc.DeleteClient(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}
