package tenant

import (
	"context"
	"errors"
	"testing"
)

func TestListTenantsIncludesDefault(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	tenants, err := svc.ListTenants(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(tenants) != 1 || tenants[0].ID != "default" {
		t.Fatalf("expected only the default tenant, got %+v", tenants)
	}

	if _, err := svc.CreateTenant(ctx, Payload{Name: "acme"}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	tenants, err = svc.ListTenants(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("expected 2 tenants, got %d", len(tenants))
	}
	if tenants[0].ID != "default" {
		t.Fatalf("default tenant must come first, got %+v", tenants[0])
	}
}

func TestGetDefaultTenant(t *testing.T) {
	svc := NewService(NewMemoryStore())

	got, err := svc.GetTenant(context.Background(), "default")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Name != "default" || got.DisplayName == "" {
		t.Fatalf("unexpected default tenant: %+v", got)
	}
	if got.CreatedAt != "" {
		t.Fatalf("default tenant carries no timestamps, got %q", got.CreatedAt)
	}
}

func TestCreateTenant(t *testing.T) {
	svc := NewService(NewMemoryStore())

	created, err := svc.CreateTenant(context.Background(), Payload{
		Name:        "acme",
		DisplayName: "Acme Corp",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.ID == "" || created.ID == "default" {
		t.Fatalf("expected generated id, got %q", created.ID)
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Fatalf("expected created_at == updated_at")
	}
}

func TestCreateTenantRejectsReservedName(t *testing.T) {
	svc := NewService(NewMemoryStore())

	_, err := svc.CreateTenant(context.Background(), Payload{Name: "default"})
	if !errors.Is(err, ErrDefaultProtected) {
		t.Fatalf("expected ErrDefaultProtected, got %v", err)
	}
}

func TestCreateTenantRejectsDuplicateName(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.CreateTenant(ctx, Payload{Name: "acme"}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	_, err := svc.CreateTenant(ctx, Payload{Name: "acme"})
	if !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}
}

func TestUpdateTenantProtectsDefault(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.UpdateTenant(ctx, "default", Payload{Name: "renamed"}); !errors.Is(err, ErrDefaultProtected) {
		t.Fatalf("expected ErrDefaultProtected updating default, got %v", err)
	}

	created, err := svc.CreateTenant(ctx, Payload{Name: "acme"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	// Renaming another tenant to the reserved name is also refused.
	if _, err := svc.UpdateTenant(ctx, created.ID, Payload{Name: "default"}); !errors.Is(err, ErrDefaultProtected) {
		t.Fatalf("expected ErrDefaultProtected renaming to default, got %v", err)
	}
}

func TestUpdateTenant(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateTenant(ctx, Payload{Name: "acme"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	updated, err := svc.UpdateTenant(ctx, created.ID, Payload{
		Name:        "acme",
		DisplayName: "Acme Corporation",
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.DisplayName != "Acme Corporation" {
		t.Fatalf("unexpected display name %q", updated.DisplayName)
	}
	if updated.ID != created.ID || updated.CreatedAt != created.CreatedAt {
		t.Fatalf("identity fields must be immutable")
	}
}

func TestDeleteTenantProtectsDefault(t *testing.T) {
	svc := NewService(NewMemoryStore())

	if err := svc.DeleteTenant(context.Background(), "default"); !errors.Is(err, ErrDefaultProtected) {
		t.Fatalf("expected ErrDefaultProtected, got %v", err)
	}
}

func TestDeleteTenant(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateTenant(ctx, Payload{Name: "acme"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := svc.DeleteTenant(ctx, created.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := svc.GetTenant(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
