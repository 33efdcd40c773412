package tenant

import (
	"errors"

	"github.com/shyntr/shyntr/internal/record"
)

// ErrNotFound indicates the requested tenant does not exist.
var ErrNotFound = errors.New("tenant not found")

// ErrNameExists indicates a create collided with an existing tenant name.
var ErrNameExists = errors.New("tenant name already exists")

// ErrDefaultProtected indicates an attempt to create, modify or delete the
// reserved default tenant.
var ErrDefaultProtected = errors.New("the default tenant is read-only")

// Tenant is an isolation boundary grouping registry records. name is the
// natural key (globally unique, case-sensitive).
type Tenant struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	DisplayName string `json:"display_name" bson:"display_name"`
	Description string `json:"description" bson:"description"`
	CreatedAt   string `json:"created_at,omitempty" bson:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty" bson:"updated_at"`
}

// Payload is the caller-supplied form of a tenant.
type Payload struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

func (p Payload) toTenant() Tenant {
	return Tenant{
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Description: p.Description,
	}
}

// merge computes the stored form of an update: id and created_at come from
// the existing record, updated_at is refreshed, everything else is taken
// from the payload.
func merge(existing Tenant, p Payload) Tenant {
	t := p.toTenant()
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = record.Timestamp()
	return t
}

// defaultTenant is the synthesized variant of the reserved tenant. It is
// produced at the service boundary and never persisted.
func defaultTenant() Tenant {
	return Tenant{
		ID:          record.DefaultTenantID,
		Name:        record.DefaultTenantID,
		DisplayName: "Default Tenant",
		Description: "Built-in tenant for records without an explicit tenant",
	}
}
