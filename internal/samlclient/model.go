package samlclient

import (
	"errors"

	"github.com/shyntr/shyntr/internal/record"
)

// ErrNotFound indicates the requested SAML client does not exist.
var ErrNotFound = errors.New("saml client not found")

// ErrEntityIDExists indicates a create collided with an existing entity_id.
var ErrEntityIDExists = errors.New("entity id already exists")

// Client is a SAML service-provider registration. Records are addressed by
// the surrogate id; entity_id is the natural key used for uniqueness.
type Client struct {
	ID                string            `json:"id" bson:"id"`
	TenantID          string            `json:"tenant_id" bson:"tenant_id"`
	Name              string            `json:"name" bson:"name"`
	EntityID          string            `json:"entity_id" bson:"entity_id"`
	ACSURL            string            `json:"acs_url" bson:"acs_url"`
	SPCertificate     string            `json:"sp_certificate" bson:"sp_certificate"`
	SignResponse      bool              `json:"sign_response" bson:"sign_response"`
	SignAssertion     bool              `json:"sign_assertion" bson:"sign_assertion"`
	EncryptAssertion  bool              `json:"encrypt_assertion" bson:"encrypt_assertion"`
	ForceAuthn        bool              `json:"force_authn" bson:"force_authn"`
	AttributeMapping  map[string]string `json:"attribute_mapping" bson:"attribute_mapping"`
	Protocol          string            `json:"protocol" bson:"protocol"`
	CreatedAt         string            `json:"created_at" bson:"created_at"`
	UpdatedAt         string            `json:"updated_at" bson:"updated_at"`
}

// Payload is the caller-supplied form of a SAML client.
type Payload struct {
	TenantID         string            `json:"tenant_id"`
	Name             string            `json:"name" binding:"required"`
	EntityID         string            `json:"entity_id" binding:"required"`
	ACSURL           string            `json:"acs_url" binding:"required"`
	SPCertificate    string            `json:"sp_certificate"`
	SignResponse     bool              `json:"sign_response"`
	SignAssertion    bool              `json:"sign_assertion"`
	EncryptAssertion bool              `json:"encrypt_assertion"`
	ForceAuthn       bool              `json:"force_authn"`
	AttributeMapping map[string]string `json:"attribute_mapping"`
}

func (p Payload) toClient() Client {
	c := Client{
		TenantID:         p.TenantID,
		Name:             p.Name,
		EntityID:         p.EntityID,
		ACSURL:           p.ACSURL,
		SPCertificate:    p.SPCertificate,
		SignResponse:     p.SignResponse,
		SignAssertion:    p.SignAssertion,
		EncryptAssertion: p.EncryptAssertion,
		ForceAuthn:       p.ForceAuthn,
		AttributeMapping: p.AttributeMapping,
		Protocol:         record.ProtocolSAML,
	}
	if c.TenantID == "" {
		c.TenantID = record.DefaultTenantID
	}
	if c.AttributeMapping == nil {
		c.AttributeMapping = map[string]string{}
	}
	return c
}

// merge computes the stored form of an update: id and created_at come from
// the existing record, updated_at is refreshed, everything else is taken
// from the payload.
func merge(existing Client, p Payload) Client {
	c := p.toClient()
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = record.Timestamp()
	return c
}
