package connection

import (
	"errors"
	"strings"

	"github.com/shyntr/shyntr/internal/record"
)

// ErrNotFound indicates the requested connection does not exist.
var ErrNotFound = errors.New("connection not found")

// ErrInvalidMetadata indicates the supplied IdP metadata is not XML.
var ErrInvalidMetadata = errors.New("invalid XML: IDP metadata must be valid XML")

// SAMLConnection is an upstream SAML identity-provider configuration.
type SAMLConnection struct {
	ID               string            `json:"id" bson:"id"`
	TenantID         string            `json:"tenant_id" bson:"tenant_id"`
	Name             string            `json:"name" bson:"name"`
	IDPMetadataXML   string            `json:"idp_metadata_xml" bson:"idp_metadata_xml"`
	SignRequest      bool              `json:"sign_request" bson:"sign_request"`
	ForceAuthn       bool              `json:"force_authn" bson:"force_authn"`
	AttributeMapping map[string]string `json:"attribute_mapping" bson:"attribute_mapping"`
	Protocol         string            `json:"protocol" bson:"protocol"`
	CreatedAt        string            `json:"created_at" bson:"created_at"`
	UpdatedAt        string            `json:"updated_at" bson:"updated_at"`
}

// SAMLPayload is the caller-supplied form of a SAML connection.
type SAMLPayload struct {
	TenantID         string            `json:"tenant_id"`
	Name             string            `json:"name" binding:"required"`
	IDPMetadataXML   string            `json:"idp_metadata_xml" binding:"required"`
	SignRequest      *bool             `json:"sign_request"`
	ForceAuthn       bool              `json:"force_authn"`
	AttributeMapping map[string]string `json:"attribute_mapping"`
}

func (p SAMLPayload) toConnection() SAMLConnection {
	conn := SAMLConnection{
		TenantID:         p.TenantID,
		Name:             p.Name,
		IDPMetadataXML:   p.IDPMetadataXML,
		SignRequest:      true,
		ForceAuthn:       p.ForceAuthn,
		AttributeMapping: p.AttributeMapping,
		Protocol:         record.ProtocolSAML,
	}
	if p.SignRequest != nil {
		conn.SignRequest = *p.SignRequest
	}
	if conn.TenantID == "" {
		conn.TenantID = record.DefaultTenantID
	}
	if conn.AttributeMapping == nil {
		conn.AttributeMapping = map[string]string{}
	}
	return conn
}

// OIDCConnection is an upstream OIDC identity-provider configuration.
// The endpoint fields override discovery when set.
type OIDCConnection struct {
	ID                    string   `json:"id" bson:"id"`
	TenantID              string   `json:"tenant_id" bson:"tenant_id"`
	Name                  string   `json:"name" bson:"name"`
	IssuerURL             string   `json:"issuer_url" bson:"issuer_url"`
	ClientID              string   `json:"client_id" bson:"client_id"`
	ClientSecret          string   `json:"client_secret" bson:"client_secret"`
	Scopes                []string `json:"scopes" bson:"scopes"`
	AuthorizationEndpoint string   `json:"authorization_endpoint,omitempty" bson:"authorization_endpoint,omitempty"`
	TokenEndpoint         string   `json:"token_endpoint,omitempty" bson:"token_endpoint,omitempty"`
	UserinfoEndpoint      string   `json:"userinfo_endpoint,omitempty" bson:"userinfo_endpoint,omitempty"`
	Protocol              string   `json:"protocol" bson:"protocol"`
	CreatedAt             string   `json:"created_at" bson:"created_at"`
	UpdatedAt             string   `json:"updated_at" bson:"updated_at"`
}

// OIDCPayload is the caller-supplied form of an OIDC connection.
type OIDCPayload struct {
	TenantID              string   `json:"tenant_id"`
	Name                  string   `json:"name" binding:"required"`
	IssuerURL             string   `json:"issuer_url" binding:"required"`
	ClientID              string   `json:"client_id" binding:"required"`
	ClientSecret          string   `json:"client_secret" binding:"required"`
	Scopes                []string `json:"scopes"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	UserinfoEndpoint      string   `json:"userinfo_endpoint"`
}

func (p OIDCPayload) toConnection() OIDCConnection {
	conn := OIDCConnection{
		TenantID:              p.TenantID,
		Name:                  p.Name,
		IssuerURL:             p.IssuerURL,
		ClientID:              p.ClientID,
		ClientSecret:          p.ClientSecret,
		Scopes:                p.Scopes,
		AuthorizationEndpoint: p.AuthorizationEndpoint,
		TokenEndpoint:         p.TokenEndpoint,
		UserinfoEndpoint:      p.UserinfoEndpoint,
		Protocol:              record.ProtocolOIDC,
	}
	if conn.TenantID == "" {
		conn.TenantID = record.DefaultTenantID
	}
	if conn.Scopes == nil {
		conn.Scopes = []string{"openid", "email", "profile"}
	}
	return conn
}

// mergeSAML computes the stored form of a SAML connection update: id and
// created_at come from the existing record, updated_at is refreshed,
// everything else is taken from the payload.
func mergeSAML(existing SAMLConnection, p SAMLPayload) SAMLConnection {
	conn := p.toConnection()
	conn.ID = existing.ID
	conn.CreatedAt = existing.CreatedAt
	conn.UpdatedAt = record.Timestamp()
	return conn
}

// mergeOIDC is the OIDC counterpart of mergeSAML. client_secret is required
// on the payload, so there is no carry-over here.
func mergeOIDC(existing OIDCConnection, p OIDCPayload) OIDCConnection {
	conn := p.toConnection()
	conn.ID = existing.ID
	conn.CreatedAt = existing.CreatedAt
	conn.UpdatedAt = record.Timestamp()
	return conn
}

// validateMetadataXML applies the minimal well-formedness check on IdP
// metadata: the trimmed value must start with an XML declaration or a tag.
// Anything deeper (schema, signatures) is out of scope here.
func validateMetadataXML(metadata string) error {
	trimmed := strings.TrimSpace(metadata)
	if strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<") {
		return nil
	}
	return ErrInvalidMetadata
}
