package oidcclient

import (
	"errors"

	"github.com/shyntr/shyntr/internal/record"
)

// Token endpoint authentication methods accepted on a client.
const (
	AuthMethodClientSecretBasic = "client_secret_basic"
	AuthMethodClientSecretPost  = "client_secret_post"
	AuthMethodPrivateKeyJWT     = "private_key_jwt"
	AuthMethodNone              = "none"
)

// ErrNotFound indicates the requested client does not exist.
var ErrNotFound = errors.New("client not found")

// ErrClientIDExists indicates a create collided with an existing client_id.
var ErrClientIDExists = errors.New("client id already exists")

// Client is an OAuth2/OIDC client registration. client_id is the natural
// key; there is no separate surrogate id.
type Client struct {
	ClientID           string   `json:"client_id" bson:"client_id"`
	TenantID           string   `json:"tenant_id" bson:"tenant_id"`
	Name               string   `json:"name" bson:"name"`
	RedirectURIs       []string `json:"redirect_uris" bson:"redirect_uris"`
	AllowedCORSOrigins []string `json:"allowed_cors_origins" bson:"allowed_cors_origins"`
	GrantTypes         []string `json:"grant_types" bson:"grant_types"`
	ResponseTypes      []string `json:"response_types" bson:"response_types"`
	Scopes             []string `json:"scopes" bson:"scopes"`
	Audience           []string `json:"audience" bson:"audience"`
	Public             bool     `json:"public" bson:"public"`
	EnforcePKCE        bool     `json:"enforce_pkce" bson:"enforce_pkce"`
	AuthMethod         string   `json:"auth_method" bson:"auth_method"`
	ClientSecret       string   `json:"client_secret" bson:"client_secret"`
	Protocol           string   `json:"protocol" bson:"protocol"`
	CreatedAt          string   `json:"created_at" bson:"created_at"`
	UpdatedAt          string   `json:"updated_at" bson:"updated_at"`
}

// Payload is the caller-supplied form of a client, used for both create
// and update. client_secret may be omitted: on create a secret is
// generated, on update the stored one is carried over.
type Payload struct {
	ClientID           string   `json:"client_id" binding:"required"`
	TenantID           string   `json:"tenant_id"`
	Name               string   `json:"name"`
	RedirectURIs       []string `json:"redirect_uris"`
	AllowedCORSOrigins []string `json:"allowed_cors_origins"`
	GrantTypes         []string `json:"grant_types"`
	ResponseTypes      []string `json:"response_types"`
	Scopes             []string `json:"scopes"`
	Audience           []string `json:"audience"`
	Public             bool     `json:"public"`
	EnforcePKCE        *bool    `json:"enforce_pkce"`
	AuthMethod         string   `json:"auth_method"`
	ClientSecret       string   `json:"client_secret"`
}

// toClient converts a payload to its stored form, applying defaults.
// Timestamps and secret generation are the service's job.
func (p Payload) toClient() Client {
	c := Client{
		ClientID:           p.ClientID,
		TenantID:           p.TenantID,
		Name:               p.Name,
		RedirectURIs:       p.RedirectURIs,
		AllowedCORSOrigins: p.AllowedCORSOrigins,
		GrantTypes:         p.GrantTypes,
		ResponseTypes:      p.ResponseTypes,
		Scopes:             p.Scopes,
		Audience:           p.Audience,
		Public:             p.Public,
		EnforcePKCE:        true,
		AuthMethod:         p.AuthMethod,
		ClientSecret:       p.ClientSecret,
		Protocol:           record.ProtocolOIDC,
	}
	if p.EnforcePKCE != nil {
		c.EnforcePKCE = *p.EnforcePKCE
	}
	if c.TenantID == "" {
		c.TenantID = record.DefaultTenantID
	}
	if c.AuthMethod == "" {
		c.AuthMethod = AuthMethodClientSecretBasic
	}
	if c.GrantTypes == nil {
		c.GrantTypes = []string{"authorization_code"}
	}
	if c.ResponseTypes == nil {
		c.ResponseTypes = []string{"code"}
	}
	if c.Scopes == nil {
		c.Scopes = []string{"openid", "profile", "email"}
	}
	if c.RedirectURIs == nil {
		c.RedirectURIs = []string{}
	}
	if c.AllowedCORSOrigins == nil {
		c.AllowedCORSOrigins = []string{}
	}
	if c.Audience == nil {
		c.Audience = []string{}
	}
	return c
}

// merge computes the stored form of an update. Per-field policy:
//
//	created_at     immutable, copied from the existing record
//	client_secret  carried over when the payload omits it
//	updated_at     refreshed to now
//	everything else overwritten from the payload
func merge(existing Client, p Payload) Client {
	c := p.toClient()
	c.ClientID = existing.ClientID
	c.CreatedAt = existing.CreatedAt
	if c.ClientSecret == "" {
		c.ClientSecret = existing.ClientSecret
	}
	c.UpdatedAt = record.Timestamp()
	return c
}
