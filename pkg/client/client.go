// Package client is a small Go SDK for the Shyntr registry API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shyntr/shyntr/internal/connection"
	"github.com/shyntr/shyntr/internal/dashboard"
	"github.com/shyntr/shyntr/internal/oidcclient"
	"github.com/shyntr/shyntr/internal/samlclient"
	"github.com/shyntr/shyntr/internal/tenant"
)

// Client is a client for the registry API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Config holds configuration for the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a new Client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: cfg.BaseURL,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// doRequest helper to perform JSON requests against the API.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

// ListClients lists registered OIDC clients.
func (c *Client) ListClients(ctx context.Context) ([]oidcclient.Client, error) {
	var out []oidcclient.Client
	if err := c.doRequest(ctx, http.MethodGet, "/api/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClient fetches one OIDC client by client_id.
func (c *Client) GetClient(ctx context.Context, clientID string) (oidcclient.Client, error) {
	var out oidcclient.Client
	err := c.doRequest(ctx, http.MethodGet, "/api/clients/"+clientID, nil, &out)
	return out, err
}

// CreateClient registers a new OIDC client.
func (c *Client) CreateClient(ctx context.Context, p oidcclient.Payload) (oidcclient.Client, error) {
	var out oidcclient.Client
	err := c.doRequest(ctx, http.MethodPost, "/api/clients", p, &out)
	return out, err
}

// UpdateClient replaces an OIDC client registration.
func (c *Client) UpdateClient(ctx context.Context, clientID string, p oidcclient.Payload) (oidcclient.Client, error) {
	var out oidcclient.Client
	err := c.doRequest(ctx, http.MethodPut, "/api/clients/"+clientID, p, &out)
	return out, err
}

// DeleteClient removes an OIDC client registration.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/clients/"+clientID, nil, nil)
}

// ListSAMLClients lists registered SAML service providers.
func (c *Client) ListSAMLClients(ctx context.Context) ([]samlclient.Client, error) {
	var out []samlclient.Client
	if err := c.doRequest(ctx, http.MethodGet, "/api/saml-clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSAMLConnections lists upstream SAML identity providers.
func (c *Client) ListSAMLConnections(ctx context.Context) ([]connection.SAMLConnection, error) {
	var out []connection.SAMLConnection
	if err := c.doRequest(ctx, http.MethodGet, "/api/saml-connections", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOIDCConnections lists upstream OIDC identity providers.
func (c *Client) ListOIDCConnections(ctx context.Context) ([]connection.OIDCConnection, error) {
	var out []connection.OIDCConnection
	if err := c.doRequest(ctx, http.MethodGet, "/api/oidc-connections", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTenants lists tenants, including the built-in default one.
func (c *Client) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	if err := c.doRequest(ctx, http.MethodGet, "/api/tenants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTenant creates a tenant.
func (c *Client) CreateTenant(ctx context.Context, p tenant.Payload) (tenant.Tenant, error) {
	var out tenant.Tenant
	err := c.doRequest(ctx, http.MethodPost, "/api/tenants", p, &out)
	return out, err
}

// DeleteTenant removes a tenant. The default tenant is refused by the API.
func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/tenants/"+id, nil, nil)
}

// DashboardStats fetches the aggregated dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (dashboard.Stats, error) {
	var out dashboard.Stats
	err := c.doRequest(ctx, http.MethodGet, "/api/dashboard/stats", nil, &out)
	return out, err
}
