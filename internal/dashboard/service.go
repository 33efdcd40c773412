package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/shyntr/shyntr/internal/connection"
	"github.com/shyntr/shyntr/internal/oidcclient"
	"github.com/shyntr/shyntr/internal/record"
	"github.com/shyntr/shyntr/internal/samlclient"
	"github.com/shyntr/shyntr/internal/tenant"
)

// Per-collection pulls for the activity feed, and the size of the merged
// feed. The feed is illustrative, not a complete audit trail.
const (
	recentClients     = 3
	recentConnections = 2
	activityFeedSize  = 5
)

// Stats is the aggregated dashboard view.
type Stats struct {
	TotalOIDCClients     int64      `json:"total_oidc_clients"`
	TotalSAMLClients     int64      `json:"total_saml_clients"`
	TotalSAMLConnections int64      `json:"total_saml_connections"`
	TotalOIDCConnections int64      `json:"total_oidc_connections"`
	TotalTenants         int64      `json:"total_tenants"`
	PublicClients        int64      `json:"public_clients"`
	ConfidentialClients  int64      `json:"confidential_clients"`
	RecentActivity       []Activity `json:"recent_activity"`
}

// Activity is one entry in the recent-activity feed.
type Activity struct {
	Type      string `json:"type"`
	Protocol  string `json:"protocol"`
	Action    string `json:"action"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

// Service computes the dashboard view.
type Service interface {
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	clients     oidcclient.Store
	samlClients samlclient.Store
	samlConns   connection.SAMLStore
	oidcConns   connection.OIDCStore
	tenants     tenant.Store
}

// NewService creates a new dashboard service reading from the five
// registry stores.
func NewService(
	clients oidcclient.Store,
	samlClients samlclient.Store,
	samlConns connection.SAMLStore,
	oidcConns connection.OIDCStore,
	tenants tenant.Store,
) Service {
	return &service{
		clients:     clients,
		samlClients: samlClients,
		samlConns:   samlConns,
		oidcConns:   oidcConns,
		tenants:     tenants,
	}
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{}

	var err error
	if stats.TotalOIDCClients, err = s.clients.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count oidc clients: %w", err)
	}
	if stats.TotalSAMLClients, err = s.samlClients.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count saml clients: %w", err)
	}
	if stats.TotalSAMLConnections, err = s.samlConns.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count saml connections: %w", err)
	}
	if stats.TotalOIDCConnections, err = s.oidcConns.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count oidc connections: %w", err)
	}
	if stats.TotalTenants, err = s.tenants.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count tenants: %w", err)
	}
	// The implicit default tenant exists even with zero stored documents.
	if stats.TotalTenants == 0 {
		stats.TotalTenants = 1
	}
	if stats.PublicClients, err = s.clients.CountPublic(ctx); err != nil {
		return Stats{}, fmt.Errorf("count public clients: %w", err)
	}
	stats.ConfidentialClients = stats.TotalOIDCClients - stats.PublicClients

	activity, err := s.recentActivity(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.RecentActivity = activity

	return stats, nil
}

func (s *service) recentActivity(ctx context.Context) ([]Activity, error) {
	activity := []Activity{}

	clients, err := s.clients.Recent(ctx, recentClients)
	if err != nil {
		return nil, fmt.Errorf("recent oidc clients: %w", err)
	}
	for _, c := range clients {
		activity = append(activity, Activity{
			Type:      "client",
			Protocol:  record.ProtocolOIDC,
			Action:    "created",
			Name:      displayName(c.Name, c.ClientID),
			Timestamp: c.CreatedAt,
		})
	}

	samlClients, err := s.samlClients.Recent(ctx, recentConnections)
	if err != nil {
		return nil, fmt.Errorf("recent saml clients: %w", err)
	}
	for _, c := range samlClients {
		activity = append(activity, Activity{
			Type:      "saml_client",
			Protocol:  record.ProtocolSAML,
			Action:    "created",
			Name:      displayName(c.Name, c.EntityID),
			Timestamp: c.CreatedAt,
		})
	}

	samlConns, err := s.samlConns.Recent(ctx, recentConnections)
	if err != nil {
		return nil, fmt.Errorf("recent saml connections: %w", err)
	}
	for _, conn := range samlConns {
		activity = append(activity, Activity{
			Type:      "saml_connection",
			Protocol:  record.ProtocolSAML,
			Action:    "created",
			Name:      displayName(conn.Name, conn.ID),
			Timestamp: conn.CreatedAt,
		})
	}

	oidcConns, err := s.oidcConns.Recent(ctx, recentConnections)
	if err != nil {
		return nil, fmt.Errorf("recent oidc connections: %w", err)
	}
	for _, conn := range oidcConns {
		activity = append(activity, Activity{
			Type:      "oidc_connection",
			Protocol:  record.ProtocolOIDC,
			Action:    "created",
			Name:      displayName(conn.Name, conn.ID),
			Timestamp: conn.CreatedAt,
		})
	}

	// Timestamps share a fixed-width layout, so string order is
	// chronological order.
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})
	if len(activity) > activityFeedSize {
		activity = activity[:activityFeedSize]
	}
	return activity, nil
}

// displayName falls back from name to the natural key to "Unknown".
func displayName(name, key string) string {
	if name != "" {
		return name
	}
	if key != "" {
		return key
	}
	return "Unknown"
}
