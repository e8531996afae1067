package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for geosearch resources.
	uriScheme = "geosearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "providers",
		Name:        "providers",
		Description: "Available lookup providers",
		MIMEType:    "application/json",
	}, s.handleProvidersResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Active control and provider settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "lookup/{query}",
		Name:        "lookup",
		Description: "Locations matching a URL-escaped query",
		MIMEType:    "application/json",
	}, s.handleLookupResource)
}

// handleProvidersResource lists the recognised providers and marks the
// active one.
func (s *Server) handleProvidersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	active := domain.ProviderName("")
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			active = settings.Provider.Name
		}
	}

	type providerInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Active      bool   `json:"active"`
	}

	providers := domain.AllProviders()
	infos := make([]providerInfo, len(providers))
	for i, p := range providers {
		infos[i] = providerInfo{
			Name:        p.String(),
			Description: p.Description(),
			Active:      p == active,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleSettingsResource returns the active settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return jsonResult(req.Params.URI, settings)
}

// handleLookupResource resolves the query embedded in the URI.
func (s *Server) handleLookupResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	locations, err := s.ports.Lookup.Lookup(ctx, query, defaultLimit)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", query, err)
	}

	return jsonResult(req.Params.URI, toOutput(locations))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractQuery extracts the unescaped query from geosearch://lookup/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "lookup/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(query)
}
