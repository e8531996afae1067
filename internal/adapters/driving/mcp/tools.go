package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

const defaultLimit = 10

// LookupInput is the input schema for the lookup tool.
type LookupInput struct {
	Query string `json:"query" jsonschema:"free-text place name or address to resolve"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of locations to return (default 10)"`
}

// LookupOutput is the output schema for the lookup tool.
type LookupOutput struct {
	Locations []LocationOutput `json:"locations"`
	Count     int              `json:"count"`
}

// LocationOutput is a single resolved location.
type LocationOutput struct {
	Label   string              `json:"label"`
	Lat     float64             `json:"lat"`
	Lng     float64             `json:"lng"`
	Bounds  *domain.BoundingBox `json:"bounds,omitempty"`
	Details map[string]any      `json:"details,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "geosearch_lookup",
		Description: "Resolve a place name or address to coordinates",
	}, s.handleLookup)
}

// handleLookup handles the lookup tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	locations, err := s.ports.Lookup.Lookup(ctx, input.Query, limit)
	if err != nil {
		return nil, LookupOutput{}, err
	}

	return nil, toOutput(locations), nil
}

func toOutput(locations []domain.Location) LookupOutput {
	output := LookupOutput{
		Locations: make([]LocationOutput, len(locations)),
		Count:     len(locations),
	}
	for i, loc := range locations {
		output.Locations[i] = LocationOutput{
			Label:   loc.Label,
			Lat:     loc.Lat(),
			Lng:     loc.Lng(),
			Bounds:  loc.Bounds,
			Details: loc.Details,
		}
	}
	return output
}
