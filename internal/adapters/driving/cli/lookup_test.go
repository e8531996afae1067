package cli

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

func TestLookupCmd_Use(t *testing.T) {
	assert.Equal(t, "lookup [query]", lookupCmd.Use)
}

func TestLookupCmd_RequiresArg(t *testing.T) {
	_, err := execute("lookup")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestLookupCmd_HasFlags(t *testing.T) {
	limit := lookupCmd.Flags().Lookup("limit")
	require.NotNil(t, limit, "limit flag should exist")
	assert.Equal(t, "n", limit.Shorthand)
	assert.Equal(t, "10", limit.DefValue)

	jsonFlag := lookupCmd.Flags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)
}

func TestLookupCmd_NotConfigured(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	lookupService = nil

	_, err := execute("lookup", "paris")

	assert.EqualError(t, err, "lookup service not configured")
}

func TestLookupCmd_JoinsArgsAndPassesLimit(t *testing.T) {
	lookup, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("lookup", "-n", "3", "eiffel", "tower")

	require.NoError(t, err)
	assert.Equal(t, "eiffel tower", lookup.gotQuery)
	assert.Equal(t, 3, lookup.gotLimit)
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "48.85840")
	assert.Contains(t, out, "Tour Eiffel, Paris, France")
}

func TestLookupCmd_NoResults(t *testing.T) {
	lookup, _, cleanup := setupTestServices()
	defer cleanup()
	lookup.LookupFunc = func(context.Context, string, int) ([]domain.Location, error) {
		return nil, nil
	}

	out, err := execute("lookup", "nowhere")

	require.NoError(t, err)
	assert.Contains(t, out, "No locations found.")
}

func TestLookupCmd_Error(t *testing.T) {
	lookup, _, cleanup := setupTestServices()
	defer cleanup()
	lookup.LookupFunc = func(context.Context, string, int) ([]domain.Location, error) {
		return nil, errors.New("provider down")
	}

	_, err := execute("lookup", "paris")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup failed: provider down")
}

func TestLookupCmd_JSON(t *testing.T) {
	lookup, _, cleanup := setupTestServices()
	defer cleanup()
	bounds := &domain.BoundingBox{South: 48.85, West: 2.29, North: 48.86, East: 2.30}
	lookup.LookupFunc = func(context.Context, string, int) ([]domain.Location, error) {
		return []domain.Location{
			domain.NewLocation(2.2945, 48.8584, "Tour Eiffel", bounds, map[string]any{"type": "attraction"}),
		}, nil
	}

	out, err := execute("lookup", "--json", "eiffel")
	require.NoError(t, err)

	var results []lookupResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Tour Eiffel", results[0].Label)
	assert.InDelta(t, 48.8584, results[0].Lat, 1e-9)
	assert.InDelta(t, 2.2945, results[0].Lng, 1e-9)
	assert.Equal(t, bounds, results[0].Bounds)
	assert.Equal(t, "attraction", results[0].Details["type"])
}

func TestOutputLookupTable_TruncatesToWidth(t *testing.T) {
	locations := []domain.Location{
		domain.NewLocation(0, 0, strings.Repeat("x", 200), nil, nil),
	}
	buf := new(strings.Builder)
	lookupCmd.SetOut(buf)
	defer lookupCmd.SetOut(nil)

	require.NoError(t, outputLookupTable(lookupCmd, locations, 60))

	line := strings.TrimRight(buf.String(), "\n")
	assert.Equal(t, 60, len([]rune(line)))
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestOutputLookupTable_NoWidthKeepsLabel(t *testing.T) {
	label := strings.Repeat("y", 200)
	buf := new(strings.Builder)
	lookupCmd.SetOut(buf)
	defer lookupCmd.SetOut(nil)

	require.NoError(t, outputLookupTable(lookupCmd, []domain.Location{domain.NewLocation(0, 0, label, nil, nil)}, 0))

	assert.Contains(t, buf.String(), label)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 5, "much…"},
		{"zürich centre", 4, "zür…"},
		{"anything", 1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n))
	}
}

func TestTerminalWidth_NotTerminal(t *testing.T) {
	original := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = original }()

	assert.Equal(t, 0, terminalWidth())
}
