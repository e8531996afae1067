package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

var (
	lookupLimit int
	lookupJSON  bool
)

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or 0 when it is not a terminal.
var terminalWidth = func() int {
	if !isTerminal() {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Resolve a place or address to coordinates",
	Long: `Resolves free text through the configured provider and prints the
matching locations, best match first.

Multiple arguments are joined with spaces, so quoting is optional:
  geosearch lookup Eiffel Tower
  geosearch lookup "10 Downing Street, London" --limit 1 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().IntVarP(&lookupLimit, "limit", "n", 10, "maximum number of locations")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output locations as JSON")
	rootCmd.AddCommand(lookupCmd)
}

// lookupResult is the JSON form of a location.
type lookupResult struct {
	Label   string              `json:"label"`
	Lat     float64             `json:"lat"`
	Lng     float64             `json:"lng"`
	Bounds  *domain.BoundingBox `json:"bounds,omitempty"`
	Details map[string]any      `json:"details,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	locations, err := lookupService.Lookup(cmd.Context(), query, lookupLimit)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if lookupJSON {
		return outputLookupJSON(cmd, locations)
	}

	return outputLookupTable(cmd, locations, terminalWidth())
}

func outputLookupJSON(cmd *cobra.Command, locations []domain.Location) error {
	results := make([]lookupResult, len(locations))
	for i, loc := range locations {
		results[i] = lookupResult{
			Label:   loc.Label,
			Lat:     loc.Lat(),
			Lng:     loc.Lng(),
			Bounds:  loc.Bounds,
			Details: loc.Details,
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputLookupTable prints one location per line. Labels are cut to fit
// width when it is known.
func outputLookupTable(cmd *cobra.Command, locations []domain.Location, width int) error {
	if len(locations) == 0 {
		cmd.Println("No locations found.")
		return nil
	}

	for i, loc := range locations {
		prefix := fmt.Sprintf("  [%d] %10.5f, %10.5f  ", i+1, loc.Lat(), loc.Lng())
		label := loc.Label
		if width > 0 {
			label = truncate(label, width-len(prefix))
		}
		cmd.Printf("%s%s\n", prefix, label)
	}

	return nil
}

func truncate(s string, n int) string {
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
