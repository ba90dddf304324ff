package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/output"
	"github.com/blackwell-systems/weatherfocus/internal/suggest"
)

var (
	suggestLocal     bool
	suggestProviders bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get productivity suggestions for the current conditions",
	Long: `Ask the first configured AI provider for three suggestions based on the
latest weather and productivity samples. Without a provider, or when the
provider fails, built-in heuristics answer instead.

Providers are tried in the order set by providers.order (default: cohere,
huggingface, anthropic). A provider is enabled by its API key:
  COHERE_API_KEY, HF_API_KEY, ANTHROPIC_API_KEY

Examples:
  weatherfocus suggest
  weatherfocus suggest --local         # skip AI providers
  weatherfocus suggest --providers     # show which provider would be used`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestLocal, "local", false, "Use local heuristics only")
	suggestCmd.Flags().BoolVar(&suggestProviders, "providers", false, "List providers and exit")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	w := cmd.OutOrStdout()
	if suggestProviders {
		return listProviders(cmd, d.chain)
	}

	var res suggest.Result
	if suggestLocal {
		weather, productivity := d.engine.Current(cmd.Context())
		res = suggest.Local(suggest.NewContext(weather, productivity, time.Now()))
	} else {
		res = d.engine.Suggestions(cmd.Context())
	}

	if flagJSON {
		return writeJSON(w, res)
	}
	renderSuggestions(w, res)
	return nil
}

type providerStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Active    bool   `json:"active"`
}

func listProviders(cmd *cobra.Command, chain *suggest.Chain) error {
	active := chain.Active()
	var rows []providerStatus
	for _, p := range chain.Providers() {
		rows = append(rows, providerStatus{
			Name:      p.Name(),
			Available: p.Available(),
			Active:    active != nil && active.Name() == p.Name(),
		})
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), rows)
	}

	tbl := output.NewTable("Provider", "Key", "Active")
	for _, r := range rows {
		key, act := "missing", ""
		if r.Available {
			key = "set"
		}
		if r.Active {
			act = output.StyleSuccess.Render("✓")
		}
		tbl.AddRow(r.Name, key, act)
	}
	fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
	if active == nil {
		fmt.Fprintln(cmd.OutOrStdout(), output.StyleMuted.Render("No provider configured; using local heuristics."))
	}
	return nil
}
