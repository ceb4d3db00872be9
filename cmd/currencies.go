package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/proconsult/onboard/internal/ui/styles"
)

var currenciesJSON bool

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List the reporting currencies a company can choose",
	Long: `List the reporting currencies returned by the IFRS 16 service.

Examples:
  onboard currencies
  onboard currencies --host ifrs16.ifrs.ca
  onboard currencies --json | jq '.[].currencyCode'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		list, err := rt.currencies.GetAllCurrencies(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching currencies: %w", err)
		}

		out := cmd.OutOrStdout()
		if currenciesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
			Headers("ID", "CODE", "NAME").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return styles.TitleStyle.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		for _, c := range list {
			t.Row(strconv.Itoa(c.CurrencyID), c.CurrencyCode, c.CurrencyName)
		}
		_, err = fmt.Fprintln(out, t.Render())
		return err
	},
}

func init() {
	currenciesCmd.Flags().BoolVar(&currenciesJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(currenciesCmd)
}
