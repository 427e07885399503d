package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhavalpatel0212-spec/Mithai/internal/catalog"
	"github.com/dhavalpatel0212-spec/Mithai/internal/confirmation"
	"github.com/dhavalpatel0212-spec/Mithai/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu with prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Default()
		if err != nil {
			return err
		}
		return printMenu(cmd, c)
	},
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B8860B"))

func printMenu(cmd *cobra.Command, c catalog.Reader) error {
	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(confirmation.ShopName))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tWEIGHT\tPRICE\tWAS")
	for _, item := range c.GetAllItems() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Weight, pricing.FormatGBP(item.Price), was(item.OriginalPrice))
		for _, v := range item.Variants {
			fmt.Fprintf(w, "  %s\t\t%s\t%s\t%s\n", v.ID, v.Weight, pricing.FormatGBP(v.Price), was(v.OriginalPrice))
		}
	}
	return w.Flush()
}

func was(p *decimal.Decimal) string {
	if p == nil {
		return "-"
	}
	return pricing.FormatGBP(*p)
}
