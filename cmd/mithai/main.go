package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mithai",
	Short: "Traditional Royal Sweets storefront",
	Long: `Mithai serves the Traditional Royal Sweets menu, keeps a cart per
browser session and places orders by sending a confirmation email.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, menuCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
