/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "txfile",
	Short: "txfile - bank transaction file toolkit",
	Long: `txfile reads and writes bank transaction files in three formats:
comma-separated text (csv), labeled text (txt) and the YPBN binary
format. It converts between them, compares files record by record,
archives transactions locally and serves the same operations over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global config file flag; commands fall back to the default path.
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file")
}
