/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ypbank/txfile/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file so the serve command has something
to start from.

Examples:
  txfile init
  txfile init --config ./txfile.yaml --force`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", path)
			return
		}

		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			cmd.Printf("Error writing config: %v\n", err)
			return
		}
		cmd.Printf("Wrote default config to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
