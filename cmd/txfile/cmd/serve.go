/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ypbank/txfile/pkg/api"
	"github.com/ypbank/txfile/pkg/config"
	"github.com/ypbank/txfile/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the txfile REST API server.

The server exposes format conversion and file comparison endpoints, a
Prometheus /metrics endpoint, and the local transaction archive.

Examples:
  txfile serve
  txfile serve --port 9090 --api-key mysecretkey
  txfile serve --config ./txfile.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadCommandConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading config: %v\n", err)
			return
		}

		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}
		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			cfg.APIKey = apiKey
		}
		if archiveDir, _ := cmd.Flags().GetString("archive-dir"); archiveDir != "" {
			cfg.ArchiveDir = archiveDir
		}

		var archive *storage.Archive
		if cfg.ArchiveDir != "" {
			archive, err = storage.Open(cfg.ArchiveDir)
			if err != nil {
				cmd.Printf("Error opening archive: %v\n", err)
				return
			}
			defer archive.Close()
		}

		serverConfig := api.ServerConfig{
			Port:       cfg.Port,
			Bind:       cfg.Bind,
			APIKey:     cfg.APIKey,
			ArchiveDir: cfg.ArchiveDir,
		}
		if err := api.StartServer(archive, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

// loadCommandConfig loads the config file named by --config, falling back
// to the default path and then to defaults when no file exists.
func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
		if !config.ConfigExists(path) {
			return config.DefaultConfig(), nil
		}
	}
	return config.LoadConfig(path)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (overrides config)")
	serveCmd.Flags().String("api-key", "", "API key clients must present (overrides config)")
	serveCmd.Flags().String("archive-dir", "", "Archive directory (overrides config)")
}
