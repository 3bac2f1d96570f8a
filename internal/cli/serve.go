package cli

import (
	"github.com/spf13/cobra"

	"github.com/zero360/researchlab/internal/httpserver"
	"github.com/zero360/researchlab/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the research HTTP API server",
	RunE:  runServe,
}

var (
	flagServePort     string
	flagServeProvider string
	flagServeModel    string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagServePort, "port", "", "Listen port (overrides PORT env var, default 8080)")
	serveCmd.Flags().StringVar(&flagServeProvider, "provider", "", "Dialogue provider for sessions (overrides RESEARCH_PROVIDER)")
	serveCmd.Flags().StringVar(&flagServeModel, "model", "", "Model alias (overrides RESEARCH_MODEL)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := observability.InitLogger()

	cfg := httpserver.DefaultConfig()
	if flagServePort != "" {
		cfg.Port = flagServePort
	}
	if flagServeProvider != "" {
		cfg.Provider = flagServeProvider
	}
	if flagServeModel != "" {
		cfg.Model = flagServeModel
	}

	srv, err := httpserver.New(cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Run()
}
