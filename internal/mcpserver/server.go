// Package mcpserver exposes research studies as MCP tools over
// streamable HTTP, so agent clients can start studies and poll their
// results.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zero360/researchlab/internal/config"
	"github.com/zero360/researchlab/internal/research"
)

// Config holds server configuration.
type Config struct {
	Port       int
	AWSRegion  string
	MaxStudies int
	SecretID   string // Secrets Manager secret holding API keys, empty to skip
}

// DefaultConfig returns a Config populated from environment variables.
func DefaultConfig() Config {
	return Config{
		Port:       config.EnvInt("PORT", 8000),
		AWSRegion:  config.EnvOr("AWS_REGION", ""),
		MaxStudies: config.EnvInt("MAX_STUDIES", 3),
		SecretID:   config.EnvOr("RESEARCH_SECRET_ID", ""),
	}
}

// Server is the MCP server for research studies.
type Server struct {
	cfg      Config
	mcp      *server.MCPServer
	handlers *Handlers
	log      *slog.Logger
}

// New creates and configures the MCP server. ctx should be cancelled on
// shutdown so running studies stop with the server.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.SecretID != "" {
		if err := hydrateSecrets(ctx, cfg, logger); err != nil {
			logger.Warn("Failed to load secrets from Secrets Manager, falling back to env vars",
				"error", err)
		}
	}

	studies := research.NewManager(cfg.MaxStudies, logger, ctx)
	handlers := NewHandlers(studies, logger)

	mcpServer := server.NewMCPServer(
		"researchlab",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools := ToolDefs()
	mcpServer.AddTool(tools[0], handlers.HandleStartResearch)
	mcpServer.AddTool(tools[1], handlers.HandleGetStudy)
	mcpServer.AddTool(tools[2], handlers.HandleListStudies)

	return &Server{
		cfg:      cfg,
		mcp:      mcpServer,
		handlers: handlers,
		log:      logger,
	}, nil
}

// Start runs the HTTP MCP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("Starting MCP server", "addr", addr)

	httpServer := server.NewStreamableHTTPServer(s.mcp,
		server.WithStateLess(true), // studies are addressed by ID, no session affinity
	)
	return httpServer.Start(addr)
}

// hydrateSecrets pulls API keys from Secrets Manager into the
// environment. Local runs without AWS credentials skip this path by
// leaving RESEARCH_SECRET_ID unset.
func hydrateSecrets(ctx context.Context, cfg Config, log *slog.Logger) error {
	awsCfg, err := config.LoadAWS(ctx, cfg.AWSRegion)
	if err != nil {
		return err
	}
	return config.LoadSecrets(ctx, awsCfg, cfg.SecretID, log)
}
