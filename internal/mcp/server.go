package mcp

import (
	"fmt"

	"mdbridge/internal/config"
	"mdbridge/internal/docs"
	"mdbridge/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	client    *docs.Client
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// NewServerWithClient creates a server with a pre-built document
// service client. Used by tests to point the tools at a fake service.
func NewServerWithClient(cfg *config.Config, logger *logging.AppLogger, client *docs.Client) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		client: client,
	}
}

// Start initializes the server and serves MCP over stdio until the
// client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server", "serviceURL", s.config.ServiceURL)

	if err := s.initializeComponents(); err != nil {
		return err
	}

	s.mcpServer = server.NewMCPServer(
		"mdbridge",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// initializeComponents resolves credentials and builds the document
// service client if one was not injected.
func (s *Server) initializeComponents() error {
	if s.client != nil {
		return nil
	}

	token, err := docs.NewCredentialManager().ResolveToken()
	if err != nil {
		return fmt.Errorf("failed to resolve service token: %w", err)
	}

	s.client = docs.NewClient(s.config.ServiceURL, token, s.config.Timeout(), s.logger)
	return nil
}
