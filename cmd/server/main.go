package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/jokermario/paystack-mcp/internal/config"
	"github.com/jokermario/paystack-mcp/internal/paystack"
	"github.com/jokermario/paystack-mcp/internal/tools"
	"github.com/jokermario/paystack-mcp/pkg/log"
	"github.com/mark3labs/mcp-go/server"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

var flagConfig = flag.String("config", "./config/local.yml", "path to the config file")

func main() {
	flag.Parse()
	// create root logger tagged with server version
	logger := log.New().With(nil, "version", Version)

	// load environment variables from a .env file when one is present
	_ = godotenv.Load()

	// load application configurations
	cfg, err := config.Load(*flagConfig, logger)
	if err != nil {
		logger.Errorf("failed to load application configuration: %s", err)
		os.Exit(-1)
	}
	if cfg.UsesPlaceholderKey() {
		logger.Infof("running in %s mode without a real credential; paystack will reject requests", cfg.Environment)
	}

	srv := buildServer(logger, cfg)

	logger.Infof("paystack-mcp %v serving over stdio against %v", Version, cfg.BaseURL)
	if err := server.ServeStdio(srv); err != nil {
		logger.Error(err)
		os.Exit(-1)
	}
}

// buildServer sets up the MCP server with the tool catalog and resources.
func buildServer(logger log.Logger, cfg *config.Config) *server.MCPServer {
	srv := server.NewMCPServer("paystack-mcp", Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	tools.RegisterHandlers(srv,
		paystack.NewClient(cfg, logger),
		logger,
	)

	return srv
}
