package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/config"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/mcp"
)

func main() {
	cfg, err := config.New()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if err := mcp.RunMCPServer(cfg); err != nil {
		log.Error().Err(err).Msg("MCP server exited with error")
		os.Exit(1)
	}
}
