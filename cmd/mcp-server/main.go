package main

import (
	"flag"

	"github.com/joho/godotenv"

	"github.com/techspheredynamics/bc-mcp-server/internal/app"
	"github.com/techspheredynamics/bc-mcp-server/internal/config"
	"github.com/techspheredynamics/bc-mcp-server/internal/logging"
)

func main() {
	_ = godotenv.Load()

	log := logging.New("mcp-server")
	cfg := config.Load(log)

	httpAddr := flag.String("http", cfg.HTTPAddr, "MCP HTTP listen address (e.g., :3333)")
	flag.Parse()

	if err := app.RunHTTP(cfg, *httpAddr, log); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
