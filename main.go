package main

import (
	"context"
	"flag"
	"os"

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
	stdio := flag.Bool("stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	flag.Parse()

	if *stdio {
		if err := app.RunStdio(context.Background(), cfg, os.Stdin, os.Stdout, log); err != nil {
			log.Fatalf("stdio server error: %v", err)
		}
		return
	}

	if err := app.RunHTTP(cfg, *httpAddr, log); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
