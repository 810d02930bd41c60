package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/techspheredynamics/bc-mcp-server/internal/app"
	"github.com/techspheredynamics/bc-mcp-server/internal/config"
	"github.com/techspheredynamics/bc-mcp-server/internal/logging"
)

// Stdio entrypoint for desktop AI clients: protocol frames on stdout,
// logs on stderr.
func main() {
	_ = godotenv.Load()

	log := logging.New("mcp-stdio")
	cfg := config.Load(log)

	log.Info("ready for desktop client connection")
	if err := app.RunStdio(context.Background(), cfg, os.Stdin, os.Stdout, log); err != nil {
		log.Fatalf("stdio server error: %v", err)
	}
}
