// Command manifestgen writes a manifest describing the gateway's tool
// catalog plus a ready-to-paste desktop client configuration snippet.
// The toolbox is built in sample-data mode, so no credentials are needed.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/techspheredynamics/bc-mcp-server/internal/app"
	"github.com/techspheredynamics/bc-mcp-server/internal/config"
	"github.com/techspheredynamics/bc-mcp-server/internal/logging"
	"github.com/techspheredynamics/bc-mcp-server/internal/mcp"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
	"github.com/techspheredynamics/bc-mcp-server/internal/version"
)

// Options captures manifest generation settings.
type Options struct {
	Name      string
	Command   string
	Args      []string
	OutputDir string
}

// Manifest is the generated document.
type Manifest struct {
	Name    string                    `json:"name"`
	Version string                    `json:"version"`
	Tools   []protocol.ToolDescriptor `json:"tools"`
	Client  ClientConfig              `json:"client"`
}

// ClientConfig is the mcpServers snippet desktop clients consume.
type ClientConfig struct {
	MCPServers map[string]ServerEntry `json:"mcpServers"`
}

// ServerEntry tells the client how to launch the server.
type ServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	raw, err := Generate(*opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("manifest written to %s\n", filepath.Join(opts.OutputDir, "manifest.json"))
	fmt.Printf("manifest bytes: %d\n", len(raw))
}

func parseFlags() (*Options, error) {
	var (
		name    = flag.String("name", mcp.ServerName, "server name in the client config")
		command = flag.String("command", "", "command the client should launch")
		outDir  = flag.String("output_dir", ".", "output directory for manifest files")
	)

	flag.Parse()

	if *command == "" {
		return nil, errors.New("command is required")
	}

	return &Options{
		Name:      *name,
		Command:   *command,
		Args:      flag.Args(),
		OutputDir: *outDir,
	}, nil
}

// Generate creates manifest.json based on options and returns the raw
// bytes as written.
func Generate(opts Options) ([]byte, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, err
	}

	log := logging.New("manifestgen")
	store := app.NewStore(config.Config{DataDir: "data"}, log)
	toolbox := app.NewToolbox(store, log)

	manifest := Manifest{
		Name:    opts.Name,
		Version: version.Get().Version,
		Tools:   toolbox.Describe(),
		Client: ClientConfig{
			MCPServers: map[string]ServerEntry{
				opts.Name: {Command: opts.Command, Args: opts.Args},
			},
		},
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	raw = append(raw, '\n')

	if err := os.WriteFile(filepath.Join(opts.OutputDir, "manifest.json"), raw, 0o644); err != nil {
		return nil, err
	}
	return raw, nil
}
