package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// RunStdio serves newline-delimited JSON-RPC over the given streams,
// the framing desktop AI clients use. One request per line; notifications
// (no id) are consumed without a response. Only protocol frames are
// written to out, so stdout stays clean for the client.
func RunStdio(ctx context.Context, server *Server, in io.Reader, out io.Writer, log *logrus.Entry) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	if log != nil {
		log.Info("stdio MCP server ready")
	}

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req protocol.Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			if encodeErr := encoder.Encode(protocol.Response{JSONRPC: "2.0", Error: &protocol.ResponseError{Code: protocol.CodeParseError, Message: "invalid JSON"}}); encodeErr != nil {
				return encodeErr
			}
			continue
		}

		if req.IsNotification() {
			if log != nil {
				log.Debugf("notification: %s", req.Method)
			}
			continue
		}

		resp := server.Handle(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}
