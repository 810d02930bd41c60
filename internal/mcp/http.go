package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// RunHTTP starts an HTTP server that serves MCP JSON-RPC requests via POST.
// Expects a single JSON-RPC request per call. Clients should POST to the
// root path.
func RunHTTP(server *Server, addr string, log *logrus.Entry) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req protocol.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, protocol.Response{JSONRPC: "2.0", Error: &protocol.ResponseError{Code: protocol.CodeParseError, Message: "invalid JSON"}}, http.StatusBadRequest)
			return
		}

		resp := server.Handle(r.Context(), req)
		writeJSON(w, resp, http.StatusOK)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if log != nil {
		log.Infof("HTTP MCP server listening on %s", addr)
	}
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, resp protocol.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}
