package mcp

import (
	"encoding/json"
	"net/http"

	"github.com/takashabe/habitica-mcp/pkg/types"
)

// ServeHTTP はPOSTごとに1件のJSON-RPCリクエストを処理する
func (s *MCPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.write(w, s.errorResponse(nil, CodeParseError, "Parse error", nil))
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		w.WriteHeader(http.StatusBadRequest)
		s.write(w, s.errorResponse(req.ID, CodeInvalidRequest, "Invalid Request", nil))
		return
	}

	resp := s.HandleRequest(r.Context(), req)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	s.write(w, resp)
}

func (s *MCPServer) write(w http.ResponseWriter, resp *types.JSONRPCResponse) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response")
	}
}
