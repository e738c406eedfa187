package mcp

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/takashabe/habitica-mcp/pkg/types"
)

const protocolVersion = "2024-11-05"

// MCPServer はディスパッチャー上でMCPのJSON-RPCを処理する
type MCPServer struct {
	dispatcher *Dispatcher
	name       string
	version    string
	logger     zerolog.Logger
}

func NewMCPServer(dispatcher *Dispatcher, name, version string, logger zerolog.Logger) *MCPServer {
	return &MCPServer{
		dispatcher: dispatcher,
		name:       name,
		version:    version,
		logger:     logger.With().Str("component", "jsonrpc").Logger(),
	}
}

// HandleRequest はreqへの応答を返す。通知ならnil
func (s *MCPServer) HandleRequest(ctx context.Context, req types.JSONRPCRequest) *types.JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return s.result(req.ID, map[string]interface{}{})
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(ctx, req)
	case "notifications/initialized":
		return nil
	default:
		if req.ID == nil {
			return nil
		}
		return s.errorResponse(req.ID, CodeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *MCPServer) handleInitialize(req types.JSONRPCRequest) *types.JSONRPCResponse {
	s.logger.Info().Msg("initialize")

	return s.result(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    s.name,
			"version": s.version,
		},
	})
}

func (s *MCPServer) handleListTools(req types.JSONRPCRequest) *types.JSONRPCResponse {
	return s.result(req.ID, types.ListToolsResult{
		Tools: s.dispatcher.Tools(),
	})
}

func (s *MCPServer) handleCallTool(ctx context.Context, req types.JSONRPCRequest) *types.JSONRPCResponse {
	var params types.CallToolParams
	paramBytes, err := json.Marshal(req.Params)
	if err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", nil)
	}
	if err := json.Unmarshal(paramBytes, &params); err != nil || params.Name == "" {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", "Missing tool name")
	}

	result, err := s.dispatcher.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		stdErr := Wrap(err)
		return s.errorResponse(req.ID, stdErr.Kind.Code(), stdErr.Message, map[string]interface{}{"kind": stdErr.Kind.String()})
	}

	return s.result(req.ID, result)
}

func (s *MCPServer) result(id interface{}, result interface{}) *types.JSONRPCResponse {
	return &types.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func (s *MCPServer) errorResponse(id interface{}, code int, message string, data interface{}) *types.JSONRPCResponse {
	return &types.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &types.RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}
