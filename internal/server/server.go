package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/takashabe/habitica-mcp/internal/config"
	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/internal/i18n"
	rpc "github.com/takashabe/habitica-mcp/internal/mcp"
	"github.com/takashabe/habitica-mcp/internal/tools"
	"github.com/takashabe/habitica-mcp/internal/transport"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

// HabiticaMCPServer はHabitica用のMCPサーバー
type HabiticaMCPServer struct {
	server     *mcp.Server
	rpc        *rpc.MCPServer
	dispatcher *rpc.Dispatcher
	transport  transport.Transport
	logger     zerolog.Logger
}

// Config はサーバーの設定
type Config struct {
	ServerName    string
	ServerVersion string
	TransportType string
	HTTPAddr      string // http/sseトランスポートで使用
	Env           *config.Config
	Logger        zerolog.Logger
}

// NewHabiticaMCPServer は新しいサーバーインスタンスを作成
func NewHabiticaMCPServer(cfg Config) (*HabiticaMCPServer, error) {
	if cfg.Env == nil {
		return nil, config.ErrMissingCredentials
	}
	logger := cfg.Logger

	client := habitica.NewClient(habitica.Options{
		BaseURL:  cfg.Env.BaseURL,
		UserID:   cfg.Env.UserID,
		APIToken: cfg.Env.APIToken,
		Timeout:  cfg.Env.Timeout,
		Logger:   logger,
	})
	toolset := tools.NewToolset(client, i18n.New(cfg.Env.Lang))

	opts := []rpc.Option{rpc.WithLogger(logger)}
	if cfg.Env.ValidateArgs {
		opts = append(opts, rpc.WithArgumentValidation())
	}
	dispatcher, err := rpc.NewDispatcher(toolset.Definitions(), toolset.Handlers(), opts...)
	if err != nil {
		return nil, err
	}

	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}
	s := &HabiticaMCPServer{
		server:     mcp.NewServer(impl, nil),
		rpc:        rpc.NewMCPServer(dispatcher, cfg.ServerName, cfg.ServerVersion, logger),
		dispatcher: dispatcher,
		logger:     logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, err
	}

	s.transport, err = transport.New(cfg.TransportType, cfg.HTTPAddr, s.rpc, s.server, logger)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// registerTools はSDKサーバーにツールを登録
func (s *HabiticaMCPServer) registerTools() error {
	for _, tool := range s.dispatcher.Tools() {
		schema, err := toSDKSchema(tool.InputSchema)
		if err != nil {
			return fmt.Errorf("tool %s: %w", tool.Name, err)
		}
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		}, s.createToolHandler(tool.Name))
	}
	return nil
}

// Tools は登録済みのツール一覧を返す
func (s *HabiticaMCPServer) Tools() []types.Tool {
	return s.dispatcher.Tools()
}

func (s *HabiticaMCPServer) Start(ctx context.Context) error {
	s.logger.Info().Str("transport", s.transport.Type()).Int("tools", len(s.dispatcher.Tools())).Msg("starting Habitica MCP server")
	return s.transport.Connect(ctx)
}

func (s *HabiticaMCPServer) Stop() error {
	return s.transport.Close()
}

// createToolHandler はディスパッチャー経由のSDK用ハンドラーを作成
func (s *HabiticaMCPServer) createToolHandler(name string) mcp.ToolHandlerFor[map[string]any, any] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[map[string]any]) (*mcp.CallToolResultFor[any], error) {
		result, err := s.dispatcher.Call(ctx, name, params.Arguments)
		if err != nil {
			return &mcp.CallToolResultFor[any]{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		var content []mcp.Content
		for _, c := range result.Content {
			content = append(content, &mcp.TextContent{Text: c.Text})
		}

		return &mcp.CallToolResultFor[any]{
			Content: content,
			IsError: result.IsError,
		}, nil
	}
}

func toSDKSchema(schema types.Schema) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	var out jsonschema.Schema
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to convert input schema: %w", err)
	}
	return &out, nil
}
