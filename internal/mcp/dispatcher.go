package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	"github.com/takashabe/habitica-mcp/pkg/types"
)

// ErrRegistryMismatch はツール定義とハンドラーが1対1でない場合に返す
var ErrRegistryMismatch = errors.New("tool registry and handlers do not match")

// Dispatcher はツール呼び出しをハンドラーに振り分け、エラーを正規化する
type Dispatcher struct {
	tools    []types.Tool
	handlers map[string]types.ToolHandler
	schemas  map[string]*gojsonschema.Schema
	logger   zerolog.Logger
}

type Option func(*dispatcherOptions)

type dispatcherOptions struct {
	logger   zerolog.Logger
	validate bool
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *dispatcherOptions) {
		o.logger = logger
	}
}

// WithArgumentValidation はハンドラー実行前に引数をスキーマで検証する
func WithArgumentValidation() Option {
	return func(o *dispatcherOptions) {
		o.validate = true
	}
}

// NewDispatcher はツール定義とハンドラーを対応付ける。過不足や重複があればエラー
func NewDispatcher(tools []types.Tool, handlers map[string]types.ToolHandler, opts ...Option) (*Dispatcher, error) {
	o := dispatcherOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	seen := make(map[string]bool, len(tools))
	for _, t := range tools {
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: duplicate tool %q", ErrRegistryMismatch, t.Name)
		}
		seen[t.Name] = true
		if handlers[t.Name] == nil {
			return nil, fmt.Errorf("%w: tool %q has no handler", ErrRegistryMismatch, t.Name)
		}
	}

	var orphans []string
	for name := range handlers {
		if !seen[name] {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return nil, fmt.Errorf("%w: handlers without tools: %v", ErrRegistryMismatch, orphans)
	}

	d := &Dispatcher{
		tools:    append([]types.Tool(nil), tools...),
		handlers: make(map[string]types.ToolHandler, len(handlers)),
		logger:   o.logger.With().Str("component", "dispatcher").Logger(),
	}
	for name, h := range handlers {
		d.handlers[name] = h
	}

	if o.validate {
		d.schemas = make(map[string]*gojsonschema.Schema, len(tools))
		for _, t := range tools {
			schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(t.InputSchema))
			if err != nil {
				return nil, fmt.Errorf("invalid input schema for %q: %w", t.Name, err)
			}
			d.schemas[t.Name] = schema
		}
	}

	return d, nil
}

// Tools は登録順のツール一覧を返す
func (d *Dispatcher) Tools() []types.Tool {
	return append([]types.Tool(nil), d.tools...)
}

// Call はツールを呼び出す。失敗は必ず*Errorで返す
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]interface{}) (result *types.CallToolResult, err error) {
	handler, ok := d.handlers[name]
	if !ok {
		d.logger.Warn().Str("tool", name).Msg("unknown tool")
		return nil, NotFound(name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	logger := d.logger.With().Str("call_id", uuid.NewString()).Str("tool", name).Logger()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
		if err != nil {
			stdErr := Wrap(err)
			logger.Warn().
				Err(err).
				Str("kind", stdErr.Kind.String()).
				Dur("duration", time.Since(start)).
				Msg("tool call failed")
			result, err = nil, stdErr
			return
		}
		logger.Debug().Dur("duration", time.Since(start)).Msg("tool call")
	}()

	if err := d.validateArgs(name, args); err != nil {
		return nil, err
	}

	result, err = handler(ctx, args)
	if err == nil && result == nil {
		result = &types.CallToolResult{Content: []types.Content{}}
	}
	return result, err
}

func (d *Dispatcher) validateArgs(name string, args map[string]interface{}) error {
	schema, ok := d.schemas[name]
	if !ok {
		return nil
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("argument validation failed: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
	}
	return nil
}
