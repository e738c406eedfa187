package mcp

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

func echoTools() ([]types.Tool, map[string]types.ToolHandler) {
	tools := []types.Tool{
		{
			Name:        "echo",
			Description: "Echo the text argument",
			InputSchema: types.Schema{
				Type:       "object",
				Properties: map[string]types.Schema{"text": {Type: "string"}},
				Required:   []string{"text"},
			},
		},
		{
			Name:        "fail",
			Description: "Always fails upstream",
			InputSchema: types.Schema{Type: "object"},
		},
	}
	handlers := map[string]types.ToolHandler{
		"echo": func(_ context.Context, args map[string]interface{}) (*types.CallToolResult, error) {
			text, _ := args["text"].(string)
			return types.TextResult(text), nil
		},
		"fail": func(context.Context, map[string]interface{}) (*types.CallToolResult, error) {
			return nil, &habitica.APIError{StatusCode: 400, Status: "400 Bad Request", RemoteMessage: "X"}
		},
	}
	return tools, handlers
}

func newEchoDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	tools, handlers := echoTools()
	d, err := NewDispatcher(tools, handlers, opts...)
	require.NoError(t, err)
	return d
}

func TestNewDispatcherRejectsMissingHandler(t *testing.T) {
	tools, handlers := echoTools()
	delete(handlers, "fail")

	_, err := NewDispatcher(tools, handlers)
	assert.ErrorIs(t, err, ErrRegistryMismatch)
}

func TestNewDispatcherRejectsOrphanHandler(t *testing.T) {
	tools, handlers := echoTools()
	handlers["extra"] = handlers["echo"]

	_, err := NewDispatcher(tools, handlers)
	assert.ErrorIs(t, err, ErrRegistryMismatch)
	assert.Contains(t, err.Error(), "extra")
}

func TestNewDispatcherRejectsDuplicateNames(t *testing.T) {
	tools, handlers := echoTools()
	tools = append(tools, tools[0])

	_, err := NewDispatcher(tools, handlers)
	assert.ErrorIs(t, err, ErrRegistryMismatch)
}

func TestToolsStableOrder(t *testing.T) {
	d := newEchoDispatcher(t)

	first := d.Tools()
	assert.Equal(t, []string{"echo", "fail"}, []string{first[0].Name, first[1].Name})
	assert.Equal(t, first, d.Tools())
}

func TestCallSuccess(t *testing.T) {
	d := newEchoDispatcher(t)

	res, err := d.Call(context.Background(), "echo", map[string]interface{}{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, types.TextResult("hi"), res)
}

func TestCallUnknownTool(t *testing.T) {
	d := newEchoDispatcher(t)

	_, err := d.Call(context.Background(), "does_not_exist", nil)

	var stdErr *Error
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, KindNotFound, stdErr.Kind)
	assert.Contains(t, stdErr.Message, "does_not_exist")
}

func TestCallRemoteMessage(t *testing.T) {
	d := newEchoDispatcher(t)

	_, err := d.Call(context.Background(), "fail", nil)

	var stdErr *Error
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, KindUpstream, stdErr.Kind)
	assert.Equal(t, "X", stdErr.Message)
}

func TestCallPassesStandardErrorThrough(t *testing.T) {
	orig := &Error{Kind: KindMalformed, Message: "already standard"}
	d, err := NewDispatcher(
		[]types.Tool{{Name: "std", InputSchema: types.Schema{Type: "object"}}},
		map[string]types.ToolHandler{
			"std": func(context.Context, map[string]interface{}) (*types.CallToolResult, error) {
				return nil, orig
			},
		},
	)
	require.NoError(t, err)

	_, err = d.Call(context.Background(), "std", nil)
	assert.Same(t, orig, err)
}

func TestCallRecoversPanics(t *testing.T) {
	d, err := NewDispatcher(
		[]types.Tool{{Name: "boom", InputSchema: types.Schema{Type: "object"}}},
		map[string]types.ToolHandler{
			"boom": func(context.Context, map[string]interface{}) (*types.CallToolResult, error) {
				var m map[string]string
				m["x"] = "y"
				return nil, nil
			},
		},
	)
	require.NoError(t, err)

	_, err = d.Call(context.Background(), "boom", nil)

	var stdErr *Error
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, KindInternal, stdErr.Kind)
	assert.Contains(t, stdErr.Message, "panicked")
}

func TestCallWithoutValidationReachesHandler(t *testing.T) {
	d := newEchoDispatcher(t)

	res, err := d.Call(context.Background(), "echo", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, types.TextResult(""), res)
}

func TestCallWithValidation(t *testing.T) {
	d := newEchoDispatcher(t, WithArgumentValidation())

	_, err := d.Call(context.Background(), "echo", map[string]interface{}{})
	var stdErr *Error
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, KindInternal, stdErr.Kind)
	assert.Contains(t, stdErr.Message, "text")

	_, err = d.Call(context.Background(), "echo", map[string]interface{}{"text": 42})
	assert.Error(t, err)

	res, err := d.Call(context.Background(), "echo", map[string]interface{}{"text": "ok"})
	require.NoError(t, err)
	assert.Equal(t, types.TextResult("ok"), res)
}

func TestConcurrentCalls(t *testing.T) {
	var calls atomic.Int64
	d, err := NewDispatcher(
		[]types.Tool{{Name: "count", InputSchema: types.Schema{Type: "object"}}},
		map[string]types.ToolHandler{
			"count": func(ctx context.Context, _ map[string]interface{}) (*types.CallToolResult, error) {
				calls.Add(1)
				return types.TextResult("ok"), ctx.Err()
			},
		},
	)
	require.NoError(t, err)

	p := pool.New().WithErrors().WithMaxGoroutines(8)
	for i := 0; i < 64; i++ {
		p.Go(func() error {
			res, err := d.Call(context.Background(), "count", nil)
			if err != nil {
				return err
			}
			if res.Content[0].Text != "ok" {
				return errors.New("unexpected result")
			}
			return nil
		})
	}

	require.NoError(t, p.Wait())
	assert.Equal(t, int64(64), calls.Load())
}

func TestCallCancelledContext(t *testing.T) {
	d, err := NewDispatcher(
		[]types.Tool{{Name: "wait", InputSchema: types.Schema{Type: "object"}}},
		map[string]types.ToolHandler{
			"wait": func(ctx context.Context, _ map[string]interface{}) (*types.CallToolResult, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Call(ctx, "wait", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
