package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const (
	TypeStdio = "stdio"
	TypeHTTP  = "http"
	TypeSSE   = "sse"
)

// Transport はMCPクライアントとの通信方式を抽象化する
type Transport interface {
	// Connect はctxがキャンセルされるか相手が切断するまで処理を続ける
	Connect(ctx context.Context) error
	Close() error
	Type() string
}

// RPCHandler はJSON-RPCをstdioとHTTPの両方で処理する
type RPCHandler interface {
	http.Handler
	ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error
}

// New は名前からトランスポートを選択する
func New(kind, addr string, handler RPCHandler, server *mcp.Server, logger zerolog.Logger) (Transport, error) {
	switch kind {
	case TypeStdio, "":
		return NewStdioTransport(handler, os.Stdin, os.Stdout), nil
	case TypeHTTP:
		return NewHTTPTransport(addr, handler, logger), nil
	case TypeSSE:
		return NewSSETransport(addr, server, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, kind)
	}
}

// StdioTransport は標準入出力で改行区切りのJSON-RPCを処理する
type StdioTransport struct {
	handler RPCHandler
	in      io.Reader
	out     io.Writer
}

func NewStdioTransport(handler RPCHandler, in io.Reader, out io.Writer) *StdioTransport {
	return &StdioTransport{handler: handler, in: in, out: out}
}

func (t *StdioTransport) Connect(ctx context.Context) error {
	return t.handler.ServeStdio(ctx, t.in, t.out)
}

// Close は何もしない。セッションはコンテキストと共に終了する
func (t *StdioTransport) Close() error {
	return nil
}

func (t *StdioTransport) Type() string {
	return TypeStdio
}

// HTTPTransport はHTTPサーバーとして待ち受ける
type HTTPTransport struct {
	kind   string
	srv    *http.Server
	logger zerolog.Logger
}

// NewHTTPTransport は/mcpへのPOSTでJSON-RPCを受け付ける
func NewHTTPTransport(addr string, handler http.Handler, logger zerolog.Logger) *HTTPTransport {
	return newHTTPTransport(TypeHTTP, addr, "/mcp", handler, logger)
}

// NewSSETransport はSDKのSSEセッションを/sseで提供する
func NewSSETransport(addr string, server *mcp.Server, logger zerolog.Logger) *HTTPTransport {
	handler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return server
	})
	return newHTTPTransport(TypeSSE, addr, "/sse", handler, logger)
}

func newHTTPTransport(kind, addr, pattern string, handler http.Handler, logger zerolog.Logger) *HTTPTransport {
	mux := http.NewServeMux()
	mux.Handle(pattern, handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &HTTPTransport{
		kind: kind,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.With().Str("component", kind).Logger(),
	}
}

func (t *HTTPTransport) Connect(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		t.logger.Info().Str("addr", t.srv.Addr).Msg("listening")
		errCh <- t.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return t.Close()
	}
}

func (t *HTTPTransport) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return t.srv.Shutdown(ctx)
}

func (t *HTTPTransport) Type() string {
	return t.kind
}
