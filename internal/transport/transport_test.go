package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRPC struct {
	http.Handler
	lines []string
}

func (f *fakeRPC) ServeStdio(_ context.Context, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	f.lines = append(f.lines, strings.TrimSpace(string(data)))
	_, err = io.WriteString(out, "ok\n")
	return err
}

func TestNewSelectsTransport(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	handler := &fakeRPC{Handler: http.NotFoundHandler()}

	tp, err := New("", ":0", handler, server, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, TypeStdio, tp.Type())

	tp, err = New(TypeHTTP, ":0", handler, server, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, TypeHTTP, tp.Type())

	tp, err = New(TypeSSE, ":0", handler, server, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, TypeSSE, tp.Type())

	_, err = New("carrier-pigeon", ":0", handler, server, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownTransport)
}

func TestStdioTransportDelegatesToHandler(t *testing.T) {
	handler := &fakeRPC{Handler: http.NotFoundHandler()}
	var out bytes.Buffer
	tp := NewStdioTransport(handler, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)

	require.NoError(t, tp.Connect(context.Background()))
	assert.Equal(t, []string{`{"jsonrpc":"2.0","id":1,"method":"ping"}`}, handler.lines)
	assert.Equal(t, "ok\n", out.String())
	assert.NoError(t, tp.Close())
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestHTTPTransportServesUntilCancelled(t *testing.T) {
	addr := freeAddr(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	tp := NewHTTPTransport(addr, handler, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tp.Connect(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Post("http://"+addr+"/mcp", "application/json", nil)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("transport did not stop")
	}
}
