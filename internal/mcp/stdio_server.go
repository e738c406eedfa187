package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/takashabe/habitica-mcp/pkg/types"
)

// maxLineSize は1メッセージあたりの最大バイト数
const maxLineSize = 4 << 20

// ServeStdio は改行区切りのJSON-RPCメッセージをinから読み、応答をoutへ書き出す
func (s *MCPServer) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			msg := append([]byte(nil), line...)
			select {
			case lines <- msg:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	w := &lineWriter{enc: json.NewEncoder(out)}
	var wg conc.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				wg.Wait()
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			wg.Go(func() {
				if resp := s.handleLine(ctx, line); resp != nil {
					if err := w.write(resp); err != nil {
						s.logger.Error().Err(err).Msg("failed to write response")
					}
				}
			})
		}
	}
}

// handleLine は1行分のメッセージを処理する
func (s *MCPServer) handleLine(ctx context.Context, line []byte) *types.JSONRPCResponse {
	var req types.JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return s.errorResponse(nil, CodeParseError, "Parse error", nil)
	}
	if req.Method == "" {
		// サーバーからリクエストは送らないので、メソッドのないメッセージは無視
		return nil
	}
	if req.JSONRPC != "2.0" {
		return s.errorResponse(req.ID, CodeInvalidRequest, "Invalid Request", nil)
	}
	return s.HandleRequest(ctx, req)
}

// lineWriter は応答を1行ずつ排他的に書き出す
type lineWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (w *lineWriter) write(resp *types.JSONRPCResponse) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(resp)
}
