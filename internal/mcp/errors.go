package mcp

import (
	"errors"
	"fmt"

	"github.com/takashabe/habitica-mcp/internal/habitica"
)

// JSON-RPCエラーコード
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// fallbackMessage はメッセージが何もない場合に使う
const fallbackMessage = "Unknown error"

// Kind はツール呼び出しの失敗の種類
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUpstream
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed_response"
	default:
		return "internal"
	}
}

// Code は種類に対応するJSON-RPCエラーコードを返す
func (k Kind) Code() int {
	if k == KindNotFound {
		return CodeMethodNotFound
	}
	return CodeInternalError
}

// Error はDispatcherが返すエラー
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(name string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Unknown tool: %s", name)}
}

// Wrap はエラーを*Errorに正規化する。*Errorはそのまま返す
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var stdErr *Error
	if errors.As(err, &stdErr) {
		return stdErr
	}

	kind := KindInternal
	var apiErr *habitica.APIError
	switch {
	case errors.As(err, &apiErr):
		kind = KindUpstream
	case errors.Is(err, habitica.ErrMalformedResponse):
		kind = KindMalformed
	}

	return &Error{Kind: kind, Message: ErrorMessage(err), Err: err}
}

// ErrorMessage はリモートのmessage、エラー文字列、固定文言の順でメッセージを選ぶ
func ErrorMessage(err error) string {
	if err == nil {
		return fallbackMessage
	}

	var apiErr *habitica.APIError
	if errors.As(err, &apiErr) && apiErr.RemoteMessage != "" {
		return apiErr.RemoteMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
