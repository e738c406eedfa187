package transport

import "errors"

var (
	// ErrUnknownTransport は未対応のトランスポート名の場合に返す
	ErrUnknownTransport = errors.New("unknown transport type")
)
