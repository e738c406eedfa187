// Package tools はHabiticaのツール定義とハンドラー
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/takashabe/habitica-mcp/internal/i18n"
)

// ErrMissingArgument は必須引数がない場合に返す
var ErrMissingArgument = errors.New("missing required argument")

// API はハンドラーが使うHabiticaクライアントのメソッド
type API interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
	Put(ctx context.Context, path string, body any) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
}

// Toolset はクライアントと表示言語を束ねる
type Toolset struct {
	api API
	loc *i18n.Localizer
}

func NewToolset(api API, loc *i18n.Localizer) *Toolset {
	if loc == nil {
		loc = i18n.New("en")
	}
	return &Toolset{api: api, loc: loc}
}

type Args map[string]any

// Require は空でない文字列引数を返す
func (a Args) Require(key string) (string, error) {
	s := a.String(key)
	if s == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	return s, nil
}

func (a Args) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (a Args) StringOr(key, def string) string {
	if s := a.String(key); s != "" {
		return s
	}
	return def
}

// pick は指定されたキーをリクエストボディにコピー
func (a Args) pick(keys ...string) map[string]any {
	body := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := a[k]; ok && v != nil {
			body[k] = v
		}
	}
	return body
}
