package tools

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

// prettyJSON はキー順を保ったままJSONを整形
func prettyJSON(raw []byte) string {
	return string(bytes.TrimSpace(pretty.Pretty(raw)))
}

// field はbodyからpathの値を取り出す。なければエラー
func field(body []byte, path string) (gjson.Result, error) {
	res := gjson.GetBytes(body, path)
	if !res.Exists() {
		return res, fmt.Errorf("%w: missing %q", habitica.ErrMalformedResponse, path)
	}
	return res, nil
}

// jsonResult はpathの値を整形して返す。pathが空ならbody全体
func jsonResult(body []byte, path string) (*types.CallToolResult, error) {
	if path == "" {
		return types.TextResult(prettyJSON(body)), nil
	}
	res, err := field(body, path)
	if err != nil {
		return nil, err
	}
	return types.TextResult(prettyJSON([]byte(res.Raw))), nil
}

func stringAt(body []byte, path, def string) string {
	return valueOr(gjson.GetBytes(body, path), def)
}

func valueOr(res gjson.Result, def string) string {
	if !res.Exists() || res.Type == gjson.Null {
		return def
	}
	return res.String()
}
