package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

func (t *Toolset) getUserProfile(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	return t.userField(ctx, "data")
}

func (t *Toolset) getStats(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	return t.userField(ctx, "data.stats")
}

func (t *Toolset) getInventory(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	return t.userField(ctx, "data.items")
}

// userField は/userドキュメントの一部を表示する
func (t *Toolset) userField(ctx context.Context, path string) (*types.CallToolResult, error) {
	body, err := t.api.Get(ctx, "/user")
	if err != nil {
		return nil, err
	}
	return jsonResult(body, path)
}

func (t *Toolset) castSpell(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	spellID, err := a.Require("spellId")
	if err != nil {
		return nil, err
	}

	path := habitica.PathEscape("user", "class", "cast", spellID)
	if target := a.String("targetId"); target != "" {
		path += "?" + url.Values{"targetId": {target}}.Encode()
	}

	if _, err := t.api.Post(ctx, path, nil); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully cast spell: %s"), spellID)), nil
}
