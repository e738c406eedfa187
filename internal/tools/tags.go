package tools

import (
	"context"
	"fmt"

	"github.com/takashabe/habitica-mcp/pkg/types"
)

func (t *Toolset) getTags(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	body, err := t.api.Get(ctx, "/tags")
	if err != nil {
		return nil, err
	}
	return jsonResult(body, "")
}

func (t *Toolset) createTag(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	name, err := Args(args).Require("name")
	if err != nil {
		return nil, err
	}

	body, err := t.api.Post(ctx, "/tags", map[string]any{"name": name})
	if err != nil {
		return nil, err
	}

	id, err := field(body, "data.id")
	if err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully created tag: %s (ID: %s)"), name, id.String())), nil
}
