package tools

import (
	"context"
	"fmt"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

func (t *Toolset) getNotifications(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	body, err := t.api.Get(ctx, "/notifications")
	if err != nil {
		return nil, err
	}
	return jsonResult(body, "data")
}

func (t *Toolset) readNotification(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	id, err := Args(args).Require("notificationId")
	if err != nil {
		return nil, err
	}

	if _, err := t.api.Post(ctx, habitica.PathEscape("notifications", id, "read"), nil); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Notification marked as read (ID: %s)"), id)), nil
}
