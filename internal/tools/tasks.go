package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

func (t *Toolset) getTasks(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	path := "/tasks/user"
	if typ := Args(args).String("type"); typ != "" {
		path += "?" + url.Values{"type": {typ}}.Encode()
	}

	body, err := t.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return jsonResult(body, "data")
}

func (t *Toolset) createTask(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	if _, err := a.Require("type"); err != nil {
		return nil, err
	}
	if _, err := a.Require("text"); err != nil {
		return nil, err
	}

	body, err := t.api.Post(ctx, "/tasks/user", a.pick("type", "text", "notes", "priority", "date", "checklist"))
	if err != nil {
		return nil, err
	}

	id, err := field(body, "data.id")
	if err != nil {
		return nil, err
	}
	text := stringAt(body, "data.text", a.String("text"))
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully created task: %s (ID: %s)"), text, id.String())), nil
}

func (t *Toolset) scoreTask(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	taskID, err := a.Require("taskId")
	if err != nil {
		return nil, err
	}
	direction := a.StringOr("direction", "up")

	body, err := t.api.Post(ctx, habitica.PathEscape("tasks", taskID, "score", direction), nil)
	if err != nil {
		return nil, err
	}

	return types.TextResult(fmt.Sprintf(
		t.loc.T("Task scored (%s)! Experience: %s, Gold: %s, Level: %s"),
		direction,
		stringAt(body, "data.exp", "0"),
		stringAt(body, "data.gp", "0"),
		stringAt(body, "data.lvl", "0"),
	)), nil
}

func (t *Toolset) updateTask(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	taskID, err := a.Require("taskId")
	if err != nil {
		return nil, err
	}

	body, err := t.api.Put(ctx, habitica.PathEscape("tasks", taskID), a.pick("text", "notes", "priority", "date", "completed"))
	if err != nil {
		return nil, err
	}

	text := stringAt(body, "data.text", taskID)
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully updated task: %s"), text)), nil
}

func (t *Toolset) deleteTask(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	taskID, err := Args(args).Require("taskId")
	if err != nil {
		return nil, err
	}

	if _, err := t.api.Delete(ctx, habitica.PathEscape("tasks", taskID)); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully deleted task (ID: %s)"), taskID)), nil
}

// buyReward はご褒美タスクをupでスコアしてゴールドを消費する
func (t *Toolset) buyReward(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	taskID, err := Args(args).Require("taskId")
	if err != nil {
		return nil, err
	}

	body, err := t.api.Post(ctx, habitica.PathEscape("tasks", taskID, "score", "up"), nil)
	if err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully bought reward! Remaining gold: %s"), stringAt(body, "data.gp", "0"))), nil
}
