package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

const (
	checkedGlyph   = "✓"
	uncheckedGlyph = "○"
)

func (t *Toolset) addChecklistItem(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	taskID, err := a.Require("taskId")
	if err != nil {
		return nil, err
	}
	text, err := a.Require("text")
	if err != nil {
		return nil, err
	}

	if _, err := t.api.Post(ctx, habitica.PathEscape("tasks", taskID, "checklist"), map[string]any{"text": text}); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully added checklist item: %s"), text)), nil
}

func (t *Toolset) updateChecklistItem(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	taskID, itemID, err := checklistIDs(a)
	if err != nil {
		return nil, err
	}

	path := habitica.PathEscape("tasks", taskID, "checklist", itemID)
	if _, err := t.api.Put(ctx, path, a.pick("text", "completed")); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully updated checklist item (ID: %s)"), itemID)), nil
}

func (t *Toolset) deleteChecklistItem(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	taskID, itemID, err := checklistIDs(Args(args))
	if err != nil {
		return nil, err
	}

	if _, err := t.api.Delete(ctx, habitica.PathEscape("tasks", taskID, "checklist", itemID)); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully deleted checklist item (ID: %s)"), itemID)), nil
}

func (t *Toolset) getTaskChecklist(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	taskID, err := Args(args).Require("taskId")
	if err != nil {
		return nil, err
	}

	body, err := t.api.Get(ctx, habitica.PathEscape("tasks", taskID))
	if err != nil {
		return nil, err
	}

	task, err := field(body, "data")
	if err != nil {
		return nil, err
	}
	items := task.Get("checklist").Array()

	header := fmt.Sprintf(t.loc.T("Task: %s\nChecklist items (%d):"), task.Get("text").String(), len(items))
	if len(items) == 0 {
		return types.TextResult(header, t.loc.T("No checklist items found")), nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s %s (ID: %s)", glyph(item.Get("completed").Bool()), item.Get("text").String(), item.Get("id").String()))
	}
	return types.TextResult(header, strings.Join(lines, "\n")), nil
}

func (t *Toolset) scoreChecklistItem(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	taskID, itemID, err := checklistIDs(Args(args))
	if err != nil {
		return nil, err
	}

	body, err := t.api.Post(ctx, habitica.PathEscape("tasks", taskID, "checklist", itemID, "score"), nil)
	if err != nil {
		return nil, err
	}

	var completed gjson.Result
	gjson.GetBytes(body, "data.checklist").ForEach(func(_, item gjson.Result) bool {
		if item.Get("id").String() == itemID {
			completed = item.Get("completed")
			return false
		}
		return true
	})

	status := valueOr(completed, "unknown")
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully toggled checklist item (ID: %s), completed: %s"), itemID, status)), nil
}

func checklistIDs(a Args) (taskID, itemID string, err error) {
	if taskID, err = a.Require("taskId"); err != nil {
		return "", "", err
	}
	if itemID, err = a.Require("itemId"); err != nil {
		return "", "", err
	}
	return taskID, itemID, nil
}

func glyph(done bool) string {
	if done {
		return checkedGlyph
	}
	return uncheckedGlyph
}
