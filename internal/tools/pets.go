package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

func (t *Toolset) getPets(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	return t.userField(ctx, "data.items.pets")
}

func (t *Toolset) getMounts(ctx context.Context, _ map[string]any) (*types.CallToolResult, error) {
	return t.userField(ctx, "data.items.mounts")
}

func (t *Toolset) feedPet(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	pet, err := a.Require("pet")
	if err != nil {
		return nil, err
	}
	food, err := a.Require("food")
	if err != nil {
		return nil, err
	}

	body, err := t.api.Post(ctx, habitica.PathEscape("user", "feed", pet, food), nil)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf(t.loc.T("Successfully fed pet %s!"), pet)
	if remote := gjson.GetBytes(body, "message").String(); remote != "" {
		msg += " " + remote
	}
	return types.TextResult(strings.TrimSpace(msg)), nil
}

func (t *Toolset) hatchPet(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	egg, err := a.Require("egg")
	if err != nil {
		return nil, err
	}
	potion, err := a.Require("hatchingPotion")
	if err != nil {
		return nil, err
	}

	if _, err := t.api.Post(ctx, habitica.PathEscape("user", "hatch", egg, potion), nil); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully hatched pet: %s-%s"), egg, potion)), nil
}

func (t *Toolset) equipItem(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	typ, err := a.Require("type")
	if err != nil {
		return nil, err
	}
	key, err := a.Require("key")
	if err != nil {
		return nil, err
	}

	if _, err := t.api.Post(ctx, habitica.PathEscape("user", "equip", typ, key), nil); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully equipped %s: %s"), typ, key)), nil
}
