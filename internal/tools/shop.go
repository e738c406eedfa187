package tools

import (
	"context"
	"fmt"

	"github.com/takashabe/habitica-mcp/internal/habitica"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

// shopPaths はshopTypeを/shopsのパスに対応付ける
var shopPaths = map[string]string{
	"market":            "market",
	"questShop":         "quests",
	"timeTravelersShop": "time-travelers",
	"seasonalShop":      "seasonal",
}

func (t *Toolset) getShop(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	shopType := Args(args).StringOr("shopType", "market")
	segment, ok := shopPaths[shopType]
	if !ok {
		// 未知の値はそのまま送りHabiticaにエラーを返させる
		segment = shopType
	}

	body, err := t.api.Get(ctx, habitica.PathEscape("shops", segment))
	if err != nil {
		return nil, err
	}
	return jsonResult(body, "data")
}

func (t *Toolset) buyItem(ctx context.Context, args map[string]any) (*types.CallToolResult, error) {
	a := Args(args)
	itemKey, err := a.Require("itemKey")
	if err != nil {
		return nil, err
	}
	// 指定がない場合のみ1、指定値はそのまま送りHabiticaに検証させる
	quantity, ok := a["quantity"]
	if !ok || quantity == nil {
		quantity = 1
	}

	if _, err := t.api.Post(ctx, habitica.PathEscape("user", "buy", itemKey), map[string]any{"quantity": quantity}); err != nil {
		return nil, err
	}
	return types.TextResult(fmt.Sprintf(t.loc.T("Successfully bought %s x%v"), itemKey, quantity)), nil
}
