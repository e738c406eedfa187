package tools

import "github.com/takashabe/habitica-mcp/pkg/types"

// Definitions は表示順のツール一覧を返す
func (t *Toolset) Definitions() []types.Tool {
	T := t.loc.T
	return []types.Tool{
		{
			Name:        "get_user_profile",
			Description: T("Get user profile information"),
			InputSchema: noArgs(),
		},
		{
			Name:        "get_tasks",
			Description: T("Get tasks list"),
			InputSchema: object(nil, map[string]types.Schema{
				"type": strEnum(T("Task type"), "habits", "dailys", "todos", "rewards"),
			}),
		},
		{
			Name:        "create_task",
			Description: T("Create new task"),
			InputSchema: object([]string{"type", "text"}, map[string]types.Schema{
				"type":     strEnum(T("Task type"), "habit", "daily", "todo", "reward"),
				"text":     str(T("Task title")),
				"notes":    str(T("Task notes")),
				"priority": numEnum(T("Difficulty (0.1=trivial, 1=easy, 1.5=medium, 2=hard)"), 0.1, 1, 1.5, 2),
				"date":     str(T("Due date for todos (ISO 8601)")),
				"checklist": arrayOf(T("Checklist items"), object([]string{"text"}, map[string]types.Schema{
					"text":      str(T("Checklist item text")),
					"completed": boolean(T("Whether the item is completed")),
				})),
			}),
		},
		{
			Name:        "score_task",
			Description: T("Score task / mark complete"),
			InputSchema: object([]string{"taskId"}, map[string]types.Schema{
				"taskId":    str(T("Task ID")),
				"direction": strEnum(T("Score direction (up=+, down=-)"), "up", "down"),
			}),
		},
		{
			Name:        "update_task",
			Description: T("Update task"),
			InputSchema: object([]string{"taskId"}, map[string]types.Schema{
				"taskId":    str(T("Task ID")),
				"text":      str(T("Task title")),
				"notes":     str(T("Task notes")),
				"priority":  numEnum(T("Difficulty (0.1=trivial, 1=easy, 1.5=medium, 2=hard)"), 0.1, 1, 1.5, 2),
				"date":      str(T("Due date for todos (ISO 8601)")),
				"completed": boolean(T("Completion status")),
			}),
		},
		{
			Name:        "delete_task",
			Description: T("Delete task"),
			InputSchema: object([]string{"taskId"}, map[string]types.Schema{
				"taskId": str(T("Task ID")),
			}),
		},
		{
			Name:        "get_stats",
			Description: T("Get user stats"),
			InputSchema: noArgs(),
		},
		{
			Name:        "buy_reward",
			Description: T("Buy reward"),
			InputSchema: object([]string{"taskId"}, map[string]types.Schema{
				"taskId": str(T("Reward ID")),
			}),
		},
		{
			Name:        "get_inventory",
			Description: T("Get inventory"),
			InputSchema: noArgs(),
		},
		{
			Name:        "cast_spell",
			Description: T("Cast spell"),
			InputSchema: object([]string{"spellId"}, map[string]types.Schema{
				"spellId":  str(T("Spell ID")),
				"targetId": str(T("Target ID (optional)")),
			}),
		},
		{
			Name:        "get_tags",
			Description: T("Get tags list"),
			InputSchema: noArgs(),
		},
		{
			Name:        "create_tag",
			Description: T("Create new tag"),
			InputSchema: object([]string{"name"}, map[string]types.Schema{
				"name": str(T("Tag name")),
			}),
		},
		{
			Name:        "get_pets",
			Description: T("Get pets list"),
			InputSchema: noArgs(),
		},
		{
			Name:        "feed_pet",
			Description: T("Feed pet"),
			InputSchema: object([]string{"pet", "food"}, map[string]types.Schema{
				"pet":  str(T("Pet key")),
				"food": str(T("Food key")),
			}),
		},
		{
			Name:        "hatch_pet",
			Description: T("Hatch pet"),
			InputSchema: object([]string{"egg", "hatchingPotion"}, map[string]types.Schema{
				"egg":            str(T("Egg key")),
				"hatchingPotion": str(T("Hatching potion key")),
			}),
		},
		{
			Name:        "get_mounts",
			Description: T("Get mounts list"),
			InputSchema: noArgs(),
		},
		{
			Name:        "equip_item",
			Description: T("Equip item"),
			InputSchema: object([]string{"type", "key"}, map[string]types.Schema{
				"type": strEnum(T("Equipment type"), "mount", "pet", "costume", "equipped"),
				"key":  str(T("Item key")),
			}),
		},
		{
			Name:        "get_notifications",
			Description: T("Get notifications list"),
			InputSchema: noArgs(),
		},
		{
			Name:        "read_notification",
			Description: T("Mark notification as read"),
			InputSchema: object([]string{"notificationId"}, map[string]types.Schema{
				"notificationId": str(T("Notification ID")),
			}),
		},
		{
			Name:        "get_shop",
			Description: T("Get shop items list"),
			InputSchema: object(nil, map[string]types.Schema{
				"shopType": strEnum(T("Shop type"), "market", "questShop", "timeTravelersShop", "seasonalShop"),
			}),
		},
		{
			Name:        "buy_item",
			Description: T("Buy shop item"),
			InputSchema: object([]string{"itemKey"}, map[string]types.Schema{
				"itemKey":  str(T("Item key")),
				"quantity": integer(T("Purchase quantity"), 1),
			}),
		},
		{
			Name:        "add_checklist_item",
			Description: T("Add checklist item to task"),
			InputSchema: object([]string{"taskId", "text"}, map[string]types.Schema{
				"taskId": str(T("Task ID")),
				"text":   str(T("Checklist item text")),
			}),
		},
		{
			Name:        "update_checklist_item",
			Description: T("Update checklist item"),
			InputSchema: object([]string{"taskId", "itemId"}, map[string]types.Schema{
				"taskId":    str(T("Task ID")),
				"itemId":    str(T("Checklist item ID")),
				"text":      str(T("Checklist item text")),
				"completed": boolean(T("Completion status")),
			}),
		},
		{
			Name:        "delete_checklist_item",
			Description: T("Delete checklist item"),
			InputSchema: object([]string{"taskId", "itemId"}, map[string]types.Schema{
				"taskId": str(T("Task ID")),
				"itemId": str(T("Checklist item ID")),
			}),
		},
		{
			Name:        "get_task_checklist",
			Description: T("Get task checklist items"),
			InputSchema: object([]string{"taskId"}, map[string]types.Schema{
				"taskId": str(T("Task ID")),
			}),
		},
		{
			Name:        "score_checklist_item",
			Description: T("Score checklist item (mark complete/incomplete)"),
			InputSchema: object([]string{"taskId", "itemId"}, map[string]types.Schema{
				"taskId": str(T("Task ID")),
				"itemId": str(T("Checklist item ID")),
			}),
		},
	}
}

// Handlers はツール名ごとのハンドラーを返す
func (t *Toolset) Handlers() map[string]types.ToolHandler {
	return map[string]types.ToolHandler{
		"get_user_profile":      t.getUserProfile,
		"get_tasks":             t.getTasks,
		"create_task":           t.createTask,
		"score_task":            t.scoreTask,
		"update_task":           t.updateTask,
		"delete_task":           t.deleteTask,
		"get_stats":             t.getStats,
		"buy_reward":            t.buyReward,
		"get_inventory":         t.getInventory,
		"cast_spell":            t.castSpell,
		"get_tags":              t.getTags,
		"create_tag":            t.createTag,
		"get_pets":              t.getPets,
		"feed_pet":              t.feedPet,
		"hatch_pet":             t.hatchPet,
		"get_mounts":            t.getMounts,
		"equip_item":            t.equipItem,
		"get_notifications":     t.getNotifications,
		"read_notification":     t.readNotification,
		"get_shop":              t.getShop,
		"buy_item":              t.buyItem,
		"add_checklist_item":    t.addChecklistItem,
		"update_checklist_item": t.updateChecklistItem,
		"delete_checklist_item": t.deleteChecklistItem,
		"get_task_checklist":    t.getTaskChecklist,
		"score_checklist_item":  t.scoreChecklistItem,
	}
}
