package tools

import "github.com/takashabe/habitica-mcp/pkg/types"

func object(required []string, props map[string]types.Schema) types.Schema {
	return types.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func noArgs() types.Schema {
	return types.Schema{Type: "object", Properties: map[string]types.Schema{}}
}

func str(desc string) types.Schema {
	return types.Schema{Type: "string", Description: desc}
}

func boolean(desc string) types.Schema {
	return types.Schema{Type: "boolean", Description: desc}
}

func strEnum(desc string, values ...string) types.Schema {
	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return types.Schema{Type: "string", Description: desc, Enum: enum}
}

func numEnum(desc string, values ...float64) types.Schema {
	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return types.Schema{Type: "number", Description: desc, Enum: enum}
}

func integer(desc string, minimum float64) types.Schema {
	return types.Schema{Type: "integer", Description: desc, Minimum: &minimum}
}

func arrayOf(desc string, items types.Schema) types.Schema {
	return types.Schema{Type: "array", Description: desc, Items: &items}
}
