package mcp

import (
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

// ToolNameTrappedWater is the name of the solver tool.
const ToolNameTrappedWater = "trapped_water"

// TrappedWaterInput is the input schema for the trapped_water tool.
type TrappedWaterInput struct {
	Heights []int `json:"heights"        jsonschema:"column heights from left to right, each 0 to 32000"`
	Draw    bool  `json:"draw,omitempty" jsonschema:"include an ASCII drawing of the terrain and its water"`
}

// WaterReport is the payload returned by the trapped_water tool.
type WaterReport struct {
	Degeneracy terrain.Degeneracy `json:"degeneracy"`
	Levels     []int              `json:"levels"`
	Chart      []string           `json:"chart,omitempty"`
	Water      int                `json:"water"`
	Positions  int                `json:"positions"`
	FirstHill  int                `json:"first_hill"`
	LastHill   int                `json:"last_hill"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
