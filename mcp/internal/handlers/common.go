package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// jsonResult renders v as indented JSON text.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// savedResult renders item, or an acknowledgement when the backend stored it
// without returning it.
func savedResult[T any](item *T) *mcp.CallToolResult {
	if item == nil {
		return jsonResult(map[string]any{"saved": true})
	}
	return jsonResult(item)
}

// toolError logs err and returns its user-facing message as a tool error.
func toolError(tool string, err error, elapsed time.Duration) *mcp.CallToolResult {
	log.Error().Err(err).Str("tool", tool).Dur("elapsed", elapsed).Msg("tool failed")
	return mcp.NewToolResultError(client.Message(err, tool+" failed"))
}

// argID reads a positive integer argument sent as a JSON number or a string.
func argID(req mcp.CallToolRequest, key string) (int64, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	var id int64
	switch v := raw.(type) {
	case float64:
		id = int64(v)
		if float64(id) != v {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
	case int:
		id = int64(v)
	case int64:
		id = v
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		id = n
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return id, nil
}

// optString returns a string argument or "".
func optString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}

// optBool returns a boolean argument and whether it was present.
func optBool(req mcp.CallToolRequest, key string) (bool, bool) {
	switch v := req.GetArguments()[key].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	return false, false
}
