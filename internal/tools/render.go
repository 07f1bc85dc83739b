package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jokermario/paystack-mcp/internal/paystack"
	"github.com/mark3labs/mcp-go/mcp"
)

//successResult renders a 2xx response body as a pretty-printed text block
//behind an operation-specific phrase.
func successResult(phrase string, body map[string]interface{}) *mcp.CallToolResult {
	pretty, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: could not render response: %s", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s:\n%s", phrase, pretty))
}

//errorResult renders a failed call as a textual error result. API errors keep
//their status code and full remote body for diagnosis; everything else gets a
//generic rendering. Nothing here raises past the dispatch boundary.
func errorResult(err error) *mcp.CallToolResult {
	var apiErr *paystack.APIError
	if errors.As(err, &apiErr) {
		status := "n/a"
		if apiErr.StatusCode != 0 {
			status = strconv.Itoa(apiErr.StatusCode)
		}
		body, marshalErr := json.MarshalIndent(apiErr.Body, "", "  ")
		if marshalErr != nil {
			body = []byte("{}")
		}
		return mcp.NewToolResultError(fmt.Sprintf("Paystack API Error: %s\nStatus Code: %s\nResponse: %s", apiErr.Message, status, body))
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err))
}

//validationResult renders a request validation failure. The underlying error
//is an ozzo field map, so every violated field is listed.
func validationResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Validation error: %s", err))
}
