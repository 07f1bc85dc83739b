package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocsURI is the fixed address of the API usage document, the only resource
// this server exposes. Reads of any other URI fail at the protocol level.
const DocsURI = "paystack://docs/api"

const docsText = `# Paystack MCP Server

This MCP server provides access to the Paystack payment processing API.

## Available Tools:
- initialize_transaction: Create a new payment transaction
- verify_transaction: Verify payment status
- list_transactions: Get transaction history
- create_customer: Create new customer
- list_customers: Get customer list
- create_plan: Create subscription plan
- list_plans: Get subscription plans
- list_banks: Get supported banks
- resolve_account: Verify bank account details
- create_refund: Process refunds
`

func registerDocs(srv *server.MCPServer) {
	doc := mcp.NewResource(DocsURI, "Paystack API Documentation",
		mcp.WithResourceDescription("Access to Paystack API endpoints and documentation"),
		mcp.WithMIMEType("text/plain"),
	)
	srv.AddResource(doc, readDocs)
}

func readDocs(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocsURI,
			MIMEType: "text/plain",
			Text:     docsText,
		},
	}, nil
}
