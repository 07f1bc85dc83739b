// Package tools exposes the paystack API as an MCP tool catalog.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jokermario/paystack-mcp/internal/paystack"
	"github.com/jokermario/paystack-mcp/pkg/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

//Service is the slice of the paystack client the tool catalog dispatches to.
type Service interface {
	InitializeTransaction(ctx context.Context, req paystack.TransactionRequest) (map[string]interface{}, error)
	VerifyTransaction(ctx context.Context, reference string) (map[string]interface{}, error)
	ListTransactions(ctx context.Context, opts paystack.ListTransactionsOptions) (map[string]interface{}, error)
	CreateCustomer(ctx context.Context, req paystack.CustomerRequest) (map[string]interface{}, error)
	ListCustomers(ctx context.Context, perPage, page int) (map[string]interface{}, error)
	CreatePlan(ctx context.Context, req paystack.PlanRequest) (map[string]interface{}, error)
	ListPlans(ctx context.Context, perPage, page int) (map[string]interface{}, error)
	ListBanks(ctx context.Context, country string) (map[string]interface{}, error)
	ResolveAccount(ctx context.Context, req paystack.ResolveAccountRequest) (map[string]interface{}, error)
	CreateRefund(ctx context.Context, req paystack.RefundRequest) (map[string]interface{}, error)
}

// RegisterHandlers registers the tool catalog and the documentation resource
// on the given MCP server.
func RegisterHandlers(srv *server.MCPServer, service Service, logger log.Logger) {
	res := resource{service, logger}

	for _, def := range res.catalog() {
		srv.AddTool(def.tool, res.instrument(def.tool.Name, def.handler))
	}

	registerDocs(srv)
}

type resource struct {
	service Service
	logger  log.Logger
}

type toolDef struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

//catalog declares the fixed set of invocable operations. The catalog never
//changes at runtime; field names are part of the contract with callers.
func (r resource) catalog() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("initialize_transaction",
				mcp.WithDescription("Initialize a new payment transaction"),
				mcp.WithString("email", mcp.Required(), mcp.Description("Customer email")),
				mcp.WithNumber("amount", mcp.Required(), mcp.Description("Amount in kobo/cents")),
				mcp.WithString("currency", mcp.DefaultString("NGN"), mcp.Description("Currency code")),
				mcp.WithString("reference", mcp.Description("Unique transaction reference")),
				mcp.WithString("callback_url", mcp.Description("Callback URL after payment")),
				mcp.WithString("plan", mcp.Description("Plan code to subscribe the customer to")),
				mcp.WithArray("channels", mcp.Description("Payment channels to allow"), mcp.Items(map[string]any{"type": "string"})),
				mcp.WithString("subaccount", mcp.Description("Subaccount code that owns the payment")),
				mcp.WithNumber("transaction_charge", mcp.Description("Flat fee override in kobo/cents")),
				mcp.WithString("bearer", mcp.Description("Who bears Paystack charges: account or subaccount")),
				mcp.WithObject("metadata", mcp.Description("Additional transaction data")),
			),
			handler: r.initializeTransaction,
		},
		{
			tool: mcp.NewTool("verify_transaction",
				mcp.WithDescription("Verify a transaction by reference"),
				mcp.WithString("reference", mcp.Required(), mcp.Description("Transaction reference to verify")),
			),
			handler: r.verifyTransaction,
		},
		{
			tool: mcp.NewTool("list_transactions",
				mcp.WithDescription("List transactions with optional filters"),
				mcp.WithNumber("per_page", mcp.DefaultNumber(50), mcp.Description("Number of results per page")),
				mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number")),
				mcp.WithString("customer", mcp.Description("Filter by customer ID")),
				mcp.WithString("status", mcp.Description("Filter by transaction status")),
				mcp.WithString("from_date", mcp.Description("Start date (YYYY-MM-DD)")),
				mcp.WithString("to_date", mcp.Description("End date (YYYY-MM-DD)")),
			),
			handler: r.listTransactions,
		},
		{
			tool: mcp.NewTool("create_customer",
				mcp.WithDescription("Create a new customer"),
				mcp.WithString("email", mcp.Required(), mcp.Description("Customer email")),
				mcp.WithString("first_name", mcp.Description("Customer first name")),
				mcp.WithString("last_name", mcp.Description("Customer last name")),
				mcp.WithString("phone", mcp.Description("Customer phone number")),
				mcp.WithObject("metadata", mcp.Description("Additional customer data")),
			),
			handler: r.createCustomer,
		},
		{
			tool: mcp.NewTool("list_customers",
				mcp.WithDescription("List customers"),
				mcp.WithNumber("per_page", mcp.DefaultNumber(50), mcp.Description("Number of results per page")),
				mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number")),
			),
			handler: r.listCustomers,
		},
		{
			tool: mcp.NewTool("create_plan",
				mcp.WithDescription("Create a subscription plan"),
				mcp.WithString("name", mcp.Required(), mcp.Description("Plan name")),
				mcp.WithNumber("amount", mcp.Required(), mcp.Description("Plan amount in kobo/cents")),
				mcp.WithString("interval", mcp.Required(), mcp.Description("Billing interval"),
					mcp.Enum("daily", "weekly", "monthly", "quarterly", "biannually", "annually")),
				mcp.WithString("description", mcp.Description("Plan description")),
				mcp.WithString("currency", mcp.DefaultString("NGN"), mcp.Description("Currency code")),
				mcp.WithBoolean("send_invoices", mcp.Description("Send invoices to subscribed customers")),
				mcp.WithBoolean("send_sms", mcp.Description("Send SMS notifications to subscribed customers")),
			),
			handler: r.createPlan,
		},
		{
			tool: mcp.NewTool("list_plans",
				mcp.WithDescription("List subscription plans"),
				mcp.WithNumber("per_page", mcp.DefaultNumber(50), mcp.Description("Number of results per page")),
				mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number")),
			),
			handler: r.listPlans,
		},
		{
			tool: mcp.NewTool("list_banks",
				mcp.WithDescription("List supported banks"),
				mcp.WithString("country", mcp.DefaultString("nigeria"), mcp.Description("Country to get banks for")),
			),
			handler: r.listBanks,
		},
		{
			tool: mcp.NewTool("resolve_account",
				mcp.WithDescription("Resolve and verify bank account details"),
				mcp.WithString("account_number", mcp.Required(), mcp.Description("Account number to verify")),
				mcp.WithString("bank_code", mcp.Required(), mcp.Description("Bank code")),
			),
			handler: r.resolveAccount,
		},
		{
			tool: mcp.NewTool("create_refund",
				mcp.WithDescription("Create a refund for a transaction"),
				mcp.WithString("transaction", mcp.Required(), mcp.Description("Transaction ID or reference")),
				mcp.WithNumber("amount", mcp.Description("Amount to refund in kobo/cents (full amount if not specified)")),
				mcp.WithString("currency", mcp.Description("Currency code")),
				mcp.WithString("customer_note", mcp.Description("Note for customer")),
				mcp.WithString("merchant_note", mcp.Description("Internal merchant note")),
			),
			handler: r.createRefund,
		},
	}
}

//instrument tags each invocation with a correlation id and guarantees that a
//failing handler yields a textual error result instead of tearing down the
//server. Invocations are independent and stateless.
func (r resource) instrument(name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		ctx = log.WithRequest(ctx, uuid.New().String())
		logger := r.logger.With(ctx, "tool", name)
		defer func() {
			if rec := recover(); rec != nil {
				logger.Errorf("tool invocation panicked: %v", rec)
				result = mcp.NewToolResultError(fmt.Sprintf("Error: %v", rec))
				err = nil
			}
		}()
		logger.Infof("dispatching tool invocation")
		return next(ctx, req)
	}
}

func (r resource) initializeTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input paystack.TransactionRequest
	if err := decodeArgs(req, &input); err != nil {
		return errorResult(err), nil
	}
	if err := input.Validate(); err != nil {
		return validationResult(err), nil
	}
	result, err := r.service.InitializeTransaction(ctx, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Transaction initialized successfully", result), nil
}

func (r resource) verifyTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reference, err := req.RequireString("reference")
	if err != nil {
		return errorResult(err), nil
	}
	result, err := r.service.VerifyTransaction(ctx, reference)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Transaction verification result", result), nil
}

func (r resource) listTransactions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		PerPage  int    `json:"per_page"`
		Page     int    `json:"page"`
		Customer string `json:"customer"`
		Status   string `json:"status"`
		FromDate string `json:"from_date"`
		ToDate   string `json:"to_date"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err), nil
	}
	result, err := r.service.ListTransactions(ctx, paystack.ListTransactionsOptions{
		PerPage:  args.PerPage,
		Page:     args.Page,
		Customer: args.Customer,
		Status:   args.Status,
		From:     args.FromDate,
		To:       args.ToDate,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Transactions list", result), nil
}

func (r resource) createCustomer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input paystack.CustomerRequest
	if err := decodeArgs(req, &input); err != nil {
		return errorResult(err), nil
	}
	if err := input.Validate(); err != nil {
		return validationResult(err), nil
	}
	result, err := r.service.CreateCustomer(ctx, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Customer created successfully", result), nil
}

func (r resource) listCustomers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := r.service.ListCustomers(ctx, req.GetInt("per_page", 0), req.GetInt("page", 0))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Customers list", result), nil
}

func (r resource) createPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input paystack.PlanRequest
	if err := decodeArgs(req, &input); err != nil {
		return errorResult(err), nil
	}
	if err := input.Validate(); err != nil {
		return validationResult(err), nil
	}
	result, err := r.service.CreatePlan(ctx, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Plan created successfully", result), nil
}

func (r resource) listPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := r.service.ListPlans(ctx, req.GetInt("per_page", 0), req.GetInt("page", 0))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Plans list", result), nil
}

func (r resource) listBanks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := r.service.ListBanks(ctx, req.GetString("country", ""))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Banks list", result), nil
}

func (r resource) resolveAccount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input paystack.ResolveAccountRequest
	if err := decodeArgs(req, &input); err != nil {
		return errorResult(err), nil
	}
	if err := input.Validate(); err != nil {
		return validationResult(err), nil
	}
	result, err := r.service.ResolveAccount(ctx, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Account resolution result", result), nil
}

func (r resource) createRefund(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input paystack.RefundRequest
	if err := decodeArgs(req, &input); err != nil {
		return errorResult(err), nil
	}
	if err := input.Validate(); err != nil {
		return validationResult(err), nil
	}
	result, err := r.service.CreateRefund(ctx, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult("Refund created successfully", result), nil
}

//decodeArgs coerces the raw argument mapping into a typed request via a JSON
//round trip, so the same field names and types apply as on the wire.
func decodeArgs(req mcp.CallToolRequest, out interface{}) error {
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return fmt.Errorf("invalid arguments: %s", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("invalid arguments: %s", err)
	}
	return nil
}
