package tools

import (
	"context"
	"net/http"
	"testing"

	"github.com/jokermario/paystack-mcp/internal/paystack"
	"github.com/jokermario/paystack-mcp/pkg/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	initializeTransactionFn func(ctx context.Context, req paystack.TransactionRequest) (map[string]interface{}, error)
	verifyTransactionFn     func(ctx context.Context, reference string) (map[string]interface{}, error)
	listTransactionsFn      func(ctx context.Context, opts paystack.ListTransactionsOptions) (map[string]interface{}, error)
	createCustomerFn        func(ctx context.Context, req paystack.CustomerRequest) (map[string]interface{}, error)
	listCustomersFn         func(ctx context.Context, perPage, page int) (map[string]interface{}, error)
	createPlanFn            func(ctx context.Context, req paystack.PlanRequest) (map[string]interface{}, error)
	listPlansFn             func(ctx context.Context, perPage, page int) (map[string]interface{}, error)
	listBanksFn             func(ctx context.Context, country string) (map[string]interface{}, error)
	resolveAccountFn        func(ctx context.Context, req paystack.ResolveAccountRequest) (map[string]interface{}, error)
	createRefundFn          func(ctx context.Context, req paystack.RefundRequest) (map[string]interface{}, error)
}

func (f *fakeService) InitializeTransaction(ctx context.Context, req paystack.TransactionRequest) (map[string]interface{}, error) {
	return f.initializeTransactionFn(ctx, req)
}

func (f *fakeService) VerifyTransaction(ctx context.Context, reference string) (map[string]interface{}, error) {
	return f.verifyTransactionFn(ctx, reference)
}

func (f *fakeService) ListTransactions(ctx context.Context, opts paystack.ListTransactionsOptions) (map[string]interface{}, error) {
	return f.listTransactionsFn(ctx, opts)
}

func (f *fakeService) CreateCustomer(ctx context.Context, req paystack.CustomerRequest) (map[string]interface{}, error) {
	return f.createCustomerFn(ctx, req)
}

func (f *fakeService) ListCustomers(ctx context.Context, perPage, page int) (map[string]interface{}, error) {
	return f.listCustomersFn(ctx, perPage, page)
}

func (f *fakeService) CreatePlan(ctx context.Context, req paystack.PlanRequest) (map[string]interface{}, error) {
	return f.createPlanFn(ctx, req)
}

func (f *fakeService) ListPlans(ctx context.Context, perPage, page int) (map[string]interface{}, error) {
	return f.listPlansFn(ctx, perPage, page)
}

func (f *fakeService) ListBanks(ctx context.Context, country string) (map[string]interface{}, error) {
	return f.listBanksFn(ctx, country)
}

func (f *fakeService) ResolveAccount(ctx context.Context, req paystack.ResolveAccountRequest) (map[string]interface{}, error) {
	return f.resolveAccountFn(ctx, req)
}

func (f *fakeService) CreateRefund(ctx context.Context, req paystack.RefundRequest) (map[string]interface{}, error) {
	return f.createRefundFn(ctx, req)
}

func newTestResource(svc Service) resource {
	logger, _ := log.NewForTest()
	return resource{svc, logger}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestCatalogNamesAreExactlyTheKnownSet(t *testing.T) {
	res := newTestResource(&fakeService{})

	var names []string
	for _, def := range res.catalog() {
		names = append(names, def.tool.Name)
	}

	assert.ElementsMatch(t, []string{
		"initialize_transaction",
		"verify_transaction",
		"list_transactions",
		"create_customer",
		"list_customers",
		"create_plan",
		"list_plans",
		"list_banks",
		"resolve_account",
		"create_refund",
	}, names)
}

func TestCreateCustomerSuccess(t *testing.T) {
	var got paystack.CustomerRequest
	svc := &fakeService{
		createCustomerFn: func(ctx context.Context, req paystack.CustomerRequest) (map[string]interface{}, error) {
			got = req
			return map[string]interface{}{
				"status":  true,
				"message": "Customer created",
				"data":    map[string]interface{}{"customer_code": "CUS_test123", "id": 123},
			}, nil
		},
	}
	res := newTestResource(svc)

	result, err := res.createCustomer(context.Background(), callRequest("create_customer", map[string]interface{}{
		"email":      "test@example.com",
		"first_name": "John",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Customer created successfully")
	assert.Contains(t, text, "CUS_test123")
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, "John", got.FirstName)
}

func TestInitializeTransactionRemoteErrorIsRenderedNotRaised(t *testing.T) {
	svc := &fakeService{
		initializeTransactionFn: func(ctx context.Context, req paystack.TransactionRequest) (map[string]interface{}, error) {
			return nil, &paystack.APIError{
				StatusCode: http.StatusBadRequest,
				Message:    "Invalid amount",
				Body:       map[string]interface{}{"status": false, "message": "Invalid amount"},
			}
		},
	}
	res := newTestResource(svc)

	result, err := res.initializeTransaction(context.Background(), callRequest("initialize_transaction", map[string]interface{}{
		"email":  "a@b.com",
		"amount": 1,
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Invalid amount")
	assert.Contains(t, text, "400")
}

func TestInitializeTransactionValidationNeverReachesTheClient(t *testing.T) {
	called := false
	svc := &fakeService{
		initializeTransactionFn: func(ctx context.Context, req paystack.TransactionRequest) (map[string]interface{}, error) {
			called = true
			return nil, nil
		},
	}
	res := newTestResource(svc)

	result, err := res.initializeTransaction(context.Background(), callRequest("initialize_transaction", map[string]interface{}{
		"email": "a@b.com",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Validation error")
	assert.Contains(t, text, "amount")
	assert.False(t, called)
}

func TestCreatePlanRejectsUnknownInterval(t *testing.T) {
	called := false
	svc := &fakeService{
		createPlanFn: func(ctx context.Context, req paystack.PlanRequest) (map[string]interface{}, error) {
			called = true
			return nil, nil
		},
	}
	res := newTestResource(svc)

	result, err := res.createPlan(context.Background(), callRequest("create_plan", map[string]interface{}{
		"name":     "Gold",
		"amount":   500000,
		"interval": "fortnightly",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "interval")
	assert.False(t, called)
}

func TestTransportErrorRendersWithoutStatusCode(t *testing.T) {
	svc := &fakeService{
		listBanksFn: func(ctx context.Context, country string) (map[string]interface{}, error) {
			return nil, &paystack.APIError{Message: "HTTP error occurred: connection refused"}
		},
	}
	res := newTestResource(svc)

	result, err := res.listBanks(context.Background(), callRequest("list_banks", map[string]interface{}{}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "connection refused")
	assert.Contains(t, text, "Status Code: n/a")
}

func TestListTransactionsForwardsFilters(t *testing.T) {
	var got paystack.ListTransactionsOptions
	svc := &fakeService{
		listTransactionsFn: func(ctx context.Context, opts paystack.ListTransactionsOptions) (map[string]interface{}, error) {
			got = opts
			return map[string]interface{}{"status": true, "message": "Transactions retrieved"}, nil
		},
	}
	res := newTestResource(svc)

	result, err := res.listTransactions(context.Background(), callRequest("list_transactions", map[string]interface{}{
		"per_page":  10,
		"page":      2,
		"customer":  "CUS_x",
		"status":    "success",
		"from_date": "2020-01-01",
		"to_date":   "2020-02-01",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Transactions list")

	assert.Equal(t, 10, got.PerPage)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, "CUS_x", got.Customer)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "2020-01-01", got.From)
	assert.Equal(t, "2020-02-01", got.To)
}

func TestVerifyTransactionRequiresReference(t *testing.T) {
	res := newTestResource(&fakeService{})

	result, err := res.verifyTransaction(context.Background(), callRequest("verify_transaction", map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCreateRefundSuccess(t *testing.T) {
	var got paystack.RefundRequest
	svc := &fakeService{
		createRefundFn: func(ctx context.Context, req paystack.RefundRequest) (map[string]interface{}, error) {
			got = req
			return map[string]interface{}{"status": true, "message": "Refund has been queued for processing"}, nil
		},
	}
	res := newTestResource(svc)

	result, err := res.createRefund(context.Background(), callRequest("create_refund", map[string]interface{}{
		"transaction": "ref_123",
		"amount":      2500,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Refund created successfully")

	require.NotNil(t, got.Amount)
	assert.Equal(t, 2500, *got.Amount)
	assert.Equal(t, "ref_123", got.Transaction)
}

func TestInstrumentRecoversFromPanics(t *testing.T) {
	res := newTestResource(&fakeService{})

	handler := res.instrument("explode", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("boom")
	})

	result, err := handler(context.Background(), callRequest("explode", nil))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "boom")
}

func TestDocsResourceReturnsText(t *testing.T) {
	contents, err := readDocs(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, DocsURI, text.URI)
	assert.NotEmpty(t, text.Text)
	assert.Contains(t, text.Text, "initialize_transaction")
	assert.Contains(t, text.Text, "create_refund")
}
