package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jokermario/paystack-mcp/internal/config"
	"github.com/jokermario/paystack-mcp/pkg/log"
)

const requestTimeout = 30 * time.Second

const (
	defaultPerPage = 50
	defaultPage    = 1
)

//APIError represents a failed call to the paystack API. StatusCode is zero
//when the failure happened before an HTTP status was available (connection
//refused, timeout, malformed response body).
type APIError struct {
	StatusCode int
	Message    string
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("paystack api error: %s", e.Message)
	}
	return fmt.Sprintf("paystack api error: status=%d message=%s", e.StatusCode, e.Message)
}

//transportError wraps a failure that produced no HTTP status.
func transportError(err error) *APIError {
	return &APIError{Message: fmt.Sprintf("HTTP error occurred: %s", err)}
}

//Client is a client for the paystack API. Configuration is fixed at
//construction and shared by every call; the client is safe for concurrent
//use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     log.Logger
}

//NewClient returns a paystack API client configured from cfg. A single
//attempt is made per call, bounded by a 30 second timeout.
func NewClient(cfg *config.Config, logger log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		logger:     logger,
	}
}

//doRequest performs one HTTP call against the paystack API and parses the
//JSON response body. Any 2xx response is returned as-is, embedded status flag
//included; interpreting business-level failure inside a 2xx body is the
//caller's concern.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}, query url.Values) (map[string]interface{}, error) {
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, transportError(err)
		}
		body = bytes.NewBuffer(b)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var request *http.Request
	var err error
	if body != nil {
		request, err = http.NewRequestWithContext(ctx, method, endpoint, body)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return nil, transportError(err)
	}
	request.Header.Add("Authorization", "Bearer "+c.secretKey)
	request.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.With(ctx, "method", method, "path", path).Errorf("request failed: %s", err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, transportError(fmt.Errorf("malformed response body: %s", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := "API request failed"
		if m, ok := parsed["message"].(string); ok && m != "" {
			message = m
		}
		c.logger.With(ctx, "method", method, "path", path, "status", resp.StatusCode).Errorf("paystack returned an error: %s", message)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message, Body: parsed}
	}

	return parsed, nil
}

//pageQuery builds the pagination query shared by every list operation.
func pageQuery(perPage, page int) url.Values {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if page <= 0 {
		page = defaultPage
	}
	q := url.Values{}
	q.Set("perPage", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	return q
}

//---------------------------------------------------------------------------
// transactions

//InitializeTransaction initializes a new transaction for the customer email
//and amount in req.
func (c *Client) InitializeTransaction(ctx context.Context, req TransactionRequest) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodPost, "/transaction/initialize", req, nil)
}

//VerifyTransaction verifies a transaction by its reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, nil)
}

//ListTransactionsOptions holds the optional filters of a list transactions
//call. Zero values are left out of the outbound query.
type ListTransactionsOptions struct {
	PerPage  int
	Page     int
	Customer string
	Status   string
	From     string
	To       string
}

//ListTransactions lists transactions with optional filters.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) (map[string]interface{}, error) {
	q := pageQuery(opts.PerPage, opts.Page)
	if opts.Customer != "" {
		q.Set("customer", opts.Customer)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.From != "" {
		q.Set("from", opts.From)
	}
	if opts.To != "" {
		q.Set("to", opts.To)
	}
	return c.doRequest(ctx, http.MethodGet, "/transaction", nil, q)
}

//GetTransaction gets transaction details by id.
func (c *Client) GetTransaction(ctx context.Context, id int) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/transaction/"+strconv.Itoa(id), nil, nil)
}

//---------------------------------------------------------------------------
// customers

//CreateCustomer creates a new customer.
func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodPost, "/customer", req, nil)
}

//ListCustomers lists customers.
func (c *Client) ListCustomers(ctx context.Context, perPage, page int) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/customer", nil, pageQuery(perPage, page))
}

//GetCustomer gets customer details by customer code.
func (c *Client) GetCustomer(ctx context.Context, customerCode string) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/customer/"+url.PathEscape(customerCode), nil, nil)
}

//UpdateCustomer updates the caller-settable fields of an existing customer.
func (c *Client) UpdateCustomer(ctx context.Context, customerCode string, req CustomerRequest) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodPut, "/customer/"+url.PathEscape(customerCode), req, nil)
}

//---------------------------------------------------------------------------
// plans

//CreatePlan creates a subscription plan.
func (c *Client) CreatePlan(ctx context.Context, req PlanRequest) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodPost, "/plan", req, nil)
}

//ListPlans lists subscription plans.
func (c *Client) ListPlans(ctx context.Context, perPage, page int) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/plan", nil, pageQuery(perPage, page))
}

//GetPlan gets plan details by plan code.
func (c *Client) GetPlan(ctx context.Context, planCode string) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/plan/"+url.PathEscape(planCode), nil, nil)
}

//---------------------------------------------------------------------------
// banks

//ListBanks lists the banks supported in the given country.
func (c *Client) ListBanks(ctx context.Context, country string) (map[string]interface{}, error) {
	if country == "" {
		country = "nigeria"
	}
	q := url.Values{}
	q.Set("country", country)
	return c.doRequest(ctx, http.MethodGet, "/bank", nil, q)
}

//ResolveAccount resolves an account number against a bank code.
func (c *Client) ResolveAccount(ctx context.Context, req ResolveAccountRequest) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("account_number", req.AccountNumber)
	q.Set("bank_code", req.BankCode)
	return c.doRequest(ctx, http.MethodGet, "/bank/resolve", nil, q)
}

//---------------------------------------------------------------------------
// refunds

//CreateRefund creates a refund for a transaction.
func (c *Client) CreateRefund(ctx context.Context, req RefundRequest) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodPost, "/refund", req, nil)
}

//ListRefundsOptions holds the optional filters of a list refunds call.
type ListRefundsOptions struct {
	PerPage   int
	Page      int
	Reference string
	Currency  string
}

//ListRefunds lists refunds with optional filters.
func (c *Client) ListRefunds(ctx context.Context, opts ListRefundsOptions) (map[string]interface{}, error) {
	q := pageQuery(opts.PerPage, opts.Page)
	if opts.Reference != "" {
		q.Set("reference", opts.Reference)
	}
	if opts.Currency != "" {
		q.Set("currency", opts.Currency)
	}
	return c.doRequest(ctx, http.MethodGet, "/refund", nil, q)
}

//GetRefund gets refund details by id.
func (c *Client) GetRefund(ctx context.Context, id int) (map[string]interface{}, error) {
	return c.doRequest(ctx, http.MethodGet, "/refund/"+strconv.Itoa(id), nil, nil)
}
