package paystack

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PlanIntervals holds the billing intervals Paystack accepts for a plan.
var PlanIntervals = []interface{}{"daily", "weekly", "monthly", "quarterly", "biannually", "annually"}

//Response represents the general payload structure returned by paystack
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

//Authorization represents the data in the authorization field returned in a paystack response
type Authorization struct {
	AuthorizationCode string `json:"authorization_code,omitempty"`
	Bin               string `json:"bin,omitempty"`
	Last4             string `json:"last4,omitempty"`
	ExpMonth          string `json:"exp_month,omitempty"`
	ExpYear           string `json:"exp_year,omitempty"`
	Channel           string `json:"channel,omitempty"`
	CardType          string `json:"card_type,omitempty"`
	Bank              string `json:"bank,omitempty"`
	CountryCode       string `json:"country_code,omitempty"`
	Brand             string `json:"brand,omitempty"`
	Reusable          bool   `json:"reusable,omitempty"`
}

//Customer represents the customer entity returned in a paystack response.
//Server-assigned fields (id, customer_code, timestamps) only ever come from
//the remote side; Request strips them before anything goes back out.
type Customer struct {
	ID           int                    `json:"id,omitempty"`
	CustomerCode string                 `json:"customer_code,omitempty"`
	Email        string                 `json:"email,omitempty"`
	FirstName    string                 `json:"first_name,omitempty"`
	LastName     string                 `json:"last_name,omitempty"`
	Phone        string                 `json:"phone,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    string                 `json:"createdAt,omitempty"`
	UpdatedAt    string                 `json:"updatedAt,omitempty"`
}

//Request returns the caller-settable view of a customer, suitable for an
//outbound create or update payload.
func (c Customer) Request() CustomerRequest {
	return CustomerRequest{
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Metadata:  c.Metadata,
	}
}

//Transaction represents the transaction entity returned in a paystack response
type Transaction struct {
	ID              int                    `json:"id,omitempty"`
	Reference       string                 `json:"reference,omitempty"`
	Amount          int                    `json:"amount,omitempty"`
	Currency        string                 `json:"currency,omitempty"`
	Status          string                 `json:"status,omitempty"`
	GatewayResponse string                 `json:"gateway_response,omitempty"`
	PaidAt          string                 `json:"paid_at,omitempty"`
	CreatedAt       string                 `json:"created_at,omitempty"`
	Channel         string                 `json:"channel,omitempty"`
	Customer        *Customer              `json:"customer,omitempty"`
	Authorization   *Authorization         `json:"authorization,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

//Plan represents the subscription plan entity returned in a paystack response
type Plan struct {
	ID           int    `json:"id,omitempty"`
	PlanCode     string `json:"plan_code,omitempty"`
	Name         string `json:"name,omitempty"`
	Amount       int    `json:"amount,omitempty"`
	Interval     string `json:"interval,omitempty"`
	Description  string `json:"description,omitempty"`
	Currency     string `json:"currency,omitempty"`
	InvoiceLimit int    `json:"invoice_limit,omitempty"`
	SendInvoices bool   `json:"send_invoices,omitempty"`
	SendSMS      bool   `json:"send_sms,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

//Request returns the caller-settable view of a plan, suitable for an
//outbound create payload.
func (p Plan) Request() PlanRequest {
	req := PlanRequest{
		Name:        p.Name,
		Amount:      p.Amount,
		Interval:    p.Interval,
		Description: p.Description,
		Currency:    p.Currency,
	}
	if p.InvoiceLimit > 0 {
		limit := p.InvoiceLimit
		req.InvoiceLimit = &limit
	}
	return req
}

//Bank represents the bank entity returned in a paystack response.
//Code and slug are remote-assigned identifiers.
type Bank struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Code      string `json:"code,omitempty"`
	Longcode  string `json:"longcode,omitempty"`
	Gateway   string `json:"gateway,omitempty"`
	Active    bool   `json:"active,omitempty"`
	Country   string `json:"country,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Type      string `json:"type,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
}

//TransactionRequest represents the body of an initialize transaction request
type TransactionRequest struct {
	Email             string                 `json:"email"`
	Amount            int                    `json:"amount"`
	Currency          string                 `json:"currency,omitempty"`
	Reference         string                 `json:"reference,omitempty"`
	CallbackURL       string                 `json:"callback_url,omitempty"`
	Plan              string                 `json:"plan,omitempty"`
	InvoiceLimit      *int                   `json:"invoice_limit,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	Channels          []string               `json:"channels,omitempty"`
	SplitCode         string                 `json:"split_code,omitempty"`
	Subaccount        string                 `json:"subaccount,omitempty"`
	TransactionCharge *int                   `json:"transaction_charge,omitempty"`
	Bearer            string                 `json:"bearer,omitempty"`
}

//Validate reports every violated field, not just the first. Amount is in the
//minor currency unit (kobo for NGN) and is never scaled.
func (tr TransactionRequest) Validate() error {
	return validation.ValidateStruct(&tr,
		validation.Field(&tr.Email, validation.Required, is.EmailFormat),
		validation.Field(&tr.Amount, validation.Required, validation.Min(1)),
		validation.Field(&tr.CallbackURL, is.URL))
}

//CustomerRequest represents the body of a create or update customer request
type CustomerRequest struct {
	Email     string                 `json:"email"`
	FirstName string                 `json:"first_name,omitempty"`
	LastName  string                 `json:"last_name,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func (cr CustomerRequest) Validate() error {
	return validation.ValidateStruct(&cr,
		validation.Field(&cr.Email, validation.Required, is.EmailFormat))
}

//PlanRequest represents the body of a create plan request
type PlanRequest struct {
	Name         string `json:"name"`
	Amount       int    `json:"amount"`
	Interval     string `json:"interval"`
	Description  string `json:"description,omitempty"`
	Currency     string `json:"currency,omitempty"`
	InvoiceLimit *int   `json:"invoice_limit,omitempty"`
	SendInvoices *bool  `json:"send_invoices,omitempty"`
	SendSMS      *bool  `json:"send_sms,omitempty"`
}

func (pr PlanRequest) Validate() error {
	return validation.ValidateStruct(&pr,
		validation.Field(&pr.Name, validation.Required),
		validation.Field(&pr.Amount, validation.Required, validation.Min(1)),
		validation.Field(&pr.Interval, validation.Required, validation.In(PlanIntervals...)))
}

//RefundRequest represents the body of a create refund request. Transaction is
//an id or reference; when Amount is nil the remote side refunds the full
//transaction amount.
type RefundRequest struct {
	Transaction  string `json:"transaction"`
	Amount       *int   `json:"amount,omitempty"`
	Currency     string `json:"currency,omitempty"`
	CustomerNote string `json:"customer_note,omitempty"`
	MerchantNote string `json:"merchant_note,omitempty"`
}

func (rr RefundRequest) Validate() error {
	// nil means a full refund; an explicitly-set amount must be positive.
	// Threshold rules alone skip empty values, so zero needs NilOrNotEmpty.
	return validation.ValidateStruct(&rr,
		validation.Field(&rr.Transaction, validation.Required),
		validation.Field(&rr.Amount, validation.NilOrNotEmpty, validation.Min(1)))
}

//ResolveAccountRequest represents the query of a resolve account request
type ResolveAccountRequest struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

func (rar ResolveAccountRequest) Validate() error {
	return validation.ValidateStruct(&rar,
		validation.Field(&rar.AccountNumber, validation.Required, is.Digit),
		validation.Field(&rar.BankCode, validation.Required, is.Digit))
}
