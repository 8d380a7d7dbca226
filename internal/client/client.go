// Package client is a Go port of the original single-page client's state
// layer: an authenticated API consumer plus the pure reducers it used to
// derive dashboard statistics and chart groupings from a fetched page of
// transactions.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
)

// Client talks to the transactions API. The credential is injected per
// instance and attached to each outgoing request; there is no shared default
// header state.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Type      string
	Category  string
	TimeRange string
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// TransactionInput is the request body for create and update.
type TransactionInput struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
}

type apiEnvelope struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Transaction  *domain.Transaction  `json:"transaction"`
	Transactions []domain.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}

func (c *Client) do(method, path string, body interface{}) (*apiEnvelope, error) {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, err
		}
	}

	var req *http.Request
	var err error
	if buf != nil {
		req, err = http.NewRequest(method, c.baseURL+path, buf)
	} else {
		req, err = http.NewRequest(method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %v", err)
	}
	if !envelope.Success {
		if envelope.Message == "" {
			return nil, fmt.Errorf("request failed with status %s", resp.Status)
		}
		return nil, fmt.Errorf("%s", envelope.Message)
	}
	return &envelope, nil
}

func (c *Client) ListTransactions(params ListParams) ([]domain.Transaction, Pagination, error) {
	values := url.Values{}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		values.Set("search", params.Search)
	}
	if params.Type != "" {
		values.Set("type", params.Type)
	}
	if params.Category != "" {
		values.Set("category", params.Category)
	}
	if params.TimeRange != "" {
		values.Set("timeRange", params.TimeRange)
	}

	path := "/api/transactions"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	envelope, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, Pagination{}, err
	}
	return envelope.Transactions, envelope.Pagination, nil
}

func (c *Client) GetTransaction(id string) (*domain.Transaction, error) {
	envelope, err := c.do(http.MethodGet, "/api/transactions/"+id, nil)
	if err != nil {
		return nil, err
	}
	return envelope.Transaction, nil
}

func (c *Client) CreateTransaction(input TransactionInput) (*domain.Transaction, error) {
	envelope, err := c.do(http.MethodPost, "/api/transactions", input)
	if err != nil {
		return nil, err
	}
	return envelope.Transaction, nil
}

func (c *Client) UpdateTransaction(id string, input TransactionInput) (*domain.Transaction, error) {
	envelope, err := c.do(http.MethodPut, "/api/transactions/"+id, input)
	if err != nil {
		return nil, err
	}
	return envelope.Transaction, nil
}

func (c *Client) DeleteTransaction(id string) error {
	_, err := c.do(http.MethodDelete, "/api/transactions/"+id, nil)
	return err
}
