// Package stockit mirrors ledger designations to the Stockit inventory system.
package stockit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/ports"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 512
)

var ErrBaseURLRequired = errors.New("stockit base url is required")

// StatusError is returned for non-2xx answers from Stockit.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stockit %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the Stockit item designation API.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

var _ ports.InventoryMirror = (*Client)(nil)

func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrBaseURLRequired
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse stockit base url: %w", err)
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, apiKey: cfg.APIKey, http: httpClient}, nil
}

type designateRequest struct {
	OrderID         string `json:"order_id"`
	OrderCode       string `json:"order_code"`
	PackageID       string `json:"package_id"`
	InventoryNumber string `json:"inventory_number"`
	Quantity        int    `json:"quantity"`
	StockitID       *int   `json:"stockit_id,omitempty"`
}

type undesignateRequest struct {
	PackageID       string `json:"package_id"`
	InventoryNumber string `json:"inventory_number"`
	StockitID       *int   `json:"stockit_id,omitempty"`
}

func (c *Client) DesignateToStockitOrder(ctx context.Context, pkg *donation.Package, order ports.StockitOrderRef) error {
	body := designateRequest{
		OrderID:         order.OrderID.String(),
		OrderCode:       order.Code,
		PackageID:       pkg.ID().String(),
		InventoryNumber: pkg.InventoryNumber(),
		Quantity:        pkg.ReceivedQuantity(),
		StockitID:       pkg.StockitID(),
	}
	_, err := c.do(ctx, http.MethodPut, itemPath(pkg, "designate"), body)
	return err
}

// UndesignateFromStockitOrder treats a missing item as already undesignated.
func (c *Client) UndesignateFromStockitOrder(ctx context.Context, pkg *donation.Package) error {
	body := undesignateRequest{
		PackageID:       pkg.ID().String(),
		InventoryNumber: pkg.InventoryNumber(),
		StockitID:       pkg.StockitID(),
	}
	status, err := c.do(ctx, http.MethodPut, itemPath(pkg, "undesignate"), body)
	if status == http.StatusNotFound {
		return nil
	}
	return err
}

func itemPath(pkg *donation.Package, action string) string {
	return "/api/v1/items/" + url.PathEscape(pkg.InventoryNumber()) + "/" + action
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode stockit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token token="+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("stockit %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	return resp.StatusCode, &StatusError{
		Method: method,
		Path:   path,
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(snippet)),
	}
}
