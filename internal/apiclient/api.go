package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string     `json:"token"`
	Role     model.Role `json:"role"`
	Username string     `json:"username"`
}

type RegisterRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Sku               string  `json:"sku"`
	Name              string  `json:"name"`
	Category          string  `json:"category,omitempty"`
	Supplier          string  `json:"supplier,omitempty"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	MinStockThreshold int     `json:"min_stock_threshold"`
}

type CreateTransactionRequest struct {
	ProductID       int                   `json:"product_id"`
	TransactionType model.TransactionType `json:"transaction_type"`
	Quantity        int                   `json:"quantity"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var res LoginResponse
	if err := c.Call(ctx, http.MethodPost, "/auth/login", req, &res); err != nil {
		return LoginResponse{}, err
	}
	return res, nil
}

// Register returns the backend's confirmation message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var res messageBody
	if err := c.Call(ctx, http.MethodPost, "/auth/register", req, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Call(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ListPendingUsers(ctx context.Context) ([]model.PendingUser, error) {
	var res struct {
		Users []model.PendingUser `json:"users"`
	}
	if err := c.Call(ctx, http.MethodGet, "/auth/pending", nil, &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (c *Client) ApproveUser(ctx context.Context, id int) error {
	return c.Call(ctx, http.MethodPut, fmt.Sprintf("/auth/approve/%d", id), nil, nil)
}

func (c *Client) RejectUser(ctx context.Context, id int) error {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/auth/reject/%d", id), nil, nil)
}

func (c *Client) ListLoginLogs(ctx context.Context) ([]model.LogEntry, error) {
	var res struct {
		Logs []model.LogEntry `json:"logs"`
	}
	if err := c.Call(ctx, http.MethodGet, "/auth/logs", nil, &res); err != nil {
		return nil, err
	}
	return res.Logs, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var res struct {
		Products []model.Product `json:"products"`
	}
	if err := c.Call(ctx, http.MethodGet, "/products", nil, &res); err != nil {
		return nil, err
	}
	return res.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) error {
	return c.Call(ctx, http.MethodPost, "/products", req, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var res struct {
		Transactions []model.Transaction `json:"transactions"`
	}
	if err := c.Call(ctx, http.MethodGet, "/transactions", nil, &res); err != nil {
		return nil, err
	}
	return res.Transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (model.TransactionResult, error) {
	var res model.TransactionResult
	if err := c.Call(ctx, http.MethodPost, "/transactions", req, &res); err != nil {
		return model.TransactionResult{}, err
	}
	return res, nil
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var res model.Stats
	if err := c.Call(ctx, http.MethodGet, "/reports/stats", nil, &res); err != nil {
		return model.Stats{}, err
	}
	return res, nil
}

// ExportCSV downloads the inventory report.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/reports/export/csv")
}
