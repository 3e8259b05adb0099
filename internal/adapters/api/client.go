package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/config"
	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/port"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status from catalog api")
	ErrMismatchedID     = errors.New("catalog api returned a different product id")
)

type productResponse struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type stockResponse struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

// Client talks to the shop's catalog API, which serves both product records
// and stock levels.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ port.CatalogPort = (*Client)(nil)
	_ port.StockPort   = (*Client)(nil)
)

func NewClient(cfg config.CatalogAPIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	var body productResponse
	if err := c.get(ctx, "/products/"+id.String(), &body); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if domain.ProductID(body.ID) != id {
		return nil, fmt.Errorf("failed to get product %d: %w: got %d", id, ErrMismatchedID, body.ID)
	}
	product := domain.NewProduct(
		domain.ProductID(body.ID),
		body.Title,
		domain.NewAmountFromDecimal(body.Price),
		body.Image,
	)
	return product, nil
}

func (c *Client) GetStock(ctx context.Context, id domain.ProductID) (*domain.Stock, error) {
	var body stockResponse
	if err := c.get(ctx, "/stock/"+id.String(), &body); err != nil {
		return nil, fmt.Errorf("failed to get stock %d: %w", id, err)
	}
	return &domain.Stock{ID: domain.ProductID(body.ID), Amount: body.Amount}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/products", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
