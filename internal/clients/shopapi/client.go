package shopapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rocketcart/internal/models"
	"rocketcart/pkg/lib/logger/sl"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrInvalidPayload   = errors.New("invalid response payload")
)

// Client talks to the storefront REST API that owns products and stock.
type Client struct {
	log      *slog.Logger
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(log, baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(log *slog.Logger, baseURL string, httpClient *http.Client) *Client {
	return &Client{
		log:      log,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		validate: validator.New(),
	}
}

// GET /stock/{productId}
func (c *Client) Stock(ctx context.Context, productId int) (models.Stock, error) {
	const op = "clients.shopapi.Stock"

	var stock models.Stock
	if err := c.get(ctx, fmt.Sprintf("/stock/%d", productId), &stock); err != nil {
		return models.Stock{}, fmt.Errorf("%s: %w", op, err)
	}

	return stock, nil
}

// GET /products/{productId}
func (c *Client) Product(ctx context.Context, productId int) (models.Product, error) {
	const op = "clients.shopapi.Product"

	var product models.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", productId), &product); err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if product.Id != productId {
		c.log.With("op", op).Warn("Product id mismatch", "want", productId, "got", product.Id)
		return models.Product{}, fmt.Errorf("%s: %w", op, ErrInvalidPayload)
	}

	return product, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	log := c.log.With("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		log.Error("Failed to build request", sl.Err(err))
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("Request failed", sl.Err(err))
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		log.Warn("Unexpected status", "status", resp.StatusCode)
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		log.Error("Cannot decode response body", sl.Err(err))
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if err := c.validate.Struct(dst); err != nil {
		log.Error("Failed to validate response", sl.Err(err))
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}
