// Package client is a Go API client for the storefront. It keeps a local
// mirror of the server-side cart: every cart call replaces the mirror
// wholesale with the server's response, so the mirror never drifts further
// than one request behind the authoritative state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	cartdomain "github.com/pixelmart/storefront/internal/cart/domain"
	orderdomain "github.com/pixelmart/storefront/internal/order/domain"
	"github.com/pixelmart/storefront/internal/pricing"
	"github.com/pixelmart/storefront/pkg/apperror"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	pricer  *pricing.Engine

	mu   sync.Mutex
	cart cartdomain.View
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithPricing(cfg pricing.Config) Option {
	return func(c *Client) { c.pricer = pricing.NewEngine(cfg) }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    http.DefaultClient,
		pricer:  pricing.NewEngine(pricing.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cart returns the mirrored cart as of the last server response.
func (c *Client) Cart() cartdomain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart
}

// Refresh pulls the authoritative cart and replaces the mirror.
func (c *Client) Refresh(ctx context.Context) (cartdomain.View, error) {
	return c.cartCall(ctx, http.MethodGet, "/api/cart", nil)
}

func (c *Client) AddItem(ctx context.Context, productID string, quantity int) (cartdomain.View, error) {
	return c.cartCall(ctx, http.MethodPost, "/api/cart/add", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
}

func (c *Client) SetQuantity(ctx context.Context, productID string, quantity int) (cartdomain.View, error) {
	return c.cartCall(ctx, http.MethodPut, "/api/cart/update", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
}

func (c *Client) RemoveItem(ctx context.Context, productID string) (cartdomain.View, error) {
	return c.cartCall(ctx, http.MethodDelete, "/api/cart/remove/"+productID, nil)
}

// Checkout prices the mirrored cart locally and submits it. On success the
// server has emptied the cart, so the mirror is reset to match.
func (c *Client) Checkout(ctx context.Context, addr orderdomain.ShippingAddress, paymentMethod string) (orderdomain.Order, error) {
	c.mu.Lock()
	mirror := c.cart
	c.mu.Unlock()

	items := make([]orderdomain.OrderItem, 0, len(mirror.Items))
	lines := make([]pricing.Line, 0, len(mirror.Items))
	for _, it := range mirror.Items {
		items = append(items, orderdomain.OrderItem{
			ProductID: it.Product.ID,
			Title:     it.Product.Title,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
		})
		lines = append(lines, pricing.Line{UnitPrice: it.Product.Price, Quantity: it.Quantity})
	}
	quote := c.pricer.Quote(lines)

	var order orderdomain.Order
	err := c.do(ctx, http.MethodPost, "/api/orders/checkout", map[string]any{
		"items":           items,
		"shippingAddress": addr,
		"paymentMethod":   paymentMethod,
		"total":           quote.Total,
	}, &order)
	if err != nil {
		return orderdomain.Order{}, err
	}

	c.mu.Lock()
	c.cart = cartdomain.View{Items: []cartdomain.ItemView{}}
	c.mu.Unlock()
	return order, nil
}

func (c *Client) Order(ctx context.Context, id string) (orderdomain.Order, error) {
	var o orderdomain.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &o)
	return o, err
}

func (c *Client) MyOrders(ctx context.Context) ([]orderdomain.Order, error) {
	var resp struct {
		Orders []orderdomain.Order `json:"orders"`
	}
	err := c.do(ctx, http.MethodGet, "/api/orders/myorders", nil, &resp)
	return resp.Orders, err
}

func (c *Client) cartCall(ctx context.Context, method, path string, body any) (cartdomain.View, error) {
	var view cartdomain.View
	if err := c.do(ctx, method, path, body, &view); err != nil {
		return cartdomain.View{}, err
	}
	c.mu.Lock()
	c.cart = view
	c.mu.Unlock()
	return view, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInternal, "encode request")
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "call storefront")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "decode response")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = resp.Status
	}

	code := apperror.CodeInternal
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = apperror.CodeInvalid
	case http.StatusUnauthorized:
		code = apperror.CodeUnauthorized
	case http.StatusForbidden:
		code = apperror.CodeForbidden
	case http.StatusNotFound:
		code = apperror.CodeNotFound
	case http.StatusConflict:
		code = apperror.CodeConflict
	}
	return apperror.New(code, fmt.Sprintf("storefront: %s", body.Message))
}
