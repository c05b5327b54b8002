// Package catalog is the client for the external store API that owns the
// product catalog and order creation. This service never stores products
// itself; it fetches, normalizes, and passes through.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/internal/domain"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
	"github.com/rechevshop/storefront/pkg/money"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config holds the store API endpoint and credentials.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
}

// Client talks to the store's REST API.
type Client struct {
	http   HTTPDoer
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a new store API client.
func NewClient(http HTTPDoer, cfg Config, logger *slog.Logger) *Client {
	return &Client{
		http:   http,
		cfg:    cfg,
		logger: logger,
	}
}

// wireProduct is the store API's product shape, reduced to what the
// storefront needs.
type wireProduct struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Price       string      `json:"price"`
	StockStatus string      `json:"stock_status"`
	Images      []wireImage `json:"images"`
	MetaData    []wireMeta  `json:"meta_data"`

	// Variations is either a list of bare variation IDs (stock API) or a
	// list of embedded variation objects (headless plugins). Only the
	// embedded form carries prices, so only it is mapped.
	Variations json.RawMessage `json:"variations"`
}

type wireImage struct {
	Src string `json:"src"`
}

type wireVariation struct {
	ID         int64                       `json:"id"`
	Price      string                      `json:"price"`
	Attributes []domain.VariationAttribute `json:"attributes"`
}

type wireMeta struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

const productsPerPage = 100

// maxProductPages bounds the pagination loop when the upstream omits the
// X-WP-TotalPages header.
const maxProductPages = 50

// ListProducts fetches the published catalog and maps it into domain
// products with normalized compatibility patterns. The store API pages its
// listing, so pages are fetched until the reported total is reached.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	for page := 1; page <= maxProductPages; page++ {
		wire, totalPages, err := c.fetchProductPage(ctx, page)
		if err != nil {
			return nil, err
		}
		for _, w := range wire {
			products = append(products, c.mapProduct(ctx, w))
		}
		if totalPages > 0 && page >= totalPages {
			break
		}
		if len(wire) < productsPerPage {
			break
		}
	}
	return products, nil
}

// fetchProductPage returns one page of wire products plus the total page
// count from the X-WP-TotalPages header, zero when absent.
func (c *Client) fetchProductPage(ctx context.Context, page int) ([]wireProduct, int, error) {
	u, err := url.Parse(c.cfg.BaseURL + "/wp-json/wc/v3/products")
	if err != nil {
		return nil, 0, fmt.Errorf("parse catalog url: %w", err)
	}
	q := u.Query()
	q.Set("status", "publish")
	q.Set("per_page", strconv.Itoa(productsPerPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("consumer_key", c.cfg.ConsumerKey)
	q.Set("consumer_secret", c.cfg.ConsumerSecret)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, 0, apperrors.UpstreamUnavailable("product catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, apperrors.UpstreamUnavailable("product catalog")
	}

	var wire []wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, 0, fmt.Errorf("decode catalog response: %w", err)
	}

	totalPages, _ := strconv.Atoi(resp.Header.Get("X-WP-TotalPages"))
	return wire, totalPages, nil
}

// mapProduct converts a wire product into the domain shape. A product with
// unparseable price or compatibility metadata is still listed; bad fitment
// data degrades to the matcher's empty-set policy rather than failing the
// whole catalog.
func (c *Client) mapProduct(ctx context.Context, w wireProduct) domain.Product {
	price, err := money.Parse(w.Price)
	if err != nil {
		c.logger.DebugContext(ctx, "product has unparseable price",
			slog.Int64("product_id", w.ID),
			slog.String("price", w.Price),
		)
		price = 0
	}

	p := domain.Product{
		ID:           w.ID,
		Name:         w.Name,
		Slug:         w.Slug,
		Price:        price,
		PriceDisplay: price.String(),
		InStock:      w.StockStatus == "instock",
	}
	if len(w.Images) > 0 {
		p.ImageURL = w.Images[0].Src
	}

	p.Variations = parseVariations(w.Variations)

	for _, meta := range w.MetaData {
		switch meta.Key {
		case "universal_fit":
			p.UniversalFit = truthy(meta.Value)
		case "vehicle_compatibility":
			patterns, skipped := parseCompatibilityMeta(meta.Value)
			if skipped > 0 {
				c.logger.DebugContext(ctx, "skipped malformed compatibility entries",
					slog.Int64("product_id", w.ID),
					slog.Int("skipped", skipped),
				)
			}
			p.Compatibility = patterns
		}
	}

	return p
}

// parseCompatibilityMeta handles both upstream encodings of fitment data:
// a list of pre-formatted pattern strings, or a list of structured
// metadata entries. Malformed entries are counted and skipped.
func parseCompatibilityMeta(raw json.RawMessage) ([]compat.Pattern, int) {
	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		return compat.ParsePatterns(asStrings)
	}

	var asEntries []compat.MetadataEntry
	if err := json.Unmarshal(raw, &asEntries); err == nil {
		var patterns []compat.Pattern
		skipped := 0
		for _, e := range asEntries {
			p, err := e.Pattern()
			if err != nil {
				skipped++
				continue
			}
			patterns = append(patterns, p)
		}
		return patterns, skipped
	}

	// Neither encoding; treat the whole field as one skipped entry.
	return nil, 1
}

func parseVariations(raw json.RawMessage) []domain.Variation {
	if len(raw) == 0 {
		return nil
	}
	var wire []wireVariation
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil
	}
	variations := make([]domain.Variation, 0, len(wire))
	for _, w := range wire {
		price, err := money.Parse(w.Price)
		if err != nil {
			continue
		}
		variations = append(variations, domain.Variation{
			ID:         w.ID,
			Price:      price,
			Attributes: w.Attributes,
		})
	}
	if len(variations) == 0 {
		return nil
	}
	return variations
}

// truthy interprets the store API's loose boolean encodings.
func truthy(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "yes" || s == "true" || s == "1"
	}
	return false
}

// CreateOrder posts the order payload to the store API. The bearer token
// identifies the customer to the external identity system; it is forwarded
// opaque. Payment happens afterwards in the hosted payment iframe behind
// the returned payment URL.
func (c *Client) CreateOrder(ctx context.Context, order *domain.OrderRequest, bearerToken string) (*domain.OrderConfirmation, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	u, err := url.Parse(c.cfg.BaseURL + "/wp-json/wc/v3/orders")
	if err != nil {
		return nil, fmt.Errorf("parse order url: %w", err)
	}
	q := u.Query()
	q.Set("consumer_key", c.cfg.ConsumerKey)
	q.Set("consumer_secret", c.cfg.ConsumerSecret)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("order service")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, apperrors.UpstreamUnavailable("order service")
	}
	if resp.StatusCode >= 400 {
		msg := readErrorMessage(resp.Body)
		return nil, apperrors.OrderRejected(msg)
	}

	var wire struct {
		ID         int64  `json:"id"`
		Status     string `json:"status"`
		Total      string `json:"total"`
		PaymentURL string `json:"payment_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	return &domain.OrderConfirmation{
		OrderID:    wire.ID,
		Status:     wire.Status,
		Total:      wire.Total,
		PaymentURL: wire.PaymentURL,
	}, nil
}

func readErrorMessage(body io.Reader) string {
	var wire struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&wire); err == nil && wire.Message != "" {
		return wire.Message
	}
	return "order was rejected by the store"
}
