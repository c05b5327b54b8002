package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/repository"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// CheckoutRequest carries the shopper's details for the order handoff.
type CheckoutRequest struct {
	Billing      domain.OrderAddress  `json:"billing" validate:"required"`
	Shipping     *domain.OrderAddress `json:"shipping,omitempty"`
	CustomerNote string               `json:"customer_note,omitempty"`
}

// CheckoutService hands the cart off to the external order API. Payment is
// collected downstream behind the returned payment URL; this service never
// touches payment details.
type CheckoutService struct {
	carts     repository.CartRepository
	auth      repository.AuthRepository
	catalog   CatalogClient
	publisher EventPublisher
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts repository.CartRepository, auth repository.AuthRepository, catalog CatalogClient, publisher EventPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		auth:      auth,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit converts the session's cart into an order and posts it to the
// store API. On success the cart is cleared and the confirmation carries
// the payment URL. On failure the cart is left intact so the shopper can
// retry.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.OrderConfirmation, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := s.buildOrder(cart, req)
	token := s.bearerToken(ctx, sessionID)

	conf, err := s.catalog.CreateOrder(ctx, order, token)
	if err != nil {
		return nil, err
	}

	itemCount := cart.ItemCount()
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		// The order exists upstream; an uncleared cart is the lesser
		// problem. Log and return the confirmation.
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.Int64("order_id", conf.OrderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("session_id", sessionID),
		slog.Int64("order_id", conf.OrderID),
		slog.String("total", conf.Total),
		slog.Int("item_count", itemCount),
	)
	s.publisher.OrderSubmitted(ctx, sessionID, conf, itemCount)
	return conf, nil
}

// buildOrder maps cart lines to order line items. Prices are not sent; the
// store API reprices every line from its own catalog at order time.
func (s *CheckoutService) buildOrder(cart *domain.Cart, req CheckoutRequest) *domain.OrderRequest {
	lines := make([]domain.OrderLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.OrderLineItem{
			ProductID:   item.Product.ID,
			Quantity:    item.Quantity,
			VariationID: item.VariationID(),
		})
	}

	shipping := req.Billing
	if req.Shipping != nil {
		shipping = *req.Shipping
	}

	return &domain.OrderRequest{
		Billing:      req.Billing,
		Shipping:     shipping,
		LineItems:    lines,
		CustomerNote: req.CustomerNote,
	}
}

// bearerToken returns the session's stored customer token, empty for guest
// checkout.
func (s *CheckoutService) bearerToken(ctx context.Context, sessionID string) string {
	session, err := s.auth.Get(ctx, sessionID)
	if err != nil {
		return ""
	}
	return session.Token
}
