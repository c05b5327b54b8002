package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/repository"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// CartService manages the per-session shopping cart. All mutations load the
// cart, apply the change, and persist the whole cart back. The service is
// the only writer for a session's cart.
type CartService struct {
	carts     repository.CartRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, publisher EventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		carts:     carts,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns the session's cart. A session without a cart gets an empty
// one; browsing never sees a not-found error.
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.emptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddItem adds a line to the cart. Adding to an existing (product,
// variation) line merges by summing quantities instead of duplicating it.
func (s *CartService) AddItem(ctx context.Context, sessionID string, item domain.CartItem) (*domain.Cart, error) {
	if item.Product.ID == 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if item.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be positive")
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItemIndex(item.Product.ID, item.VariationID()); idx >= 0 {
		cart.Items[idx].Quantity += item.Quantity
	} else {
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", item.Product.ID),
		slog.Int64("variation_id", item.VariationID()),
		slog.Int("quantity", item.Quantity),
	)
	s.publisher.CartUpdated(ctx, cart)
	return cart, nil
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less
// removes the line. Updating a line that is not in the cart is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID, variationID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID, variationID)
	if idx < 0 {
		return cart, nil
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
	)
	s.publisher.CartUpdated(ctx, cart)
	return cart, nil
}

// RemoveItem deletes a line from the cart. Removing an absent line is a
// no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID, variationID int64) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(productID, variationID)
	if idx < 0 {
		return cart, nil
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
	)
	s.publisher.CartUpdated(ctx, cart)
	return cart, nil
}

// Clear drops the session's cart entirely.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)
	s.publisher.CartCleared(ctx, sessionID)
	return nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *CartService) emptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
