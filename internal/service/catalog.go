package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/repository"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// CatalogClient is the storefront's view of the external store API.
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateOrder(ctx context.Context, order *domain.OrderRequest, bearerToken string) (*domain.OrderConfirmation, error)
}

// ProductListing is the result of a catalog query: the visible products
// and the vehicle filter that produced them, if one was applied.
type ProductListing struct {
	Products []domain.Product
	Vehicle  *domain.Vehicle
	Filtered bool
}

// CatalogService serves product listings, narrowed to the session's
// selected vehicle when one exists.
type CatalogService struct {
	catalog  CatalogClient
	vehicles repository.VehicleRepository
	matcher  compat.Matcher
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog CatalogClient, vehicles repository.VehicleRepository, matcher compat.Matcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog:  catalog,
		vehicles: vehicles,
		matcher:  matcher,
		logger:   logger,
	}
}

// ListProducts returns the catalog. When the session has a selected
// vehicle the listing keeps only compatible products; includeAll bypasses
// the filter while still reporting the selection.
func (s *CatalogService) ListProducts(ctx context.Context, sessionID string, includeAll bool) (*ProductListing, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	vehicle, err := s.sessionVehicle(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	listing := &ProductListing{Products: products, Vehicle: vehicle}
	if vehicle == nil || includeAll {
		return listing, nil
	}

	spec := vehicle.Spec()
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if s.matcher.IsCompatible(p.Compatibility, spec, p.UniversalFit) {
			filtered = append(filtered, p)
		}
	}

	s.logger.DebugContext(ctx, "catalog filtered by vehicle",
		slog.String("session_id", sessionID),
		slog.String("brand", vehicle.Brand),
		slog.Int("total", len(products)),
		slog.Int("visible", len(filtered)),
	)

	listing.Products = filtered
	listing.Filtered = true
	return listing, nil
}

func (s *CatalogService) sessionVehicle(ctx context.Context, sessionID string) (*domain.Vehicle, error) {
	v, err := s.vehicles.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session vehicle: %w", err)
	}
	return v, nil
}
