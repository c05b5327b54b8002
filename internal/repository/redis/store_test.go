package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechevshop/storefront/internal/domain"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
	"github.com/rechevshop/storefront/pkg/money"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		SessionID: "sess-001",
		Items: []domain.CartItem{
			{
				Product:  domain.ProductRef{ID: 101, Name: "floor mats", Price: money.MustParse("99.90")},
				Quantity: 2,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Cart store
// ---------------------------------------------------------------------------

func TestCartRepository_SaveAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.SessionID, got.SessionID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(101), got.Items[0].Product.ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, cart.ItemCount(), got.ItemCount())
	assert.Equal(t, cart.Total(), got.Total())
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	got, err := repo.Get(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_PersistsStateEnvelope(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	raw, err := mr.Get("cart:" + cart.SessionID)
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Contains(t, env, "state")
	assert.Contains(t, env, "version")
}

func TestCartRepository_Get_CorruptedEnvelope(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	require.NoError(t, mr.Set("cart:sess-bad", "{{not-json"))

	got, err := repo.Get(context.Background(), "sess-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart envelope")
}

func TestCartRepository_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))
	require.NoError(t, repo.Delete(context.Background(), cart.SessionID))
	assert.False(t, mr.Exists("cart:"+cart.SessionID))

	// Deleting again is not an error.
	assert.NoError(t, repo.Delete(context.Background(), cart.SessionID))
}

func TestCartRepository_SetsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	require.NoError(t, repo.Save(context.Background(), sampleCart()))
	assert.Equal(t, time.Hour, mr.TTL("cart:sess-001"))
}

func TestCartRepository_RoundTripPreservesItemCount(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	cart := sampleCart()
	before := cart.ItemCount()
	require.NoError(t, repo.Save(context.Background(), cart))

	restored, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, before, restored.ItemCount())
}

// ---------------------------------------------------------------------------
// Vehicle store
// ---------------------------------------------------------------------------

func TestVehicleRepository_SaveAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVehicleRepository(client, time.Hour)

	vehicle := &domain.Vehicle{
		LicensePlate: "1234567",
		Brand:        "toyota",
		Model:        "corolla",
		Year:         2021,
		FuelType:     domain.FuelPetrol,
	}
	require.NoError(t, repo.Save(context.Background(), "sess-1", vehicle))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, vehicle, got)
}

func TestVehicleRepository_ReplacedWholesale(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVehicleRepository(client, time.Hour)

	first := &domain.Vehicle{Brand: "toyota", Model: "corolla", Year: 2021}
	require.NoError(t, repo.Save(context.Background(), "sess-1", first))

	// Re-selection carries no fields over from the previous vehicle.
	second := &domain.Vehicle{Brand: "mazda", Year: 2019}
	require.NoError(t, repo.Save(context.Background(), "sess-1", second))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Empty(t, got.Model)
}

func TestVehicleRepository_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVehicleRepository(client, time.Hour)

	require.NoError(t, repo.Save(context.Background(), "sess-1", &domain.Vehicle{Brand: "kia"}))
	require.NoError(t, repo.Delete(context.Background(), "sess-1"))

	_, err := repo.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVehicleRepository_IsolatedPerSession(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVehicleRepository(client, time.Hour)

	require.NoError(t, repo.Save(context.Background(), "sess-a", &domain.Vehicle{Brand: "kia"}))

	_, err := repo.Get(context.Background(), "sess-b")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Auth store
// ---------------------------------------------------------------------------

func TestAuthRepository_SaveAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewAuthRepository(client, time.Hour)

	session := &domain.AuthSession{
		Token: "opaque-bearer-token",
		Customer: domain.Customer{
			ID:        42,
			Email:     "dana@example.co.il",
			FirstName: "Dana",
		},
	}
	require.NoError(t, repo.Save(context.Background(), "sess-1", session))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestAuthRepository_IndependentFromCartStore(t *testing.T) {
	client, mr := setupTestRedis(t)
	authRepo := NewAuthRepository(client, time.Hour)
	cartRepo := NewCartRepository(client, time.Hour)

	require.NoError(t, authRepo.Save(context.Background(), "sess-1", &domain.AuthSession{Token: "tok"}))
	require.NoError(t, cartRepo.Save(context.Background(), sampleCart()))

	// Clearing auth must leave the cart untouched.
	require.NoError(t, authRepo.Delete(context.Background(), "sess-1"))
	assert.True(t, mr.Exists("cart:sess-001"))
	assert.False(t, mr.Exists("auth:sess-1"))
}
