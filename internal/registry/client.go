// Package registry is the client for the government open-data vehicle
// registry. A license plate number resolves to the registered vehicle's
// make, model, year, and fuel type.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/internal/domain"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// HTTPDoer is the interface for executing HTTP requests.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config holds the registry endpoint and dataset identifier.
type Config struct {
	BaseURL    string
	ResourceID string
}

// Client looks up vehicles in the national registry dataset.
type Client struct {
	http   HTTPDoer
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a new registry client.
func NewClient(http HTTPDoer, cfg Config, logger *slog.Logger) *Client {
	return &Client{
		http:   http,
		cfg:    cfg,
		logger: logger,
	}
}

// record is the registry's row shape. Field names follow the dataset's
// Hebrew-transliterated column names.
type record struct {
	MisparRechev json.Number `json:"mispar_rechev"`
	TozeretNm    string      `json:"tozeret_nm"`
	KinuyMishari string      `json:"kinuy_mishari"`
	ShnatYitzur  int         `json:"shnat_yitzur"`
	SugDelekNm   string      `json:"sug_delek_nm"`
	DegemManoa   string      `json:"degem_manoa"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []record `json:"records"`
	} `json:"result"`
}

// Lookup resolves a normalized license plate to a vehicle. The plate must
// already be validated; raw user input goes through domain.ValidatePlate
// first. A plate absent from the dataset is a not-found condition, distinct
// from the registry being unreachable.
func (c *Client) Lookup(ctx context.Context, plate string) (*domain.Vehicle, error) {
	// The dataset keys rows by numeric plate, so a plate that does not
	// parse as a number can never be present.
	plateNum, err := strconv.ParseInt(plate, 10, 64)
	if err != nil {
		return nil, apperrors.LookupNotFound(plate)
	}

	u, err := url.Parse(c.cfg.BaseURL + "/api/3/action/datastore_search")
	if err != nil {
		return nil, fmt.Errorf("parse registry url: %w", err)
	}
	q := u.Query()
	q.Set("resource_id", c.cfg.ResourceID)
	q.Set("filters", fmt.Sprintf(`{"mispar_rechev":%d}`, plateNum))
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create registry request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("vehicle registry")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.UpstreamUnavailable("vehicle registry")
	}

	var wire searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	if !wire.Success {
		return nil, apperrors.UpstreamUnavailable("vehicle registry")
	}
	if len(wire.Result.Records) == 0 {
		return nil, apperrors.LookupNotFound(plate)
	}

	v := mapRecord(plate, wire.Result.Records[0])
	c.logger.DebugContext(ctx, "registry lookup resolved",
		slog.String("plate", plate),
		slog.String("brand", v.Brand),
		slog.String("model", v.Model),
		slog.Int("year", v.Year),
	)
	return v, nil
}

// mapRecord normalizes a registry row into the canonical vehicle shape.
// The registry stores Hebrew manufacturer and fuel names; canonicalization
// makes them comparable with catalog fitment patterns.
func mapRecord(plate string, r record) *domain.Vehicle {
	return &domain.Vehicle{
		LicensePlate: plate,
		Brand:        compat.CanonicalBrand(brandFromTozeret(r.TozeretNm)),
		Model:        compat.CanonicalModel(r.KinuyMishari),
		Year:         r.ShnatYitzur,
		FuelType:     compat.CanonicalFuel(r.SugDelekNm),
		EngineType:   r.DegemManoa,
	}
}

// brandFromTozeret strips the country suffix the dataset appends to the
// manufacturer name, e.g. "טויוטה יפן" keeps only the first word when the
// trailing words are country names.
func brandFromTozeret(tozeret string) string {
	fields := strings.Fields(tozeret)
	if len(fields) == 0 {
		return tozeret
	}
	// Drop trailing country-of-origin words.
	for len(fields) > 1 && isCountryWord(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

var countryWords = map[string]bool{
	"יפן":     true,
	"גרמניה":  true,
	"צרפת":    true,
	"קוריאה":  true,
	"ארה\"ב":  true,
	"איטליה":  true,
	"ספרד":    true,
	"צ'כיה":   true,
	"בריטניה": true,
	"סין":     true,
	"טורקיה":  true,
	"הודו":    true,
	"רומניה":  true,
	"סלובקיה": true,
	"הונגריה": true,
	"בלגיה":   true,
	"שוודיה":  true,
	"מקסיקו":  true,
	"תאילנד":  true,
	"פולין":   true,
	"פורטוגל": true,
	"אוסטריה": true,
	"הולנד":   true,
	"אנגליה":  true,
}

func isCountryWord(w string) bool {
	return countryWords[w]
}
