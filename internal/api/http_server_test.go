package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"velora/internal/config"
	"velora/internal/events"
	"velora/internal/models"
	"velora/internal/repository"
	"velora/internal/seo"
	"velora/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServices() []models.Service {
	return []models.Service{
		{
			ID:       1,
			Name:     "Dinner Date",
			Category: "social",
			Variants: []models.Variant{
				{ID: "1-1", Name: "Two hours", Price: 12000},
				{ID: "1-2", Name: "Full evening", Price: 30000},
			},
		},
		{
			ID:       2,
			Name:     "City Tour",
			Category: "travel",
			Variants: []models.Variant{
				{ID: "2-1", Name: "Half day", Price: 25000},
			},
		},
	}
}

func testSite() config.SiteConfig {
	return config.SiteConfig{
		BaseURL:        "https://velora.in",
		Name:           "Velora",
		Locale:         "en_IN",
		TwitterSite:    "@velora",
		TwitterCreator: "@velora",
		LogoURL:        "https://velora.in/logo.png",
		FallbackImage:  "https://velora.in/og/default.jpg",
		Cities: []config.CityConfig{
			{Slug: "mumbai", Name: "Mumbai", Lat: 19.076, Lng: 72.8777},
		},
	}
}

func newTestServer(t *testing.T, apiCfg config.APIConfig) *HTTPServer {
	t.Helper()
	logger := zerolog.New(io.Discard)

	store, err := service.NewBookingStore(context.Background(), repository.NewMemoryBookingRepository(), events.NewEventBus(), &logger)
	require.NoError(t, err)

	catalog := service.NewCatalog(testServices(), &logger)
	composer := seo.New(testSite(), catalog.ServiceIDs())

	return NewHTTPServer(apiCfg, store, catalog, composer, t.TempDir(), false, &logger)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestBookingFlow(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})
	h := srv.Handler()

	t.Run("NoCurrentBooking", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/booking", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ConfirmWithoutCurrent", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking/confirm", nil, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("StartBooking", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking", map[string]any{
			"service_id": 1,
			"variant_id": "1-1",
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		var booking models.Booking
		decode(t, rec, &booking)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, int64(1), booking.Service.ID)
		assert.Equal(t, "1-1", booking.Variant.ID)
		assert.Equal(t, models.StatusDraft, booking.Status)
	})

	t.Run("StartUnknownVariant", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking", map[string]any{
			"service_id": 1,
			"variant_id": "9-9",
		}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("UpdateBooking", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPatch, "/api/v1/booking", map[string]any{
			"date": "2026-09-10",
			"time": "19:00",
			"customer": map[string]string{
				"name":  "Arjun",
				"email": "arjun@example.com",
			},
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var booking models.Booking
		decode(t, rec, &booking)
		assert.Equal(t, "2026-09-10", booking.Date)
		assert.Equal(t, "19:00", booking.Time)
		require.NotNil(t, booking.Customer)
		assert.Equal(t, "Arjun", booking.Customer.Name)
	})

	t.Run("ConfirmMovesToHistory", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking/confirm", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var confirmed models.Booking
		decode(t, rec, &confirmed)
		assert.Equal(t, models.StatusConfirmed, confirmed.Status)
		require.NotNil(t, confirmed.ConfirmedAt)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/booking", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/bookings", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list struct {
			Bookings []models.Booking `json:"bookings"`
		}
		decode(t, rec, &list)
		require.Len(t, list.Bookings, 1)
		assert.Equal(t, confirmed.ID, list.Bookings[0].ID)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/bookings/"+confirmed.ID, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("CancelBooking", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking", map[string]any{
			"service_id": 2,
			"variant_id": "2-1",
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, h, http.MethodDelete, "/api/v1/booking", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/booking", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ClearHistory", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/api/v1/bookings", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/bookings", nil, nil)
		var list struct {
			Bookings []models.Booking `json:"bookings"`
		}
		decode(t, rec, &list)
		assert.Empty(t, list.Bookings)
	})
}

func TestServicesEndpoints(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})
	h := srv.Handler()

	t.Run("ListAll", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Services []models.Service `json:"services"`
		}
		decode(t, rec, &resp)
		assert.Len(t, resp.Services, 2)
	})

	t.Run("Search", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services?q=dinner", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Services []models.Service `json:"services"`
			Query    models.SearchQuery `json:"query"`
		}
		decode(t, rec, &resp)
		require.Len(t, resp.Services, 1)
		assert.Equal(t, "Dinner Date", resp.Services[0].Name)
		assert.True(t, resp.Query.Active)
	})

	t.Run("ByID", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services/2", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var svc models.Service
		decode(t, rec, &svc)
		assert.Equal(t, "City Tour", svc.Name)
	})

	t.Run("UnknownID", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services/99", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services/abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMetaEndpoint(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})
	h := srv.Handler()

	t.Run("PathRequired", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/meta", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("CityPage", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/meta?path=/mumbai-escorts&type=city&city=Mumbai&title=Mumbai+Companions&description=Find+companions+in+Mumbai", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Canonical  string               `json:"canonical"`
			Alternates []seo.AlternateLink  `json:"alternates"`
			Tags       []seo.Tag            `json:"tags"`
			Validation seo.ValidationReport `json:"validation"`
			JSONLD     []map[string]any     `json:"jsonld"`
		}
		decode(t, rec, &resp)

		assert.Equal(t, "https://velora.in/mumbai", resp.Canonical)
		require.Len(t, resp.Alternates, 3)
		assert.Equal(t, "x-default", resp.Alternates[0].Hreflang)
		assert.True(t, resp.Validation.IsValid)
		require.NotEmpty(t, resp.JSONLD)
		assert.Equal(t, "Organization", resp.JSONLD[0]["@type"])
	})

	t.Run("ServicePageIncludesProduct", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/meta?path=/services/1&type=service&service=Dinner+Date&title=Dinner+Date&description=Evening+companion", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			JSONLD []map[string]any `json:"jsonld"`
		}
		decode(t, rec, &resp)

		types := make([]string, 0, len(resp.JSONLD))
		for _, node := range resp.JSONLD {
			types = append(types, node["@type"].(string))
		}
		assert.Contains(t, types, "Product")
	})
}

func TestHTTPAuth(t *testing.T) {
	authCfg := config.APIConfig{
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			APIKeys: []config.APIClientKey{
				{Key: "full-access", Name: "admin"},
				{Key: "catalog-only", Name: "reader", Permissions: []string{"read:catalog"}},
			},
		},
	}
	srv := newTestServer(t, authCfg)
	h := srv.Handler()

	t.Run("MissingKey", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidKey", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services", nil, map[string]string{"x-api-key": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidKey", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services", nil, map[string]string{"x-api-key": "full-access"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("PermissionDenied", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking", map[string]any{
			"service_id": 1,
			"variant_id": "1-1",
		}, map[string]string{"x-api-key": "catalog-only"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("EmptyPermissionsAllowAll", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/booking", map[string]any{
			"service_id": 1,
			"variant_id": "1-1",
		}, map[string]string{"x-api-key": "full-access"})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("HealthzBypassesAuth", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/healthz", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	cfg := config.APIConfig{
		RateLimit: config.APIRateLimitConfig{RPS: 1, Burst: 2},
	}
	srv := newTestServer(t, cfg)
	h := srv.Handler()

	headers := map[string]string{"x-api-key": "client-a"}
	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/services", nil, headers)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/services", nil, headers)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different key gets its own bucket.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/services", nil, map[string]string{"x-api-key": "client-b"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/booking", map[string]any{
		"service_id": 1,
		"variant_id": "1-1",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/booking/confirm", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/bookings/export", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Greater(t, rec.Body.Len(), 0)

	// A dated copy lands in the export directory as well.
	savedPath := rec.Header().Get("X-Export-Path")
	require.NotEmpty(t, savedPath)
	assert.Equal(t, srv.exportDir, filepath.Dir(savedPath))
	info, err := os.Stat(savedPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
