package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	productsvc "github.com/poscatalog/catalog-backend/internal/products"
	"github.com/poscatalog/catalog-backend/internal/refdata"
	pkgauth "github.com/poscatalog/catalog-backend/pkg/auth"
	"github.com/poscatalog/catalog-backend/pkg/config"
	"github.com/poscatalog/catalog-backend/pkg/db"
	"github.com/poscatalog/catalog-backend/pkg/db/models"
	"github.com/poscatalog/catalog-backend/pkg/logger"
	"github.com/poscatalog/catalog-backend/pkg/types"
)

type testServer struct {
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Brand{},
		&models.Category{},
		&models.Unit{},
		&models.Tax{},
		&models.Warehouse{},
		&models.Product{},
		&models.ProductQuantity{},
		&models.Attachment{},
	))

	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "catalog-test", ExpirationMinutes: 60},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})

	dbClient := db.NewFromConn(conn)
	productService, err := productsvc.NewService(productsvc.NewRepository(conn), dbClient)
	require.NoError(t, err)
	refdataService, err := refdata.NewService(refdata.NewRepository(conn))
	require.NoError(t, err)

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{UserID: uuid.NewString()})
	require.NoError(t, err)

	return &testServer{
		handler: NewRouter(cfg, logg, dbClient, nil, productService, refdataService),
		token:   token,
	}
}

func (s *testServer) request(t *testing.T, method, path string, payload any, authed bool) (*httptest.ResponseRecorder, types.Envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var envelope types.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return rec, envelope
}

func (s *testServer) seedReferences(t *testing.T) map[string]int64 {
	t.Helper()

	ids := map[string]int64{}
	for path, payload := range map[string]any{
		"/api/v1/brands":     map[string]any{"name": "Acme"},
		"/api/v1/categories": map[string]any{"name": "Hardware"},
		"/api/v1/units":      map[string]any{"name": "Piece", "short_name": "pc"},
		"/api/v1/taxes":      map[string]any{"name": "VAT", "rate": 17.5},
		"/api/v1/warehouses": map[string]any{"name": "Main"},
	} {
		rec, envelope := s.request(t, http.MethodPost, path, payload, true)
		require.Equal(t, http.StatusCreated, rec.Code, "seeding %s: %s", path, rec.Body.String())
		data := envelope.Data.(map[string]any)
		ids[path] = int64(data["Id"].(float64))
	}
	return ids
}

func TestHealthAndMetricsAreUnauthenticated(t *testing.T) {
	srv := newTestServer(t)

	rec, envelope := srv.request(t, http.MethodGet, "/health/live", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	rec, envelope = srv.request(t, http.MethodGet, "/health/ready", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	plain := httptest.NewRecorder()
	srv.handler.ServeHTTP(plain, req)
	require.Equal(t, http.StatusOK, plain.Code)
}

func TestAPIRequiresBearerToken(t *testing.T) {
	srv := newTestServer(t)

	rec, envelope := srv.request(t, http.MethodGet, "/api/v1/products", nil, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, envelope.Success)
	require.Equal(t, http.StatusUnauthorized, envelope.Status)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	refs := srv.seedReferences(t)

	create := map[string]any{
		"name":        "Widget",
		"sku":         "SKU-001",
		"symbology":   "code128",
		"brand_id":    refs["/api/v1/brands"],
		"category_id": refs["/api/v1/categories"],
		"unit_id":     refs["/api/v1/units"],
		"tax_id":      refs["/api/v1/taxes"],
		"price":       9.99,
		"tax_method":  "Exclusive",
		"has_stock":   true,
		"product_qties": []map[string]any{
			{"warehouse_id": refs["/api/v1/warehouses"], "quantity": 3},
		},
	}

	rec, envelope := srv.request(t, http.MethodPost, "/api/v1/products", create, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := envelope.Data.(map[string]any)
	productID := int64(created["Id"].(float64))
	require.Equal(t, "Widget", created["name"])
	require.Equal(t, float64(3), created["qty"])
	require.Len(t, created["product_qties"], 1)

	path := fmt.Sprintf("/api/v1/products/%d", productID)

	rec, envelope = srv.request(t, http.MethodPut, path, map[string]any{"qty": 5}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := envelope.Data.(map[string]any)
	require.Equal(t, float64(5), updated["qty"])
	require.Equal(t, "Widget", updated["name"])

	rec, _ = srv.request(t, http.MethodGet, "/api/v1/products", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = srv.request(t, http.MethodDelete, path, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	rec, envelope = srv.request(t, http.MethodGet, path, nil, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, envelope.Success)
	require.Equal(t, http.StatusNotFound, envelope.Status)

	rec, _ = srv.request(t, http.MethodDelete, path, nil, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	refs := srv.seedReferences(t)

	base := map[string]any{
		"name":        "Widget",
		"sku":         "SKU-002",
		"symbology":   "code128",
		"brand_id":    refs["/api/v1/brands"],
		"category_id": refs["/api/v1/categories"],
		"unit_id":     refs["/api/v1/units"],
		"tax_id":      refs["/api/v1/taxes"],
		"price":       9.99,
		"tax_method":  "Exclusive",
	}

	t.Run("negative price", func(t *testing.T) {
		payload := map[string]any{}
		for k, v := range base {
			payload[k] = v
		}
		payload["price"] = -1
		rec, envelope := srv.request(t, http.MethodPost, "/api/v1/products", payload, true)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, envelope.Details)
	})

	t.Run("dangling brand", func(t *testing.T) {
		payload := map[string]any{}
		for k, v := range base {
			payload[k] = v
		}
		payload["brand_id"] = 9999
		rec, _ := srv.request(t, http.MethodPost, "/api/v1/products", payload, true)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		rec, _ := srv.request(t, http.MethodPost, "/api/v1/products", base, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		rec, envelope := srv.request(t, http.MethodPost, "/api/v1/products", base, true)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, "sku already in use", envelope.Message)
	})
}
