package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	productsvc "github.com/poscatalog/catalog-backend/internal/products"
	pkgerrors "github.com/poscatalog/catalog-backend/pkg/errors"
	"github.com/poscatalog/catalog-backend/pkg/logger"
	"github.com/poscatalog/catalog-backend/pkg/types"
)

type stubProductService struct {
	listResult *productsvc.ProductListResult
	product    *productsvc.ProductDTO
	err        error

	deleteCalled bool
	lastListIn   productsvc.ListProductsInput
	lastCreateIn productsvc.CreateProductInput
	lastUpdateID int64
}

func (s *stubProductService) ListProducts(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
	s.lastListIn = input
	return s.listResult, s.err
}

func (s *stubProductService) GetProduct(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.lastCreateIn = input
	return s.product, s.err
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id int64, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	s.lastUpdateID = id
	return s.product, s.err
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id int64) error {
	s.deleteCalled = true
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withRouteID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.Envelope {
	t.Helper()
	var body types.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return body
}

func TestGetProduct(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil), "abc")
		rec := httptest.NewRecorder()
		GetProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil), "42")
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		body := decodeEnvelope(t, rec)
		if body.Success {
			t.Fatal("expected success=false")
		}
		if body.Message != "product not found" {
			t.Fatalf("unexpected message %q", body.Message)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{product: &productsvc.ProductDTO{ID: 42, Name: "Widget"}}
		req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil), "42")
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeEnvelope(t, rec)
		if !body.Success || body.Status != http.StatusOK {
			t.Fatalf("unexpected envelope %+v", body)
		}
		data := body.Data.(map[string]any)
		if data["Id"].(float64) != 42 {
			t.Fatalf("unexpected payload %v", body.Data)
		}
	})
}

func TestListProductsParsesFilters(t *testing.T) {
	stub := &stubProductService{listResult: &productsvc.ProductListResult{Products: []*productsvc.ProductDTO{}}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=widget&brand_id=3&is_active=true&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastListIn.Search != "widget" {
		t.Fatalf("unexpected search %q", stub.lastListIn.Search)
	}
	if stub.lastListIn.BrandID == nil || *stub.lastListIn.BrandID != 3 {
		t.Fatalf("unexpected brand filter %v", stub.lastListIn.BrandID)
	}
	if stub.lastListIn.IsActive == nil || !*stub.lastListIn.IsActive {
		t.Fatalf("unexpected is_active filter %v", stub.lastListIn.IsActive)
	}
	if stub.lastListIn.Page != 2 || stub.lastListIn.Limit != 10 {
		t.Fatalf("unexpected paging %d/%d", stub.lastListIn.Page, stub.lastListIn.Limit)
	}
}

func TestListProductsRejectsBadQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=notanumber", nil)
	rec := httptest.NewRecorder()
	ListProducts(&stubProductService{}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()

	validBody := map[string]any{
		"name":        "Widget",
		"sku":         "SKU-001",
		"symbology":   "code128",
		"brand_id":    1,
		"category_id": 2,
		"unit_id":     3,
		"tax_id":      4,
		"price":       9.99,
		"tax_method":  "Exclusive",
	}

	post := func(payload any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(raw))
		rec := httptest.NewRecorder()
		CreateProduct(&stubProductService{product: &productsvc.ProductDTO{ID: 1}}, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		rec := post(validBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		if !body.Success || body.Status != http.StatusCreated {
			t.Fatalf("unexpected envelope %+v", body)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := post(map[string]any{"name": "Widget"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		payload := map[string]any{}
		for k, v := range validBody {
			payload[k] = v
		}
		payload["surprise"] = true
		rec := post(payload)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("unknown symbology", func(t *testing.T) {
		payload := map[string]any{}
		for k, v := range validBody {
			payload[k] = v
		}
		payload["symbology"] = "qr"
		rec := post(payload)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{product: &productsvc.ProductDTO{ID: 9, Qty: 5}}
		raw := []byte(`{"qty":5}`)
		req := withRouteID(httptest.NewRequest(http.MethodPut, "/api/v1/products/9", bytes.NewReader(raw)), "9")
		rec := httptest.NewRecorder()
		UpdateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastUpdateID != 9 {
			t.Fatalf("expected id 9, got %d", stub.lastUpdateID)
		}
	})

	t.Run("invalid tax method", func(t *testing.T) {
		raw := []byte(`{"tax_method":"Sideways"}`)
		req := withRouteID(httptest.NewRequest(http.MethodPut, "/api/v1/products/9", bytes.NewReader(raw)), "9")
		rec := httptest.NewRecorder()
		UpdateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{}
		req := withRouteID(httptest.NewRequest(http.MethodDelete, "/api/v1/products/7", nil), "7")
		rec := httptest.NewRecorder()
		DeleteProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.deleteCalled {
			t.Fatal("expected DeleteProduct to be invoked")
		}
		body := decodeEnvelope(t, rec)
		if body.Data != nil {
			t.Fatalf("expected no data, got %v", body.Data)
		}
	})

	t.Run("delete again reports 404", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := withRouteID(httptest.NewRequest(http.MethodDelete, "/api/v1/products/7", nil), "7")
		rec := httptest.NewRecorder()
		DeleteProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestGetProductIDBounds(t *testing.T) {
	for _, raw := range []string{"0", "-4", strconv.FormatUint(1<<63, 10)} {
		req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/v1/products/"+raw, nil), raw)
		rec := httptest.NewRecorder()
		GetProduct(&stubProductService{}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for id %q, got %d", raw, rec.Code)
		}
	}
}
