package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/poscatalog/catalog-backend/api/responses"
	"github.com/poscatalog/catalog-backend/api/validators"
	productsvc "github.com/poscatalog/catalog-backend/internal/products"
	"github.com/poscatalog/catalog-backend/pkg/enums"
	pkgerrors "github.com/poscatalog/catalog-backend/pkg/errors"
	"github.com/poscatalog/catalog-backend/pkg/logger"
	"github.com/poscatalog/catalog-backend/pkg/pagination"
)

// ListProducts returns one page of live products.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brandID, err := validators.ParseQueryInt64(r, "brand_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseQueryInt64(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		isActive, err := validators.ParseQueryBool(r, "is_active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			Search:     r.URL.Query().Get("search"),
			BrandID:    brandID,
			CategoryID: categoryID,
			IsActive:   isActive,
			Page:       page,
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "products retrieved", result)
	}
}

// GetProduct returns one live product by id.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "product retrieved", product)
	}
}

// CreateProduct handles product creation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "product created", product)
	}
}

// UpdateProduct applies a partial update to one product.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "product updated", product)
	}
}

// DeleteProduct soft-deletes one product.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "product deleted", nil)
	}
}

type productQuantityRequest struct {
	WarehouseID int64 `json:"warehouse_id" validate:"required,min=1"`
	Quantity    int   `json:"quantity" validate:"min=0"`
}

type attachmentRequest struct {
	Path  string `json:"path" validate:"required"`
	Label string `json:"label"`
}

type createProductRequest struct {
	Name          string                   `json:"name" validate:"required"`
	SKU           string                   `json:"sku" validate:"required"`
	Symbology     string                   `json:"symbology" validate:"required"`
	BrandID       int64                    `json:"brand_id" validate:"required,min=1"`
	CategoryID    int64                    `json:"category_id" validate:"required,min=1"`
	UnitID        int64                    `json:"unit_id" validate:"required,min=1"`
	TaxID         int64                    `json:"tax_id" validate:"required,min=1"`
	Price         decimal.Decimal          `json:"price"`
	Qty           int                      `json:"qty" validate:"min=0"`
	AlertQty      int                      `json:"alert_qty" validate:"min=0"`
	TaxMethod     string                   `json:"tax_method" validate:"required"`
	HasStock      bool                     `json:"has_stock"`
	HasExpiryDate bool                     `json:"has_expiry_date"`
	ExpiryDate    *time.Time               `json:"expiry_date,omitempty"`
	Details       *string                  `json:"details,omitempty"`
	IsActive      *bool                    `json:"is_active,omitempty"`
	Quantities    []productQuantityRequest `json:"product_qties,omitempty" validate:"omitempty,dive"`
	Attachments   []attachmentRequest      `json:"attachments,omitempty" validate:"omitempty,dive"`
}

func (r createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	symbology, err := enums.ParseSymbology(strings.TrimSpace(r.Symbology))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid symbology")
	}
	taxMethod, err := enums.ParseTaxMethod(strings.TrimSpace(r.TaxMethod))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tax method")
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return productsvc.CreateProductInput{
		Name:          r.Name,
		SKU:           r.SKU,
		Symbology:     symbology,
		BrandID:       r.BrandID,
		CategoryID:    r.CategoryID,
		UnitID:        r.UnitID,
		TaxID:         r.TaxID,
		Price:         r.Price,
		Qty:           r.Qty,
		AlertQty:      r.AlertQty,
		TaxMethod:     taxMethod,
		HasStock:      r.HasStock,
		HasExpiryDate: r.HasExpiryDate,
		ExpiryDate:    r.ExpiryDate,
		Details:       r.Details,
		IsActive:      isActive,
		Quantities:    toQuantityInputs(r.Quantities),
		Attachments:   toAttachmentInputs(r.Attachments),
	}, nil
}

type updateProductRequest struct {
	Name          *string                   `json:"name,omitempty"`
	SKU           *string                   `json:"sku,omitempty"`
	Symbology     *string                   `json:"symbology,omitempty"`
	BrandID       *int64                    `json:"brand_id,omitempty" validate:"omitempty,min=1"`
	CategoryID    *int64                    `json:"category_id,omitempty" validate:"omitempty,min=1"`
	UnitID        *int64                    `json:"unit_id,omitempty" validate:"omitempty,min=1"`
	TaxID         *int64                    `json:"tax_id,omitempty" validate:"omitempty,min=1"`
	Price         *decimal.Decimal          `json:"price,omitempty"`
	Qty           *int                      `json:"qty,omitempty"`
	AlertQty      *int                      `json:"alert_qty,omitempty"`
	TaxMethod     *string                   `json:"tax_method,omitempty"`
	HasStock      *bool                     `json:"has_stock,omitempty"`
	HasExpiryDate *bool                     `json:"has_expiry_date,omitempty"`
	ExpiryDate    *time.Time                `json:"expiry_date,omitempty"`
	Details       *string                   `json:"details,omitempty"`
	IsActive      *bool                     `json:"is_active,omitempty"`
	Quantities    *[]productQuantityRequest `json:"product_qties,omitempty" validate:"omitempty,dive"`
	Attachments   *[]attachmentRequest      `json:"attachments,omitempty" validate:"omitempty,dive"`
}

func (r updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:          r.Name,
		SKU:           r.SKU,
		BrandID:       r.BrandID,
		CategoryID:    r.CategoryID,
		UnitID:        r.UnitID,
		TaxID:         r.TaxID,
		Price:         r.Price,
		Qty:           r.Qty,
		AlertQty:      r.AlertQty,
		HasStock:      r.HasStock,
		HasExpiryDate: r.HasExpiryDate,
		ExpiryDate:    r.ExpiryDate,
		Details:       r.Details,
		IsActive:      r.IsActive,
	}

	if r.Symbology != nil {
		symbology, err := enums.ParseSymbology(strings.TrimSpace(*r.Symbology))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid symbology")
		}
		input.Symbology = &symbology
	}
	if r.TaxMethod != nil {
		taxMethod, err := enums.ParseTaxMethod(strings.TrimSpace(*r.TaxMethod))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tax method")
		}
		input.TaxMethod = &taxMethod
	}

	// turning expiry tracking off clears the stored date
	if r.HasExpiryDate != nil && !*r.HasExpiryDate && r.ExpiryDate == nil {
		input.ClearExpiry = true
	}

	if r.Quantities != nil {
		quantities := toQuantityInputs(*r.Quantities)
		input.Quantities = &quantities
	}
	if r.Attachments != nil {
		attachments := toAttachmentInputs(*r.Attachments)
		input.Attachments = &attachments
	}

	return input, nil
}

func toQuantityInputs(rows []productQuantityRequest) []productsvc.QuantityInput {
	inputs := make([]productsvc.QuantityInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, productsvc.QuantityInput{
			WarehouseID: row.WarehouseID,
			Quantity:    row.Quantity,
		})
	}
	return inputs
}

func toAttachmentInputs(rows []attachmentRequest) []productsvc.AttachmentInput {
	inputs := make([]productsvc.AttachmentInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, productsvc.AttachmentInput{
			Path:  row.Path,
			Label: row.Label,
		})
	}
	return inputs
}
