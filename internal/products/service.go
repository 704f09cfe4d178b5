package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/poscatalog/catalog-backend/pkg/db"
	"github.com/poscatalog/catalog-backend/pkg/db/models"
	"github.com/poscatalog/catalog-backend/pkg/enums"
	pkgerrors "github.com/poscatalog/catalog-backend/pkg/errors"
	"github.com/poscatalog/catalog-backend/pkg/pagination"
)

// Service exposes catalog product management operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ListProductsInput narrows and pages the product list.
type ListProductsInput struct {
	Search     string
	BrandID    *int64
	CategoryID *int64
	IsActive   *bool
	Page       int
	Limit      int
}

// ProductListResult bundles one page of products with the unpaginated total.
type ProductListResult struct {
	Products []*ProductDTO `json:"products"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
}

// QuantityInput sets the on-hand count for one warehouse.
type QuantityInput struct {
	WarehouseID int64
	Quantity    int
}

// AttachmentInput references one uploaded file.
type AttachmentInput struct {
	Path  string
	Label string
}

// CreateProductInput holds the validated payload to create a product. The
// field set is enumerated on purpose: nothing outside it ever reaches storage.
type CreateProductInput struct {
	Name          string
	SKU           string
	Symbology     enums.Symbology
	BrandID       int64
	CategoryID    int64
	UnitID        int64
	TaxID         int64
	Price         decimal.Decimal
	Qty           int
	AlertQty      int
	TaxMethod     enums.TaxMethod
	HasStock      bool
	HasExpiryDate bool
	ExpiryDate    *time.Time
	Details       *string
	IsActive      bool
	Quantities    []QuantityInput
	Attachments   []AttachmentInput
}

// UpdateProductInput holds optional mutation values. Nil fields are left
// unchanged (partial merge).
type UpdateProductInput struct {
	Name          *string
	SKU           *string
	Symbology     *enums.Symbology
	BrandID       *int64
	CategoryID    *int64
	UnitID        *int64
	TaxID         *int64
	Price         *decimal.Decimal
	Qty           *int
	AlertQty      *int
	TaxMethod     *enums.TaxMethod
	HasStock      *bool
	HasExpiryDate *bool
	ExpiryDate    *time.Time
	ClearExpiry   bool
	Details       *string
	IsActive      *bool
	Quantities    *[]QuantityInput
	Attachments   *[]AttachmentInput
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListProducts returns one page of live products with all relations loaded.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	pager := pagination.Params{Page: input.Page, Limit: input.Limit}.Normalize()
	filter := Filter{
		Search:     strings.TrimSpace(input.Search),
		BrandID:    input.BrandID,
		CategoryID: input.CategoryID,
		IsActive:   input.IsActive,
		Page:       pager.Page,
		Limit:      pager.Limit,
	}

	items, total, err := s.repo.List(ctx, filter, AllRelations())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list products")
	}

	return &ProductListResult{
		Products: NewProductDTOs(items),
		Total:    total,
		Page:     pager.Page,
		Limit:    pager.Limit,
	}, nil
}

// GetProduct loads one live product with all relations.
func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

// CreateProduct validates and persists a new product with its owned rows.
// Validation runs before any storage mutation.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		SKU:           strings.TrimSpace(input.SKU),
		Symbology:     input.Symbology,
		BrandID:       input.BrandID,
		CategoryID:    input.CategoryID,
		UnitID:        input.UnitID,
		TaxID:         input.TaxID,
		Price:         input.Price,
		Qty:           input.Qty,
		AlertQty:      input.AlertQty,
		TaxMethod:     input.TaxMethod,
		HasStock:      input.HasStock,
		HasExpiryDate: input.HasExpiryDate,
		ExpiryDate:    input.ExpiryDate,
		Details:       input.Details,
		IsActive:      input.IsActive,
	}
	if len(input.Quantities) > 0 {
		product.Qty = totalQuantity(input.Quantities)
	}

	if err := s.validateProduct(ctx, product, input.Quantities); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Create(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeValidation, "sku already in use").
					WithDetails(map[string]string{"sku": "must be unique"})
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert product")
		}

		if err := txRepo.ReplaceQuantities(ctx, product.ID, quantityRows(input.Quantities)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert product quantities")
		}

		if err := txRepo.ReplaceAttachments(ctx, product.ID, attachmentRows(input.Attachments)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert attachments")
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct applies a partial merge onto the live row: nil input fields
// keep their stored values.
func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdateToProduct(product, input)

	var quantities []QuantityInput
	if input.Quantities != nil {
		quantities = *input.Quantities
		product.Qty = totalQuantity(quantities)
	}

	if err := s.validateProduct(ctx, product, quantities); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Save(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeValidation, "sku already in use").
					WithDetails(map[string]string{"sku": "must be unique"})
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update product")
		}

		if input.Quantities != nil {
			if err := txRepo.ReplaceQuantities(ctx, product.ID, quantityRows(quantities)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: replace product quantities")
			}
		}

		if input.Attachments != nil {
			if err := txRepo.ReplaceAttachments(ctx, product.ID, attachmentRows(*input.Attachments)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: replace attachments")
			}
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}

	return s.GetProduct(ctx, product.ID)
}

// DeleteProduct soft-deletes the row; deleting an already-deleted product
// reports NotFound.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete product")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.Get(ctx, id, AllRelations())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load product")
	}
	return product, nil
}

// validateProduct enforces the business rules shared by create and update.
func (s *service) validateProduct(ctx context.Context, product *models.Product, quantities []QuantityInput) error {
	details := map[string]string{}

	if product.Name == "" {
		details["name"] = "is required"
	}
	if product.SKU == "" {
		details["sku"] = "is required"
	}
	if !product.Symbology.IsValid() {
		details["symbology"] = "is invalid"
	}
	if !product.TaxMethod.IsValid() {
		details["tax_method"] = "is invalid"
	}
	if product.Price.IsNegative() {
		details["price"] = "must not be negative"
	}
	if product.Qty < 0 {
		details["qty"] = "must not be negative"
	}
	if product.AlertQty < 0 {
		details["alert_qty"] = "must not be negative"
	}
	if product.HasExpiryDate && product.ExpiryDate == nil {
		details["expiry_date"] = "is required when has_expiry_date is true"
	}

	seen := map[int64]bool{}
	warehouseIDs := make([]int64, 0, len(quantities))
	for _, qty := range quantities {
		if qty.Quantity < 0 {
			details["product_qties"] = "quantities must not be negative"
		}
		if seen[qty.WarehouseID] {
			details["product_qties"] = "duplicate warehouse_id"
		}
		seen[qty.WarehouseID] = true
		warehouseIDs = append(warehouseIDs, qty.WarehouseID)
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	missing, err := s.repo.ResolveReferences(ctx, ReferenceIDs{
		BrandID:    product.BrandID,
		CategoryID: product.CategoryID,
		UnitID:     product.UnitID,
		TaxID:      product.TaxID,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: resolve references")
	}
	for _, field := range missing {
		details[field] = "does not exist"
	}

	missingWarehouses, err := s.repo.MissingWarehouses(ctx, warehouseIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: resolve warehouses")
	}
	if len(missingWarehouses) > 0 {
		details["product_qties"] = "warehouse does not exist"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// applyUpdateToProduct copies non-nil input fields onto the stored row.
func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Symbology != nil {
		product.Symbology = *input.Symbology
	}
	if input.BrandID != nil {
		product.BrandID = *input.BrandID
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.UnitID != nil {
		product.UnitID = *input.UnitID
	}
	if input.TaxID != nil {
		product.TaxID = *input.TaxID
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Qty != nil {
		product.Qty = *input.Qty
	}
	if input.AlertQty != nil {
		product.AlertQty = *input.AlertQty
	}
	if input.TaxMethod != nil {
		product.TaxMethod = *input.TaxMethod
	}
	if input.HasStock != nil {
		product.HasStock = *input.HasStock
	}
	if input.HasExpiryDate != nil {
		product.HasExpiryDate = *input.HasExpiryDate
	}
	if input.ExpiryDate != nil {
		product.ExpiryDate = input.ExpiryDate
	}
	if input.ClearExpiry {
		product.ExpiryDate = nil
	}
	if input.Details != nil {
		product.Details = input.Details
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func totalQuantity(quantities []QuantityInput) int {
	total := 0
	for _, qty := range quantities {
		total += qty.Quantity
	}
	return total
}

func quantityRows(quantities []QuantityInput) []models.ProductQuantity {
	rows := make([]models.ProductQuantity, 0, len(quantities))
	for _, qty := range quantities {
		rows = append(rows, models.ProductQuantity{
			WarehouseID: qty.WarehouseID,
			Quantity:    qty.Quantity,
		})
	}
	return rows
}

func attachmentRows(attachments []AttachmentInput) []models.Attachment {
	rows := make([]models.Attachment, 0, len(attachments))
	for _, att := range attachments {
		rows = append(rows, models.Attachment{
			Path:  att.Path,
			Label: att.Label,
		})
	}
	return rows
}
