package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/poscatalog/catalog-backend/pkg/db/models"
)

// ProductDTO is the canonical wire representation of a product. Field order
// is part of the API contract and must not be reshuffled. Collections are
// never null: relations that were not loaded render as empty arrays.
type ProductDTO struct {
	ID            int64                `json:"Id"`
	Name          string               `json:"name"`
	SKU           string               `json:"sku"`
	Symbology     string               `json:"symbology"`
	BrandID       int64                `json:"brand_id"`
	CategoryID    int64                `json:"category_id"`
	UnitID        int64                `json:"unit_id"`
	Price         decimal.Decimal      `json:"price"`
	Qty           int                  `json:"qty"`
	AlertQty      int                  `json:"alert_qty"`
	TaxMethod     string               `json:"tax_method"`
	TaxID         int64                `json:"tax_id"`
	HasStock      bool                 `json:"has_stock"`
	HasExpiryDate bool                 `json:"has_expiry_date"`
	ExpiryDate    *time.Time           `json:"expiry_date"`
	Details       *string              `json:"details"`
	IsActive      bool                 `json:"is_active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     *time.Time           `json:"deleted_at"`
	Quantities    []ProductQuantityDTO `json:"product_qties"`
	Attachments   []AttachmentDTO      `json:"attachments"`
}

// ProductQuantityDTO exposes per-warehouse stock counts.
type ProductQuantityDTO struct {
	ID          int64 `json:"Id"`
	WarehouseID int64 `json:"warehouse_id"`
	Quantity    int   `json:"quantity"`
}

// AttachmentDTO captures file references owned by the product.
type AttachmentDTO struct {
	ID    int64  `json:"Id"`
	Path  string `json:"path"`
	Label string `json:"label"`
}

// NewProductDTO maps the persisted model to its wire representation. The
// mapper never fetches anything: relations absent from the model simply come
// out empty.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		Symbology:     product.Symbology.String(),
		BrandID:       product.BrandID,
		CategoryID:    product.CategoryID,
		UnitID:        product.UnitID,
		Price:         product.Price,
		Qty:           product.Qty,
		AlertQty:      product.AlertQty,
		TaxMethod:     product.TaxMethod.String(),
		TaxID:         product.TaxID,
		HasStock:      product.HasStock,
		HasExpiryDate: product.HasExpiryDate,
		ExpiryDate:    product.ExpiryDate,
		Details:       product.Details,
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
		Quantities:    make([]ProductQuantityDTO, 0, len(product.Quantities)),
		Attachments:   make([]AttachmentDTO, 0, len(product.Attachments)),
	}

	if product.DeletedAt.Valid {
		deletedAt := product.DeletedAt.Time
		dto.DeletedAt = &deletedAt
	}

	for _, qty := range product.Quantities {
		dto.Quantities = append(dto.Quantities, ProductQuantityDTO{
			ID:          qty.ID,
			WarehouseID: qty.WarehouseID,
			Quantity:    qty.Quantity,
		})
	}

	for _, att := range product.Attachments {
		dto.Attachments = append(dto.Attachments, AttachmentDTO{
			ID:    att.ID,
			Path:  att.Path,
			Label: att.Label,
		})
	}

	return dto
}

// NewProductDTOs maps a slice of models preserving order.
func NewProductDTOs(items []models.Product) []*ProductDTO {
	dtos := make([]*ProductDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, NewProductDTO(&items[i]))
	}
	return dtos
}
