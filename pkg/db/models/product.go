package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/poscatalog/catalog-backend/pkg/enums"
)

// Product is the canonical catalog entry. Quantities and attachments are
// owned rows loaded via explicit preloads; the reference rows (brand,
// category, unit, tax) are non-owning lookups referenced by id.
type Product struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string            `gorm:"column:name;not null"`
	SKU           string            `gorm:"column:sku;not null;uniqueIndex:idx_products_sku,where:deleted_at IS NULL"`
	Symbology     enums.Symbology   `gorm:"column:symbology;not null;default:code128"`
	BrandID       int64             `gorm:"column:brand_id;not null"`
	CategoryID    int64             `gorm:"column:category_id;not null"`
	UnitID        int64             `gorm:"column:unit_id;not null"`
	TaxID         int64             `gorm:"column:tax_id;not null"`
	Price         decimal.Decimal   `gorm:"column:price;type:numeric(15,4);not null"`
	Qty           int               `gorm:"column:qty;not null;default:0"`
	AlertQty      int               `gorm:"column:alert_qty;not null;default:0"`
	TaxMethod     enums.TaxMethod   `gorm:"column:tax_method;not null;default:Exclusive"`
	HasStock      bool              `gorm:"column:has_stock;not null;default:true"`
	HasExpiryDate bool              `gorm:"column:has_expiry_date;not null;default:false"`
	ExpiryDate    *time.Time        `gorm:"column:expiry_date"`
	Details       *string           `gorm:"column:details"`
	IsActive      bool              `gorm:"column:is_active;not null;default:true"`
	Quantities    []ProductQuantity `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Attachments   []Attachment      `gorm:"-"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt    `gorm:"column:deleted_at;index"`
}
