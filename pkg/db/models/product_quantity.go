package models

import "time"

// ProductQuantity tracks on-hand stock for one product in one warehouse.
type ProductQuantity struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"column:product_id;not null;index"`
	WarehouseID int64     `gorm:"column:warehouse_id;not null"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical table name used by the API payloads.
func (ProductQuantity) TableName() string {
	return "product_quantities"
}
