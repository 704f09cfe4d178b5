package refdata

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/poscatalog/catalog-backend/pkg/db/models"
)

// BrandDTO is the wire representation of a brand lookup row.
type BrandDTO struct {
	ID        int64     `json:"Id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryDTO is the wire representation of a category lookup row.
type CategoryDTO struct {
	ID        int64     `json:"Id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitDTO is the wire representation of a sale unit.
type UnitDTO struct {
	ID        int64     `json:"Id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxDTO is the wire representation of a tax rate.
type TaxDTO struct {
	ID        int64           `json:"Id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WarehouseDTO is the wire representation of a stock location.
type WarehouseDTO struct {
	ID        int64     `json:"Id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newBrandDTO(row *models.Brand) *BrandDTO {
	return &BrandDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

func newCategoryDTO(row *models.Category) *CategoryDTO {
	return &CategoryDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

func newUnitDTO(row *models.Unit) *UnitDTO {
	return &UnitDTO{ID: row.ID, Name: row.Name, ShortName: row.ShortName, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

func newTaxDTO(row *models.Tax) *TaxDTO {
	return &TaxDTO{ID: row.ID, Name: row.Name, Rate: row.Rate, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

func newWarehouseDTO(row *models.Warehouse) *WarehouseDTO {
	return &WarehouseDTO{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

func newBrandDTOs(rows []models.Brand) []*BrandDTO {
	dtos := make([]*BrandDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newBrandDTO(&rows[i]))
	}
	return dtos
}

func newCategoryDTOs(rows []models.Category) []*CategoryDTO {
	dtos := make([]*CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newCategoryDTO(&rows[i]))
	}
	return dtos
}

func newUnitDTOs(rows []models.Unit) []*UnitDTO {
	dtos := make([]*UnitDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newUnitDTO(&rows[i]))
	}
	return dtos
}

func newTaxDTOs(rows []models.Tax) []*TaxDTO {
	dtos := make([]*TaxDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newTaxDTO(&rows[i]))
	}
	return dtos
}

func newWarehouseDTOs(rows []models.Warehouse) []*WarehouseDTO {
	dtos := make([]*WarehouseDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newWarehouseDTO(&rows[i]))
	}
	return dtos
}
