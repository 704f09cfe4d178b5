package refdata

import (
	"context"

	"gorm.io/gorm"

	"github.com/poscatalog/catalog-backend/pkg/db/models"
)

// Repository exposes persistence for the product lookup tables. Every list
// excludes soft-deleted rows and orders by name for stable dropdown output.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reference-data repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateBrand(ctx context.Context, row *models.Brand) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateCategory(ctx context.Context, row *models.Category) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var rows []models.Unit
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateUnit(ctx context.Context, row *models.Unit) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) ListTaxes(ctx context.Context) ([]models.Tax, error) {
	var rows []models.Tax
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateTax(ctx context.Context, row *models.Tax) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var rows []models.Warehouse
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateWarehouse(ctx context.Context, row *models.Warehouse) error {
	return r.db.WithContext(ctx).Create(row).Error
}
