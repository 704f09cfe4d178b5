package refdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/poscatalog/catalog-backend/pkg/db"
	"github.com/poscatalog/catalog-backend/pkg/db/models"
	pkgerrors "github.com/poscatalog/catalog-backend/pkg/errors"
)

// Service exposes list and create operations for the lookup tables products
// reference. Names are unique per table among live rows.
type Service interface {
	ListBrands(ctx context.Context) ([]*BrandDTO, error)
	CreateBrand(ctx context.Context, input CreateBrandInput) (*BrandDTO, error)
	ListCategories(ctx context.Context) ([]*CategoryDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	ListUnits(ctx context.Context) ([]*UnitDTO, error)
	CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitDTO, error)
	ListTaxes(ctx context.Context) ([]*TaxDTO, error)
	CreateTax(ctx context.Context, input CreateTaxInput) (*TaxDTO, error)
	ListWarehouses(ctx context.Context) ([]*WarehouseDTO, error)
	CreateWarehouse(ctx context.Context, input CreateWarehouseInput) (*WarehouseDTO, error)
}

type CreateBrandInput struct {
	Name string
}

type CreateCategoryInput struct {
	Name string
}

type CreateUnitInput struct {
	Name      string
	ShortName string
}

type CreateTaxInput struct {
	Name string
	Rate decimal.Decimal
}

type CreateWarehouseInput struct {
	Name string
}

type service struct {
	repo *Repository
}

// NewService constructs a reference-data service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("refdata repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListBrands(ctx context.Context) ([]*BrandDTO, error) {
	rows, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list brands")
	}
	return newBrandDTOs(rows), nil
}

func (s *service) CreateBrand(ctx context.Context, input CreateBrandInput) (*BrandDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.Brand{Name: name}
	if err := s.repo.CreateBrand(ctx, row); err != nil {
		return nil, createError(err, "brand")
	}
	return newBrandDTO(row), nil
}

func (s *service) ListCategories(ctx context.Context) ([]*CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list categories")
	}
	return newCategoryDTOs(rows), nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, row); err != nil {
		return nil, createError(err, "category")
	}
	return newCategoryDTO(row), nil
}

func (s *service) ListUnits(ctx context.Context) ([]*UnitDTO, error) {
	rows, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list units")
	}
	return newUnitDTOs(rows), nil
}

func (s *service) CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.Unit{Name: name, ShortName: strings.TrimSpace(input.ShortName)}
	if err := s.repo.CreateUnit(ctx, row); err != nil {
		return nil, createError(err, "unit")
	}
	return newUnitDTO(row), nil
}

func (s *service) ListTaxes(ctx context.Context) ([]*TaxDTO, error) {
	rows, err := s.repo.ListTaxes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list taxes")
	}
	return newTaxDTOs(rows), nil
}

func (s *service) CreateTax(ctx context.Context, input CreateTaxInput) (*TaxDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Rate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"rate": "must not be negative"})
	}
	row := &models.Tax{Name: name, Rate: input.Rate}
	if err := s.repo.CreateTax(ctx, row); err != nil {
		return nil, createError(err, "tax")
	}
	return newTaxDTO(row), nil
}

func (s *service) ListWarehouses(ctx context.Context) ([]*WarehouseDTO, error) {
	rows, err := s.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list warehouses")
	}
	return newWarehouseDTOs(rows), nil
}

func (s *service) CreateWarehouse(ctx context.Context, input CreateWarehouseInput) (*WarehouseDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.Warehouse{Name: name}
	if err := s.repo.CreateWarehouse(ctx, row); err != nil {
		return nil, createError(err, "warehouse")
	}
	return newWarehouseDTO(row), nil
}

func requireName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"name": "is required"})
	}
	return name, nil
}

func createError(err error, entity string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeValidation, entity+" name already in use").
			WithDetails(map[string]string{"name": "must be unique"})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: create "+entity)
}
