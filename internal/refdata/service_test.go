package refdata

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/poscatalog/catalog-backend/pkg/db/models"
	pkgerrors "github.com/poscatalog/catalog-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
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
	))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateAndListBrands(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateBrand(ctx, CreateBrandInput{Name: "  Acme  "})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Acme", created.Name)

	_, err = svc.CreateBrand(ctx, CreateBrandInput{Name: "Zeta"})
	require.NoError(t, err)

	listed, err := svc.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "Acme", listed[0].Name)
	require.Equal(t, "Zeta", listed[1].Name)
}

func TestCreateBrandRejectsEmptyAndDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, CreateBrandInput{Name: "   "})
	requireValidationError(t, err)

	_, err = svc.CreateBrand(ctx, CreateBrandInput{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.CreateBrand(ctx, CreateBrandInput{Name: "Acme"})
	requireValidationError(t, err)
}

func TestCreateUnitKeepsShortName(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateUnit(context.Background(), CreateUnitInput{Name: "Kilogram", ShortName: " kg "})
	require.NoError(t, err)
	require.Equal(t, "kg", created.ShortName)
}

func TestCreateTaxValidatesRate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTax(ctx, CreateTaxInput{Name: "VAT", Rate: decimal.NewFromInt(-1)})
	requireValidationError(t, err)

	created, err := svc.CreateTax(ctx, CreateTaxInput{Name: "VAT", Rate: decimal.NewFromFloat(17.5)})
	require.NoError(t, err)
	require.True(t, created.Rate.Equal(decimal.NewFromFloat(17.5)))
}

func TestListExcludesSoftDeletedRows(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateWarehouse(ctx, CreateWarehouseInput{Name: "Main"})
	require.NoError(t, err)
	_, err = svc.CreateWarehouse(ctx, CreateWarehouseInput{Name: "Backup"})
	require.NoError(t, err)

	require.NoError(t, conn.Delete(&models.Warehouse{}, created.ID).Error)

	listed, err := svc.ListWarehouses(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Backup", listed[0].Name)
}

func TestListEmptyTablesReturnNonNil(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.NotNil(t, categories)
	require.Empty(t, categories)

	taxes, err := svc.ListTaxes(ctx)
	require.NoError(t, err)
	require.NotNil(t, taxes)
	require.Empty(t, taxes)
}
