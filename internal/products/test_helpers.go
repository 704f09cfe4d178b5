package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/poscatalog/catalog-backend/pkg/db/models"
	"github.com/poscatalog/catalog-backend/pkg/enums"
)

type referenceIDs struct {
	brandID     int64
	categoryID  int64
	unitID      int64
	taxID       int64
	warehouseID int64
}

func mustSeedReferences(t *testing.T, conn *gorm.DB) referenceIDs {
	t.Helper()

	brand := &models.Brand{Name: fmt.Sprintf("Brand %s", uuid.NewString())}
	if err := conn.Create(brand).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}
	category := &models.Category{Name: fmt.Sprintf("Category %s", uuid.NewString())}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	unit := &models.Unit{Name: fmt.Sprintf("Unit %s", uuid.NewString()), ShortName: "pc"}
	if err := conn.Create(unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}
	tax := &models.Tax{Name: fmt.Sprintf("Tax %s", uuid.NewString()), Rate: decimal.NewFromFloat(7.5)}
	if err := conn.Create(tax).Error; err != nil {
		t.Fatalf("create tax: %v", err)
	}
	warehouse := &models.Warehouse{Name: fmt.Sprintf("Warehouse %s", uuid.NewString())}
	if err := conn.Create(warehouse).Error; err != nil {
		t.Fatalf("create warehouse: %v", err)
	}

	return referenceIDs{
		brandID:     brand.ID,
		categoryID:  category.ID,
		unitID:      unit.ID,
		taxID:       tax.ID,
		warehouseID: warehouse.ID,
	}
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, refs referenceIDs) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       "Test Product",
		SKU:        fmt.Sprintf("SKU-%s", uuid.NewString()),
		Symbology:  enums.SymbologyCode128,
		BrandID:    refs.brandID,
		CategoryID: refs.categoryID,
		UnitID:     refs.unitID,
		TaxID:      refs.taxID,
		Price:      decimal.NewFromFloat(9.99),
		Qty:        10,
		AlertQty:   2,
		TaxMethod:  enums.TaxMethodInclusive,
		HasStock:   true,
		IsActive:   true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func makeCreateInput(refs referenceIDs) CreateProductInput {
	return CreateProductInput{
		Name:       "Widget",
		SKU:        fmt.Sprintf("SKU-%s", uuid.NewString()),
		Symbology:  enums.SymbologyCode128,
		BrandID:    refs.brandID,
		CategoryID: refs.categoryID,
		UnitID:     refs.unitID,
		TaxID:      refs.taxID,
		Price:      decimal.NewFromFloat(9.99),
		Qty:        10,
		AlertQty:   2,
		TaxMethod:  enums.TaxMethodInclusive,
		HasStock:   true,
		IsActive:   true,
	}
}

func stringPtr(v string) *string { return &v }
func intPtr(v int) *int          { return &v }
func int64Ptr(v int64) *int64    { return &v }
func boolPtr(v bool) *bool       { return &v }
